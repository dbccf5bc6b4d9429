// USB controller mode selection
// Both LPC18xx/43xx ports use the same EHCI-style controller. Bring-up
// resets each enabled controller and programs its role once; there is no
// runtime role switching.
package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// USBPort identifies a USB controller (root hub port).
type USBPort uint8

const (
	USB0 USBPort = 0 // High speed, OTG capable
	USB1 USBPort = 1 // High speed with external ULPI PHY, full speed otherwise
)

// USBRole selects the controller mode.
type USBRole uint8

const (
	RoleDevice USBRole = iota + 1
	RoleHost
	RoleOTG // device mode with the OTG control bits enabled
)

func (r USBRole) String() string {
	switch r {
	case RoleDevice:
		return "device"
	case RoleHost:
		return "host"
	case RoleOTG:
		return "otg"
	default:
		return fmt.Sprintf("USBRole(%d)", uint8(r))
	}
}

// VBUSPolarity is the active level of the VBUS power switch in host mode.
type VBUSPolarity uint8

const (
	VBUSLow  VBUSPolarity = 0
	VBUSHigh VBUSPolarity = 1
)

func (p VBUSPolarity) String() string {
	if p == VBUSHigh {
		return "high"
	}
	return "low"
}

// USBPortConfig is the static configuration of one enabled port.
type USBPortConfig struct {
	Port USBPort
	Role USBRole
	VBUS VBUSPolarity // host role only

	// FullSpeedOnly forces the port into full speed signalling when the
	// board wiring cannot carry high speed.
	FullSpeedOnly bool
}

// USBRegisters is the subset of the controller registers used by bring-up.
type USBRegisters struct {
	USBCMD  Register32
	USBMODE Register32
	OTGSC   Register32
	PORTSC1 Register32
}

// Register bits
const (
	USBCMD_RST = 1 << 1 // Controller reset, cleared by hardware when done

	USBMODE_CM_DEVICE = 2 // Controller mode: device
	USBMODE_CM_HOST   = 3 // Controller mode: host
	USBMODE_VBPS_Pos  = 5 // VBUS power select polarity (host mode)

	OTGSC_VD = 1 << 0 // VBUS discharge
	OTGSC_OT = 1 << 3 // OTG termination

	PORTSC1_PFSC = 1 << 24 // Port force full speed connect
)

var (
	ErrResetTimeout = errors.New("usb controller reset did not complete")
	ErrInvalidRole  = errors.New("invalid usb role")
	ErrInvalidPort  = errors.New("invalid usb port")
)

// ResetTimeoutError reports a controller whose reset bit stayed set for the
// whole bounded wait.
type ResetTimeoutError struct {
	Port  USBPort
	Polls uint32
}

func (e *ResetTimeoutError) Error() string {
	return fmt.Sprintf("usb%d: %v after %d polls", e.Port, ErrResetTimeout, e.Polls)
}

// Cause returns ErrResetTimeout for errors.Cause.
func (e *ResetTimeoutError) Cause() error { return ErrResetTimeout }

// Unwrap returns ErrResetTimeout for errors.Is.
func (e *ResetTimeoutError) Unwrap() error { return ErrResetTimeout }

// ResetController issues a controller reset and polls until hardware clears
// the reset bit. It returns the number of polls made. With limit 0 the wait
// is unbounded, as on real bring-up code: a dead controller hangs here.
func ResetController(port USBPort, regs *USBRegisters, limit uint32) (uint32, error) {
	regs.USBCMD.SetBits(USBCMD_RST)

	var polls uint32
	for {
		polls++
		if !regs.USBCMD.HasBits(USBCMD_RST) {
			return polls, nil
		}
		if limit != 0 && polls >= limit {
			return polls, &ResetTimeoutError{Port: port, Polls: polls}
		}
	}
}

// ProgramMode writes the mode register for the configured role. Must run
// after ResetController: the mode register is only writable once after a
// controller reset.
func ProgramMode(regs *USBRegisters, cfg USBPortConfig) error {
	switch cfg.Role {
	case RoleHost:
		regs.USBMODE.Set(USBMODE_CM_HOST | uint32(cfg.VBUS)<<USBMODE_VBPS_Pos)
	case RoleDevice:
		regs.USBMODE.Set(USBMODE_CM_DEVICE)
	case RoleOTG:
		regs.USBMODE.Set(USBMODE_CM_DEVICE)
		regs.OTGSC.Set(OTGSC_OT | OTGSC_VD)
	default:
		return errors.Wrapf(ErrInvalidRole, "usb%d: %v", cfg.Port, cfg.Role)
	}

	if cfg.FullSpeedOnly {
		regs.PORTSC1.SetBits(PORTSC1_PFSC)
	}
	return nil
}

// initUSBPort runs the full per-port sequence: PHY, reset, mode.
func initUSBPort(d USBDriver, cfg USBPortConfig, limit uint32) error {
	if cfg.Port > USB1 {
		return errors.Wrapf(ErrInvalidPort, "usb%d", cfg.Port)
	}
	log := logger()

	d.PHYInit(cfg)
	regs := d.Registers(cfg.Port)

	polls, err := ResetController(cfg.Port, regs, limit)
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	log.Debugf("usb%d: reset done after %d polls", cfg.Port, polls)

	if err := ProgramMode(regs, cfg); err != nil {
		return err
	}
	log.Infof("usb%d: %s mode (vbus %s, full speed only %t)", cfg.Port, cfg.Role, cfg.VBUS, cfg.FullSpeedOnly)
	return nil
}
