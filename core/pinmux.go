// Pin multiplexing tables
// Each entry routes one physical pin to a peripheral function through the
// SCU. Tables are static per board and applied once by SystemInit.
package core

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PinMode is the value written to an SCU SFS register.
type PinMode uint32

// SCU mode bits (LPC18xx/43xx SFS register layout)
const (
	ModeFunc0 PinMode = 0x0 // Function 0 (usually GPIO or the reset default)
	ModeFunc1 PinMode = 0x1
	ModeFunc2 PinMode = 0x2
	ModeFunc3 PinMode = 0x3
	ModeFunc4 PinMode = 0x4
	ModeFunc5 PinMode = 0x5
	ModeFunc6 PinMode = 0x6
	ModeFunc7 PinMode = 0x7

	// Pull resistor field, bits 3..4 (EPD, EPUN)
	ModePullUp   PinMode = 0x0 << 3
	ModeRepeater PinMode = 0x1 << 3
	ModeInactive PinMode = 0x2 << 3
	ModePullDown PinMode = 0x3 << 3

	ModeHighSpeedSlew PinMode = 1 << 5 // EHS: fast slew rate
	ModeInBuffEnable  PinMode = 1 << 6 // EZI: input buffer enable
	ModeZIFDisable    PinMode = 1 << 7 // ZIF: input glitch filter disable

	// PinIOFast is the usual setting for high speed peripheral pins.
	PinIOFast = ModeInactive | ModeHighSpeedSlew | ModeInBuffEnable | ModeZIFDisable

	modeFuncMask PinMode = 0x7
	modePullMask PinMode = 0x3 << 3
	modeValid    PinMode = 0xFF
)

// Limits of the SCU address space
const (
	MaxPinPort = 0xF
	MaxPinNum  = 31
)

// Func returns the selected alternate function (0..7).
func (m PinMode) Func() uint8 {
	return uint8(m & modeFuncMask)
}

// String renders the mode for log lines, e.g. "FUNC4|INACT|INBUFF_EN".
func (m PinMode) String() string {
	parts := []string{"FUNC" + strconv.Itoa(int(m.Func()))}
	switch m & modePullMask {
	case ModeRepeater:
		parts = append(parts, "REPEATER")
	case ModeInactive:
		parts = append(parts, "INACT")
	case ModePullDown:
		parts = append(parts, "PULLDOWN")
	default:
		parts = append(parts, "PULLUP")
	}
	if m&ModeHighSpeedSlew != 0 {
		parts = append(parts, "HIGHSPEEDSLEW_EN")
	}
	if m&ModeInBuffEnable != 0 {
		parts = append(parts, "INBUFF_EN")
	}
	if m&ModeZIFDisable != 0 {
		parts = append(parts, "ZIF_DIS")
	}
	if extra := m &^ modeValid; extra != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(extra), 16))
	}
	return strings.Join(parts, "|")
}

// PinMuxEntry routes one physical pin. For clock pin tables only Pin and
// Mode are meaningful.
type PinMuxEntry struct {
	Port uint8
	Pin  uint8
	Mode PinMode
}

// Validate reports an entry that cannot be expressed in the SCU.
func (e PinMuxEntry) Validate() error {
	if e.Port > MaxPinPort {
		return errors.Errorf("pin mux P%X_%d: port out of range", e.Port, e.Pin)
	}
	if e.Pin > MaxPinNum {
		return errors.Errorf("pin mux P%X_%d: pin out of range", e.Port, e.Pin)
	}
	if e.Mode&^modeValid != 0 {
		return errors.Errorf("pin mux P%X_%d: reserved mode bits set in %#x", e.Port, e.Pin, uint32(e.Mode))
	}
	return nil
}

// ApplyPinMux programs every entry of a general pin table, in order.
func ApplyPinMux(d PinMuxDriver, pins []PinMuxEntry) {
	for _, e := range pins {
		d.PinMuxSet(e.Port, e.Pin, e.Mode)
	}
}

// ApplyClockPinMux programs every entry of a clock pin table, in order.
// The Port field is not used by the clock pin registers.
func ApplyClockPinMux(d PinMuxDriver, pins []PinMuxEntry) {
	for _, e := range pins {
		d.ClockPinMuxSet(e.Pin, e.Mode)
	}
}
