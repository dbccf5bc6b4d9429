// Package config loads board profiles for the host simulator. A profile
// names a built-in board and overrides its build-time options.
package config

import (
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"lpcbsp/boards"
	"lpcbsp/core"
)

// Profile is the YAML form of a board configuration.
type Profile struct {
	// Board is the built-in board the profile starts from
	Board string `yaml:"board"`

	LEDActiveLow   *bool       `yaml:"led_active_low,omitempty"`
	ResetPollLimit uint32      `yaml:"reset_poll_limit,omitempty"`
	Tick           TickProfile `yaml:"tick"`

	// USB replaces the board's port list when present; an empty list
	// disables every port
	USB []USBProfile `yaml:"usb,omitempty"`
}

// TickProfile selects who owns the millisecond tick.
type TickProfile struct {
	Owned  *bool `yaml:"owned,omitempty"`
	RateHz int64 `yaml:"rate_hz,omitempty"`
}

// USBProfile configures one USB port.
type USBProfile struct {
	Port          uint8  `yaml:"port"`
	Role          string `yaml:"role"`
	VBUS          string `yaml:"vbus,omitempty"`
	FullSpeedOnly bool   `yaml:"full_speed_only,omitempty"`
}

// MaxTickRateHz bounds tick.rate_hz. No LPC18xx core clock can divide
// down to a faster tick.
const MaxTickRateHz = int64(physic.GigaHertz / physic.Hertz)

// LoadConfig parses a YAML (or JSON) profile and applies defaults. Unknown
// keys are rejected.
func LoadConfig(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parse board profile")
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// applyDefaults fills in missing values
func applyDefaults(p *Profile) {
	if p.Board == "" {
		p.Board = boards.MCB1800.Name
	}
	p.Board = strings.ToLower(p.Board)

	for i := range p.USB {
		if p.USB[i].VBUS == "" {
			p.USB[i].VBUS = "high"
		}
	}
}

// Validate checks the profile against the built-in boards and the USB
// role/polarity vocabulary.
func (p *Profile) Validate() error {
	if _, ok := boards.ByName(p.Board); !ok {
		return errors.Errorf("unknown board %q (known: %s)", p.Board, strings.Join(boards.Names(), ", "))
	}
	if p.Tick.RateHz < 0 || p.Tick.RateHz > MaxTickRateHz {
		return errors.Errorf("tick.rate_hz must be between 0 (board default) and %d, got %d", MaxTickRateHz, p.Tick.RateHz)
	}
	seen := make(map[uint8]bool)
	for i, u := range p.USB {
		if u.Port > uint8(core.USB1) {
			return errors.Errorf("usb[%d]: port %d out of range", i, u.Port)
		}
		if seen[u.Port] {
			return errors.Errorf("usb[%d]: port %d listed twice", i, u.Port)
		}
		seen[u.Port] = true
		if _, err := ParseRole(u.Role); err != nil {
			return errors.Wrapf(err, "usb[%d]", i)
		}
		if _, err := ParseVBUS(u.VBUS); err != nil {
			return errors.Wrapf(err, "usb[%d]", i)
		}
	}
	return nil
}

// BoardConfig overlays the profile onto its base board.
func (p *Profile) BoardConfig() (core.BoardConfig, error) {
	cfg, ok := boards.ByName(p.Board)
	if !ok {
		return core.BoardConfig{}, errors.Errorf("unknown board %q", p.Board)
	}

	if p.LEDActiveLow != nil {
		cfg.LEDActiveLow = *p.LEDActiveLow
	}
	if p.ResetPollLimit != 0 {
		cfg.ResetPollLimit = p.ResetPollLimit
	}
	if p.Tick.Owned != nil {
		cfg.TickOwned = *p.Tick.Owned
	}
	if p.Tick.RateHz != 0 {
		cfg.TickRate = physic.Frequency(p.Tick.RateHz) * physic.Hertz
	}

	if p.USB != nil {
		cfg.USB = make([]core.USBPortConfig, 0, len(p.USB))
		for _, u := range p.USB {
			role, err := ParseRole(u.Role)
			if err != nil {
				return core.BoardConfig{}, err
			}
			vbus, err := ParseVBUS(u.VBUS)
			if err != nil {
				return core.BoardConfig{}, err
			}
			cfg.USB = append(cfg.USB, core.USBPortConfig{
				Port:          core.USBPort(u.Port),
				Role:          role,
				VBUS:          vbus,
				FullSpeedOnly: u.FullSpeedOnly,
			})
		}
	}
	return cfg, nil
}

// ParseRole maps "device", "host" or "otg" to a USB role.
func ParseRole(s string) (core.USBRole, error) {
	switch strings.ToLower(s) {
	case "device":
		return core.RoleDevice, nil
	case "host":
		return core.RoleHost, nil
	case "otg":
		return core.RoleOTG, nil
	default:
		return 0, errors.Errorf("unknown usb role %q", s)
	}
}

// ParseVBUS maps "low" or "high" to a VBUS polarity.
func ParseVBUS(s string) (core.VBUSPolarity, error) {
	switch strings.ToLower(s) {
	case "high":
		return core.VBUSHigh, nil
	case "low":
		return core.VBUSLow, nil
	default:
		return 0, errors.Errorf("unknown vbus polarity %q", s)
	}
}

// DefaultProfile returns the profile of the default board, unchanged.
func DefaultProfile() *Profile {
	return &Profile{Board: boards.Selected.Name}
}
