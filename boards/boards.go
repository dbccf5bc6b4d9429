// Package boards holds the static descriptions of supported boards. The
// firmware picks one at build time through Selected.
package boards

import (
	"sort"

	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

// DefaultTickRate is the SysTick rate of boards that own the tick: 1 ms.
const DefaultTickRate = physic.KiloHertz

var registry = map[string]core.BoardConfig{
	MCB1800.Name: MCB1800,
	EA4357.Name:  EA4357,
}

// ByName returns a copy of a built-in board description.
func ByName(name string) (core.BoardConfig, bool) {
	cfg, ok := registry[name]
	if !ok {
		return core.BoardConfig{}, false
	}
	return Clone(cfg), true
}

// Names lists the built-in boards in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of cfg, so callers can change the tables
// without touching the static descriptions.
func Clone(cfg core.BoardConfig) core.BoardConfig {
	out := cfg
	out.Pins = append([]core.PinMuxEntry(nil), cfg.Pins...)
	out.ClockPins = append([]core.PinMuxEntry(nil), cfg.ClockPins...)
	out.LEDs = append([]core.LEDDescriptor(nil), cfg.LEDs...)
	out.Buttons = append([]core.ButtonDescriptor(nil), cfg.Buttons...)
	out.USB = append([]core.USBPortConfig(nil), cfg.USB...)
	return out
}
