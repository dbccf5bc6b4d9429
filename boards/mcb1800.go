package boards

import (
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

const (
	ledMode   = core.ModeInBuffEnable | core.ModeInactive
	clockMode = core.ModeInactive | core.ModeInBuffEnable | core.ModeZIFDisable | core.ModeHighSpeedSlew | core.ModeFunc0
)

// MCB1800 is the Keil MCB1800 (LPC1857) board: eight GPIO LEDs, I2S on the
// audio codec pins, USB0 as OTG device and USB1 as a full speed host.
var MCB1800 = core.BoardConfig{
	Name:    "mcb1800",
	OscRate: 12 * physic.MegaHertz,

	Pins: []core.PinMuxEntry{
		// LEDs
		{Port: 0xD, Pin: 10, Mode: ledMode | core.ModeFunc4},
		{Port: 0xD, Pin: 11, Mode: ledMode | core.ModeFunc4},
		{Port: 0xD, Pin: 12, Mode: ledMode | core.ModeFunc4},
		{Port: 0xD, Pin: 13, Mode: ledMode | core.ModeFunc4},
		{Port: 0xD, Pin: 14, Mode: ledMode | core.ModeFunc4},
		{Port: 0x9, Pin: 0, Mode: ledMode | core.ModeFunc0},
		{Port: 0x9, Pin: 1, Mode: ledMode | core.ModeFunc0},
		{Port: 0x9, Pin: 2, Mode: ledMode | core.ModeFunc0},

		// I2S
		{Port: 0x3, Pin: 0, Mode: core.PinIOFast | core.ModeFunc2},
		{Port: 0x6, Pin: 0, Mode: core.PinIOFast | core.ModeFunc4},
		{Port: 0x7, Pin: 2, Mode: core.PinIOFast | core.ModeFunc2},
		{Port: 0x6, Pin: 2, Mode: core.PinIOFast | core.ModeFunc3},
		{Port: 0x7, Pin: 1, Mode: core.PinIOFast | core.ModeFunc2},
		{Port: 0x6, Pin: 1, Mode: core.PinIOFast | core.ModeFunc3},
	},

	ClockPins: []core.PinMuxEntry{
		{Pin: 0, Mode: clockMode},
		{Pin: 1, Mode: clockMode},
		{Pin: 2, Mode: clockMode},
		{Pin: 3, Mode: clockMode},
	},

	LEDs: []core.LEDDescriptor{
		{Port: 6, Bit: 24},
		{Port: 6, Bit: 25},
		{Port: 6, Bit: 26},
		{Port: 6, Bit: 27},
		{Port: 6, Bit: 28},
		{Port: 4, Bit: 12},
		{Port: 4, Bit: 13},
		{Port: 4, Bit: 14},
	},

	USB: []core.USBPortConfig{
		{Port: core.USB0, Role: core.RoleOTG},
		// USB1 has no ULPI PHY fitted, so it only runs at full speed
		{Port: core.USB1, Role: core.RoleHost, VBUS: core.VBUSHigh, FullSpeedOnly: true},
	},

	TickOwned: true,
	TickRate:  DefaultTickRate,
}
