package boards

import (
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

// EA4357 is the Embedded Artists LPC4357 developer's kit. Its LEDs sit
// behind an I2C port expander, so none are driven from GPIO here.
var EA4357 = core.BoardConfig{
	Name:    "ea4357",
	OscRate: 12 * physic.MegaHertz,

	USB: []core.USBPortConfig{
		{Port: core.USB0, Role: core.RoleDevice},
	},

	TickOwned: true,
	TickRate:  DefaultTickRate,
}
