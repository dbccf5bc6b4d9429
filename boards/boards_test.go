package boards

import (
	"testing"

	"go.viam.com/test"
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

func TestBoardTables(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			cfg, ok := ByName(name)
			test.That(t, ok, test.ShouldBeTrue)
			test.That(t, cfg.Name, test.ShouldEqual, name)
			test.That(t, cfg.OscRate, test.ShouldBeGreaterThan, 0)

			type pinKey struct{ port, pin uint8 }
			seen := make(map[pinKey]bool)
			for _, e := range cfg.Pins {
				test.That(t, e.Validate(), test.ShouldBeNil)
				k := pinKey{e.Port, e.Pin}
				test.That(t, seen[k], test.ShouldBeFalse)
				seen[k] = true
			}

			clocks := make(map[uint8]bool)
			for _, e := range cfg.ClockPins {
				test.That(t, e.Validate(), test.ShouldBeNil)
				test.That(t, e.Pin, test.ShouldBeLessThan, 4)
				test.That(t, clocks[e.Pin], test.ShouldBeFalse)
				clocks[e.Pin] = true
			}

			leds := make(map[core.LEDDescriptor]bool)
			for _, led := range cfg.LEDs {
				test.That(t, led.Port, test.ShouldBeLessThan, 8)
				test.That(t, led.Bit, test.ShouldBeLessThan, 32)
				test.That(t, leds[led], test.ShouldBeFalse)
				leds[led] = true
			}
			test.That(t, len(cfg.LEDs), test.ShouldBeLessThanOrEqualTo, 32)

			ports := make(map[core.USBPort]bool)
			for _, u := range cfg.USB {
				test.That(t, u.Port, test.ShouldBeLessThanOrEqualTo, core.USB1)
				test.That(t, ports[u.Port], test.ShouldBeFalse)
				ports[u.Port] = true
				test.That(t, u.Role.String(), test.ShouldBeIn, "device", "host", "otg")
			}

			if cfg.TickOwned {
				reload := int64(180 * physic.MegaHertz / cfg.TickRate)
				test.That(t, reload, test.ShouldBeBetweenOrEqual, 1, 1<<24)
			}
		})
	}
}

func TestMCB1800(t *testing.T) {
	cfg, ok := ByName("mcb1800")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cfg.LEDs, test.ShouldHaveLength, 8)
	test.That(t, cfg.LEDs[0], test.ShouldResemble, core.LEDDescriptor{Port: 6, Bit: 24})
	test.That(t, cfg.ClockPins, test.ShouldHaveLength, 4)
	test.That(t, cfg.USB, test.ShouldResemble, []core.USBPortConfig{
		{Port: core.USB0, Role: core.RoleOTG},
		{Port: core.USB1, Role: core.RoleHost, VBUS: core.VBUSHigh, FullSpeedOnly: true},
	})
	test.That(t, cfg.TickOwned, test.ShouldBeTrue)
	test.That(t, cfg.TickRate, test.ShouldEqual, DefaultTickRate)
}

func TestEA4357(t *testing.T) {
	cfg, ok := ByName("ea4357")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, cfg.LEDs, test.ShouldBeEmpty)
	test.That(t, cfg.USB, test.ShouldResemble, []core.USBPortConfig{
		{Port: core.USB0, Role: core.RoleDevice},
	})
}

func TestByNameUnknown(t *testing.T) {
	_, ok := ByName("lpcxpresso")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNames(t *testing.T) {
	test.That(t, Names(), test.ShouldResemble, []string{"ea4357", "mcb1800"})
	_, ok := registry[Selected.Name]
	test.That(t, ok, test.ShouldBeTrue)
}

func TestCloneIsDeep(t *testing.T) {
	cfg, _ := ByName("mcb1800")
	cfg.LEDs[0].Bit = 0
	cfg.Pins[0].Mode = 0
	cfg.USB[0].Role = core.RoleHost

	fresh, _ := ByName("mcb1800")
	test.That(t, fresh.LEDs[0].Bit, test.ShouldEqual, uint8(24))
	test.That(t, fresh.Pins[0].Mode, test.ShouldEqual, MCB1800.Pins[0].Mode)
	test.That(t, fresh.USB[0].Role, test.ShouldEqual, core.RoleOTG)
	test.That(t, MCB1800.LEDs[0].Bit, test.ShouldEqual, uint8(24))
}
