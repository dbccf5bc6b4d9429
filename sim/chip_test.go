package sim

import (
	"sync"
	"testing"

	"go.viam.com/test"
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

func TestChipClock(t *testing.T) {
	c := NewChip()
	test.That(t, c.SystemCoreClockUpdate(), test.ShouldEqual, 12*physic.MegaHertz)
	c.SetupXtalClocking(12 * physic.MegaHertz)
	test.That(t, c.SystemCoreClockUpdate(), test.ShouldEqual, 180*physic.MegaHertz)
	test.That(t, c.CoreClock(), test.ShouldEqual, 180*physic.MegaHertz)

	test.That(t, c.Trace(), test.ShouldResemble, []Call{
		{Op: OpCoreClock, Value: 12000000},
		{Op: OpXtal, Value: 12000000},
		{Op: OpCoreClock, Value: 180000000},
	})
}

func TestChipSysTickRange(t *testing.T) {
	c := NewChip()
	test.That(t, c.Configure(0), test.ShouldNotBeNil)
	test.That(t, c.Configure(1<<24+1), test.ShouldNotBeNil)
	_, armed := c.SysTickReload()
	test.That(t, armed, test.ShouldBeFalse)

	test.That(t, c.Configure(1<<24), test.ShouldBeNil)
	reload, armed := c.SysTickReload()
	test.That(t, armed, test.ShouldBeTrue)
	test.That(t, reload, test.ShouldEqual, uint32(1<<24))
}

func TestChipGPIO(t *testing.T) {
	c := NewChip()
	c.Init()
	test.That(t, c.GPIOEnabled(), test.ShouldBeTrue)

	c.SetPinDirOutput(3, 7)
	c.SetPinState(3, 7, true)
	test.That(t, c.GetPinState(3, 7), test.ShouldBeTrue)
	c.SetPinState(3, 7, false)
	test.That(t, c.GetPinState(3, 7), test.ShouldBeFalse)

	dir, _ := c.GPIO(3)
	test.That(t, dir.Value(), test.ShouldEqual, uint32(1<<7))
	c.SetPinDirInput(3, 7)
	test.That(t, dir.Value(), test.ShouldEqual, uint32(0))

	c.SetInput(3, 1, true)
	test.That(t, c.GetPinState(3, 1), test.ShouldBeTrue)

	test.That(t, func() { c.SetPinState(NumGPIOPorts, 0, true) }, test.ShouldPanic)
}

func TestChipSetInputConcurrent(t *testing.T) {
	c := NewChip()
	_, pin := c.GPIO(2)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.SetInput(2, 3, i%2 == 0)
		}
	}()
	for i := 0; i < 1000; i++ {
		_ = pin.Value()
	}
	wg.Wait()

	// last write drove the pin low
	test.That(t, pin.Value()&(1<<3), test.ShouldEqual, uint32(0))
	test.That(t, pin.Writes(), test.ShouldEqual, 0)
}

func TestChipUSB(t *testing.T) {
	c := NewChip()
	c.PHYInit(core.USBPortConfig{Port: core.USB1, Role: core.RoleHost})
	test.That(t, c.PHYEnabled(core.USB1), test.ShouldBeTrue)
	test.That(t, c.PHYEnabled(core.USB0), test.ShouldBeFalse)
	test.That(t, c.PHYRole(core.USB1), test.ShouldEqual, core.RoleHost)

	regs := c.Registers(core.USB1)
	regs.USBMODE.Set(core.USBMODE_CM_HOST)
	test.That(t, c.USB(core.USB1).USBMODE.Value(), test.ShouldEqual, uint32(core.USBMODE_CM_HOST))

	// reset completes on the first poll out of the box
	polls, err := core.ResetController(core.USB1, regs, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, polls, test.ShouldEqual, uint32(1))

	test.That(t, func() { c.PHYInit(core.USBPortConfig{Port: 2}) }, test.ShouldPanic)
}

func TestCallString(t *testing.T) {
	test.That(t, Call{Op: OpPinMux, Port: 0xD, Pin: 10, Value: 0x54}.String(), test.ShouldEqual, "pinmux(13,10,0x54)")
}
