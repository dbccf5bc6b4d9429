//go:build tinygo && lpc18xx

package main

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"
)

// Clock Generation Unit
const (
	cguBase = 0x40050000

	cguXtalOscCtrl = cguBase + 0x018
	cguPLL1Stat    = cguBase + 0x040
	cguPLL1Ctrl    = cguBase + 0x044
	cguBaseM4Clk   = cguBase + 0x06C

	xtalEnableN = 1 << 0 // 0 = oscillator running
	xtalHF      = 1 << 2 // crystal above 15 MHz

	pll1Lock = 1 << 0

	pllPD        = 1 << 0
	pllBypass    = 1 << 1
	pllFBSel     = 1 << 6
	pllDirect    = 1 << 7
	pllPSelPos   = 8
	pllAutoblock = 1 << 11
	pllNSelPos   = 12
	pllMSelPos   = 16
	clkSelPos    = 24
	clkSelMask   = 0x1F << clkSelPos

	clkSrcIRC  = 0x01
	clkSrcXtal = 0x06
	clkSrcPLL1 = 0x09

	ircRate = 12 * physic.MegaHertz

	// PLL1 multiplier for 180 MHz from a 12 MHz crystal
	pll1M = 15
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

var (
	xtalCtrl  = reg32(cguXtalOscCtrl)
	pll1Stat  = reg32(cguPLL1Stat)
	pll1Ctrl  = reg32(cguPLL1Ctrl)
	baseM4Clk = reg32(cguBaseM4Clk)
)

// cgu implements core.ClockDriver.
type cgu struct {
	osc physic.Frequency
}

// SetupXtalClocking starts the crystal and moves the core onto PLL1. Above
// 110 MHz the PLL is first run through its post divider for 50 µs, then
// switched to direct output.
func (c *cgu) SetupXtalClocking(osc physic.Frequency) {
	c.osc = osc

	ctrl := xtalCtrl.Get() &^ (xtalEnableN | xtalHF)
	if osc > 15*physic.MegaHertz {
		ctrl |= xtalHF
	}
	xtalCtrl.Set(ctrl)
	spinMicros(250)

	// Run the core from the crystal while PLL1 is reprogrammed
	baseM4Clk.Set(clkSrcXtal<<clkSelPos | pllAutoblock)

	pll1Ctrl.Set(clkSrcXtal<<clkSelPos | pllAutoblock | pllFBSel |
		(pll1M-1)<<pllMSelPos | 0<<pllNSelPos | 0<<pllPSelPos)
	for !pll1Stat.HasBits(pll1Lock) {
	}

	baseM4Clk.Set(clkSrcPLL1<<clkSelPos | pllAutoblock)
	spinMicros(50)
	pll1Ctrl.SetBits(pllDirect)
}

// SystemCoreClockUpdate computes the core clock from the CGU registers.
func (c *cgu) SystemCoreClockUpdate() physic.Frequency {
	switch (baseM4Clk.Get() & clkSelMask) >> clkSelPos {
	case clkSrcXtal:
		return c.osc
	case clkSrcPLL1:
		ctrl := pll1Ctrl.Get()
		if ctrl&(pllPD|pllBypass) != 0 {
			return c.osc
		}
		m := physic.Frequency((ctrl>>pllMSelPos)&0xFF + 1)
		n := physic.Frequency((ctrl>>pllNSelPos)&0x3 + 1)
		f := c.osc * m / n
		if ctrl&pllDirect == 0 {
			p := physic.Frequency(1) << ((ctrl >> pllPSelPos) & 0x3)
			f /= 2 * p
		}
		return f
	default:
		return ircRate
	}
}

// SysTick
const (
	sysTickCtrl = 0xE000E010
	sysTickLoad = 0xE000E014
	sysTickVal  = 0xE000E018

	sysTickEnable    = 1 << 0
	sysTickTickInt   = 1 << 1
	sysTickClkSource = 1 << 2 // core clock

	sysTickMaxLoad = 0xFFFFFF
)

// sysTick implements core.SysTickDriver.
type sysTick struct{}

func (sysTick) Configure(reload uint32) error {
	if reload == 0 || reload-1 > sysTickMaxLoad {
		return errors.Errorf("SysTick reload %d out of range", reload)
	}
	reg32(sysTickLoad).Set(reload - 1)
	reg32(sysTickVal).Set(0)
	reg32(sysTickCtrl).Set(sysTickEnable | sysTickTickInt | sysTickClkSource)
	return nil
}

// spinMicros busy-waits roughly us microseconds at up to 204 MHz. Only
// used before SysTick runs.
func spinMicros(us uint32) {
	for i := us * 204; i > 0; i-- {
		arm.Asm("nop")
	}
}

func waitForInterrupt() {
	arm.Asm("wfi")
}
