//go:build tinygo && lpc18xx

package main

import "lpcbsp/core"

// USB controller register blocks
const (
	usb0Base = 0x40006000
	usb1Base = 0x40007000

	usbCMD     = 0x140
	usbPORTSC1 = 0x184
	usbOTGSC   = 0x1A4
	usbMODE    = 0x1A8
)

// PHY and clock control
const (
	creg0        = 0x40043004
	creg0USB0PHY = 1 << 5 // 1 = USB0 PHY powered down

	cguPLL0USBStat  = cguBase + 0x01C
	cguPLL0USBCtrl  = cguBase + 0x020
	cguPLL0USBMDiv  = cguBase + 0x024
	cguPLL0USBNPDiv = cguBase + 0x028
	cguIDIVACtrl    = cguBase + 0x048
	cguIDIVDCtrl    = cguBase + 0x054
	cguBaseUSB0Clk  = cguBase + 0x060
	cguBaseUSB1Clk  = cguBase + 0x068

	pll0USBLock    = 1 << 0
	pll0USBDirectI = 1 << 2
	pll0USBDirectO = 1 << 3
	pll0USBClkEn   = 1 << 4

	// 480 MHz from a 12 MHz crystal
	pll0USBMDivValue  = 0x06167FFA
	pll0USBNPDivValue = 0x00302062

	clkSrcPLL0USB = 0x07
	clkSrcIDIVA   = 0x0C
	clkSrcIDIVD   = 0x0F
	idivPos       = 2

	sfsUSBHost   = 0x16 // ESEA | EPD | EPWR
	sfsUSBDevice = 0x12 // ESEA | EPWR
)

// usbPorts implements core.USBDriver.
type usbPorts struct {
	pll0Running bool
}

func (u *usbPorts) PHYInit(cfg core.USBPortConfig) {
	u.startPLL0USB()

	switch cfg.Port {
	case core.USB0:
		reg32(cguBaseUSB0Clk).Set(clkSrcPLL0USB<<clkSelPos | pllAutoblock)
		reg32(creg0).ClearBits(creg0USB0PHY)
	case core.USB1:
		// 60 MHz: PLL0USB / 4 through IDIVA, then / 2 through IDIVD
		reg32(cguIDIVACtrl).Set(clkSrcPLL0USB<<clkSelPos | pllAutoblock | 3<<idivPos)
		reg32(cguIDIVDCtrl).Set(clkSrcIDIVA<<clkSelPos | pllAutoblock | 1<<idivPos)
		reg32(cguBaseUSB1Clk).Set(clkSrcIDIVD<<clkSelPos | pllAutoblock)
		reg32(scuSFSUSB).Set(usb1PinMode(cfg.Role))
	}
}

// usb1PinMode picks the on-chip full speed PHY setting for a USB1 role.
func usb1PinMode(role core.USBRole) uint32 {
	if role == core.RoleHost {
		return sfsUSBHost
	}
	return sfsUSBDevice
}

func (u *usbPorts) startPLL0USB() {
	if u.pll0Running {
		return
	}
	reg32(cguPLL0USBCtrl).Set(pllPD)
	reg32(cguPLL0USBMDiv).Set(pll0USBMDivValue)
	reg32(cguPLL0USBNPDiv).Set(pll0USBNPDivValue)
	reg32(cguPLL0USBCtrl).Set(clkSrcXtal<<clkSelPos | pllAutoblock |
		pll0USBDirectI | pll0USBDirectO | pll0USBClkEn)
	for !reg32(cguPLL0USBStat).HasBits(pll0USBLock) {
	}
	u.pll0Running = true
}

func (u *usbPorts) Registers(port core.USBPort) *core.USBRegisters {
	base := uintptr(usb0Base)
	if port == core.USB1 {
		base = usb1Base
	}
	return &core.USBRegisters{
		USBCMD:  reg32(base + usbCMD),
		USBMODE: reg32(base + usbMODE),
		OTGSC:   reg32(base + usbOTGSC),
		PORTSC1: reg32(base + usbPORTSC1),
	}
}
