//go:build tinygo && lpc18xx

package main

// GPIO port block, word-wide registers per port
const (
	gpioBase = 0x400F4000
	gpioDIR  = gpioBase + 0x2000
	gpioPIN  = gpioBase + 0x2100
	gpioSET  = gpioBase + 0x2200
	gpioCLR  = gpioBase + 0x2280

	// CCU1 branch clock of the GPIO block
	ccu1M4GPIOCfg = 0x40051410
	ccuRun        = 1 << 0
	ccuStat       = 0x40051414
)

// gpioPorts implements core.GPIODriver.
type gpioPorts struct{}

func (gpioPorts) Init() {
	reg32(ccu1M4GPIOCfg).SetBits(ccuRun)
	for !reg32(ccuStat).HasBits(ccuRun) {
	}
}

func (gpioPorts) SetPinDirOutput(port, bit uint8) {
	reg32(gpioDIR + uintptr(port)*4).SetBits(1 << bit)
}

func (gpioPorts) SetPinDirInput(port, bit uint8) {
	reg32(gpioDIR + uintptr(port)*4).ClearBits(1 << bit)
}

func (gpioPorts) SetPinState(port, bit uint8, value bool) {
	if value {
		reg32(gpioSET + uintptr(port)*4).Set(1 << bit)
	} else {
		reg32(gpioCLR + uintptr(port)*4).Set(1 << bit)
	}
}

func (gpioPorts) GetPinState(port, bit uint8) bool {
	return reg32(gpioPIN + uintptr(port)*4).HasBits(1 << bit)
}
