//go:build tinygo && lpc18xx

package main

import (
	"lpcbsp/boards"
	"lpcbsp/core"
)

// chip is the LPC18xx/43xx register-level implementation of every core
// driver.
type chip struct {
	scu
	cgu
	sysTick
	gpioPorts
	usbPorts
}

var _ core.Chip = (*chip)(nil)

// errorBlinks is the number of LED blinks that report a failed bring-up.
const errorBlinks = 3

func main() {
	cfg := boards.Selected

	core.SetChip(&chip{})
	core.SystemInit(cfg)

	InitDebugUART()
	err := core.BoardInit(cfg)
	if err != nil {
		DebugPrintln("bring-up failed: " + err.Error())
	}

	if !cfg.TickOwned {
		// Timing belongs to the external scheduler; nothing more to do here.
		for {
			waitForInterrupt()
		}
	}

	if err != nil {
		for {
			blink(errorBlinks)
			core.DelayMillis(1000)
		}
	}

	var (
		on  bool
		buf [16]byte
	)
	last := core.Millis()
	for {
		if core.MillisSince(last) >= 500 {
			last += 500
			on = !on
			core.LEDWrite(on)
		}
		if n := core.UARTRead(buf[:]); n > 0 {
			core.UARTWrite(buf[:n])
		}
	}
}

// blink flashes the board LED count times.
func blink(count int) {
	for i := 0; i < count; i++ {
		core.LEDWrite(true)
		core.DelayMillis(150)
		core.LEDWrite(false)
		core.DelayMillis(150)
	}
}
