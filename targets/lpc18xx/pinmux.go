//go:build tinygo && lpc18xx

package main

import (
	"runtime/volatile"
	"unsafe"

	"lpcbsp/core"
)

// System Control Unit pin configuration registers
const (
	scuBase     = 0x40086000
	scuSFSCLK   = scuBase + 0xC00 // SFSCLK0..3
	scuSFSUSB   = scuBase + 0xC80 // USB1 pin configuration
	scuPortSize = 0x80
)

// scu implements core.PinMuxDriver.
type scu struct{}

func sfsp(port, pin uint8) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(uintptr(scuBase + uint32(port)*scuPortSize + uint32(pin)*4)))
}

func (scu) PinMuxSet(port, pin uint8, mode core.PinMode) {
	sfsp(port, pin).Set(uint32(mode))
}

func (scu) ClockPinMuxSet(pin uint8, mode core.PinMode) {
	reg := (*volatile.Register32)(unsafe.Pointer(uintptr(scuSFSCLK + uint32(pin)*4)))
	reg.Set(uint32(mode))
}
