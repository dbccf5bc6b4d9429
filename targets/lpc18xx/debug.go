//go:build tinygo && lpc18xx

package main

import (
	"periph.io/x/conn/v3/physic"

	"lpcbsp/boards"
	"lpcbsp/core"
)

// USART0 on P2_0 (TX) and P2_1 (RX), function 1
const (
	usart0Base = 0x40081000
	usartRBR   = usart0Base + 0x00 // THR on write, DLL with DLAB
	usartDLM   = usart0Base + 0x04
	usartFCR   = usart0Base + 0x08
	usartLCR   = usart0Base + 0x0C
	usartLSR   = usart0Base + 0x14

	lsrRDR  = 1 << 0
	lsrTHRE = 1 << 5
	lcr8N1  = 0x03
	lcrDLAB = 1 << 7

	cguBaseUART0Clk = cguBase + 0x09C

	debugBaud = 115200
)

var debugEnabled bool

// InitDebugUART routes and configures USART0, then makes it both the core
// log sink and the board UART.
func InitDebugUART() {
	mode := core.ModeFunc1 | core.ModeInactive | core.ModeInBuffEnable
	core.MustPinMux().PinMuxSet(0x2, 0, mode)
	core.MustPinMux().PinMuxSet(0x2, 1, mode)

	reg32(cguBaseUART0Clk).Set(clkSrcPLL1<<clkSelPos | pllAutoblock)

	clk := core.MustClock().SystemCoreClockUpdate()
	div := uint32(clk / (16 * debugBaud * physic.Hertz))
	if div == 0 {
		return
	}
	reg32(usartLCR).Set(lcr8N1 | lcrDLAB)
	reg32(usartRBR).Set(div & 0xFF)
	reg32(usartDLM).Set(div >> 8)
	reg32(usartLCR).Set(lcr8N1)
	reg32(usartFCR).Set(0x07) // enable and clear FIFOs

	debugEnabled = true
	core.SetDebugWriter(DebugPrintln)
	core.SetUART(usart{})

	DebugPrintln("=== " + boards.Selected.Name + " debug UART ===")
}

// usart is the polled core.UART backend.
type usart struct{}

// Read returns the bytes already received without blocking.
func (usart) Read(buf []byte) (int, error) {
	n := 0
	for n < len(buf) && reg32(usartLSR).HasBits(lsrRDR) {
		buf[n] = byte(reg32(usartRBR).Get())
		n++
	}
	return n, nil
}

func (usart) Write(buf []byte) (int, error) {
	for _, b := range buf {
		for !reg32(usartLSR).HasBits(lsrTHRE) {
		}
		reg32(usartRBR).Set(uint32(b))
	}
	return len(buf), nil
}

// DebugPrintln writes a line to the debug UART
func DebugPrintln(s string) {
	if !debugEnabled {
		return
	}
	w := usart{}
	w.Write([]byte(s))
	w.Write([]byte("\r\n"))
}
