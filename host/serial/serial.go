// Package serial provides the host side UART backend: a real serial port
// standing in for the board UART when the board runs in the simulator.
package serial

import (
	"io"

	"lpcbsp/core"
)

// Port represents a serial port. Any Port can serve as core.UART.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

var _ core.UART = Port(nil)

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the board UART
	Baud int

	// Read timeout in milliseconds (0 = blocking). Keep it short: the
	// board contract treats a read as "whatever arrived", not a wait.
	ReadTimeout int
}

// DefaultBaud matches the board UART configuration
const DefaultBaud = 115200

// DefaultConfig returns the configuration used by the simulator
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 10,
	}
}
