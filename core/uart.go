package core

import (
	"io"

	"github.com/pkg/errors"
)

// UART is a byte pass-through to the board serial port. No framing.
type UART interface {
	io.Reader
	io.Writer
}

// UnimplementedUART is the UART of a board with no serial port wired up.
type UnimplementedUART struct{}

func (UnimplementedUART) Read([]byte) (int, error)  { return 0, ErrNotImplemented }
func (UnimplementedUART) Write([]byte) (int, error) { return 0, ErrNotImplemented }

var boardUART UART = UnimplementedUART{}

// SetUART installs the board UART backend. nil restores the unimplemented
// backend.
func SetUART(u UART) {
	if u == nil {
		u = UnimplementedUART{}
	}
	boardUART = u
}

// UARTRead reads up to len(buf) bytes and returns the count received.
func UARTRead(buf []byte) int {
	n, err := boardUART.Read(buf)
	if reportable(err) {
		logger().Debugf("uart read: %v", err)
	}
	return n
}

// UARTWrite writes buf and returns the count sent.
func UARTWrite(buf []byte) int {
	n, err := boardUART.Write(buf)
	if reportable(err) {
		logger().Debugf("uart write: %v", err)
	}
	return n
}

func reportable(err error) bool {
	return err != nil && err != io.EOF && !errors.Is(err, ErrNotImplemented)
}
