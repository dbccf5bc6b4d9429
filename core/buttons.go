package core

import "github.com/pkg/errors"

// ErrNotImplemented is returned by capabilities the board does not wire up.
var ErrNotImplemented = errors.New("not implemented on this board")

// ButtonDescriptor locates one push button on the GPIO port block.
type ButtonDescriptor struct {
	Port uint8
	Bit  uint8
}

// ButtonReader samples the board buttons. Bit i of the result is set while
// button i is pressed.
type ButtonReader interface {
	ReadButtons() (uint32, error)
}

// UnimplementedButtons is the reader of a board with no buttons wired up.
// It always reports ErrNotImplemented, so callers can tell "no buttons"
// apart from "nothing pressed".
type UnimplementedButtons struct{}

func (UnimplementedButtons) ReadButtons() (uint32, error) {
	return 0, ErrNotImplemented
}

// GPIOButtons reads active-low buttons: a low level means pressed.
// It does not debounce; callers that need stable edges must sample at
// their own rate and filter.
type GPIOButtons struct {
	Buttons []ButtonDescriptor
}

func (g GPIOButtons) ReadButtons() (uint32, error) {
	gpio := MustGPIO()
	var mask uint32
	for i, b := range g.Buttons {
		if i >= 32 {
			break
		}
		if !gpio.GetPinState(b.Port, b.Bit) {
			mask |= 1 << uint(i)
		}
	}
	return mask, nil
}

var buttonReader ButtonReader = UnimplementedButtons{}

// SetButtonReader replaces the board button reader. nil restores the
// unimplemented reader.
func SetButtonReader(r ButtonReader) {
	if r == nil {
		r = UnimplementedButtons{}
	}
	buttonReader = r
}

// ButtonRead returns the pressed-button mask, or 0 if the buttons cannot be
// read.
func ButtonRead() uint32 {
	mask, err := buttonReader.ReadButtons()
	if err != nil {
		return 0
	}
	return mask
}
