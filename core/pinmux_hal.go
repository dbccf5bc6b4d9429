package core

// PinMuxDriver programs the System Control Unit (SCU) pin multiplexer.
// The vendor primitives are infallible: a bad port/pin/mode is a board
// table defect, caught by the table tests rather than at runtime.
type PinMuxDriver interface {
	// PinMuxSet writes mode into the SFS register of the given port/pin
	PinMuxSet(port, pin uint8, mode PinMode)

	// ClockPinMuxSet writes mode into the SFSCLK register of a clock pin
	ClockPinMuxSet(pin uint8, mode PinMode)
}

var pinMuxDriver PinMuxDriver

// SetPinMuxDriver is called by target-specific code to register its driver.
func SetPinMuxDriver(d PinMuxDriver) {
	pinMuxDriver = d
}

// MustPinMux returns the configured driver or panics if missing.
func MustPinMux() PinMuxDriver {
	if pinMuxDriver == nil {
		panic("pin mux driver not configured")
	}
	return pinMuxDriver
}
