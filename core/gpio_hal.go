package core

// GPIODriver is the GPIO port block surface of the vendor library.
// Pins are addressed by GPIO port and bit, not by SCU port/pin: the two
// numberings differ and the pin mux tables bridge them.
type GPIODriver interface {
	// Init enables the GPIO peripheral clock
	Init()

	// SetPinDirOutput configures a pin as a digital output
	SetPinDirOutput(port, bit uint8)

	// SetPinDirInput configures a pin as a digital input
	SetPinDirInput(port, bit uint8)

	// SetPinState drives the pin high (true) or low (false)
	SetPinState(port, bit uint8, value bool)

	// GetPinState reads the current pin level
	GetPinState(port, bit uint8) bool
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
