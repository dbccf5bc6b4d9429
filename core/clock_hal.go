package core

import "periph.io/x/conn/v3/physic"

// ClockDriver is the clock tree surface of the vendor library.
type ClockDriver interface {
	// SetupXtalClocking switches the core clock from the internal RC
	// oscillator to the crystal-fed PLL
	SetupXtalClocking(osc physic.Frequency)

	// SystemCoreClockUpdate recomputes the core clock from the current
	// clock tree register state
	SystemCoreClockUpdate() physic.Frequency
}

// SysTickDriver arms the Cortex-M SysTick timer.
type SysTickDriver interface {
	// Configure loads reload-1 into the reload register, clears the
	// current value and enables the counter and its interrupt.
	// Returns error if reload does not fit the 24-bit counter.
	Configure(reload uint32) error
}

var (
	clockDriver   ClockDriver
	sysTickDriver SysTickDriver
)

// SetClockDriver is called by target-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// SetSysTickDriver is called by target-specific code to register its driver.
func SetSysTickDriver(d SysTickDriver) {
	sysTickDriver = d
}

// MustClock returns the configured driver or panics if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		panic("clock driver not configured")
	}
	return clockDriver
}

// MustSysTick returns the configured driver or panics if missing.
func MustSysTick() SysTickDriver {
	if sysTickDriver == nil {
		panic("SysTick driver not configured")
	}
	return sysTickDriver
}
