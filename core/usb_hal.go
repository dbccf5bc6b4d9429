package core

// USBDriver gives access to the two USB controllers.
type USBDriver interface {
	// PHYInit powers the port's PHY/pads and enables its clocks. The pad
	// setup of the full speed PHY depends on the role.
	PHYInit(cfg USBPortConfig)

	// Registers returns the controller register block of the port
	Registers(port USBPort) *USBRegisters
}

var usbDriver USBDriver

// SetUSBDriver is called by target-specific code to register its driver.
func SetUSBDriver(d USBDriver) {
	usbDriver = d
}

// MustUSB returns the configured driver or panics if missing.
func MustUSB() USBDriver {
	if usbDriver == nil {
		panic("USB driver not configured")
	}
	return usbDriver
}

// Chip is a vendor library implementing every driver the board needs.
type Chip interface {
	PinMuxDriver
	ClockDriver
	SysTickDriver
	GPIODriver
	USBDriver
}

// SetChip registers c as every driver at once.
func SetChip(c Chip) {
	SetPinMuxDriver(c)
	SetClockDriver(c)
	SetSysTickDriver(c)
	SetGPIODriver(c)
	SetUSBDriver(c)
}
