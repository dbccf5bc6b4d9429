package core

// ResetBoard returns the package to its power-on state: no drivers, not
// routed, not initialized, tick at zero, default logger and backends.
func ResetBoard() {
	boardCfg = BoardConfig{}
	routed = false
	initialized = false
	coreClock = 0

	systemTicks.Store(0)
	tickAck = nil

	boardLogger = nopLogger{}
	buttonReader = UnimplementedButtons{}
	boardUART = UnimplementedUART{}

	pinMuxDriver = nil
	clockDriver = nil
	sysTickDriver = nil
	gpioDriver = nil
	usbDriver = nil
}
