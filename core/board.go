// Board bring-up
// SystemInit routes the pins, BoardInit brings up clocks, tick, LEDs and
// USB controllers. Both run once, in that order, before any other board
// function is used.
package core

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/physic"
)

// LEDDescriptor locates one board LED on the GPIO port block.
type LEDDescriptor struct {
	Port uint8
	Bit  uint8
}

// BoardConfig is the static description of a board. It is decided at
// build time and never changes after bring-up.
type BoardConfig struct {
	Name string

	// OscRate is the crystal frequency feeding the PLL
	OscRate physic.Frequency

	// Pins is applied before ClockPins, both before any GPIO/USB access
	Pins      []PinMuxEntry
	ClockPins []PinMuxEntry

	// LEDs[0] is the LED driven by LEDWrite
	LEDs         []LEDDescriptor
	LEDActiveLow bool

	// Buttons are active low; empty means no buttons wired up
	Buttons []ButtonDescriptor

	// USB lists the enabled ports, initialized in order
	USB []USBPortConfig

	// TickOwned arms SysTick at TickRate. False when an external
	// scheduler owns timing.
	TickOwned bool
	TickRate  physic.Frequency

	// ResetPollLimit bounds the USB controller reset wait. 0 waits
	// forever.
	ResetPollLimit uint32
}

// SysTick reload register is 24 bits wide
const sysTickMaxReload = 1 << 24

var (
	ErrNotRouted          = errors.New("pin mux not applied, SystemInit must run first")
	ErrAlreadyInitialized = errors.New("board already initialized")
	ErrBadTickRate        = errors.New("tick rate out of range")
)

var (
	boardCfg    BoardConfig
	routed      bool
	initialized bool
	coreClock   physic.Frequency
)

// SystemInit is run by startup code: it applies the pin table, then the
// clock pin table, then moves the core onto the crystal-fed PLL.
func SystemInit(cfg BoardConfig) {
	log := logger()
	mux := MustPinMux()

	ApplyPinMux(mux, cfg.Pins)
	ApplyClockPinMux(mux, cfg.ClockPins)
	log.Debugf("%s: %d pins and %d clock pins routed", cfg.Name, len(cfg.Pins), len(cfg.ClockPins))

	MustClock().SetupXtalClocking(cfg.OscRate)
	log.Debugf("%s: xtal clocking from %s", cfg.Name, cfg.OscRate)

	routed = true
}

// BoardInit brings the board up. Steps run in order, each depending on the
// previous one:
//  1. recompute the core clock (the PLL may have moved since reset)
//  2. arm SysTick, if the board owns the tick
//  3. enable GPIO, set every LED as output and drive it off
//  4. per USB port: PHY init, controller reset and wait, mode programming
//
// A USB port failure does not stop the remaining ports; the failures are
// combined into the returned error.
func BoardInit(cfg BoardConfig) error {
	if initialized {
		return ErrAlreadyInitialized
	}
	if !routed {
		return ErrNotRouted
	}
	log := logger()
	boardCfg = cfg

	coreClock = MustClock().SystemCoreClockUpdate()
	log.Infof("%s: core clock %s", cfg.Name, coreClock)

	if cfg.TickOwned {
		if err := armTick(coreClock, cfg.TickRate); err != nil {
			return err
		}
		log.Debugf("%s: tick armed at %s", cfg.Name, cfg.TickRate)
	}

	gpio := MustGPIO()
	gpio.Init()
	for _, led := range cfg.LEDs {
		gpio.SetPinDirOutput(led.Port, led.Bit)
		gpio.SetPinState(led.Port, led.Bit, ledLevel(false))
	}
	for _, b := range cfg.Buttons {
		gpio.SetPinDirInput(b.Port, b.Bit)
	}
	if len(cfg.Buttons) > 0 {
		SetButtonReader(GPIOButtons{Buttons: cfg.Buttons})
	}
	log.Debugf("%s: %d LEDs off, %d buttons", cfg.Name, len(cfg.LEDs), len(cfg.Buttons))

	var errs error
	usb := MustUSB()
	for _, port := range cfg.USB {
		errs = multierr.Append(errs, initUSBPort(usb, port, cfg.ResetPollLimit))
	}

	initialized = true
	if errs != nil {
		log.Warnf("%s: bring-up finished with errors: %v", cfg.Name, errs)
		return errs
	}
	log.Infof("%s: bring-up done", cfg.Name)
	return nil
}

// armTick zeroes the tick counter and starts SysTick with interrupts
// masked, so the first tick counts from zero.
func armTick(clk, rate physic.Frequency) error {
	if rate <= 0 || clk <= 0 {
		return errors.Wrapf(ErrBadTickRate, "tick %s from core clock %s", rate, clk)
	}
	reload := int64(clk / rate)
	if reload < 1 || reload > sysTickMaxReload {
		return errors.Wrapf(ErrBadTickRate, "reload %d for tick %s from core clock %s", reload, rate, clk)
	}

	state := disableInterrupts()
	resetTicks()
	err := MustSysTick().Configure(uint32(reload))
	restoreInterrupts(state)
	return errors.Wrap(err, "arm SysTick")
}

// CoreClock returns the core clock computed by BoardInit.
func CoreClock() physic.Frequency {
	return coreClock
}

// ledLevel maps a logical LED state to the pin level for this board.
func ledLevel(on bool) bool {
	return on != boardCfg.LEDActiveLow
}

// LEDWrite turns the board LED on or off.
func LEDWrite(state bool) {
	if len(boardCfg.LEDs) == 0 {
		return
	}
	led := boardCfg.LEDs[0]
	MustGPIO().SetPinState(led.Port, led.Bit, ledLevel(state))
}

// LEDsWrite sets every LED selected by mask to the matching bit of state.
// Bit i addresses LEDs[i].
func LEDsWrite(mask, state uint32) {
	gpio := MustGPIO()
	for i, led := range boardCfg.LEDs {
		if i >= 32 {
			break
		}
		bit := uint32(1) << uint(i)
		if mask&bit == 0 {
			continue
		}
		gpio.SetPinState(led.Port, led.Bit, ledLevel(state&bit != 0))
	}
}
