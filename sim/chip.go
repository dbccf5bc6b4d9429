package sim

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

// Operations recorded in the chip trace
const (
	OpPinMux      = "pinmux"
	OpClockPinMux = "clock_pinmux"
	OpXtal        = "xtal"
	OpCoreClock   = "core_clock"
	OpSysTick     = "systick"
	OpGPIOInit    = "gpio_init"
	OpDirOutput   = "dir_out"
	OpDirInput    = "dir_in"
	OpPinState    = "pin_state"
	OpUSBPHY      = "usb_phy"
)

// NumGPIOPorts is the number of GPIO ports on LPC18xx/43xx
const NumGPIOPorts = 8

// Call is one vendor library call seen by the chip.
type Call struct {
	Op    string
	Port  uint8
	Pin   uint8
	Value uint32
}

func (c Call) String() string {
	return fmt.Sprintf("%s(%d,%d,%#x)", c.Op, c.Port, c.Pin, c.Value)
}

// USBBlock holds the simulated registers of one USB controller.
type USBBlock struct {
	USBCMD  *Register
	USBMODE *Register
	OTGSC   *Register
	PORTSC1 *Register
}

func newUSBBlock() *USBBlock {
	b := &USBBlock{
		USBCMD:  NewRegister(0),
		USBMODE: NewRegister(0),
		OTGSC:   NewRegister(0),
		PORTSC1: NewRegister(0),
	}
	// Reset completes on the first poll unless a test says otherwise
	b.USBCMD.ClearAfter(core.USBCMD_RST, 0)
	return b
}

type pinKey struct {
	port, pin uint8
}

// Chip simulates the vendor chip library. It implements core.Chip.
type Chip struct {
	mu    sync.Mutex
	trace []Call

	// IRC is the core clock before SetupXtalClocking
	IRC physic.Frequency
	// PLL is the core clock after SetupXtalClocking
	PLL physic.Frequency

	onXtal    bool
	pinMux    map[pinKey]core.PinMode
	clockPins map[uint8]core.PinMode

	gpioEnabled bool
	dir         [NumGPIOPorts]*Register
	pin         [NumGPIOPorts]*Register

	sysTickReload uint32
	sysTickArmed  bool

	usb     [2]*USBBlock
	phy     [2]bool
	phyRole [2]core.USBRole
}

var _ core.Chip = (*Chip)(nil)

// NewChip returns a chip fresh out of reset: IRC at 12 MHz, PLL target of
// 180 MHz, all GPIO inputs, USB controllers that finish reset at once.
func NewChip() *Chip {
	c := &Chip{
		IRC:       12 * physic.MegaHertz,
		PLL:       180 * physic.MegaHertz,
		pinMux:    make(map[pinKey]core.PinMode),
		clockPins: make(map[uint8]core.PinMode),
	}
	for i := range c.dir {
		c.dir[i] = NewRegister(0)
		c.pin[i] = NewRegister(0)
	}
	for i := range c.usb {
		c.usb[i] = newUSBBlock()
	}
	return c
}

func (c *Chip) record(op string, port, pin uint8, value uint32) {
	c.trace = append(c.trace, Call{Op: op, Port: port, Pin: pin, Value: value})
}

// Trace returns a copy of every call seen so far, in order.
func (c *Chip) Trace() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.trace))
	copy(out, c.trace)
	return out
}

// Ops returns only the operation names of the trace.
func (c *Chip) Ops() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := make([]string, len(c.trace))
	for i, call := range c.trace {
		ops[i] = call.Op
	}
	return ops
}

// ---- core.PinMuxDriver ----

func (c *Chip) PinMuxSet(port, pin uint8, mode core.PinMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinMux[pinKey{port, pin}] = mode
	c.record(OpPinMux, port, pin, uint32(mode))
}

func (c *Chip) ClockPinMuxSet(pin uint8, mode core.PinMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clockPins[pin] = mode
	c.record(OpClockPinMux, 0, pin, uint32(mode))
}

// PinMux returns the mode last written for an SCU pin.
func (c *Chip) PinMux(port, pin uint8) (core.PinMode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.pinMux[pinKey{port, pin}]
	return m, ok
}

// ClockPinMux returns the mode last written for a clock pin.
func (c *Chip) ClockPinMux(pin uint8) (core.PinMode, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.clockPins[pin]
	return m, ok
}

// ---- core.ClockDriver ----

func (c *Chip) SetupXtalClocking(osc physic.Frequency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onXtal = true
	c.record(OpXtal, 0, 0, uint32(osc/physic.Hertz))
}

func (c *Chip) SystemCoreClockUpdate() physic.Frequency {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.IRC
	if c.onXtal {
		f = c.PLL
	}
	c.record(OpCoreClock, 0, 0, uint32(f/physic.Hertz))
	return f
}

// ---- core.SysTickDriver ----

func (c *Chip) Configure(reload uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if reload == 0 || reload-1 > 0xFFFFFF {
		return errors.Errorf("sim: SysTick reload %d out of range", reload)
	}
	c.sysTickReload = reload
	c.sysTickArmed = true
	c.record(OpSysTick, 0, 0, reload)
	return nil
}

// SysTickReload returns the armed reload value.
func (c *Chip) SysTickReload() (uint32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sysTickReload, c.sysTickArmed
}

// CoreClock returns the clock SystemCoreClockUpdate would report now.
func (c *Chip) CoreClock() physic.Frequency {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onXtal {
		return c.PLL
	}
	return c.IRC
}

// ---- core.GPIODriver ----

func (c *Chip) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gpioEnabled = true
	c.record(OpGPIOInit, 0, 0, 0)
}

func (c *Chip) SetPinDirOutput(port, bit uint8) {
	c.gpioPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dir[port].SetBits(1 << bit)
	c.record(OpDirOutput, port, bit, 1)
}

func (c *Chip) SetPinDirInput(port, bit uint8) {
	c.gpioPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dir[port].ClearBits(1 << bit)
	c.record(OpDirInput, port, bit, 0)
}

func (c *Chip) SetPinState(port, bit uint8, value bool) {
	c.gpioPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	var v uint32
	if value {
		c.pin[port].SetBits(1 << bit)
		v = 1
	} else {
		c.pin[port].ClearBits(1 << bit)
	}
	c.record(OpPinState, port, bit, v)
}

func (c *Chip) GetPinState(port, bit uint8) bool {
	c.gpioPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pin[port].HasBits(1 << bit)
}

// SetInput drives the external level seen on an input pin.
func (c *Chip) SetInput(port, bit uint8, level bool) {
	c.gpioPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pin[port].poke(1<<bit, level)
}

// GPIO returns the DIR and PIN registers of a port.
func (c *Chip) GPIO(port uint8) (dir, pin *Register) {
	c.gpioPort(port)
	return c.dir[port], c.pin[port]
}

// GPIOEnabled reports whether the GPIO block clock was enabled.
func (c *Chip) GPIOEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gpioEnabled
}

func (c *Chip) gpioPort(port uint8) {
	if int(port) >= NumGPIOPorts {
		panic(fmt.Sprintf("sim: GPIO port %d out of range", port))
	}
}

// ---- core.USBDriver ----

// PHYInit records the role the pads were set up for as the call value.
func (c *Chip) PHYInit(cfg core.USBPortConfig) {
	c.usbPort(cfg.Port)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phy[cfg.Port] = true
	c.phyRole[cfg.Port] = cfg.Role
	c.record(OpUSBPHY, uint8(cfg.Port), 0, uint32(cfg.Role))
}

func (c *Chip) Registers(port core.USBPort) *core.USBRegisters {
	c.usbPort(port)
	b := c.usb[port]
	return &core.USBRegisters{
		USBCMD:  b.USBCMD,
		USBMODE: b.USBMODE,
		OTGSC:   b.OTGSC,
		PORTSC1: b.PORTSC1,
	}
}

// USB returns the simulated register block of a controller.
func (c *Chip) USB(port core.USBPort) *USBBlock {
	c.usbPort(port)
	return c.usb[port]
}

// PHYRole returns the role passed to PHYInit for the port.
func (c *Chip) PHYRole(port core.USBPort) core.USBRole {
	c.usbPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phyRole[port]
}

// PHYEnabled reports whether PHYInit ran for the port.
func (c *Chip) PHYEnabled(port core.USBPort) bool {
	c.usbPort(port)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phy[port]
}

func (c *Chip) usbPort(port core.USBPort) {
	if int(port) >= len(c.usb) {
		panic(fmt.Sprintf("sim: USB port %d out of range", port))
	}
}
