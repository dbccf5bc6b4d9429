// Millisecond tick service
// A free-running counter fed by the SysTick interrupt. It is the only time
// source when no scheduler owns timing.
package core

import (
	"runtime"

	"go.uber.org/atomic"
)

var (
	// systemTicks is written only by SysTickHandler.
	systemTicks atomic.Uint32

	// tickAck acknowledges the timer interrupt source, if the platform
	// needs it. Cortex-M SysTick clears its pending state on exception
	// entry, so the LPC18xx target leaves this nil.
	tickAck func()
)

// SysTickHandler is the tick interrupt body: one call per timer period.
func SysTickHandler() {
	systemTicks.Inc()
	if tickAck != nil {
		tickAck()
	}
}

// SetTickAck registers the interrupt acknowledge hook run after each tick.
func SetTickAck(fn func()) {
	tickAck = fn
}

// Millis returns milliseconds since the tick was armed. The value wraps at
// 2^32; compute elapsed time by subtraction (see MillisSince).
func Millis() uint32 {
	return systemTicks.Load()
}

// MillisSince returns the milliseconds elapsed since start, across wrap.
func MillisSince(start uint32) uint32 {
	return Millis() - start
}

// DelayMillis busy-waits for ms milliseconds. Requires a running tick.
func DelayMillis(ms uint32) {
	start := Millis()
	for MillisSince(start) < ms {
		idle()
	}
}

// idle yields to the scheduler while busy-waiting. On the host the tick is
// fed by another goroutine (see package sim).
func idle() {
	runtime.Gosched()
}

// resetTicks zeroes the counter. Only called with interrupts disabled,
// right before the timer is armed.
func resetTicks() {
	systemTicks.Store(0)
}
