package core

// Register32 is the access surface of a 32-bit memory-mapped register.
// TinyGo's *volatile.Register32 satisfies it directly; host builds use a
// simulated register instead.
type Register32 interface {
	Get() uint32
	Set(value uint32)
	SetBits(value uint32)
	ClearBits(value uint32)
	HasBits(value uint32) bool
}
