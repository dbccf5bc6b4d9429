package sim

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/physic"

	"lpcbsp/core"
)

// SysTick fires a tick handler at the period the chip's SysTick was armed
// with, using clk as the time source. Use clock.New() for wall time and
// clock.NewMock() to step time in tests.
type SysTick struct {
	clk     clock.Clock
	chip    *Chip
	handler func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSysTick returns a SysTick that calls core.SysTickHandler.
func NewSysTick(clk clock.Clock, chip *Chip) *SysTick {
	return &SysTick{clk: clk, chip: chip, handler: core.SysTickHandler}
}

// Period returns the interrupt period: reload core clock cycles.
func (s *SysTick) Period() (time.Duration, error) {
	reload, armed := s.chip.SysTickReload()
	if !armed {
		return 0, errors.New("sim: SysTick not armed")
	}
	return Period(reload, s.chip.CoreClock())
}

// Period converts a SysTick reload at a core clock into a tick period.
func Period(reload uint32, coreClock physic.Frequency) (time.Duration, error) {
	hz := int64(coreClock / physic.Hertz)
	if hz <= 0 {
		return 0, errors.Errorf("sim: core clock %s", coreClock)
	}
	return time.Duration(int64(reload) * int64(time.Second) / hz), nil
}

// Start runs the tick until ctx is done or Stop is called.
func (s *SysTick) Start(ctx context.Context) error {
	period, err := s.Period()
	if err != nil {
		return err
	}
	if period <= 0 {
		return errors.Errorf("sim: SysTick period %v", period)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return errors.New("sim: SysTick already running")
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	ticker := s.clk.Ticker(period)
	go func(done chan struct{}) {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.handler()
			}
		}
	}(s.done)
	return nil
}

// Stop halts the tick and waits for the ticker goroutine to exit.
func (s *SysTick) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
