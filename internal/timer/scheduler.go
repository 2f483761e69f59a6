package timer

import (
	"context"
	"sync"

	"github.com/leandrodaf/miditime/internal/clock"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

// Scheduler hosts at most one running timer and reports misuse of its
// start/stop state as errors instead of spawning a second timer.
type Scheduler struct {
	mu    sync.Mutex
	opts  []Option
	clock clock.Clock
	epoch uint64
	timer *Timer[struct{}]
}

// NewScheduler creates an idle scheduler. Time is measured from this call.
func NewScheduler(opts ...Option) (*Scheduler, error) {
	cfg := newConfig(opts)
	epoch, err := cfg.clock.Now()
	if err != nil {
		return nil, err
	}
	return &Scheduler{opts: opts, clock: cfg.clock, epoch: epoch}, nil
}

// Start begins calling callback every resolutionMs milliseconds. It fails
// with ErrAlreadyStarted while a previous Start has not been stopped.
func (s *Scheduler) Start(resolutionMs int64, callback func(elapsedMs uint64)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil && s.timer.Started() {
		return contracts.ErrAlreadyStarted
	}
	if callback == nil {
		return ErrNilCallback
	}

	t, err := Start(resolutionMs, struct{}{}, func(elapsedMs uint64, _ *struct{}) {
		callback(elapsedMs)
	}, s.opts...)
	if err != nil {
		return err
	}
	s.timer = t
	return nil
}

// Stop requests the running timer to exit without waiting for it.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer == nil {
		return contracts.ErrAlreadyStopped
	}
	return s.timer.Stop()
}

// StopAndWait stops the running timer and waits until its goroutine exits.
func (s *Scheduler) StopAndWait(ctx context.Context) error {
	s.mu.Lock()
	t := s.timer
	s.mu.Unlock()

	if t == nil || !t.Started() {
		return contracts.ErrAlreadyStopped
	}
	return t.StopAndWait(ctx)
}

// Started reports whether a timer is running.
func (s *Scheduler) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil && s.timer.Started()
}

// Time returns the milliseconds elapsed since NewScheduler.
func (s *Scheduler) Time() uint64 {
	now, err := s.clock.Now()
	if err != nil {
		return 0
	}
	return clock.Millis(s.epoch, now)
}
