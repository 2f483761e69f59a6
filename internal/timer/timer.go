// Package timer runs a user callback periodically on a dedicated goroutine.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/miditime/internal/clock"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

// ErrNilCallback is returned by Start when no callback is given.
var ErrNilCallback = errors.New("timer callback is nil")

// signal is the message type carried by a timer's stop channel.
type signal int

const signalStop signal = iota + 1

// Callback is invoked once per tick with the milliseconds elapsed since the
// timer started and exclusive access to the timer's user data.
type Callback[T any] func(elapsedMs uint64, data *T)

// Timer is the caller's handle on a running periodic callback.
//
// The user data handed to Start is owned by the timer goroutine for its whole
// lifetime; the handle only holds state flags and the sending side of the
// stop channel.
type Timer[T any] struct {
	resolution int64
	startTime  uint64
	clock      clock.Clock
	logger     contracts.Logger

	started atomic.Bool
	stop    chan signal
	done    chan struct{}
}

var _ contracts.Timer = (*Timer[struct{}])(nil)

// Start spawns a goroutine that invokes callback every resolutionMs
// milliseconds until Stop. userData is copied into the goroutine, which then
// passes a pointer to its own copy into each callback; if T is a pointer or
// contains references, the caller must not touch what they point to.
//
// The wait restarts only after the callback returns, so slow callbacks delay
// later ticks and drift accumulates; there is no catch-up.
func Start[T any](resolutionMs int64, userData T, callback Callback[T], opts ...Option) (*Timer[T], error) {
	if resolutionMs <= 0 {
		return nil, fmt.Errorf("%w: %dms", contracts.ErrInvalidResolution, resolutionMs)
	}
	if callback == nil {
		return nil, ErrNilCallback
	}
	cfg := newConfig(opts)

	now, err := cfg.clock.Now()
	if err != nil {
		return nil, err
	}
	if err := clock.BeginResolution(resolutionMs); err != nil {
		return nil, err
	}

	t := &Timer[T]{
		resolution: resolutionMs,
		startTime:  now,
		clock:      cfg.clock,
		logger:     cfg.logger,
		stop:       make(chan signal, 1),
		done:       make(chan struct{}),
	}
	t.started.Store(true)

	t.logger.Debug("Timer started", t.logger.Field().Int64("resolutionMs", resolutionMs))
	go t.run(userData, callback)
	return t, nil
}

func (t *Timer[T]) run(data T, callback Callback[T]) {
	defer close(t.done)
	defer func() {
		if err := clock.EndResolution(t.resolution); err != nil {
			t.logger.Warn("Failed to release timer resolution", t.logger.Field().Error("error", err))
		}
	}()

	period := time.Duration(t.resolution) * time.Millisecond
	wait := time.NewTimer(period)
	defer wait.Stop()

	for {
		<-wait.C

		if now, err := t.clock.Now(); err != nil {
			t.logger.Error("Failed to read clock; tick skipped", t.logger.Field().Error("error", err))
		} else {
			callback(clock.Millis(t.startTime, now), &data)
		}

		if t.stopRequested() {
			t.logger.Debug("Timer goroutine exiting")
			return
		}
		wait.Reset(period)
	}
}

// stopRequested polls the stop channel without blocking. A closed channel
// means the handle's invariants are broken and is fatal.
func (t *Timer[T]) stopRequested() bool {
	select {
	case sig, ok := <-t.stop:
		if !ok {
			t.logger.Error("Timer stop channel disconnected")
			panic(contracts.ErrSignalDisconnected)
		}
		return sig == signalStop
	default:
		return false
	}
}

// Stop asks the timer goroutine to exit and returns at once. Started reports
// false as soon as Stop returns, even though a tick in progress still runs to
// completion and the goroutine may not have exited yet; use Wait or
// StopAndWait to observe the exit.
func (t *Timer[T]) Stop() error {
	if !t.started.CompareAndSwap(true, false) {
		return contracts.ErrAlreadyStopped
	}
	// The buffer holds exactly the one stop signal the CAS above permits.
	t.stop <- signalStop
	t.logger.Debug("Timer stop requested", t.logger.Field().Uint64("elapsedMs", t.Elapsed()))
	return nil
}

// Wait blocks until the timer goroutine has exited or ctx is done.
func (t *Timer[T]) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StopAndWait stops the timer and waits for its goroutine to exit. Calling it
// on a stopped timer only waits.
func (t *Timer[T]) StopAndWait(ctx context.Context) error {
	if err := t.Stop(); err != nil && !errors.Is(err, contracts.ErrAlreadyStopped) {
		return err
	}
	return t.Wait(ctx)
}

// Started reports the handle's cached state, not whether the goroutine is alive.
func (t *Timer[T]) Started() bool {
	return t.started.Load()
}

// Elapsed returns the milliseconds since Start. It stays valid after Stop.
func (t *Timer[T]) Elapsed() uint64 {
	now, err := t.clock.Now()
	if err != nil {
		t.logger.Error("Failed to read clock", t.logger.Field().Error("error", err))
		return 0
	}
	return clock.Millis(t.startTime, now)
}

// Resolution returns the tick period in milliseconds.
func (t *Timer[T]) Resolution() int64 {
	return t.resolution
}
