package midi

import (
	"github.com/leandrodaf/miditime/internal/clock"
	"github.com/leandrodaf/miditime/internal/timer"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

// StartTimer calls callback every resolutionMs milliseconds on a dedicated
// goroutine until the returned timer is stopped.
//
// userData is copied into the timer goroutine, which owns it from then on and
// hands a pointer to its copy to every callback. The caller's value is never
// touched again.
//
// Returns:
//   - contracts.Timer: The handle used to stop the timer and read elapsed time.
//   - error: ErrInvalidResolution, ErrHostError or an option error.
func StartTimer[T any](resolutionMs int64, userData T, callback func(elapsedMs uint64, data *T), opts ...contracts.Option) (contracts.Timer, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	t, err := timer.Start(resolutionMs, userData, callback, timer.WithLogger(options.Logger))
	if err != nil {
		return nil, err
	}
	return t, nil
}

// NewScheduler creates a single-timer scheduler whose Time is measured from now.
func NewScheduler(opts ...contracts.Option) (contracts.Scheduler, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	s, err := timer.NewScheduler(timer.WithLogger(options.Logger))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Sleep pauses the calling goroutine for about durationMs milliseconds.
func Sleep(durationMs int64) {
	clock.Sleep(durationMs)
}

// Now returns the monotonic clock in milliseconds since an arbitrary epoch.
func Now() (uint64, error) {
	ns, err := clock.Monotonic().Now()
	if err != nil {
		return 0, err
	}
	return clock.Millis(0, ns), nil
}
