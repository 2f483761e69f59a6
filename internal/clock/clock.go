// Package clock provides the monotonic time source and sleep primitive used
// by timers.
package clock

import (
	"time"
)

const nanosPerMilli = uint64(time.Millisecond)

// finestPeriodMs is the finest system timer period requested for any timer.
const finestPeriodMs = 1

// systemPeriod maps a tick period to the system timer period to request.
// Asking for the tick period itself would coarsen the system default (about
// 15.6ms) for slow timers, so the request is always clamped to the finest period.
func systemPeriod(ms int64) int64 {
	return max(finestPeriodMs, min(ms, finestPeriodMs))
}

// Clock returns nanosecond ticks since an arbitrary, fixed epoch.
// Readings never decrease. Implementations must be safe for concurrent use.
type Clock interface {
	Now() (uint64, error)
}

// Func adapts a plain function to the Clock interface.
type Func func() (uint64, error)

// Now calls f.
func (f Func) Now() (uint64, error) {
	return f()
}

// Monotonic returns the process-wide monotonic clock.
func Monotonic() Clock {
	return monotonic{}
}

// Millis converts the distance between two readings to whole milliseconds.
// A reading taken before from yields 0.
func Millis(from, to uint64) uint64 {
	if to < from {
		return 0
	}
	return (to - from) / nanosPerMilli
}

// Sleep pauses the calling goroutine for about ms milliseconds, letting other
// goroutines run. The real pause may be rounded up to the OS timer granularity.
func Sleep(ms int64) {
	if ms <= 0 {
		return
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
