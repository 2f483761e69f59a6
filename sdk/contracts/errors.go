package contracts

import "errors"

// Errors returned to callers. They are always returned as values and can be
// matched with errors.Is.
var (
	ErrHostError          = errors.New("host error")
	ErrAlreadyStarted     = errors.New("timer already started")
	ErrAlreadyStopped     = errors.New("timer already stopped")
	ErrInsufficientMemory = errors.New("insufficient memory")
	ErrQueueFull          = errors.New("queue full")
	ErrQueueDestroyed     = errors.New("queue destroyed")
	ErrInvalidCapacity    = errors.New("invalid queue capacity")
	ErrInvalidResolution  = errors.New("invalid timer resolution")
)

// Fatal conditions. These indicate a broken internal invariant and are raised
// with panic in the goroutine that detects them; they are never returned.
var (
	ErrSignalDisconnected = errors.New("timer stop signal disconnected")
	ErrQueueCorrupted     = errors.New("queue invariants violated")
)
