package contracts

import "context"

// Event represents a short MIDI message with the time it was produced.
type Event struct {
	Status    byte   // Status byte: command in the high nibble, channel in the low nibble.
	Data1     byte   // First data byte (e.g. note number, 0-127).
	Data2     byte   // Second data byte (e.g. velocity, 0-127).
	Timestamp uint64 // Timestamp in milliseconds relative to the producer's clock.
}

// Command returns the command part of the status byte (e.g. 0x90 for Note On).
func (e Event) Command() MIDICommand {
	return MIDICommand(e.Status & 0xF0)
}

// Channel returns the zero-based MIDI channel carried in the status byte.
func (e Event) Channel() byte {
	return e.Status & 0x0F
}

// Device is the driver-side port a timer callback polls and writes to.
// Implementations belong to the binding layer; this module only calls them.
// Read may leave Timestamp at 0, in which case pollers stamp the event with
// their own elapsed time.
type Device interface {
	Open() error                  // Opens the underlying port.
	Close() error                 // Closes the underlying port.
	Poll() (bool, error)          // Reports whether Read has data available.
	Read() (Event, error)         // Reads one pending event.
	WriteEvent(event Event) error // Writes one event to the port.
}

// Timer is the caller-side handle of a periodic callback service.
type Timer interface {
	Stop() error                           // Sends the stop signal without waiting for the background loop.
	StopAndWait(ctx context.Context) error // Stops and waits until the background loop has exited.
	Wait(ctx context.Context) error        // Waits until the background loop has exited.
	Started() bool                         // Cached running flag; false as soon as Stop returns.
	Elapsed() uint64                       // Milliseconds since the timer was started.
}

// EventQueue is a fixed-capacity FIFO of events shared between a producer and a consumer.
type EventQueue interface {
	Enqueue(event Event) error // Appends an event or fails with ErrQueueFull.
	Dequeue() (Event, bool)    // Removes the head event; false when there is no data.
	Peek() (Event, bool)       // Returns the head event without removing it.
	IsEmpty() bool
	IsFull() bool
	Len() int
	Cap() int
	Destroy() error // Releases storage; a second call fails with ErrQueueDestroyed.
}

// Scheduler hosts a single periodic callback and reports start/stop misuse
// with ErrAlreadyStarted and ErrAlreadyStopped.
type Scheduler interface {
	Start(resolutionMs int64, callback func(elapsedMs uint64)) error
	Stop() error
	StopAndWait(ctx context.Context) error
	Started() bool
	Time() uint64 // Milliseconds since the scheduler was created.
}

// Poller moves events from a Device into an EventQueue on every timer tick.
type Poller interface {
	Start() error                    // Opens the device and starts polling.
	Stop(ctx context.Context) error  // Stops polling, waits for the tick loop and closes the device.
	Close(ctx context.Context) error // Stops if running and destroys the queue.
	Queue() EventQueue               // Queue the consumer reads from.
	Forwarded() uint64               // Events enqueued so far.
	Dropped() uint64                 // Events dropped because the queue was full.
}
