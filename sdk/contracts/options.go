package contracts

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
	// ControlChange is the MIDI command for a Control Change event (0xB0).
	ControlChange MIDICommand = 0xB0
)

// EventFilter allows users to specify which MIDI commands to capture.
type EventFilter struct {
	Commands []MIDICommand // List of MIDI commands to keep.
}

// Allows reports whether the event's command is kept by the filter.
// A nil filter keeps everything.
func (f *EventFilter) Allows(event Event) bool {
	if f == nil {
		return true
	}
	for _, command := range f.Commands {
		if event.Command() == command {
			return true
		}
	}
	return false
}

// Options defines the configuration shared by timers, queues and pollers.
type Options struct {
	Logger        Logger       // Logger for lifecycle events and errors.
	LogLevel      LogLevel     // Level of logging to use.
	LogFilePath   string       // File path for logging if file logging is enabled.
	EventFilter   *EventFilter // Optional filter for events moved from a device into a queue.
	QueueCapacity int          // Capacity of queues created without an explicit size.
	Resolution    int64        // Tick resolution in milliseconds for pollers.
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *Options) {
		opts.LogFilePath = path
	}
}

// WithEventFilter sets the event filter applied by pollers.
func WithEventFilter(filter EventFilter) Option {
	return func(opts *Options) {
		opts.EventFilter = &filter
	}
}

// WithQueueCapacity sets the default queue capacity.
func WithQueueCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.QueueCapacity = capacity
	}
}

// WithResolution sets the poller tick resolution in milliseconds.
func WithResolution(ms int64) Option {
	return func(opts *Options) {
		opts.Resolution = ms
	}
}
