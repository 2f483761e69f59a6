package midi

import (
	"github.com/leandrodaf/miditime/internal/poller"
	"github.com/leandrodaf/miditime/internal/queue"
	"github.com/leandrodaf/miditime/sdk/contracts"
)

// NewEventQueue creates a bounded FIFO holding at most capacity events.
// It is safe to share between one producing and one consuming goroutine.
func NewEventQueue(capacity int) (contracts.EventQueue, error) {
	q, err := queue.New(capacity)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// NewPoller creates a poller that drains device into a new queue of
// Options.QueueCapacity events every Options.Resolution milliseconds.
func NewPoller(device contracts.Device, opts ...contracts.Option) (contracts.Poller, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}
	q, err := queue.New(options.QueueCapacity)
	if err != nil {
		return nil, err
	}
	options.Logger.Debug("Event queue created", options.Logger.Field().Int("capacity", options.QueueCapacity))
	return poller.New(device, q, &options), nil
}
