// Package loopback provides an in-memory contracts.Device whose output is
// wired back to its input. It stands in for a driver port when no hardware
// is attached.
package loopback

import (
	"errors"
	"sync"

	"github.com/leandrodaf/miditime/sdk/contracts"
)

// Error definitions for loopback port state.
var (
	ErrNotOpen     = errors.New("loopback device is not open")
	ErrAlreadyOpen = errors.New("loopback device already open")
	ErrNoData      = errors.New("no MIDI data pending")
)

// Device is a loopback MIDI port. It is safe for concurrent use.
type Device struct {
	logger  contracts.Logger
	mu      sync.Mutex
	open    bool
	pending []contracts.Event
	written uint64
}

var _ contracts.Device = (*Device)(nil)

// New creates a closed loopback device.
func New(logger contracts.Logger) *Device {
	return &Device{logger: logger}
}

// Open opens the port. Pending input from a previous session is discarded.
func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.open {
		return ErrAlreadyOpen
	}
	d.open = true
	d.pending = d.pending[:0]
	d.logger.Info("Loopback MIDI device opened")
	return nil
}

// Close closes the port.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrNotOpen
	}
	d.open = false
	d.logger.Info("Loopback MIDI device closed",
		d.logger.Field().Uint64("written", d.written),
		d.logger.Field().Int("discarded", len(d.pending)))
	return nil
}

// Poll reports whether Read has an event to return.
func (d *Device) Poll() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return false, ErrNotOpen
	}
	return len(d.pending) > 0, nil
}

// Read returns the oldest pending event.
func (d *Device) Read() (contracts.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return contracts.Event{}, ErrNotOpen
	}
	if len(d.pending) == 0 {
		return contracts.Event{}, ErrNoData
	}
	event := d.pending[0]
	d.pending[0] = contracts.Event{}
	d.pending = d.pending[1:]
	return event, nil
}

// WriteEvent sends event out of the port, which makes it readable again.
func (d *Device) WriteEvent(event contracts.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrNotOpen
	}
	d.pending = append(d.pending, event)
	d.written++
	return nil
}

// Written returns the number of events written since the device was created.
func (d *Device) Written() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written
}
