// Package poller drains a MIDI device into a bounded queue from a timer
// callback, so a consumer goroutine can read events at its own pace.
package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/miditime/internal/timer"
	"github.com/leandrodaf/miditime/sdk/contracts"
	"go.uber.org/multierr"
)

// Poller implements contracts.Poller.
type Poller struct {
	device    contracts.Device
	queue     contracts.EventQueue
	filter    *contracts.EventFilter
	logger    contracts.Logger
	timerOpts []timer.Option

	resolution int64
	forwarded  atomic.Uint64
	dropped    atomic.Uint64

	mu           sync.Mutex
	timer        *timer.Timer[tickState]
	pendingClose bool // device still open after a Stop whose wait was cut short
	closed       bool
}

// tickState is owned by the timer goroutine for the lifetime of one session.
type tickState struct {
	device    contracts.Device
	queue     contracts.EventQueue
	filter    *contracts.EventFilter
	logger    contracts.Logger
	forwarded *atomic.Uint64
	dropped   *atomic.Uint64
}

var _ contracts.Poller = (*Poller)(nil)

// New creates a poller that moves events from device into queue every
// options.Resolution milliseconds.
func New(device contracts.Device, queue contracts.EventQueue, options *contracts.Options, timerOpts ...timer.Option) *Poller {
	return &Poller{
		device:     device,
		queue:      queue,
		filter:     options.EventFilter,
		logger:     options.Logger,
		resolution: options.Resolution,
		timerOpts:  append([]timer.Option{timer.WithLogger(options.Logger)}, timerOpts...),
	}
}

// Start opens the device and begins polling it.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return contracts.ErrQueueDestroyed
	}
	if (p.timer != nil && p.timer.Started()) || p.pendingClose {
		return contracts.ErrAlreadyStarted
	}

	if err := p.device.Open(); err != nil {
		p.logger.Error("Failed to open MIDI device", p.logger.Field().Error("error", err))
		return err
	}

	state := tickState{
		device:    p.device,
		queue:     p.queue,
		filter:    p.filter,
		logger:    p.logger,
		forwarded: &p.forwarded,
		dropped:   &p.dropped,
	}
	t, err := timer.Start(p.resolution, state, drain, p.timerOpts...)
	if err != nil {
		return multierr.Append(err, p.device.Close())
	}
	p.timer = t
	p.logger.Info("MIDI polling started", p.logger.Field().Int64("resolutionMs", p.resolution))
	return nil
}

// drain reads every event the device has ready and enqueues those the filter keeps.
// A Timestamp of 0 means the device did not stamp the event; it is replaced by
// the tick's elapsed milliseconds. Devices whose clock can legitimately read 0
// must stamp from 1 or later.
func drain(elapsedMs uint64, s *tickState) {
	for {
		ready, err := s.device.Poll()
		if err != nil {
			s.logger.Error("Failed to poll MIDI device", s.logger.Field().Error("error", err))
			return
		}
		if !ready {
			return
		}

		event, err := s.device.Read()
		if err != nil {
			s.logger.Error("Failed to read MIDI event", s.logger.Field().Error("error", err))
			return
		}
		if event.Timestamp == 0 {
			event.Timestamp = elapsedMs
		}
		if !s.filter.Allows(event) {
			s.logger.Debug("MIDI event filtered out", s.logger.Field().Uint8("status", event.Status))
			continue
		}

		switch err := s.queue.Enqueue(event); {
		case err == nil:
			s.forwarded.Add(1)
		case errors.Is(err, contracts.ErrQueueFull):
			s.dropped.Add(1)
			s.logger.Warn("Event buffer full; dropping MIDI event",
				s.logger.Field().Uint8("status", event.Status),
				s.logger.Field().Uint64("timestamp", event.Timestamp))
		default:
			s.logger.Error("Failed to enqueue MIDI event", s.logger.Field().Error("error", err))
			return
		}
	}
}

// Stop stops polling, waits for the tick in progress to finish and closes the
// device. If ctx ends first the device stays open and a later Stop finishes
// the job.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer == nil || (!p.timer.Started() && !p.pendingClose) {
		return contracts.ErrAlreadyStopped
	}

	if err := p.timer.StopAndWait(ctx); err != nil {
		p.pendingClose = true
		return err
	}
	p.pendingClose = false

	err := p.device.Close()
	p.logger.Info("MIDI polling stopped",
		p.logger.Field().Uint64("forwarded", p.forwarded.Load()),
		p.logger.Field().Uint64("dropped", p.dropped.Load()))
	return err
}

// Close stops polling if needed and destroys the queue.
func (p *Poller) Close(ctx context.Context) error {
	var err error
	if stopErr := p.Stop(ctx); stopErr != nil && !errors.Is(stopErr, contracts.ErrAlreadyStopped) {
		err = multierr.Append(err, stopErr)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pendingClose {
		return err
	}
	p.closed = true
	return multierr.Append(err, p.queue.Destroy())
}

// Queue returns the queue events are delivered to.
func (p *Poller) Queue() contracts.EventQueue {
	return p.queue
}

// Forwarded returns the number of events enqueued.
func (p *Poller) Forwarded() uint64 {
	return p.forwarded.Load()
}

// Dropped returns the number of events discarded because the queue was full.
func (p *Poller) Dropped() uint64 {
	return p.dropped.Load()
}
