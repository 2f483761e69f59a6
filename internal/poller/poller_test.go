package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leandrodaf/miditime/internal/logger"
	"github.com/leandrodaf/miditime/internal/midi/loopback"
	"github.com/leandrodaf/miditime/internal/queue"
	"github.com/leandrodaf/miditime/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPoller(t *testing.T, capacity int, resolution int64, filter *contracts.EventFilter) (*Poller, *loopback.Device, *queue.Queue) {
	t.Helper()
	log := logger.NewNopLogger()
	q, err := queue.New(capacity)
	require.NoError(t, err)
	dev := loopback.New(log)
	p := New(dev, q, &contracts.Options{
		Logger:      log,
		Resolution:  resolution,
		EventFilter: filter,
	})
	return p, dev, q
}

func ctxFor(t *testing.T, d time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func TestPoller_ForwardsInOrder(t *testing.T) {
	p, dev, q := newPoller(t, 16, 1, nil)
	require.NoError(t, p.Start())
	defer p.Close(ctxFor(t, time.Second))

	stamped := contracts.Event{Status: 0x90, Data1: 60, Data2: 100, Timestamp: 7}
	require.NoError(t, dev.WriteEvent(stamped))
	require.NoError(t, dev.WriteEvent(contracts.Event{Status: 0x80, Data1: 60}))
	require.NoError(t, dev.WriteEvent(contracts.Event{Status: 0x90, Data1: 62, Data2: 80}))

	require.Eventually(t, func() bool { return p.Forwarded() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, 3, q.Len())
	assert.Same(t, q, p.Queue())

	first, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, stamped, first)

	second, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, byte(0x80), second.Status)
	assert.NotZero(t, second.Timestamp)

	third, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, byte(62), third.Data1)
	assert.Zero(t, p.Dropped())
}

func TestPoller_AppliesFilter(t *testing.T) {
	filter := &contracts.EventFilter{Commands: []contracts.MIDICommand{contracts.NoteOn}}
	p, dev, q := newPoller(t, 16, 1, filter)
	require.NoError(t, p.Start())
	defer p.Close(ctxFor(t, time.Second))

	require.NoError(t, dev.WriteEvent(contracts.Event{Status: byte(contracts.ControlChange), Data1: 7, Data2: 127}))
	require.NoError(t, dev.WriteEvent(contracts.Event{Status: 0x93, Data1: 64, Data2: 90}))

	require.Eventually(t, func() bool {
		ready, err := dev.Poll()
		return err == nil && !ready && p.Forwarded() == 1
	}, time.Second, time.Millisecond)

	e, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, contracts.NoteOn, e.Command())
	assert.Equal(t, byte(3), e.Channel())
	assert.Equal(t, 1, q.Len())
}

func TestPoller_DropsWhenQueueFull(t *testing.T) {
	p, dev, q := newPoller(t, 2, 1, nil)
	require.NoError(t, p.Start())
	defer p.Close(ctxFor(t, time.Second))

	for i := byte(0); i < 5; i++ {
		require.NoError(t, dev.WriteEvent(contracts.Event{Status: 0x90, Data1: i, Timestamp: 1}))
	}

	require.Eventually(t, func() bool {
		return p.Forwarded() == 2 && p.Dropped() == 3
	}, time.Second, time.Millisecond)
	assert.True(t, q.IsFull())

	e, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, byte(0), e.Data1)
}

func TestPoller_StartStop(t *testing.T) {
	p, dev, _ := newPoller(t, 4, 1, nil)

	assert.ErrorIs(t, p.Stop(ctxFor(t, time.Second)), contracts.ErrAlreadyStopped)

	require.NoError(t, p.Start())
	assert.ErrorIs(t, p.Start(), contracts.ErrAlreadyStarted)

	require.NoError(t, p.Stop(ctxFor(t, time.Second)))
	_, err := dev.Poll()
	assert.ErrorIs(t, err, loopback.ErrNotOpen)
	assert.ErrorIs(t, p.Stop(ctxFor(t, time.Second)), contracts.ErrAlreadyStopped)

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop(ctxFor(t, time.Second)))
}

func TestPoller_Close(t *testing.T) {
	p, _, q := newPoller(t, 4, 1, nil)
	require.NoError(t, p.Start())

	require.NoError(t, p.Close(ctxFor(t, time.Second)))
	assert.ErrorIs(t, q.Enqueue(contracts.Event{}), contracts.ErrQueueDestroyed)
	assert.ErrorIs(t, p.Close(ctxFor(t, time.Second)), contracts.ErrQueueDestroyed)
	assert.ErrorIs(t, p.Start(), contracts.ErrQueueDestroyed)
}

func TestPoller_StopTimeoutLeavesDeviceOpen(t *testing.T) {
	p, dev, _ := newPoller(t, 4, 500, nil)
	require.NoError(t, p.Start())

	assert.ErrorIs(t, p.Stop(ctxFor(t, 10*time.Millisecond)), context.DeadlineExceeded)
	_, err := dev.Poll()
	assert.NoError(t, err)
	assert.ErrorIs(t, p.Start(), contracts.ErrAlreadyStarted)

	require.NoError(t, p.Stop(ctxFor(t, 5*time.Second)))
	_, err = dev.Poll()
	assert.ErrorIs(t, err, loopback.ErrNotOpen)
}

type failingDevice struct {
	contracts.Device
	openErr error
}

func (f failingDevice) Open() error { return f.openErr }

func TestPoller_OpenFailure(t *testing.T) {
	q, err := queue.New(1)
	require.NoError(t, err)
	boom := errors.New("port busy")
	p := New(failingDevice{openErr: boom}, q, &contracts.Options{
		Logger:     logger.NewNopLogger(),
		Resolution: 1,
	})

	assert.ErrorIs(t, p.Start(), boom)
	assert.ErrorIs(t, p.Stop(ctxFor(t, time.Second)), contracts.ErrAlreadyStopped)
}

func TestPoller_InvalidResolutionClosesDevice(t *testing.T) {
	p, dev, _ := newPoller(t, 1, 0, nil)

	assert.ErrorIs(t, p.Start(), contracts.ErrInvalidResolution)
	assert.ErrorIs(t, dev.Close(), loopback.ErrNotOpen)
}
