// Package queue implements a fixed-capacity FIFO ring buffer of MIDI events
// that can be shared between a producer goroutine and a consumer goroutine.
package queue

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/miditime/sdk/contracts"
)

var _ contracts.EventQueue = (*Queue)(nil)

// MaxCapacity bounds the storage a single queue may reserve.
const MaxCapacity = 1 << 24

// Queue is a bounded FIFO of contracts.Event.
//
// A single mutex guards storage, head, tail and count. It is held only for
// the duration of one call and never across a blocking operation, so every
// method returns without suspending beyond brief lock contention.
type Queue struct {
	mu       sync.Mutex
	store    []contracts.Event
	head     int // index of the next event to dequeue
	tail     int // index of the next free slot
	count    int
	capacity int
}

// New creates a queue holding at most capacity events.
func New(capacity int) (*Queue, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", contracts.ErrInvalidCapacity, capacity)
	}
	if capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d exceeds %d", contracts.ErrInsufficientMemory, capacity, MaxCapacity)
	}
	return &Queue{
		store:    make([]contracts.Event, capacity),
		capacity: capacity,
	}, nil
}

// Enqueue appends event at the tail. When the queue is full the event is
// dropped and ErrQueueFull is returned; the oldest event is never overwritten.
func (q *Queue) Enqueue(event contracts.Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.store == nil {
		return contracts.ErrQueueDestroyed
	}
	if q.count == q.capacity {
		return contracts.ErrQueueFull
	}

	q.store[q.tail] = event
	q.tail = q.inc(q.tail)
	q.count++
	q.check()
	return nil
}

// Dequeue removes and returns the head event. ok is false when the queue
// holds no data, which is a normal outcome rather than an error.
func (q *Queue) Dequeue() (event contracts.Event, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 || q.store == nil {
		return contracts.Event{}, false
	}

	event = q.store[q.head]
	q.store[q.head] = contracts.Event{}
	q.head = q.inc(q.head)
	q.count--
	q.check()
	return event, true
}

// Peek returns a copy of the head event without removing it.
func (q *Queue) Peek() (contracts.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 || q.store == nil {
		return contracts.Event{}, false
	}
	return q.store[q.head], true
}

// IsEmpty reports whether the queue holds no events.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// IsFull reports whether the next Enqueue would fail with ErrQueueFull.
func (q *Queue) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.store != nil && q.count == q.capacity
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity given to New.
func (q *Queue) Cap() int {
	return q.capacity
}

// Destroy releases the backing storage. Any later Enqueue fails and a second
// Destroy returns ErrQueueDestroyed.
func (q *Queue) Destroy() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.store == nil {
		return contracts.ErrQueueDestroyed
	}
	q.store = nil
	q.head, q.tail, q.count = 0, 0, 0
	return nil
}

func (q *Queue) inc(idx int) int {
	idx++
	if idx == q.capacity {
		return 0
	}
	return idx
}

// check panics when the ring indices disagree with count. Call only when holding mu.
func (q *Queue) check() {
	if q.count < 0 || q.count > q.capacity || (q.head+q.count)%q.capacity != q.tail {
		panic(fmt.Errorf("%w: head=%d tail=%d count=%d capacity=%d",
			contracts.ErrQueueCorrupted, q.head, q.tail, q.count, q.capacity))
	}
}
