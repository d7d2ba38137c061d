package controller

import "fmt"

// DefaultQueueCapacity is the per-tick event limit used when none is configured.
const DefaultQueueCapacity = 64

// EventQueue is a bounded per-tick event list between a mapper and an update.
//
// It is owned by the tick driver and is not safe for concurrent use. Drain hands out
// the pending events and empties the queue; the returned slice stays valid until the
// next Drain, after which its storage is reused.
type EventQueue[E any] struct {
	capacity int
	pending  []E
	spare    []E
}

// NewEventQueue creates a queue that holds at most capacity events between drains.
// A non-positive capacity selects DefaultQueueCapacity.
//
// Parameters:
//   - capacity: maximum number of pending events
//
// Returns:
//   - *EventQueue[E]: the empty queue
func NewEventQueue[E any](capacity int) *EventQueue[E] {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &EventQueue[E]{
		capacity: capacity,
		pending:  make([]E, 0, capacity),
		spare:    make([]E, 0, capacity),
	}
}

// Send appends an event.
//
// Parameters:
//   - event: the event to queue
//
// Returns:
//   - error: ErrQueueFull if the queue is at capacity; the event is dropped
func (q *EventQueue[E]) Send(event E) error {
	if len(q.pending) >= q.capacity {
		return fmt.Errorf("send %v: %w", event, ErrQueueFull)
	}
	q.pending = append(q.pending, event)
	return nil
}

// Drain returns the pending events in arrival order and empties the queue.
//
// Returns:
//   - []E: the events, valid until the next Drain
func (q *EventQueue[E]) Drain() []E {
	out := q.pending
	q.pending = q.spare[:0]
	q.spare = out
	return out
}

// Discard drops all pending events.
//
// Returns:
//   - int: how many events were dropped
func (q *EventQueue[E]) Discard() int {
	n := len(q.pending)
	q.pending = q.pending[:0]
	return n
}

// Len returns the number of pending events.
func (q *EventQueue[E]) Len() int {
	return len(q.pending)
}

// Cap returns the maximum number of pending events.
func (q *EventQueue[E]) Cap() int {
	return q.capacity
}
