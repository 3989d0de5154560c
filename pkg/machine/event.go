package machine

import "fmt"

// DefaultEventCapacity is the size of a layer's event queue unless overridden.
const DefaultEventCapacity = 2048

// EventKind identifies what happened in a layer.
type EventKind int

const (
	// EventStateEnter is pushed for the source state when a transition begins.
	EventStateEnter EventKind = iota
	// EventStateLeave is pushed for the previously active state when a transition begins.
	EventStateLeave
	// EventActiveStateChanged is pushed when a transition completes.
	EventActiveStateChanged
	// EventActiveTransitionChanged is pushed when a transition begins and when it
	// completes (with a none handle).
	EventActiveTransitionChanged
)

func (k EventKind) String() string {
	switch k {
	case EventStateEnter:
		return "StateEnter"
	case EventStateLeave:
		return "StateLeave"
	case EventActiveStateChanged:
		return "ActiveStateChanged"
	case EventActiveTransitionChanged:
		return "ActiveTransitionChanged"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a state machine notification. State is set for state events and
// Transition for EventActiveTransitionChanged.
type Event struct {
	Kind       EventKind
	State      StateHandle
	Transition TransitionHandle
}

func (e Event) String() string {
	if e.Kind == EventActiveTransitionChanged {
		return fmt.Sprintf("%s(%s)", e.Kind, e.Transition)
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.State)
}

// EventQueue is a bounded FIFO. When full, pushing drops the oldest event.
type EventQueue struct {
	buf  []Event
	head int
	size int
}

// NewEventQueue creates a queue holding at most capacity events.
// A non-positive capacity selects DefaultEventCapacity.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	return &EventQueue{buf: make([]Event, capacity)}
}

// Push appends e, overwriting the oldest event when the queue is full.
func (q *EventQueue) Push(e Event) {
	tail := (q.head + q.size) % len(q.buf)
	q.buf[tail] = e
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		return
	}
	q.size++
}

// Pop removes and returns the oldest event.
func (q *EventQueue) Pop() (Event, bool) {
	if q.size == 0 {
		return Event{}, false
	}
	e := q.buf[q.head]
	q.buf[q.head] = Event{}
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return e, true
}

func (q *EventQueue) Len() int { return q.size }
func (q *EventQueue) Cap() int { return len(q.buf) }

// Clear drops every queued event.
func (q *EventQueue) Clear() {
	clear(q.buf)
	q.head = 0
	q.size = 0
}
