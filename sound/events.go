package sound

// EventType identifies a playback event.
type EventType string

const (
	EventStarted     EventType = "started"
	EventFinished    EventType = "finished"
	EventStopped     EventType = "stopped"
	EventFadeStarted EventType = "fade_started"
	EventFadedOut    EventType = "faded_out"
	EventPoolGrew    EventType = "pool_grew"
)

// Event records one change in playback state.
type Event struct {
	Type       EventType
	Sound      string
	Category   Category
	Channel    int
	PlaybackID string
}

const maxQueuedEvents = 256

// EventQueue is a bounded FIFO queue. When full, the oldest event is dropped.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if len(q.items) >= maxQueuedEvents {
		copy(q.items, q.items[1:])
		q.items = q.items[:len(q.items)-1]
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
