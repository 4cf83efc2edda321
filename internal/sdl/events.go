package sdl

import "sync"

// EventType discriminates queued events.
type EventType uint8

// Event types, matching the SDL 1.2 numbering scripts rely on.
const (
	NoEvent         EventType = 0
	QuitEvent       EventType = 12
	KeyDown         EventType = 2
	KeyUp           EventType = 3
	MouseMotion     EventType = 4
	MouseButtonDown EventType = 5
	MouseButtonUp   EventType = 6
)

// Event is one queued input event. Unused fields are zero.
type Event struct {
	Type   EventType
	Key    int
	X, Y   int32
	Button uint8
}

const eventQueueCap = 256

var (
	evMu    sync.Mutex
	evQueue []Event
)

// PushEvent appends an event to the queue. When the queue is full the event
// is dropped, matching SDL's behavior.
func PushEvent(ev Event) error {
	evMu.Lock()
	defer evMu.Unlock()
	if len(evQueue) >= eventQueueCap {
		return SetError("PushEvent: event queue full")
	}
	evQueue = append(evQueue, ev)
	return nil
}

// PollEvent removes and returns the oldest queued event. The second return
// is false when the queue is empty.
func PollEvent() (Event, bool) {
	evMu.Lock()
	defer evMu.Unlock()
	if len(evQueue) == 0 {
		return Event{}, false
	}
	ev := evQueue[0]
	evQueue = evQueue[1:]
	return ev, true
}

func drainEvents() {
	evMu.Lock()
	evQueue = nil
	evMu.Unlock()
}
