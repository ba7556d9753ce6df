// Package pointer routes viewport-wide pointer events to listeners that come
// and go with a gesture.
package pointer

import "image"

// Kind is the pointer event type.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Event is a pointer event in viewport cells.
type Event struct {
	Kind Kind
	Pos  image.Point
}

// Listener receives every dispatched event while registered.
type Listener func(Event)

type entry struct {
	id uint32
	fn Listener
}

// Bus fans pointer events out to its listeners. The zero value is ready to use.
// It is not safe for concurrent use.
type Bus struct {
	listeners []entry
	nextID    uint32
}

// Handle removes a listener registered with Listen.
type Handle struct {
	id  uint32
	bus *Bus
}

// Listen registers fn and returns the handle that removes it.
func (b *Bus) Listen(fn Listener) Handle {
	b.nextID++
	b.listeners = append(b.listeners, entry{id: b.nextID, fn: fn})
	return Handle{id: b.nextID, bus: b}
}

// Remove unregisters the listener. Calling it more than once is a no-op.
func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	s := h.bus.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = entry{}
			h.bus.listeners = s[:len(s)-1]
			return
		}
	}
}

// Dispatch delivers ev to the listeners registered when it was called, in
// registration order. Listeners may add or remove listeners while handling.
func (b *Bus) Dispatch(ev Event) {
	if len(b.listeners) == 0 {
		return
	}
	snapshot := make([]entry, len(b.listeners))
	copy(snapshot, b.listeners)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.listeners)
}
