package event

// Handler receives published events.
type Handler func(Event)

// Bus dispatches events synchronously, in subscription order, on the
// publishing goroutine. Events published from inside a handler are queued and
// delivered after the current event has reached every handler.
type Bus struct {
	handlers    []Handler
	pending     []Event
	dispatching bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every subsequent event.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to all handlers.
func (b *Bus) Publish(e Event) {
	b.pending = append(b.pending, e)
	if b.dispatching {
		return
	}

	b.dispatching = true
	defer func() { b.dispatching = false }()

	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		for _, h := range b.handlers {
			h(next)
		}
	}
	b.pending = b.pending[:0]
}

// Recorder collects every event it is subscribed to until drained.
type Recorder struct {
	events []Event
}

// Record is a Handler.
func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Drain returns the recorded events and forgets them.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}
