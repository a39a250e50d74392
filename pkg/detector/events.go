package detector

import "sync"

// Event is a stage-completed notification. Payload is the stage result.
type Event struct {
	Name    string
	Payload any
}

// Events broadcasts stage events to subscribers. Delivery never blocks the
// emitter: a subscriber whose buffer is full misses the event.
type Events struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewEvents creates an empty event sink
func NewEvents() *Events {
	return &Events{subs: make(map[int]chan Event)}
}

// Emit delivers the event to every subscriber that has room for it
func (e *Events) Emit(name string, payload any) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	event := Event{Name: name, Payload: payload}
	for _, ch := range e.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe returns a channel receiving events and a function that
// unsubscribes and closes it
func (e *Events) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)

	e.mu.Lock()
	id := e.next
	e.next++
	e.subs[id] = ch
	e.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.subs, id)
			e.mu.Unlock()
			close(ch)
		})
	}
}

// OnEvent calls fn for every event on its own goroutine. A panic in fn is
// recovered and the subscription keeps going.
func (e *Events) OnEvent(fn func(Event)) func() {
	ch, unsubscribe := e.Subscribe(len(Stages) * 2)
	go func() {
		for event := range ch {
			deliver(fn, event)
		}
	}()
	return unsubscribe
}

func deliver(fn func(Event), event Event) {
	defer func() {
		_ = recover()
	}()
	fn(event)
}
