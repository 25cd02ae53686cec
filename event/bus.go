// Package event is the callback registry shared by the board, its dice and
// the interaction controller.
//
// Dispatch is synchronous: Emit invokes every handler registered for the
// type, in registration order, before returning. The bus belongs to the UI
// goroutine and is not safe for concurrent use.
package event

// Handler receives an event
type Handler func(Event)

type entry struct {
	id uint32
	fn Handler
}

// Bus dispatches events to handlers by type
type Bus struct {
	handlers map[Type][]entry
	nextID   uint32
}

// NewBus creates a bus with no handlers
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]entry)}
}

// Subscription allows removing a registered handler
type Subscription struct {
	id  uint32
	typ Type
	bus *Bus
}

// Subscribe registers fn for t
func (b *Bus) Subscribe(t Type, fn Handler) Subscription {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], entry{id: id, fn: fn})
	return Subscription{id: id, typ: t, bus: b}
}

// SubscribeAll registers fn for every listed type
func (b *Bus) SubscribeAll(fn Handler, types ...Type) []Subscription {
	subs := make([]Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.Subscribe(t, fn))
	}
	return subs
}

// Remove unregisters the handler; calling it twice is harmless
func (s Subscription) Remove() {
	if s.bus == nil {
		return
	}
	list := s.bus.handlers[s.typ]
	for i := range list {
		if list[i].id == s.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = entry{}
			s.bus.handlers[s.typ] = list[:len(list)-1]
			return
		}
	}
}

// Emit delivers ev to the handlers registered for its type
// Handlers added or removed during dispatch take effect on the next Emit
func (b *Bus) Emit(ev Event) {
	list := b.handlers[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := make([]entry, len(list))
	copy(snapshot, list)
	for _, e := range snapshot {
		e.fn(ev)
	}
}

// HandlerCount returns the number of handlers registered for t
func (b *Bus) HandlerCount(t Type) int {
	return len(b.handlers[t])
}
