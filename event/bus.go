package event

import (
	"github.com/rotisserie/eris"
)

// Listener receives events synchronously on the frame thread
type Listener func(Event)

// ListenerID identifies one subscription, zero is never issued
type ListenerID uint64

type subscription struct {
	id    ListenerID
	owner string
	fn    Listener
}

// Bus is a table of event type to ordered listener lists
// Not safe for concurrent use; producers on other goroutines push to a Queue
// Listener slices are copy-on-write, so Emit iterates the list as it was when
// dispatch began: subscriptions made by a listener apply from the next Emit,
// and a listener removed mid-dispatch still sees the current event
type Bus struct {
	listeners map[Type][]subscription
	index     map[ListenerID]Type
	names     *Names
	nextID    ListenerID
	frame     int64
	emitted   uint64
}

func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Type][]subscription),
		index:     make(map[ListenerID]Type),
		names:     NewNames(),
	}
}

// Names exposes the channel name table
func (b *Bus) Names() *Names {
	return b.names
}

// SetFrame stamps subsequently emitted events with frame
func (b *Bus) SetFrame(frame int64) {
	b.frame = frame
}

// Subscribe appends fn to t's listeners; owner groups subscriptions for bulk removal
func (b *Bus) Subscribe(t Type, owner string, fn Listener) ListenerID {
	if fn == nil {
		panic(eris.Errorf("nil listener for %s", b.names.Name(t)))
	}
	b.nextID++
	id := b.nextID

	old := b.listeners[t]
	subs := make([]subscription, len(old), len(old)+1)
	copy(subs, old)
	b.listeners[t] = append(subs, subscription{id: id, owner: owner, fn: fn})
	b.index[id] = t
	return id
}

// Unsubscribe removes one subscription, reports whether it existed
func (b *Bus) Unsubscribe(id ListenerID) bool {
	t, ok := b.index[id]
	if !ok {
		return false
	}
	delete(b.index, id)
	b.rebuild(t, func(s subscription) bool { return s.id != id })
	return true
}

// UnsubscribeOwner removes every subscription held by owner, returns the count
func (b *Bus) UnsubscribeOwner(owner string) int {
	removed := 0
	for t, subs := range b.listeners {
		n := 0
		for _, s := range subs {
			if s.owner == owner {
				n++
				delete(b.index, s.id)
			}
		}
		if n > 0 {
			removed += n
			b.rebuild(t, func(s subscription) bool { return s.owner != owner })
		}
	}
	return removed
}

// rebuild replaces t's list with the subscriptions passing keep
func (b *Bus) rebuild(t Type, keep func(subscription) bool) {
	old := b.listeners[t]
	subs := make([]subscription, 0, len(old))
	for _, s := range old {
		if keep(s) {
			subs = append(subs, s)
		}
	}
	if len(subs) == 0 {
		delete(b.listeners, t)
		return
	}
	b.listeners[t] = subs
}

// Emit delivers ev to every listener of ev.Type in registration order
func (b *Bus) Emit(ev Event) {
	if ev.Frame == 0 {
		ev.Frame = b.frame
	}
	b.emitted++
	for _, s := range b.listeners[ev.Type] {
		s.fn(ev)
	}
}

// EmitName resolves name and emits payload on it
func (b *Bus) EmitName(name string, payload any) error {
	t, ok := b.names.Lookup(name)
	if !ok {
		return eris.Wrapf(ErrUnknownEvent, "emit %q", name)
	}
	b.Emit(Event{Type: t, Payload: payload})
	return nil
}

// ListenerCount returns the number of subscriptions on t
func (b *Bus) ListenerCount(t Type) int {
	return len(b.listeners[t])
}

// OwnerCount returns the number of subscriptions held by owner
func (b *Bus) OwnerCount(owner string) int {
	n := 0
	for _, subs := range b.listeners {
		for _, s := range subs {
			if s.owner == owner {
				n++
			}
		}
	}
	return n
}

// Emitted returns the number of events dispatched since creation
func (b *Bus) Emitted() uint64 {
	return b.emitted
}

// Drain dispatches every pending event in q, returns the count
func (b *Bus) Drain(q *Queue) int {
	events := q.Consume()
	for _, ev := range events {
		b.Emit(ev)
	}
	return len(events)
}
