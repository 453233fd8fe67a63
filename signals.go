package grove

// --- Listener lists ---

type listener[T any] struct {
	id     uint32
	fn     func(T)
	active bool
}

// listenerList is an ordered list of listeners for one signal name.
type listenerList[T any] struct {
	entries []*listener[T]
	// publishing counts nested publishes; removals compact only at depth 0.
	publishing int
	dirty      bool
}

func (l *listenerList[T]) add(id uint32, fn func(T)) {
	l.entries = append(l.entries, &listener[T]{id: id, fn: fn, active: true})
}

func (l *listenerList[T]) remove(id uint32) bool {
	for _, e := range l.entries {
		if e.id == id && e.active {
			e.active = false
			l.dirty = true
			l.compact()
			return true
		}
	}
	return false
}

// compact drops inactive entries unless a publish is walking the slice.
func (l *listenerList[T]) compact() {
	if l.publishing > 0 || !l.dirty {
		return
	}
	n := 0
	for _, e := range l.entries {
		if e.active {
			l.entries[n] = e
			n++
		}
	}
	for i := n; i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = l.entries[:n]
	l.dirty = false
}

// publish calls listeners registered before the call, in registration order.
// Listeners removed mid-publish are skipped.
func (l *listenerList[T]) publish(v T) {
	n := len(l.entries)
	if n == 0 {
		return
	}
	l.publishing++
	defer func() {
		l.publishing--
		l.compact()
	}()
	for i := 0; i < n; i++ {
		e := l.entries[i]
		if e.active {
			e.fn(v)
		}
	}
}

func (l *listenerList[T]) count() int {
	c := 0
	for _, e := range l.entries {
		if e.active {
			c++
		}
	}
	return c
}

// --- Signals ---

// Signals is a per-view publish/subscribe hub. Input signals (capture,
// bubble, over/out) carry an InputContext; drag signals carry a DragContext.
// The zero value is ready to use.
type Signals struct {
	input  map[string]*listenerList[InputContext]
	drag   map[string]*listenerList[DragContext]
	nextID uint32
}

// Subscription allows removing a listener registered on a Signals hub.
type Subscription struct {
	id   uint32
	name string
	drag bool
	s    *Signals
}

// Remove unregisters the listener. Calling Remove more than once, or on the
// zero Subscription, is a no-op. Safe to call from inside a listener.
func (h Subscription) Remove() {
	if h.s == nil {
		return
	}
	if h.drag {
		if l := h.s.drag[h.name]; l != nil {
			l.remove(h.id)
		}
		return
	}
	if l := h.s.input[h.name]; l != nil {
		l.remove(h.id)
	}
}

// OnInput subscribes fn to an input signal such as "InputStartCapture".
func (s *Signals) OnInput(name string, fn func(InputContext)) Subscription {
	if s.input == nil {
		s.input = make(map[string]*listenerList[InputContext])
	}
	l := s.input[name]
	if l == nil {
		l = &listenerList[InputContext]{}
		s.input[name] = l
	}
	s.nextID++
	l.add(s.nextID, fn)
	return Subscription{id: s.nextID, name: name, s: s}
}

// OnDragSignal subscribes fn to a drag signal ("DragStart", "Drag",
// "DragStop").
func (s *Signals) OnDragSignal(name string, fn func(DragContext)) Subscription {
	if s.drag == nil {
		s.drag = make(map[string]*listenerList[DragContext])
	}
	l := s.drag[name]
	if l == nil {
		l = &listenerList[DragContext]{}
		s.drag[name] = l
	}
	s.nextID++
	l.add(s.nextID, fn)
	return Subscription{id: s.nextID, name: name, drag: true, s: s}
}

// PublishInput calls every listener of an input signal.
func (s *Signals) PublishInput(name string, ctx InputContext) {
	if l := s.input[name]; l != nil {
		ctx.Signal = name
		l.publish(ctx)
	}
}

// PublishDrag calls every listener of a drag signal.
func (s *Signals) PublishDrag(name string, ctx DragContext) {
	if l := s.drag[name]; l != nil {
		ctx.Signal = name
		l.publish(ctx)
	}
}

// Count returns the number of live listeners for a signal name, across both
// input and drag signals.
func (s *Signals) Count(name string) int {
	c := 0
	if l := s.input[name]; l != nil {
		c += l.count()
	}
	if l := s.drag[name]; l != nil {
		c += l.count()
	}
	return c
}

// Clear removes every listener.
func (s *Signals) Clear() {
	for _, l := range s.input {
		for _, e := range l.entries {
			e.active = false
		}
		l.dirty = true
		l.compact()
	}
	for _, l := range s.drag {
		for _, e := range l.entries {
			e.active = false
		}
		l.dirty = true
		l.compact()
	}
}
