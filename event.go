package grove

// Event is one raw pointer transition. An Event is built by an input source,
// used for exactly one Dispatch, and then discarded; the Dispatcher keeps the
// most recent event of each type for StartDrag.
type Event struct {
	Type EventType
	ID   PointerID
	// SrcPt is the point in root-view space where the event originated.
	SrcPt Vec2

	// Root is set once by Dispatch.
	Root View
	// Depth is the number of views in Trace.
	Depth int
	// Trace runs from the target (index 0) to the view nearest the root.
	Trace []View
	// Pt maps view UID to the event point in that view's local space.
	Pt map[uint64]Vec2
	// Target is the deepest view able to handle events under SrcPt.
	Target View

	// Cancelled halts propagation. It is monotonic for every event except a
	// SELECT ended by a drag: a later InputSelectCapture subscriber may reset
	// it so the release still counts as a tap.
	Cancelled bool

	Button    MouseButton
	Modifiers KeyModifiers
	// Scroll is the wheel delta for EventScroll.
	Scroll Vec2
}

// NewEvent creates an event of type t for pointer id at root-space point pt.
func NewEvent(t EventType, id PointerID, pt Vec2) *Event {
	return &Event{Type: t, ID: id, SrcPt: pt}
}

// Cancel stops further propagation of the event.
func (e *Event) Cancel() {
	e.Cancelled = true
}

// LocalPoint returns the event point in v's local space. ok is false when v
// is not in the trace.
func (e *Event) LocalPoint(v View) (pt Vec2, ok bool) {
	if v == nil || e.Pt == nil {
		return Vec2{}, false
	}
	pt, ok = e.Pt[v.UID()]
	return pt, ok
}

// IsTarget reports whether v is the event's target.
func (e *Event) IsTarget(v View) bool {
	return e.Target != nil && v != nil && e.Target.UID() == v.UID()
}

// reset clears trace state so the event can be traced again.
func (e *Event) reset() {
	e.Depth = 0
	e.Trace = e.Trace[:0]
	e.Target = nil
	if e.Pt == nil {
		e.Pt = make(map[uint64]Vec2)
	} else {
		clear(e.Pt)
	}
}

// View is a node in a tree the Dispatcher can route events through.
// Lifecycle is owned by the caller.
type View interface {
	// UID returns a stable identity, used as a map key.
	UID() uint64
	// Parent returns the parent view, or nil for a root.
	Parent() View
	// Localize converts a point in the parent's space to this view's space.
	Localize(pt Vec2) Vec2
	// ContainsLocalPoint reports whether a local point is inside the view.
	ContainsLocalPoint(pt Vec2) bool
	// VisibleChildren returns visible children in back-to-front order.
	VisibleChildren() []View
	Capabilities() Capabilities
	Signals() *Signals
}

// CallbackProvider is implemented by views that carry direct input
// callbacks. Views without it only publish signals.
type CallbackProvider interface {
	InputCallbacks() *Callbacks
}

// Callbacks are optional per-view handlers. Nil funcs are skipped.
type Callbacks struct {
	OnInputStart  func(InputContext)
	OnInputMove   func(InputContext)
	OnInputSelect func(InputContext)
	OnInputScroll func(InputContext)
	OnInputClear  func(InputContext)
	OnInputOver   func(InputContext)
	OnInputOut    func(InputContext)

	OnDragStart func(DragContext)
	OnDrag      func(DragContext)
	OnDragStop  func(DragContext)
}

// forType returns the bubble callback for t, or nil.
func (c *Callbacks) forType(t EventType) func(InputContext) {
	switch t {
	case EventStart:
		return c.OnInputStart
	case EventMove:
		return c.OnInputMove
	case EventSelect:
		return c.OnInputSelect
	case EventScroll:
		return c.OnInputScroll
	case EventClear:
		return c.OnInputClear
	}
	return nil
}

func callbacksOf(v View) *Callbacks {
	if p, ok := v.(CallbackProvider); ok {
		return p.InputCallbacks()
	}
	return nil
}

// InputContext carries an input signal to listeners and callbacks.
type InputContext struct {
	Signal   string
	View     View
	Event    *Event
	Point    Vec2 // event point in View's local space
	IsTarget bool
}

// DragContext carries drag lifecycle data.
type DragContext struct {
	Signal string
	View   View
	Drag   *DragEvent
	// Event is the START event for DragStart, the MOVE event for Drag and the
	// SELECT event for DragStop.
	Event *Event
	Delta Vec2
}
