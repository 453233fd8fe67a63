package grove

import (
	"cmp"
	"slices"
)

// DragOptions configures StartDrag.
type DragOptions struct {
	// Radius is the distance the pointer must travel from its start point
	// before the drag begins. Zero or less uses Config.DragRadius.
	Radius float64
	// StartEvent is the START event the drag grows from. Nil uses the last
	// START the dispatcher saw.
	StartEvent *Event
}

// DragEvent is the state of one drag session: one pointer on one view.
// Points other than SrcPt are in the view's local space.
type DragEvent struct {
	ID   PointerID
	Root View
	View View
	// StartEvent is the START the session grew from.
	StartEvent *Event
	// SrcPt is the start point in root space.
	SrcPt Vec2
	// StartPt is SrcPt in the view's space.
	StartPt Vec2
	PrevPt  Vec2
	CurrPt  Vec2
	Delta   Vec2
	// RadiusSquared is the squared activation radius.
	RadiusSquared float64
	// DidDrag turns true once the pointer leaves the activation radius.
	DidDrag bool
}

// dragHandler holds the sessions of one view, keyed by pointer id. uid is
// the view's UID at creation: a view disposed mid-drag reports 0 afterwards.
type dragHandler struct {
	view     View
	uid      uint64
	sessions map[PointerID]*dragSession
	// startCount counts armed sessions, dragCount confirmed ones.
	startCount int
	dragCount  int
}

type dragSession struct {
	drag      *DragEvent
	maybeMove Subscription
	move      Subscription
	maybeStop Subscription
}

// StartDrag arms a drag for view, normally from the view's InputStart
// callback. The session watches the root's InputMoveCapture and
// InputSelectCapture signals for the start event's pointer: once the pointer
// moves beyond the radius the view gets DragStart followed by Drag for every
// move, and the release ends with DragStop. A release inside the radius ends
// the session quietly and the SELECT propagates as a normal tap.
//
// StartDrag is a no-op if the pointer already has a session on view. It
// panics when no start event is available, which means it was called outside
// an input handler without DragOptions.StartEvent.
func (d *Dispatcher) StartDrag(view View, opts DragOptions) {
	if view == nil {
		panic("grove: StartDrag on nil view")
	}
	start := opts.StartEvent
	if start == nil {
		start = d.history[EventStart]
	}
	if start == nil {
		panic("grove: StartDrag needs a START event; call it from an InputStart handler or set DragOptions.StartEvent")
	}
	if start.Root == nil {
		panic("grove: StartDrag start event was never dispatched")
	}
	if !start.Root.Capabilities().CanHandleEvents {
		d.logger.Warn("StartDrag: root cannot handle events, drag will never start; set it interactable",
			"root", viewName(start.Root), "view", viewName(view))
	}

	h := d.handlers[view.UID()]
	if h == nil {
		h = &dragHandler{view: view, uid: view.UID(), sessions: make(map[PointerID]*dragSession)}
		d.handlers[view.UID()] = h
	}
	if _, ok := h.sessions[start.ID]; ok {
		return
	}

	radius := opts.Radius
	if radius <= 0 {
		radius = d.cfg.DragRadius
	}
	startPt := LocalizeFromRoot(view, start.SrcPt)
	s := &dragSession{drag: &DragEvent{
		ID:            start.ID,
		Root:          start.Root,
		View:          view,
		StartEvent:    start,
		SrcPt:         start.SrcPt,
		StartPt:       startPt,
		PrevPt:        startPt,
		CurrPt:        startPt,
		RadiusSquared: radius * radius,
	}}
	h.sessions[start.ID] = s
	h.startCount++

	sig := start.Root.Signals()
	s.maybeMove = sig.OnInput(EventMove.CaptureSignalName(), func(ctx InputContext) {
		d.onMaybeDrag(h, s, ctx.Event)
	})
	s.maybeStop = sig.OnInput(EventSelect.CaptureSignalName(), func(ctx InputContext) {
		d.onMaybeDragStop(h, s, ctx.Event)
	})
	d.logger.Debug("drag armed", "view", viewName(view), "id", start.ID, "radius", radius)
}

// onMaybeDrag watches an armed session for the move that leaves the radius.
func (d *Dispatcher) onMaybeDrag(h *dragHandler, s *dragSession, moveEvt *Event) {
	drag := s.drag
	if moveEvt.ID != drag.ID || drag.DidDrag {
		return
	}
	if moveEvt.SrcPt.Sub(drag.SrcPt).LenSq() <= drag.RadiusSquared {
		return
	}

	drag.DidDrag = true
	h.startCount--
	h.dragCount++
	s.maybeMove.Remove()
	s.move = drag.Root.Signals().OnInput(EventMove.CaptureSignalName(), func(ctx InputContext) {
		d.onDragMove(h, s, ctx.Event)
	})

	// The drag starts from the original press, not the sample that crossed
	// the radius; that sample becomes the first delta below.
	drag.CurrPt = LocalizeFromRoot(h.view, drag.SrcPt)
	drag.PrevPt = drag.CurrPt
	drag.Delta = Vec2{}
	d.logger.Debug("drag start", "view", viewName(h.view), "id", drag.ID)

	ctx := DragContext{Signal: SignalDragStart, View: h.view, Drag: drag, Event: drag.StartEvent}
	if cb := callbacksOf(h.view); cb != nil && cb.OnDragStart != nil {
		cb.OnDragStart(ctx)
	}
	h.view.Signals().PublishDrag(SignalDragStart, ctx)
	d.emit(SignalDragStart, h.view, drag.StartEvent, drag.CurrPt, Vec2{})

	d.onDragMove(h, s, moveEvt)
}

// onDragMove reports the delta since the previous sample.
func (d *Dispatcher) onDragMove(h *dragHandler, s *dragSession, moveEvt *Event) {
	drag := s.drag
	if moveEvt.ID != drag.ID {
		return
	}
	curr := LocalizeFromRoot(h.view, moveEvt.SrcPt)
	if curr == drag.CurrPt {
		return
	}
	drag.PrevPt = drag.CurrPt
	drag.CurrPt = curr
	drag.Delta = curr.Sub(drag.PrevPt)
	d.setDragging(drag.Root, true)

	ctx := DragContext{Signal: SignalDrag, View: h.view, Drag: drag, Event: moveEvt, Delta: drag.Delta}
	if cb := callbacksOf(h.view); cb != nil && cb.OnDrag != nil {
		cb.OnDrag(ctx)
	}
	h.view.Signals().PublishDrag(SignalDrag, ctx)
	d.emit(SignalDrag, h.view, moveEvt, curr, drag.Delta)
}

// onMaybeDragStop ends the session on the pointer's SELECT.
func (d *Dispatcher) onMaybeDragStop(h *dragHandler, s *dragSession, selectEvt *Event) {
	if selectEvt.ID != s.drag.ID {
		return
	}
	d.endSession(h, s, selectEvt)
}

// endSession drops a session's subscriptions and bookkeeping. A confirmed
// drag cancels selectEvt (when non-nil) before DragStop fires.
func (d *Dispatcher) endSession(h *dragHandler, s *dragSession, selectEvt *Event) {
	drag := s.drag
	delete(h.sessions, drag.ID)
	if drag.DidDrag {
		h.dragCount--
	} else {
		h.startCount--
	}
	s.maybeMove.Remove()
	s.move.Remove()
	s.maybeStop.Remove()

	if h.startCount+h.dragCount == 0 {
		delete(d.handlers, h.uid)
		d.setDragging(drag.Root, false)
	}
	if !drag.DidDrag {
		d.logger.Debug("drag disarmed", "view", viewName(h.view), "id", drag.ID)
		return
	}

	if selectEvt != nil {
		selectEvt.Cancel()
	}
	d.logger.Debug("drag stop", "view", viewName(h.view), "id", drag.ID)
	ctx := DragContext{Signal: SignalDragStop, View: h.view, Drag: drag, Event: selectEvt}
	if cb := callbacksOf(h.view); cb != nil && cb.OnDragStop != nil {
		cb.OnDragStop(ctx)
	}
	h.view.Signals().PublishDrag(SignalDragStop, ctx)
	d.emit(SignalDragStop, h.view, selectEvt, drag.CurrPt, Vec2{})
}

// EndDrags ends every session for pointer id without a SELECT, e.g. when the
// window loses focus mid-drag. Confirmed drags still get DragStop, with a
// nil Event.
func (d *Dispatcher) EndDrags(id PointerID) {
	var ended []*dragHandler
	for _, h := range d.handlers {
		if _, ok := h.sessions[id]; ok {
			ended = append(ended, h)
		}
	}
	slices.SortFunc(ended, func(a, b *dragHandler) int {
		return cmp.Compare(a.uid, b.uid)
	})
	for _, h := range ended {
		if s, ok := h.sessions[id]; ok {
			d.endSession(h, s, nil)
		}
	}
}

// ActiveDrags returns the number of armed or dragging sessions on view.
func (d *Dispatcher) ActiveDrags(view View) int {
	h := d.handlers[view.UID()]
	if h == nil {
		return 0
	}
	return len(h.sessions)
}

// IsDraggingView reports whether pointer id has a confirmed drag on view.
func (d *Dispatcher) IsDraggingView(view View, id PointerID) bool {
	h := d.handlers[view.UID()]
	if h == nil {
		return false
	}
	s, ok := h.sessions[id]
	return ok && s.drag.DidDrag
}
