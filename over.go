package grove

import "slices"

// eventPropagated is called for each view a bubble pass reaches. A MOVE
// entering a view the pointer was not over fires InputOver on it.
func (d *Dispatcher) eventPropagated(ctx InputContext) {
	if ctx.Event.Type != EventMove {
		return
	}
	id := ctx.Event.ID
	views := d.over[id]
	uid := ctx.View.UID()
	if slices.ContainsFunc(views, func(v View) bool { return v.UID() == uid }) {
		return
	}
	d.over[id] = append(views, ctx.View)

	ctx.Signal = SignalInputOver
	if cb := callbacksOf(ctx.View); cb != nil && cb.OnInputOver != nil {
		cb.OnInputOver(ctx)
	}
	ctx.View.Signals().PublishInput(SignalInputOver, ctx)
	d.emit(SignalInputOver, ctx.View, ctx.Event, ctx.Point, Vec2{})
}

// outStale fires InputOut on views the pointer was over that are no longer
// in the MOVE event's trace.
func (d *Dispatcher) outStale(evt *Event) {
	views := d.over[evt.ID]
	if len(views) == 0 {
		return
	}
	var gone []View
	kept := views[:0]
	for _, v := range views {
		if _, ok := evt.Pt[v.UID()]; ok {
			kept = append(kept, v)
		} else {
			gone = append(gone, v)
		}
	}
	clear(views[len(kept):])
	if len(kept) == 0 {
		delete(d.over, evt.ID)
	} else {
		d.over[evt.ID] = kept
	}
	for _, v := range gone {
		d.fireOut(v, evt)
	}
}

func (d *Dispatcher) fireOut(v View, evt *Event) {
	ctx := InputContext{Signal: SignalInputOut, View: v, Event: evt}
	if evt != nil {
		ctx.Point = LocalizeFromRoot(v, evt.SrcPt)
	}
	if cb := callbacksOf(v); cb != nil && cb.OnInputOut != nil {
		cb.OnInputOut(ctx)
	}
	v.Signals().PublishInput(SignalInputOut, ctx)
	d.emit(SignalInputOut, v, evt, ctx.Point, Vec2{})
}

// ClearOverState fires InputOut on every view pointer id is over and forgets
// them. Input sources call it when a pointer leaves the window.
func (d *Dispatcher) ClearOverState(id PointerID) {
	views := d.over[id]
	delete(d.over, id)
	for _, v := range views {
		d.fireOut(v, nil)
	}
}

// ClearAllOverState clears hover state for every pointer, e.g. on window blur.
func (d *Dispatcher) ClearAllOverState() {
	ids := make([]PointerID, 0, len(d.over))
	for id := range d.over {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		d.ClearOverState(id)
	}
}

// IsOver reports whether pointer id is currently over v.
func (d *Dispatcher) IsOver(id PointerID, v View) bool {
	uid := v.UID()
	return slices.ContainsFunc(d.over[id], func(o View) bool { return o.UID() == uid })
}
