package grove

// EntityStore is the interface for optional ECS integration.
// When set on a Dispatcher, target bubble signals, hover changes and drag
// lifecycle signals are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	// Signal is the published signal, e.g. "InputSelect" or "DragStop".
	Signal    string
	ViewUID   uint64
	PointerID PointerID
	// RootX/RootY is the event point in root space.
	RootX, RootY float64
	// LocalX/LocalY is the event point in the view's space.
	LocalX, LocalY float64
	Button         MouseButton
	Modifiers      KeyModifiers
	// Delta fields are valid for "Drag".
	DeltaX, DeltaY float64
	Cancelled      bool
}

// SetEntityStore sets the optional ECS bridge. Nil disables it.
func (d *Dispatcher) SetEntityStore(store EntityStore) {
	d.store = store
}

func (d *Dispatcher) emit(signal string, v View, evt *Event, local, delta Vec2) {
	if d.store == nil || v == nil {
		return
	}
	ie := InteractionEvent{
		Signal:  signal,
		ViewUID: v.UID(),
		LocalX:  local.X,
		LocalY:  local.Y,
		DeltaX:  delta.X,
		DeltaY:  delta.Y,
	}
	if evt != nil {
		ie.PointerID = evt.ID
		ie.RootX, ie.RootY = evt.SrcPt.X, evt.SrcPt.Y
		ie.Button = evt.Button
		ie.Modifiers = evt.Modifiers
		ie.Cancelled = evt.Cancelled
	}
	d.store.EmitEvent(ie)
}
