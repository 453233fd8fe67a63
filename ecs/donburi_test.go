package ecs

import (
	"testing"

	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []grove.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e grove.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(grove.InteractionEvent{Signal: "InputStart", ViewUID: 42, RootX: 100, RootY: 200})
	store.EmitEvent(grove.InteractionEvent{Signal: grove.SignalDrag, DeltaX: 2})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("expected no events before ProcessEvents, got %d", len(received))
	}
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Signal != "InputStart" || e.ViewUID != 42 || e.RootX != 100 || e.RootY != 200 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Signal != grove.SignalDrag || e.DeltaX != 2 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_FromDispatcher(t *testing.T) {
	world := donburi.NewWorld()

	root := grove.NewNode("root")
	root.Interactable = true
	button := grove.NewRect("button", 10, 10, 20, 20)
	root.AddChild(button)
	d := grove.NewDispatcher(grove.DefaultConfig())
	d.SetEntityStore(NewDonburiStore(world))
	button.OnInputStart = func(grove.InputContext) {
		d.StartDrag(button, grove.DragOptions{Radius: 2})
	}

	var signals []string
	InteractionEventType.Subscribe(world, func(w donburi.World, e grove.InteractionEvent) {
		if e.ViewUID == button.UID() {
			signals = append(signals, e.Signal)
		}
	})

	d.Dispatch(root, grove.NewEvent(grove.EventStart, 0, grove.Vec2{X: 15, Y: 15}))
	d.Dispatch(root, grove.NewEvent(grove.EventMove, 0, grove.Vec2{X: 25, Y: 15}))
	d.Dispatch(root, grove.NewEvent(grove.EventSelect, 0, grove.Vec2{X: 25, Y: 15}))
	events.ProcessAllEvents(world)

	want := []string{"InputStart", grove.SignalDragStart, grove.SignalDrag, "InputMove", grove.SignalInputOver, grove.SignalDragStop}
	if len(signals) != len(want) {
		t.Fatalf("signals = %v, want %v", signals, want)
	}
	for i := range want {
		if signals[i] != want[i] {
			t.Errorf("signals[%d] = %q, want %q (all: %v)", i, signals[i], want[i], signals)
		}
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store grove.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}
