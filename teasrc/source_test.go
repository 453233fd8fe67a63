package teasrc

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phanxgames/grove"
)

func newTestSource() (*Source, *grove.Dispatcher, *grove.Node, *[]*grove.Event) {
	d := grove.NewDispatcher(grove.DefaultConfig())
	root := grove.NewNode("root")
	root.Interactable = true
	var events []*grove.Event
	record := func(ctx grove.InputContext) { events = append(events, ctx.Event) }
	root.OnInputStart = record
	root.OnInputMove = record
	root.OnInputSelect = record
	root.OnInputScroll = record
	root.OnInputClear = record
	return New(d, root), d, root, &events
}

func mouse(x, y int, action tea.MouseAction, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: b}
}

func types(events []*grove.Event) []grove.EventType {
	out := make([]grove.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestHandleMouseSequence(t *testing.T) {
	s, _, _, events := newTestSource()
	msgs := []tea.Msg{
		mouse(0, 0, tea.MouseActionMotion, tea.MouseButtonNone),
		mouse(0, 0, tea.MouseActionMotion, tea.MouseButtonNone),
		mouse(2, 1, tea.MouseActionPress, tea.MouseButtonRight),
		mouse(2, 1, tea.MouseActionPress, tea.MouseButtonRight),
		mouse(3, 1, tea.MouseActionMotion, tea.MouseButtonRight),
		mouse(3, 1, tea.MouseActionRelease, tea.MouseButtonNone),
		mouse(3, 1, tea.MouseActionRelease, tea.MouseButtonNone),
	}
	for _, m := range msgs {
		if !s.Handle(m) {
			t.Fatalf("Handle(%v) = false", m)
		}
	}

	want := []grove.EventType{grove.EventMove, grove.EventStart, grove.EventMove, grove.EventSelect}
	if got := types(*events); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	start := (*events)[1]
	if start.SrcPt != (grove.Vec2{X: 2, Y: 1}) || start.Button != grove.MouseButtonRight || start.ID != Pointer {
		t.Errorf("start = %+v", start)
	}
}

func TestHandleWheel(t *testing.T) {
	s, _, _, events := newTestSource()
	m := mouse(4, 4, tea.MouseActionPress, tea.MouseButtonWheelDown)
	m.Ctrl = true
	s.Handle(m)
	s.Handle(mouse(4, 4, tea.MouseActionRelease, tea.MouseButtonWheelDown))

	if len(*events) != 1 {
		t.Fatalf("got %d events, want 1", len(*events))
	}
	e := (*events)[0]
	if e.Type != grove.EventScroll || e.Scroll != (grove.Vec2{Y: 1}) || e.Modifiers != grove.ModCtrl {
		t.Errorf("event = %+v", e)
	}
}

func TestHandleIgnoresOtherMessages(t *testing.T) {
	s, _, _, events := newTestSource()
	if s.Handle(tea.KeyMsg{Type: tea.KeyEnter}) {
		t.Error("key messages should not be consumed")
	}
	if len(*events) != 0 {
		t.Error("no events expected")
	}
}

func TestBlurEndsDrag(t *testing.T) {
	s, d, root, events := newTestSource()
	box := grove.NewRect("box", 0, 0, 10, 5)
	root.AddChild(box)
	box.OnInputStart = func(ctx grove.InputContext) {
		d.StartDrag(ctx.View, grove.DragOptions{Radius: 1})
	}
	stopped := false
	box.OnDragStop = func(grove.DragContext) { stopped = true }

	s.Handle(mouse(1, 1, tea.MouseActionPress, tea.MouseButtonLeft))
	s.Handle(mouse(4, 1, tea.MouseActionMotion, tea.MouseButtonLeft))
	if !d.IsDragging() {
		t.Fatal("expected a drag")
	}

	s.Handle(tea.BlurMsg{})
	last := (*events)[len(*events)-1]
	if last.Type != grove.EventClear {
		t.Errorf("last = %v, want CLEAR", last.Type)
	}
	if !stopped || d.IsDragging() || d.IsOver(Pointer, box) {
		t.Error("blur should end the drag and clear hover state")
	}

	n := len(*events)
	s.Handle(tea.BlurMsg{})
	if len(*events) != n {
		t.Error("blur with no button held should not dispatch")
	}
}

func TestScreenToRoot(t *testing.T) {
	s, _, _, events := newTestSource()
	s.ScreenToRoot = func(x, y float64) (float64, float64) { return x, y - 1 }
	s.Handle(mouse(5, 3, tea.MouseActionPress, tea.MouseButtonLeft))
	if got := (*events)[0].SrcPt; got != (grove.Vec2{X: 5, Y: 2}) {
		t.Errorf("SrcPt = %v, want (5,2)", got)
	}
}

func TestReleaseAtNewCellMovesFirst(t *testing.T) {
	s, d, root, events := newTestSource()
	box := grove.NewRect("box", 0, 0, 10, 5)
	root.AddChild(box)
	box.OnInputStart = func(ctx grove.InputContext) {
		d.StartDrag(ctx.View, grove.DragOptions{Radius: 1})
	}
	var deltas []grove.Vec2
	box.OnDrag = func(ctx grove.DragContext) { deltas = append(deltas, ctx.Delta) }
	stopped := false
	box.OnDragStop = func(grove.DragContext) { stopped = true }

	s.Handle(mouse(1, 1, tea.MouseActionPress, tea.MouseButtonLeft))
	s.Handle(mouse(6, 1, tea.MouseActionRelease, tea.MouseButtonNone))

	// The SELECT ending the drag is cancelled in capture and never bubbles.
	want := []grove.EventType{grove.EventStart, grove.EventMove}
	if got := types(*events); !reflect.DeepEqual(got, want) {
		t.Fatalf("types = %v, want %v", got, want)
	}
	if move := (*events)[1]; move.SrcPt != (grove.Vec2{X: 6, Y: 1}) || move.Button != grove.MouseButtonLeft {
		t.Errorf("move = %+v", move)
	}
	if !stopped || !reflect.DeepEqual(deltas, []grove.Vec2{{X: 5, Y: 0}}) {
		t.Errorf("stopped = %v, deltas = %v", stopped, deltas)
	}
	if d.IsDragging() {
		t.Error("drag should be over")
	}
}
