// Package teasrc feeds Bubble Tea mouse and focus messages into a grove
// Dispatcher, treating terminal cells as root-space units.
//
// Enable mouse reporting on the program (tea.WithMouseAllMotion for hover,
// tea.WithReportFocus for blur) and hand every message to Handle:
//
//	func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//		if m.src.Handle(msg) {
//			return m, nil
//		}
//		...
//	}
package teasrc

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/phanxgames/grove"
)

// Pointer is the pointer id used for terminal mouse input.
const Pointer grove.PointerID = 0

// Source converts Bubble Tea messages into grove events for one root.
type Source struct {
	d    *grove.Dispatcher
	root grove.View

	// ScreenToRoot maps cell coordinates to root space. Nil means identity.
	ScreenToRoot func(x, y float64) (float64, float64)

	down   bool
	button grove.MouseButton
	last   grove.Vec2
	seen   bool
}

// New creates a Source dispatching into root.
func New(d *grove.Dispatcher, root grove.View) *Source {
	return &Source{d: d, root: root}
}

// Handle dispatches msg if it is mouse or focus input and reports whether it
// was consumed.
func (s *Source) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		s.handleMouse(tea.MouseEvent(msg))
		return true
	case tea.BlurMsg:
		s.blur()
		return true
	}
	return false
}

func modifiers(e tea.MouseEvent) grove.KeyModifiers {
	var mods grove.KeyModifiers
	if e.Shift {
		mods |= grove.ModShift
	}
	if e.Ctrl {
		mods |= grove.ModCtrl
	}
	if e.Alt {
		mods |= grove.ModAlt
	}
	return mods
}

func button(b tea.MouseButton) grove.MouseButton {
	switch b {
	case tea.MouseButtonRight:
		return grove.MouseButtonRight
	case tea.MouseButtonMiddle:
		return grove.MouseButtonMiddle
	}
	return grove.MouseButtonLeft
}

// wheelDelta returns the scroll delta for wheel buttons.
func wheelDelta(b tea.MouseButton) (grove.Vec2, bool) {
	switch b {
	case tea.MouseButtonWheelUp:
		return grove.Vec2{Y: -1}, true
	case tea.MouseButtonWheelDown:
		return grove.Vec2{Y: 1}, true
	case tea.MouseButtonWheelLeft:
		return grove.Vec2{X: -1}, true
	case tea.MouseButtonWheelRight:
		return grove.Vec2{X: 1}, true
	}
	return grove.Vec2{}, false
}

func (s *Source) handleMouse(e tea.MouseEvent) {
	pt := grove.Vec2{X: float64(e.X), Y: float64(e.Y)}
	if s.ScreenToRoot != nil {
		pt.X, pt.Y = s.ScreenToRoot(pt.X, pt.Y)
	}
	mods := modifiers(e)

	if delta, ok := wheelDelta(e.Button); ok {
		if e.Action == tea.MouseActionPress {
			evt := grove.NewEvent(grove.EventScroll, Pointer, pt)
			evt.Scroll = delta
			evt.Modifiers = mods
			s.d.Dispatch(s.root, evt)
		}
		return
	}

	var t grove.EventType
	switch e.Action {
	case tea.MouseActionPress:
		if s.down {
			// Some terminals repeat press while a button is held.
			if pt == s.last {
				return
			}
			t = grove.EventMove
		} else {
			s.down = true
			s.button = button(e.Button)
			t = grove.EventStart
		}
	case tea.MouseActionRelease:
		if !s.down {
			return
		}
		// Terminals can report the release at a cell the motion never reached.
		if s.seen && pt != s.last {
			move := grove.NewEvent(grove.EventMove, Pointer, pt)
			move.Button = s.button
			move.Modifiers = mods
			s.d.Dispatch(s.root, move)
		}
		s.down = false
		t = grove.EventSelect
	case tea.MouseActionMotion:
		if s.seen && pt == s.last {
			return
		}
		t = grove.EventMove
	default:
		return
	}
	s.last = pt
	s.seen = true

	evt := grove.NewEvent(t, Pointer, pt)
	evt.Button = s.button
	evt.Modifiers = mods
	s.d.Dispatch(s.root, evt)
}

// blur abandons a held button and clears hover state.
func (s *Source) blur() {
	if s.down {
		s.down = false
		evt := grove.NewEvent(grove.EventClear, Pointer, s.last)
		evt.Button = s.button
		s.d.Dispatch(s.root, evt)
		s.d.EndDrags(Pointer)
	}
	s.d.ClearAllOverState()
}
