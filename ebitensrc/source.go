// Package ebitensrc feeds Ebitengine mouse, touch, wheel and focus input into
// a grove Dispatcher.
//
// Call Source.Update once per frame from your game's Update:
//
//	src := ebitensrc.New(dispatcher, root)
//
//	func (g *Game) Update() error {
//		src.Update()
//		return nil
//	}
package ebitensrc

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/grove"
)

// --- Constants ---

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	moved  bool // lastX/lastY hold a real sample
	button grove.MouseButton
}

// Source converts polled Ebitengine input into grove events for one root.
type Source struct {
	d    *grove.Dispatcher
	root grove.View

	// ScreenToRoot maps screen coordinates to root space. Nil means identity.
	ScreenToRoot func(x, y float64) (float64, float64)

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	focused      bool
	injectQueue  []syntheticPointerEvent
}

// New creates a Source dispatching into root.
func New(d *grove.Dispatcher, root grove.View) *Source {
	return &Source{d: d, root: root, focused: true}
}

// SetRoot switches the root view events are dispatched into.
func (s *Source) SetRoot(root grove.View) {
	s.root = root
}

// Update polls Ebitengine input and dispatches the resulting events.
func (s *Source) Update() {
	mods := readModifiers()

	if s.handleFocus(ebiten.IsFocused(), mods) {
		return
	}
	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		mx, my := ebiten.CursorPosition()
		s.processWheel(float64(mx), float64(my), wx, wy, mods)
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() grove.KeyModifiers {
	var mods grove.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= grove.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= grove.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= grove.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= grove.ModMeta
	}
	return mods
}

func (s *Source) toRoot(x, y float64) (float64, float64) {
	if s.ScreenToRoot != nil {
		return s.ScreenToRoot(x, y)
	}
	return x, y
}

// handleFocus abandons held pointers when the window loses focus. Returns
// true while unfocused so no further input is processed.
func (s *Source) handleFocus(focused bool, mods grove.KeyModifiers) bool {
	if focused {
		s.focused = true
		return false
	}
	if s.focused {
		s.focused = false
		for i := range s.pointers {
			ps := &s.pointers[i]
			if !ps.down {
				continue
			}
			evt := grove.NewEvent(grove.EventClear, grove.PointerID(i), grove.Vec2{X: ps.lastX, Y: ps.lastY})
			evt.Button = ps.button
			evt.Modifiers = mods
			s.d.Dispatch(s.root, evt)
			s.d.EndDrags(grove.PointerID(i))
			ps.down = false
		}
		s.d.ClearAllOverState()
	}
	return true
}

// processMousePointer handles mouse input (pointer 0).
func (s *Source) processMousePointer(mods grove.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	wx, wy := s.toRoot(float64(mx), float64(my))

	var pressed bool
	var button grove.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = grove.MouseButtonLeft
		} else if right {
			button = grove.MouseButtonRight
		} else {
			button = grove.MouseButtonMiddle
		}
	}

	s.processPointer(0, wx, wy, pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Source) processTouchPointers(mods grove.KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		wx, wy := s.toRoot(float64(tx), float64(ty))
		s.processPointer(slot, wx, wy, true, grove.MouseButtonLeft, mods)
	}

	s.releaseTouches(activeSlots, mods)
}

// releaseTouches sends SELECT for touch slots that disappeared this frame.
func (s *Source) releaseTouches(activeSlots [maxPointers]bool, mods grove.KeyModifiers) {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, grove.MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
			s.pointers[i] = pointerState{}
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Source) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer turns one pointer sample into events: press -> START,
// release -> SELECT, any movement -> MOVE. A release at a new position
// first delivers the motion as a MOVE so drags see the final displacement.
func (s *Source) processPointer(pointerID int, wx, wy float64, pressed bool, button grove.MouseButton, mods grove.KeyModifiers) {
	ps := &s.pointers[pointerID]
	moved := !ps.moved || wx != ps.lastX || wy != ps.lastY

	var t grove.EventType
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		t = grove.EventStart
	case !pressed && ps.down:
		if moved {
			s.dispatch(grove.EventMove, pointerID, wx, wy, ps.button, mods)
		}
		ps.down = false
		t = grove.EventSelect
	case moved:
		t = grove.EventMove
	default:
		return
	}
	ps.lastX, ps.lastY = wx, wy
	ps.moved = true

	b := ps.button
	if t == grove.EventMove && !ps.down {
		b = button
	}
	s.dispatch(t, pointerID, wx, wy, b, mods)
}

func (s *Source) dispatch(t grove.EventType, pointerID int, wx, wy float64, button grove.MouseButton, mods grove.KeyModifiers) {
	evt := grove.NewEvent(t, grove.PointerID(pointerID), grove.Vec2{X: wx, Y: wy})
	evt.Button = button
	evt.Modifiers = mods
	s.d.Dispatch(s.root, evt)
}

// processWheel dispatches a SCROLL at the cursor for pointer 0.
func (s *Source) processWheel(sx, sy, dx, dy float64, mods grove.KeyModifiers) {
	wx, wy := s.toRoot(sx, sy)
	evt := grove.NewEvent(grove.EventScroll, 0, grove.Vec2{X: wx, Y: wy})
	evt.Scroll = grove.Vec2{X: dx, Y: dy}
	evt.Modifiers = mods
	s.d.Dispatch(s.root, evt)
}
