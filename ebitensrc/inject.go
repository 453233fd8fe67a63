package ebitensrc

import "github.com/phanxgames/grove"

// syntheticPointerEvent represents a single injected mouse sample in screen
// coordinates, converted to root space like real input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           grove.MouseButton
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next Update.
func (s *Source) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  grove.MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given screen coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (s *Source) InjectMove(x, y float64) {
	s.InjectPress(x, y)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Source) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		button: grove.MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Source) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release); the release frame dispatches a MOVE
// to (toX, toY) before the SELECT, so even two frames make a drag.
func (s *Source) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// Pending returns the number of injected samples not yet consumed.
func (s *Source) Pending() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one queued sample and feeds it through
// processPointer as pointer 0. Returns true if a sample was consumed, in
// which case real mouse input is skipped this frame.
func (s *Source) processInjectedInput(mods grove.KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	wx, wy := s.toRoot(evt.screenX, evt.screenY)
	s.processPointer(0, wx, wy, evt.pressed, evt.button, mods)
	return true
}
