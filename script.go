package grove

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string    `json:"action"`
	ID     PointerID `json:"id,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	DX     float64   `json:"dx,omitempty"`
	DY     float64   `json:"dy,omitempty"`
	FromX  float64   `json:"fromX,omitempty"`
	FromY  float64   `json:"fromY,omitempty"`
	ToX    float64   `json:"toX,omitempty"`
	ToY    float64   `json:"toY,omitempty"`
	Frames int       `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// scriptFrame is one frame of a compiled script: an event, or nothing for a
// wait frame.
type scriptFrame struct {
	evt *Event
}

// Script replays scripted pointer input through a Dispatcher, one event per
// frame. Actions: start, move, select, scroll, clear, tap (start + select),
// drag (start, interpolated moves, select) and wait.
//
// A drag's frames follows the ebitensrc InjectDrag convention for the moves
// it produces: frames-2 interpolated moves plus a final move to (toX, toY).
// Since a Script holds one event per frame, the final move and the select
// take separate frames, so a drag step occupies frames+1 frames where
// InjectDrag occupies frames. frames below 2 count as 2.
type Script struct {
	frames []scriptFrame
	cursor int
}

// LoadScript parses a JSON input script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	s := &Script{}
	for i, st := range f.Steps {
		if err := s.compile(st); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return s, nil
}

func (s *Script) push(t EventType, id PointerID, x, y float64) *Event {
	evt := NewEvent(t, id, Vec2{x, y})
	s.frames = append(s.frames, scriptFrame{evt: evt})
	return evt
}

func (s *Script) compile(st scriptStep) error {
	switch st.Action {
	case "start":
		s.push(EventStart, st.ID, st.X, st.Y)
	case "move":
		s.push(EventMove, st.ID, st.X, st.Y)
	case "select":
		s.push(EventSelect, st.ID, st.X, st.Y)
	case "clear":
		s.push(EventClear, st.ID, st.X, st.Y)
	case "scroll":
		evt := s.push(EventScroll, st.ID, st.X, st.Y)
		evt.Scroll = Vec2{st.DX, st.DY}
	case "tap":
		s.push(EventStart, st.ID, st.X, st.Y)
		s.push(EventSelect, st.ID, st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		s.push(EventStart, st.ID, st.FromX, st.FromY)
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			s.push(EventMove, st.ID, st.FromX+(st.ToX-st.FromX)*t, st.FromY+(st.ToY-st.FromY)*t)
		}
		s.push(EventMove, st.ID, st.ToX, st.ToY)
		s.push(EventSelect, st.ID, st.ToX, st.ToY)
	case "wait":
		for i := 0; i < st.Frames; i++ {
			s.frames = append(s.frames, scriptFrame{})
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// Len returns the number of frames in the script.
func (s *Script) Len() int { return len(s.frames) }

// Done reports whether every frame has been played.
func (s *Script) Done() bool { return s.cursor >= len(s.frames) }

// Rewind restarts the script from its first frame.
func (s *Script) Rewind() { s.cursor = 0 }

// Step plays one frame and returns the dispatched event, or nil for a wait
// frame or a finished script.
func (s *Script) Step(d *Dispatcher, root View) *Event {
	if s.Done() {
		return nil
	}
	f := s.frames[s.cursor]
	s.cursor++
	if f.evt == nil {
		return nil
	}
	evt := *f.evt
	evt.Trace = nil
	evt.Pt = nil
	d.Dispatch(root, &evt)
	return &evt
}

// Run plays every remaining frame.
func (s *Script) Run(d *Dispatcher, root View) {
	for !s.Done() {
		s.Step(d, root)
	}
}
