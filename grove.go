package grove

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vec2 is a 2D vector used for points, offsets and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// PointerID distinguishes concurrent input contacts. The mouse is pointer 0,
// touches use 1 and up.
type PointerID int

// EventType identifies a kind of raw pointer transition.
type EventType uint8

const (
	EventStart  EventType = iota // pointer pressed
	EventMove                    // pointer moved, pressed or hovering
	EventSelect                  // pointer released
	EventScroll                  // wheel or two-axis scroll
	EventClear                   // input for a pointer was abandoned (blur, touch cancel)

	numEventTypes
)

var eventTypeNames = [numEventTypes]string{
	EventStart:  "START",
	EventMove:   "MOVE",
	EventSelect: "SELECT",
	EventScroll: "SCROLL",
	EventClear:  "CLEAR",
}

// String returns the display name of the event type.
func (t EventType) String() string {
	if t >= numEventTypes {
		return "UNKNOWN"
	}
	return eventTypeNames[t]
}

// signalNames holds the bubble and capture signal names for one event type.
type signalNames struct {
	bubble  string
	capture string
}

// signalTable is computed once at init; dispatch never builds names.
var signalTable = buildSignalTable()

func buildSignalTable() [numEventTypes]signalNames {
	title := cases.Title(language.Und)
	var table [numEventTypes]signalNames
	for t := EventType(0); t < numEventTypes; t++ {
		name := "Input" + title.String(strings.ToLower(eventTypeNames[t]))
		table[t] = signalNames{bubble: name, capture: name + "Capture"}
	}
	return table
}

// SignalName returns the bubble-phase signal published for events of this
// type, e.g. "InputStart". Unknown types return "".
func (t EventType) SignalName() string {
	if t >= numEventTypes {
		return ""
	}
	return signalTable[t].bubble
}

// CaptureSignalName returns the capture-phase signal published for events of
// this type, e.g. "InputStartCapture". Unknown types return "".
func (t EventType) CaptureSignalName() string {
	if t >= numEventTypes {
		return ""
	}
	return signalTable[t].capture
}

// Signal names published outside the capture/bubble table.
const (
	SignalInputOver = "InputOver"
	SignalInputOut  = "InputOut"
	SignalDragStart = "DragStart"
	SignalDrag      = "Drag"
	SignalDragStop  = "DragStop"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Capabilities are the per-view flags the dispatcher consults.
type Capabilities struct {
	// CanHandleEvents puts the view in event traces.
	CanHandleEvents bool
	// BlockEvents stops hit testing at this view and halts the capture pass.
	BlockEvents bool
}
