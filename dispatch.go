package grove

import (
	"slices"

	"github.com/charmbracelet/log"
)

// Dispatcher routes pointer events through view trees and owns the state
// shared by every root it serves: the last event of each type, the dragging
// flag, hover state and live drag sessions. Create one per application.
//
// A Dispatcher is not safe for concurrent use; input sources must serialize
// their calls.
type Dispatcher struct {
	cfg    Config
	logger *log.Logger
	store  EntityStore

	history [numEventTypes]*Event

	// dragging is keyed by root UID when cfg.PerRootDragState is set,
	// otherwise by 0.
	dragging map[uint64]bool

	over     map[PointerID][]View
	handlers map[uint64]*dragHandler
}

// NewDispatcher creates a dispatcher with the given config.
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		logger:   newLogger(cfg),
		dragging: make(map[uint64]bool),
		over:     make(map[PointerID][]View),
		handlers: make(map[uint64]*dragHandler),
	}
}

// Config returns the dispatcher's config.
func (d *Dispatcher) Config() Config { return d.cfg }

// Logger returns the dispatcher's logger.
func (d *Dispatcher) Logger() *log.Logger { return d.logger }

// SetLogger replaces the dispatcher's logger. Nil is ignored.
func (d *Dispatcher) SetLogger(l *log.Logger) {
	if l != nil {
		d.logger = l
	}
}

// LastEvent returns the most recently dispatched event of type t, or nil.
func (d *Dispatcher) LastEvent(t EventType) *Event {
	if t >= numEventTypes {
		return nil
	}
	return d.history[t]
}

// --- Tracing ---

// trace hit-tests v and its subtree against pt, given in v's parent space.
// Capable views under the point are unshifted onto evt.Trace so index 0 ends
// up as the deepest one. Children are tried topmost first and the first one
// that claims the point wins.
func trace(v View, evt *Event, pt Vec2) bool {
	local := v.Localize(pt)
	caps := v.Capabilities()
	if caps.BlockEvents {
		return false
	}
	if v.Parent() != nil && !v.ContainsLocalPoint(local) {
		return false
	}

	if caps.CanHandleEvents {
		evt.Depth++
		evt.Trace = slices.Insert(evt.Trace, 0, v)
		evt.Pt[v.UID()] = local
	}

	children := v.VisibleChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if trace(children[i], evt, local) {
			return true
		}
	}

	if caps.CanHandleEvents {
		evt.Target = v
		return true
	}
	return false
}

// --- Dispatch ---

// Dispatch delivers evt to the views of root's tree under evt.SrcPt.
//
// Capture runs from the root to the target, publishing the type's capture
// signal on each view; it stops after any view that cancels the event or
// blocks events, and bubble is skipped. Bubble runs from the target to the
// root, calling the view's callback, publishing the bubble signal, then
// updating hover state, and stops as soon as the event is cancelled.
//
// Panics raised by callbacks or listeners propagate to the caller and abort
// the rest of the dispatch.
func (d *Dispatcher) Dispatch(root View, evt *Event) {
	if root == nil || evt == nil {
		return
	}
	evt.Root = root
	evt.reset()
	trace(root, evt, evt.SrcPt)

	if evt.Type >= numEventTypes {
		d.logger.Warn("dispatch: unknown event type", "type", evt.Type, "id", evt.ID)
		return
	}
	d.history[evt.Type] = evt
	d.debugCheckTraceDepth(evt)
	d.logger.Debug("dispatch",
		"type", evt.Type, "id", evt.ID, "x", evt.SrcPt.X, "y", evt.SrcPt.Y,
		"depth", evt.Depth, "target", viewName(evt.Target))

	names := signalTable[evt.Type]

	for i := evt.Depth - 1; i >= 0; i-- {
		v := evt.Trace[i]
		v.Signals().PublishInput(names.capture, InputContext{
			View: v, Event: evt, Point: evt.Pt[v.UID()], IsTarget: i == 0,
		})
		if evt.Cancelled || v.Capabilities().BlockEvents {
			d.logger.Debug("capture halted", "type", evt.Type, "at", viewName(v),
				"cancelled", evt.Cancelled)
			d.afterDispatch(evt)
			return
		}
	}

	for i := 0; i < evt.Depth; i++ {
		v := evt.Trace[i]
		if !v.Capabilities().CanHandleEvents {
			continue
		}
		ctx := InputContext{View: v, Event: evt, Point: evt.Pt[v.UID()], IsTarget: i == 0}
		if cb := callbacksOf(v); cb != nil {
			if fn := cb.forType(evt.Type); fn != nil {
				fn(ctx)
			}
		}
		v.Signals().PublishInput(names.bubble, ctx)
		if ctx.IsTarget {
			d.emit(names.bubble, v, evt, ctx.Point, Vec2{})
		}
		d.eventPropagated(ctx)
		if evt.Cancelled {
			d.logger.Debug("bubble halted", "type", evt.Type, "at", viewName(v))
			break
		}
	}
	d.afterDispatch(evt)
}

// afterDispatch settles hover state once both passes are done.
func (d *Dispatcher) afterDispatch(evt *Event) {
	switch evt.Type {
	case EventMove:
		d.outStale(evt)
	case EventClear:
		d.ClearOverState(evt.ID)
	}
}

// --- Drag flag ---

func (d *Dispatcher) dragKey(root View) uint64 {
	if d.cfg.PerRootDragState && root != nil {
		return root.UID()
	}
	return 0
}

func (d *Dispatcher) setDragging(root View, on bool) {
	key := d.dragKey(root)
	if on {
		d.dragging[key] = true
	} else {
		delete(d.dragging, key)
	}
}

// IsDragging reports whether any drag is in its dragging phase. With the
// default config the flag is shared by every root this dispatcher serves,
// and is cleared when any view's last drag ends.
func (d *Dispatcher) IsDragging() bool {
	return len(d.dragging) > 0
}

// IsDraggingRoot reports the dragging flag for one root. Without
// PerRootDragState it is the same as IsDragging.
func (d *Dispatcher) IsDraggingRoot(root View) bool {
	if !d.cfg.PerRootDragState {
		return d.IsDragging()
	}
	return root != nil && d.dragging[root.UID()]
}
