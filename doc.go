// Package grove routes pointer input through 2D view trees and layers drag
// gestures on top.
//
// # Quick start
//
// Build a tree of [Node] values (or any type implementing [View]), create one
// [Dispatcher] for the application and hand it raw events:
//
//	root := grove.NewNode("root")
//	root.Interactable = true
//	button := grove.NewRect("button", 10, 10, 20, 20)
//	root.AddChild(button)
//
//	d := grove.NewDispatcher(grove.DefaultConfig())
//	button.OnInputSelect = func(ctx grove.InputContext) { fmt.Println("tap") }
//	d.Dispatch(root, grove.NewEvent(grove.EventStart, 0, grove.Vec2{X: 15, Y: 15}))
//
// Input sources for Ebitengine (package ebitensrc) and Bubble Tea (package
// teasrc) build events from real devices.
//
// # Hit testing
//
// Dispatch walks the tree depth first, trying children topmost first, and
// records every view that can handle events under the point. The result is
// the event's trace: index 0 is the target, the last entry is the view
// nearest the root. A view that blocks events hides itself and its subtree.
// The root always contains the point.
//
// # Propagation
//
// The capture pass publishes "Input<Type>Capture" on each traced view from
// the root down; a view that cancels the event or blocks events ends it and
// bubble never runs. The bubble pass runs from the target up, calling the
// view's [Callbacks] and publishing "Input<Type>", until a handler cancels.
// Moves also maintain hover state ("InputOver"/"InputOut").
//
// # Drags
//
// A view calls [Dispatcher.StartDrag] from its InputStart handler. Once the
// pointer leaves the activation radius the view receives DragStart, then Drag
// with the delta since the previous sample, and DragStop on release. A drag
// release cancels the SELECT so it does not also count as a tap.
package grove
