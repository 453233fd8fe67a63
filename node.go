package grove

import (
	"cmp"
	"slices"
)

// nodeIDCounter is a plain counter (no atomic, dispatch is single-threaded).
var nodeIDCounter uint64

func nextNodeID() uint64 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the reference View: a retained tree element with a local
// transform, a hit region, capability flags, direct callbacks and a signal
// hub. The transform fields of a root node are ignored; root space is the
// root's own space.
type Node struct {
	Callbacks

	Name string

	id       uint64
	parent   *Node
	children []*Node

	// Transform (local, relative to parent)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	SkewX, SkewY float64
	PivotX       float64
	PivotY       float64

	// Hit region: HitShape if set, otherwise (0, 0, Width, Height).
	Width, Height float64
	HitShape      HitShape

	Visible      bool
	Interactable bool
	BlockEvents  bool
	ZIndex       int

	UserData any

	signals Signals

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
	visibleBuf     []View
}

// NewNode creates a visible, non-interactable node.
func NewNode(name string) *Node {
	return &Node{
		Name:           name,
		id:             nextNodeID(),
		ScaleX:         1,
		ScaleY:         1,
		Visible:        true,
		childrenSorted: true,
	}
}

// NewRect creates an interactable node at (x, y) in its parent's space with
// a w*h hit area.
func NewRect(name string, x, y, w, h float64) *Node {
	n := NewNode(name)
	n.X, n.Y = x, y
	n.Width, n.Height = w, h
	n.Interactable = true
	return n
}

// --- View implementation ---

// UID returns the node's unique id. Zero after Dispose.
func (n *Node) UID() uint64 { return n.id }

// Parent returns the parent view, or nil.
func (n *Node) Parent() View {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode returns the parent node, or nil.
func (n *Node) ParentNode() *Node { return n.parent }

// ContainsLocalPoint tests whether a local point falls inside the node's hit
// region. Nodes with neither HitShape nor size contain nothing.
func (n *Node) ContainsLocalPoint(pt Vec2) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(pt.X, pt.Y)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return pt.X >= 0 && pt.X <= n.Width && pt.Y >= 0 && pt.Y <= n.Height
}

// VisibleChildren returns visible children back-to-front: ascending ZIndex,
// insertion order among equal ZIndex. The slice is reused by the next call.
func (n *Node) VisibleChildren() []View {
	n.visibleBuf = n.visibleBuf[:0]
	for _, c := range n.orderedChildren() {
		if c.Visible {
			n.visibleBuf = append(n.visibleBuf, c)
		}
	}
	return n.visibleBuf
}

// Capabilities reports Interactable and BlockEvents.
func (n *Node) Capabilities() Capabilities {
	return Capabilities{CanHandleEvents: n.Interactable, BlockEvents: n.BlockEvents}
}

// Signals returns the node's publish/subscribe hub.
func (n *Node) Signals() *Signals { return &n.signals }

// InputCallbacks returns the node's direct callbacks.
func (n *Node) InputCallbacks() *Callbacks { return &n.Callbacks }

func (n *Node) orderedChildren() []*Node {
	if n.childrenSorted {
		if n.sortedChildren != nil {
			return n.sortedChildren
		}
		return n.children
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	n.childrenSorted = true
	return n.sortedChildren
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if n.disposed || child.disposed {
		panic("grove: AddChild on disposed node")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
		if child.parent == n && index > len(n.children) {
			index = len(n.children)
		}
	}
	if index < 0 || index > len(n.children) {
		panic("grove: child index out of range")
	}
	child.parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
}

// RemoveChild detaches child from this node.
// Panics if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("grove: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	child := n.children[index]
	n.removeChildByPtr(child)
	child.parent = nil
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.parent != n {
		panic("grove: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	old := slices.Index(n.children, child)
	if old == index {
		return
	}
	if old < index {
		copy(n.children[old:], n.children[old+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:old])
	}
	n.children[index] = child
	n.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.parent != nil {
		n.parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// drops its listeners and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.id = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.visibleBuf = nil
	n.HitShape = nil
	n.UserData = nil
	n.Callbacks = Callbacks{}
	n.signals.Clear()
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor-or-self of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			n.childrenSorted = false
			return
		}
	}
}
