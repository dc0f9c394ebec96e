package dnd

import "slices"

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// MouseContext carries a normalized mouse record to node and window listeners.
type MouseContext struct {
	// Target is the topmost node under the pointer, or nil.
	Target    *Node
	Button    MouseButton
	ScreenX   float64
	ScreenY   float64
	WorldX    float64
	WorldY    float64
	Modifiers KeyModifiers
}

// TouchPoint is one finger in a touch record.
type TouchPoint struct {
	ID      int
	ScreenX float64
	ScreenY float64
	WorldX  float64
	WorldY  float64
}

// TouchContext carries a normalized touch record to node and window listeners.
type TouchContext struct {
	// Target is the topmost node under the first changed touch, or nil.
	Target *Node
	// Touches lists every finger still on the surface after this record.
	Touches []TouchPoint
	// Changed lists the fingers this record is about.
	Changed   []TouchPoint
	Modifiers KeyModifiers
}

// --- ID counters ---

// Plain counters; the scene is single-threaded.
var (
	nodeIDCounter     uint32
	listenerIDCounter uint32
)

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the scene graph element that drag sources and drop targets attach
// to. A single flat struct is used for all node types.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size in local units. Used for rendering NodeTypeRect and as the default
	// hit area.
	Width, Height float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Color        Color
	Visible      bool
	Interactable bool
	ZIndex       int

	// Metadata
	UserData any
	EntityID uint32

	// HitShape overrides the Width x Height hit area when set.
	HitShape HitShape

	// Press callbacks. They bubble from the hit node to the root.
	OnMouseDown  func(MouseContext)
	OnTouchStart func(TouchContext)

	listeners []eventListener

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

type eventListener struct {
	id   uint32
	name string
	fn   func(*CustomEvent)
}

// ListenerHandle removes a listener registered with Node.AddEventListener.
type ListenerHandle struct {
	node *Node
	id   uint32
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Interactable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
// Containers are hit-testable only through their children or a HitShape.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid-color rectangle node of the given size.
func NewRect(name string, width, height float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, Width: width, Height: height}
	nodeDefaults(n)
	n.Color = c
	return n
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
		panic("dnd: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("dnd: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent.childrenSorted = false
	}
	if index < 0 || index > len(n.children) {
		panic("dnd: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("dnd: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.sortedChildren = nil
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
	if child.Parent != n {
		panic("dnd: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("dnd: child index out of range")
	}
	oldIndex := slices.Index(n.children, child)
	if oldIndex == index {
		return
	}
	ArrayMove(n.children, oldIndex, index)
	n.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Clone returns a detached deep copy of the node's visual state and subtree.
// Callbacks, event listeners, and metadata are not copied.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:     n.Name,
		Type:     n.Type,
		X:        n.X,
		Y:        n.Y,
		ScaleX:   n.ScaleX,
		ScaleY:   n.ScaleY,
		Rotation: n.Rotation,
		PivotX:   n.PivotX,
		PivotY:   n.PivotY,
		Width:    n.Width,
		Height:   n.Height,
		Alpha:    n.Alpha,
		Color:    n.Color,
		Visible:  n.Visible,
		ZIndex:   n.ZIndex,
		HitShape: n.HitShape,
	}
	c.ID = nextNodeID()
	c.transformDirty = true
	c.childrenSorted = true
	for _, child := range n.children {
		c.AddChild(child.Clone())
	}
	return c
}

// --- Broadcast channel ---

// AddEventListener registers fn for custom events named name that reach this
// node, either as their target or while bubbling up from a descendant.
func (n *Node) AddEventListener(name string, fn func(*CustomEvent)) ListenerHandle {
	listenerIDCounter++
	id := listenerIDCounter
	n.listeners = append(n.listeners, eventListener{id: id, name: name, fn: fn})
	return ListenerHandle{node: n, id: id}
}

// Remove unregisters the listener. Safe to call more than once and from
// inside a running dispatch.
func (h ListenerHandle) Remove() {
	if h.node == nil {
		return
	}
	i := slices.IndexFunc(h.node.listeners, func(l eventListener) bool { return l.id == h.id })
	if i < 0 {
		return
	}
	// Build a fresh slice so an in-flight dispatch keeps its snapshot intact.
	h.node.listeners = slices.Concat(h.node.listeners[:i], h.node.listeners[i+1:])
}

// NumEventListeners returns how many listeners are registered for name.
func (n *Node) NumEventListeners(name string) int {
	count := 0
	for _, l := range n.listeners {
		if l.name == name {
			count++
		}
	}
	return count
}

// DispatchEvent delivers ev to this node and, if ev.Bubbles, to each ancestor
// in turn until a listener calls StopPropagation. The dispatch is synchronous.
func (n *Node) DispatchEvent(ev *CustomEvent) {
	ev.target = n
	for p := n; p != nil; p = p.Parent {
		ev.currentTarget = p
		for _, l := range p.listeners {
			if l.name == ev.Name {
				l.fn(ev)
			}
		}
		if ev.stopped || !ev.Bubbles {
			break
		}
	}
	ev.currentTarget = nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.OnMouseDown = nil
	n.OnTouchStart = nil
	n.listeners = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// paintOrder returns children in painter order (stable by ZIndex).
func (n *Node) paintOrder() []*Node {
	if n.childrenSorted {
		if n.sortedChildren == nil {
			return n.children
		}
		return n.sortedChildren
	}
	n.childrenSorted = true
	needSort := false
	for _, c := range n.children {
		if c.ZIndex != 0 {
			needSort = true
			break
		}
	}
	if !needSort {
		n.sortedChildren = nil
		return n.children
	}
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return a.ZIndex - b.ZIndex
	})
	return n.sortedChildren
}
