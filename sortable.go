package dnd

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// Axis selects the direction a Sortable stacks its items in.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

var sortableCounter uint64

// newSortableType returns a drag type unique to one Sortable within the
// process, so separate lists never accept each other's items.
func newSortableType() DragType {
	sortableCounter++
	return DragType(fmt.Sprintf("dnd:sortable:%d:%016x", sortableCounter, rand.Uint64()))
}

// Sortable reorders the items of a container by dragging them. Every item
// node gets a Draggable and a Droppable sharing a drag type private to this
// Sortable. While an item is dragged the visible order follows the pointer;
// on release OnSortEnd reports the move or OnSortCancel fires.
type Sortable struct {
	// HideDragged hides the dragged item in place while its drag layer
	// follows the pointer.
	HideDragged bool
	// CustomDraggable, if set, supplies each item's Draggable. The Sortable
	// overrides its Type and OnEnd and wraps its OnStart.
	CustomDraggable func(item *Node) *Draggable

	// Axis is the stacking direction.
	Axis Axis
	// Spacing is the gap between consecutive items.
	Spacing float64
	// SlideDuration animates items into their new slots, in seconds. Zero
	// snaps them immediately.
	SlideDuration float32
	// Ease is the easing function for slides. Defaults to ease.OutQuad.
	Ease ease.TweenFunc

	// OnSortStart is called when an item starts being dragged. Not called
	// for items supplied by CustomDraggable.
	OnSortStart func()
	// OnSortCancel is called when a drag finishes without any reorder.
	OnSortCancel func()
	// OnSortEnd is called when a drag finishes with the item moved from
	// index from to index to. Apply it to a backing list with ArrayMove.
	OnSortEnd func(from, to int)

	scene     *Scene
	container *Node
	uid       DragType
	items     []*sortItem
	// order[i] is the index into items shown at visual position i.
	order       []int
	startIndex  int
	activeIndex int
	hoverIndex  int
}

type sortItem struct {
	node  *Node
	drag  *Draggable
	drop  *Droppable
	tween *TweenGroup
	laid  bool
}

// NewSortable creates a Sortable reporting reorders to onSortEnd.
func NewSortable(onSortEnd func(from, to int)) *Sortable {
	return &Sortable{
		OnSortEnd:   onSortEnd,
		uid:         newSortableType(),
		startIndex:  -1,
		activeIndex: -1,
		hoverIndex:  -1,
	}
}

// Type returns the drag type shared by this Sortable's items.
func (s *Sortable) Type() DragType {
	return s.uid
}

// Container returns the node the items are laid out in.
func (s *Sortable) Container() *Node {
	return s.container
}

// Mount attaches the Sortable to container and adopts its current children
// as items.
func (s *Sortable) Mount(scene *Scene, container *Node) {
	if s.container != nil {
		s.Unmount()
	}
	s.scene = scene
	s.container = container
	s.SetItems(slices.Clone(container.Children())...)
}

// Unmount detaches every item's drag source and drop target.
func (s *Sortable) Unmount() {
	if s.container == nil {
		return
	}
	s.unmountItems()
	s.items = nil
	s.order = nil
	s.container = nil
	s.scene = nil
}

// SetItems replaces the items. Nodes are reparented into the container in
// the given order, and the order state restarts from the identity
// permutation.
func (s *Sortable) SetItems(nodes ...*Node) {
	if s.container == nil {
		panic("dnd: Sortable.SetItems before Mount")
	}
	s.unmountItems()
	s.container.RemoveChildren()

	s.items = make([]*sortItem, len(nodes))
	for i, n := range nodes {
		s.container.AddChild(n)
		s.items[i] = s.mountItem(i, n)
	}
	s.reset()
}

// Items returns the item nodes in their current visual order.
func (s *Sortable) Items() []*Node {
	out := make([]*Node, len(s.order))
	for i, idx := range s.order {
		out[i] = s.items[idx].node
	}
	return out
}

// Order returns a copy of the current visual order as indices into the
// items passed to SetItems.
func (s *Sortable) Order() []int {
	return slices.Clone(s.order)
}

// StartIndex returns the index of the item being sorted, if any.
func (s *Sortable) StartIndex() (int, bool) {
	return s.startIndex, s.startIndex >= 0
}

func (s *Sortable) mountItem(i int, n *Node) *sortItem {
	it := &sortItem{node: n}

	var d *Draggable
	if s.CustomDraggable != nil {
		d = s.CustomDraggable(n)
	} else {
		d = NewDraggable(s.uid)
		if s.OnSortStart != nil {
			onSortStart := s.OnSortStart
			d.OnStart = func(DndEvent) { onSortStart() }
		}
	}
	d.Type = s.uid
	d.OnEnd = s.onDragEnd
	prev := d.OnStart
	d.OnStart = func(ev DndEvent) {
		s.activeIndex = i
		prev.call(ev)
	}
	d.Mount(s.scene, n)
	it.drag = d

	it.drop = NewDroppable(s.uid)
	it.drop.DropData = i
	it.drop.OnDragOver = s.onDragOver
	it.drop.OnLeave = s.onItemLeave
	it.drop.Mount(s.scene, n)
	return it
}

func (s *Sortable) unmountItems() {
	for _, it := range s.items {
		it.drag.Unmount()
		it.drop.Unmount()
		if it.tween != nil {
			it.tween.Done = true
		}
		it.node.Visible = true
	}
}

func (s *Sortable) indexOf(item int) int {
	return slices.Index(s.order, item)
}

// reset restores the identity order and clears gesture tracking.
func (s *Sortable) reset() {
	s.order = make([]int, len(s.items))
	for i := range s.order {
		s.order[i] = i
	}
	s.startIndex = -1
	s.activeIndex = -1
	s.hoverIndex = -1
	s.layout()
}

func (s *Sortable) onDragOver(ev DndEvent) {
	current, ok := ev.DropTarget.DropData.(int)
	if !ok {
		return
	}
	if s.startIndex < 0 {
		s.startIndex = s.activeIndex
		if s.startIndex < 0 {
			s.startIndex = current
		}
		s.layout()
	}
	if current == s.hoverIndex {
		return
	}
	s.hoverIndex = current
	if current == s.startIndex {
		return
	}
	ArrayMove(s.order, s.indexOf(s.startIndex), s.indexOf(current))
	s.scene.logger.Debug("sortable reorder",
		zap.Int("item", s.startIndex), zap.Int("over", current), zap.Ints("order", s.order))
	s.layout()
}

func (s *Sortable) onItemLeave(ev DndEvent) {
	// ev.DropTarget is the target being entered; the leaving item is whatever
	// was hovered last.
	if ev.DropTarget == nil || ev.DropTarget.DropData != s.hoverIndex {
		s.hoverIndex = -1
	}
}

func (s *Sortable) onDragEnd(DndEvent) {
	start := s.startIndex
	if start < 0 {
		s.cancel()
		return
	}
	to := s.indexOf(start)
	if to == start {
		s.cancel()
		return
	}
	s.commit()
	s.scene.logger.Debug("sort end", zap.Int("from", start), zap.Int("to", to))
	if s.OnSortEnd != nil {
		s.OnSortEnd(start, to)
	}
}

func (s *Sortable) cancel() {
	if s.scene != nil {
		s.scene.logger.Debug("sort cancelled")
	}
	if s.OnSortCancel != nil {
		s.OnSortCancel()
	}
	if s.container != nil {
		s.reset()
	}
}

// commit makes the current visual order the item order.
func (s *Sortable) commit() {
	nodes := s.Items()
	s.SetItems(nodes...)
}

// layout stacks the items in visual order and applies HideDragged.
func (s *Sortable) layout() {
	if s.container == nil {
		return
	}
	pos := 0.0
	for slot, idx := range s.order {
		it := s.items[idx]
		s.container.SetChildIndex(it.node, slot)
		it.node.Visible = !(s.HideDragged && idx == s.startIndex)

		x, y := 0.0, pos
		if s.Axis == AxisHorizontal {
			x, y = pos, 0
		}
		s.place(it, x, y)

		b := localRect(it.node)
		extent := b.Y + b.Height
		if s.Axis == AxisHorizontal {
			extent = b.X + b.Width
		}
		pos += extent*scaleOnAxis(it.node, s.Axis) + s.Spacing
	}
}

func scaleOnAxis(n *Node, a Axis) float64 {
	if a == AxisHorizontal {
		return n.ScaleX
	}
	return n.ScaleY
}

func (s *Sortable) place(it *sortItem, x, y float64) {
	if it.tween != nil {
		it.tween.Done = true
		it.tween = nil
	}
	if s.SlideDuration <= 0 || !it.laid || (it.node.X == x && it.node.Y == y) {
		it.node.SetPosition(x, y)
		it.laid = true
		return
	}
	fn := s.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	it.tween = TweenPosition(it.node, x, y, s.SlideDuration, fn)
	s.scene.Animate(it.tween)
}
