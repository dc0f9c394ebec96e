package dnd

import (
	"slices"

	"go.uber.org/zap"
)

// Droppable is a drop target attached to a node. It reacts to drag events
// broadcast on DragEventName that reach its node from below, as long as the
// event's type is one it accepts.
//
// Enter and leave are not derived here: the active Draggable compares which
// target accepted its previous and current events and calls OnEnter and
// OnLeave itself.
type Droppable struct {
	// Accepts lists the drag types this target reacts to.
	Accepts []DragType
	// DropData is opaque data attached to the target.
	DropData any

	// OnEnter is called when an accepted drag moves over the target.
	OnEnter DndHandler
	// OnLeave is called when an accepted drag leaves the target, including
	// right before OnDrop.
	OnLeave DndHandler
	// OnDragOver is called for every accepted drag event over the target.
	OnDragOver DndHandler
	// OnDrop is called when an accepted drag is released over the target.
	OnDrop DndHandler

	id     uint32
	scene  *Scene
	node   *Node
	handle ListenerHandle
}

var droppableIDCounter uint32

// NewDroppable creates a drop target accepting the given drag types.
func NewDroppable(accepts ...DragType) *Droppable {
	droppableIDCounter++
	return &Droppable{Accepts: accepts, id: droppableIDCounter}
}

// Acceptable reports whether the target reacts to drags of type t.
func (d *Droppable) Acceptable(t DragType) bool {
	return t != "" && slices.Contains(d.Accepts, t)
}

// ID returns the target's identity. Drag sources track the hovered target by
// ID so an unmounted target is never called again.
func (d *Droppable) ID() uint32 {
	return d.id
}

// Node returns the node the target is mounted on, or nil.
func (d *Droppable) Node() *Node {
	return d.node
}

// Mounted reports whether the target is attached to a node.
func (d *Droppable) Mounted() bool {
	return d.node != nil
}

// Mount attaches the target to n and subscribes it to the broadcast channel.
// Mounting again first unmounts from the previous node.
func (d *Droppable) Mount(s *Scene, n *Node) {
	if d.node != nil {
		d.Unmount()
	}
	d.scene = s
	d.node = n
	d.handle = n.AddEventListener(DragEventName, d.handleDrag)
	s.droppables[d.id] = d
	s.logger.Debug("droppable mounted",
		zap.Uint32("droppable", d.id), zap.String("node", n.Name))
}

// Unmount detaches the target. No-op if not mounted.
func (d *Droppable) Unmount() {
	if d.node == nil {
		return
	}
	d.handle.Remove()
	d.handle = ListenerHandle{}
	delete(d.scene.droppables, d.id)
	d.node = nil
	d.scene = nil
}

func (d *Droppable) handleDrag(ev *CustomEvent) {
	if !d.Acceptable(ev.Detail.Type) {
		return
	}
	ev.Accept(d)
	d.OnDragOver.call(ev.Detail)
}
