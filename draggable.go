package dnd

import (
	"math"

	"go.uber.org/zap"
)

// DefaultDragThreshold is the Manhattan distance in pixels a pressed pointer
// must travel before the press becomes a drag.
const DefaultDragThreshold = 5.0

// NoDragThreshold as a DragThreshold starts the drag on press.
const NoDragThreshold = -1.0

// dragLayerAlpha is the opacity of the floating drag layer.
const dragLayerAlpha = 0.8

// DragState is the state of a Draggable's gesture.
type DragState uint8

const (
	DragIdle     DragState = iota // no pointer down
	DragArmed                     // pointer down, threshold not reached
	DragDragging                  // threshold reached, drag in progress
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragArmed:
		return "armed"
	case DragDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Draggable turns presses on a node into drag gestures. It may be used
// without any Droppable for free dragging.
type Draggable struct {
	// Type of the dragged object. If empty, the Draggable never interacts
	// with a Droppable and no drag layer is shown.
	Type DragType
	// DragLayer is shown under the pointer while dragging. If nil, a clone of
	// the dragged node is used.
	DragLayer *Node
	// DragData is attached to every event.
	DragData any
	// DisableShift anchors the drag layer's top-left corner at the pointer
	// instead of keeping the offset from the press point.
	DisableShift bool
	// DragThreshold overrides DefaultDragThreshold when positive. Zero keeps
	// the default; NoDragThreshold (any negative value) drags immediately.
	DragThreshold float64

	// OnStart is called once when the threshold is reached.
	OnStart DndHandler
	// OnDrag is called on every move while dragging.
	OnDrag DndHandler
	// OnEnd is called when a drag is released; DropTarget holds the target
	// that received the drop, if any.
	OnEnd DndHandler

	scene   *Scene
	node    *Node
	session *gesture
}

// gesture is the state of one pointer-down to pointer-up interaction.
type gesture struct {
	node     *Node
	pointer  PointerKind
	touchID  int
	dragging bool

	originX, originY float64
	shiftX, shiftY   float64

	// dropTargetID identifies the last accepting drop target; it is looked up
	// in the scene registry each frame rather than held as a reference.
	dropTargetID uint32
	proxy        *Node
	last         DndEvent
	handles      []CallbackHandle
}

// NewDraggable creates a drag source of the given type.
func NewDraggable(t DragType) *Draggable {
	return &Draggable{Type: t}
}

// Node returns the node the source is mounted on, or nil.
func (d *Draggable) Node() *Node {
	return d.node
}

// State reports the current gesture state.
func (d *Draggable) State() DragState {
	switch {
	case d.session == nil:
		return DragIdle
	case d.session.dragging:
		return DragDragging
	default:
		return DragArmed
	}
}

// DragLayerNode returns the floating drag layer while a typed drag is in
// progress, or nil.
func (d *Draggable) DragLayerNode() *Node {
	if d.session == nil {
		return nil
	}
	return d.session.proxy
}

// Mount attaches the source to n by taking over n.OnMouseDown and
// n.OnTouchStart. Mounting again first unmounts from the previous node.
func (d *Draggable) Mount(s *Scene, n *Node) {
	if d.node != nil {
		d.Unmount()
	}
	d.scene = s
	d.node = n
	n.OnMouseDown = d.onMouseDown
	n.OnTouchStart = d.onTouchStart
}

// Unmount detaches the source. A gesture in progress is torn down without
// firing any callbacks.
func (d *Draggable) Unmount() {
	if d.node == nil {
		return
	}
	if g := d.session; g != nil {
		d.closeSession(g)
		if g.proxy != nil {
			d.unmountProxy(g)
		}
	}
	d.node.OnMouseDown = nil
	d.node.OnTouchStart = nil
	d.node = nil
	d.scene = nil
}

func (d *Draggable) threshold() float64 {
	switch {
	case d.DragThreshold > 0:
		return d.DragThreshold
	case d.DragThreshold < 0:
		return 0
	}
	return DefaultDragThreshold
}

// --- Input normalization ---

func mouseEvent(ctx MouseContext) DndEvent {
	return DndEvent{
		PageX:    ctx.WorldX,
		PageY:    ctx.WorldY,
		ClientX:  ctx.ScreenX,
		ClientY:  ctx.ScreenY,
		Target:   ctx.Target,
		Pointer:  PointerMouse,
		CtrlKey:  ctx.Modifiers&ModCtrl != 0,
		ShiftKey: ctx.Modifiers&ModShift != 0,
	}
}

// touchEvent builds the event for finger t. The target is hit-tested under t,
// which is not necessarily the first changed finger of the record.
func (d *Draggable) touchEvent(ctx TouchContext, t TouchPoint) DndEvent {
	target := ctx.Target
	if len(ctx.Changed) == 0 || ctx.Changed[0].ID != t.ID {
		target = d.scene.HitTest(t.WorldX, t.WorldY)
	}
	return DndEvent{
		PageX:    t.WorldX,
		PageY:    t.WorldY,
		ClientX:  t.ScreenX,
		ClientY:  t.ScreenY,
		Target:   target,
		Pointer:  PointerTouch,
		CtrlKey:  ctx.Modifiers&ModCtrl != 0,
		ShiftKey: ctx.Modifiers&ModShift != 0,
	}
}

// trackedTouch finds the gesture's finger among the changed touches.
func trackedTouch(changed []TouchPoint, id int) (TouchPoint, bool) {
	for _, t := range changed {
		if t.ID == id {
			return t, true
		}
	}
	return TouchPoint{}, false
}

func (d *Draggable) extend(ev DndEvent) DndEvent {
	g := d.session
	ev.Type = d.Type
	ev.DragData = d.DragData
	ev.DeltaX = ev.PageX - g.originX
	ev.DeltaY = ev.PageY - g.originY
	return ev
}

// --- Raw listeners ---

func (d *Draggable) onMouseDown(ctx MouseContext) {
	if ctx.Button != MouseButtonLeft || d.session != nil {
		return
	}
	d.down(PointerMouse, 0, mouseEvent(ctx))
}

func (d *Draggable) onTouchStart(ctx TouchContext) {
	if len(ctx.Touches) != 1 || len(ctx.Changed) == 0 || d.session != nil {
		return
	}
	t := ctx.Changed[0]
	d.down(PointerTouch, t.ID, d.touchEvent(ctx, t))
}

func (d *Draggable) onMouseMove(ctx MouseContext) {
	if d.session == nil {
		return
	}
	d.move(d.extend(mouseEvent(ctx)))
}

func (d *Draggable) onMouseUp(ctx MouseContext) {
	if d.session == nil {
		return
	}
	d.end(d.extend(mouseEvent(ctx)))
}

func (d *Draggable) onTouchMove(ctx TouchContext) {
	g := d.session
	if g == nil || len(ctx.Touches) != 1 {
		return
	}
	t, ok := trackedTouch(ctx.Changed, g.touchID)
	if !ok {
		return
	}
	d.move(d.extend(d.touchEvent(ctx, t)))
}

func (d *Draggable) onTouchEnd(ctx TouchContext) {
	g := d.session
	if g == nil {
		return
	}
	t, ok := trackedTouch(ctx.Changed, g.touchID)
	if !ok {
		return
	}
	d.end(d.extend(d.touchEvent(ctx, t)))
}

func (d *Draggable) onTouchCancel(ctx TouchContext) {
	g := d.session
	if g == nil {
		return
	}
	if t, ok := trackedTouch(ctx.Changed, g.touchID); ok {
		d.end(d.extend(d.touchEvent(ctx, t)))
		return
	}
	if len(ctx.Changed) == 0 {
		d.end(g.last)
	}
}

// --- State machine ---

func (d *Draggable) down(pointer PointerKind, touchID int, ev DndEvent) {
	s := d.scene
	g := &gesture{
		node:    d.node,
		pointer: pointer,
		touchID: touchID,
		originX: ev.PageX,
		originY: ev.PageY,
	}
	d.session = g

	if pointer == PointerMouse {
		g.handles = append(g.handles,
			s.OnMouseMove(d.onMouseMove),
			s.OnMouseUp(d.onMouseUp),
		)
	} else {
		g.handles = append(g.handles,
			s.OnTouchMove(d.onTouchMove),
			s.OnTouchEnd(d.onTouchEnd),
			s.OnTouchCancel(d.onTouchCancel),
		)
	}
	s.suppressSelection()
	s.activeGestures++

	if !d.DisableShift {
		r := s.ScreenBounds(d.node)
		g.shiftX = ev.ClientX - r.X
		g.shiftY = ev.ClientY - r.Y
	}

	s.logger.Debug("gesture armed",
		zap.String("node", d.node.Name),
		zap.String("type", string(d.Type)),
		zap.Float64("x", ev.PageX), zap.Float64("y", ev.PageY))

	d.move(d.extend(ev))
}

func (d *Draggable) move(ev DndEvent) {
	g := d.session
	s := d.scene
	g.last = ev

	if !g.dragging && math.Abs(ev.DeltaX)+math.Abs(ev.DeltaY) >= d.threshold() {
		g.dragging = true
		g.dropTargetID = 0
		s.logger.Debug("drag started",
			zap.String("node", g.node.Name),
			zap.Float64("dx", ev.DeltaX), zap.Float64("dy", ev.DeltaY))
		s.emit(g.record(EventDragStart, ev, nil))
		d.OnStart.call(ev)
		if d.session != g {
			return
		}
		if d.Type != "" {
			d.mountProxy(g)
		}
	}
	if !g.dragging {
		return
	}

	if g.proxy != nil {
		d.renderProxy(g, ev)
	}

	accepted := broadcast(ev)
	ev.DropTarget = accepted
	g.last = ev

	var acceptedID uint32
	if accepted != nil {
		acceptedID = accepted.id
	}
	if acceptedID != g.dropTargetID {
		if prev := s.lookupDroppable(g.dropTargetID); prev != nil {
			s.logger.Debug("drag leave", zap.Uint32("droppable", prev.id))
			s.emit(g.record(EventDragLeave, ev, prev))
			prev.OnLeave.call(ev)
		}
		if accepted != nil {
			s.logger.Debug("drag enter", zap.Uint32("droppable", accepted.id))
			s.emit(g.record(EventDragEnter, ev, accepted))
			accepted.OnEnter.call(ev)
		}
		g.dropTargetID = acceptedID
	}

	s.emit(g.record(EventDrag, ev, accepted))
	d.OnDrag.call(ev)
}

func (d *Draggable) end(ev DndEvent) {
	g := d.session
	s := d.scene
	d.closeSession(g)

	if !g.dragging {
		s.logger.Debug("gesture released below threshold", zap.String("node", g.node.Name))
		return
	}
	if g.proxy != nil {
		d.unmountProxy(g)
	}

	target := s.lookupDroppable(g.dropTargetID)
	ev.DropTarget = target
	if target != nil {
		s.logger.Debug("drop", zap.Uint32("droppable", target.id))
		s.emit(g.record(EventDragLeave, ev, target))
		target.OnLeave.call(ev)
		s.emit(g.record(EventDrop, ev, target))
		target.OnDrop.call(ev)
	}
	s.logger.Debug("drag ended", zap.String("node", g.node.Name),
		zap.Float64("dx", ev.DeltaX), zap.Float64("dy", ev.DeltaY))
	s.emit(g.record(EventDragEnd, ev, target))
	d.OnEnd.call(ev)
}

// closeSession removes the gesture's window listeners and releases the
// selection lock. Safe to call once per gesture.
func (d *Draggable) closeSession(g *gesture) {
	for _, h := range g.handles {
		h.Remove()
	}
	g.handles = nil
	d.scene.restoreSelection()
	d.scene.activeGestures--
	d.session = nil
}

// --- Drag layer ---

func (d *Draggable) mountProxy(g *gesture) {
	layer := NewContainer("drag-layer")
	layer.Interactable = false
	layer.Alpha = dragLayerAlpha

	content := d.DragLayer
	if content == nil {
		content = g.node.Clone()
		content.SetPosition(0, 0)
		if cam := d.scene.primaryCamera(); cam != nil {
			layer.SetScale(cam.Zoom, cam.Zoom)
		}
	}
	layer.AddChild(content)
	d.scene.overlay.AddChild(layer)
	g.proxy = layer
}

func (d *Draggable) renderProxy(g *gesture, ev DndEvent) {
	g.proxy.SetPosition(ev.ClientX-g.shiftX, ev.ClientY-g.shiftY)
}

func (d *Draggable) unmountProxy(g *gesture) {
	if d.DragLayer != nil && d.DragLayer.Parent == g.proxy {
		g.proxy.RemoveChild(d.DragLayer)
	}
	g.proxy.Dispose()
	g.proxy = nil
}

func (g *gesture) record(t EventType, ev DndEvent, target *Droppable) DragRecord {
	r := DragRecord{
		Type:           t,
		SourceEntityID: g.node.EntityID,
		DragType:       ev.Type,
		PageX:          ev.PageX,
		PageY:          ev.PageY,
		DeltaX:         ev.DeltaX,
		DeltaY:         ev.DeltaY,
	}
	if target != nil && target.node != nil {
		r.TargetEntityID = target.node.EntityID
	}
	return r
}
