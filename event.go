package dnd

// DragType names the category of a dragged payload. A Droppable reacts only
// to the types it accepts. The empty DragType means "no type": such a drag
// never interacts with drop targets and is only useful for free dragging.
type DragType string

// DragEventName is the custom event name of the broadcast channel between
// drag sources and drop targets.
const DragEventName = "dnd:drag"

// DndEvent is the record passed to every drag and drop callback.
type DndEvent struct {
	// Type of the dragged object. Empty means the source never interacts
	// with a Droppable.
	Type DragType

	// PageX/PageY are world coordinates. They stay stable while the camera
	// scrolls, so deltas are measured in this space.
	PageX, PageY float64
	// ClientX/ClientY are screen coordinates used for hit-testing and for
	// placing the drag layer.
	ClientX, ClientY float64

	// Target is the node found by hit-testing the pointer's current
	// position, never the node that received the raw input.
	Target *Node

	// DeltaX/DeltaY are the displacement from the gesture origin in page
	// coordinates.
	DeltaX, DeltaY float64

	// DragData is the opaque payload attached by the Draggable.
	DragData any

	// DropTarget is the Droppable that accepted this event, if any.
	DropTarget *Droppable

	// Pointer is the device driving the gesture.
	Pointer  PointerKind
	CtrlKey  bool
	ShiftKey bool
}

// DndHandler is a drag and drop callback. Nil handlers are skipped.
type DndHandler func(DndEvent)

func (h DndHandler) call(ev DndEvent) {
	if h != nil {
		h(ev)
	}
}

// CustomEvent is dispatched through the node tree on the broadcast channel.
// It is created fresh for every dispatch and doubles as the dispatch result:
// after Node.DispatchEvent returns, AcceptedBy reports the drop target that
// claimed it.
type CustomEvent struct {
	Name    string
	Detail  DndEvent
	Bubbles bool

	target        *Node
	currentTarget *Node
	stopped       bool
	accepted      *Droppable
}

// NewCustomEvent creates a bubbling custom event carrying detail.
func NewCustomEvent(name string, detail DndEvent) *CustomEvent {
	return &CustomEvent{Name: name, Detail: detail, Bubbles: true}
}

// StopPropagation prevents ancestors of the current node from receiving the
// event. Listeners on the current node still run.
func (e *CustomEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *CustomEvent) Stopped() bool {
	return e.stopped
}

// Target returns the node the event was dispatched on.
func (e *CustomEvent) Target() *Node {
	return e.target
}

// CurrentTarget returns the node whose listeners are running, or nil outside
// a dispatch.
func (e *CustomEvent) CurrentTarget() *Node {
	return e.currentTarget
}

// Accept records d as the drop target for this event and stops propagation,
// so outer drop targets never see an event an inner one claimed.
func (e *CustomEvent) Accept(d *Droppable) {
	e.accepted = d
	e.Detail.DropTarget = d
	e.StopPropagation()
}

// AcceptedBy returns the Droppable that accepted the event, or nil.
func (e *CustomEvent) AcceptedBy() *Droppable {
	return e.accepted
}

// broadcast dispatches ev on the drag channel at its hit-tested target and
// returns the accepting drop target. Events without a target or a type are
// not dispatched.
func broadcast(ev DndEvent) *Droppable {
	if ev.Target == nil || ev.Type == "" {
		return nil
	}
	ce := NewCustomEvent(DragEventName, ev)
	ev.Target.DispatchEvent(ce)
	return ce.AcceptedBy()
}
