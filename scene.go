package dnd

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, drag lifecycle records are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(record DragRecord)
}

// DragRecord carries drag lifecycle data for the ECS bridge.
type DragRecord struct {
	Type EventType
	// SourceEntityID is the EntityID of the dragged node.
	SourceEntityID uint32
	// TargetEntityID is the EntityID of the drop target's node, if any.
	TargetEntityID uint32
	DragType       DragType
	PageX          float64
	PageY          float64
	DeltaX         float64
	DeltaY         float64
}

// Scene owns the node tree, the drag overlay, cameras, input state, and the
// registry of mounted drop targets.
type Scene struct {
	root    *Node
	overlay *Node
	store   EntityStore
	debug   bool
	logger  *zap.Logger

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	cameras []*Camera

	// Drag and drop
	droppables     map[uint32]*Droppable
	selectionLocks int
	tweens         []*TweenGroup
	activeGestures int

	// Input state
	handlers     handlerRegistry
	hitBuf       []*Node
	cursor       Vec2
	touchIDs     []ebiten.TouchID
	justTouched  []ebiten.TouchID
	justReleased []ebiten.TouchID
	touchPos     map[int]Vec2
	injectQueue  []syntheticEvent
	injectTouch  []Touch
	testRunner   *TestRunner
	updateFunc   func() error
}

// NewScene creates a new scene with a pre-created root container and an
// empty overlay layer.
func NewScene() *Scene {
	root := NewContainer("root")
	overlay := NewContainer("overlay")
	overlay.Interactable = false
	return &Scene{
		root:       root,
		overlay:    overlay,
		logger:     zap.NewNop(),
		droppables: make(map[uint32]*Droppable),
		touchPos:   make(map[int]Vec2),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Overlay returns the screen-space layer drawn above the world. It is never
// hit-tested; the drag layer lives here while a drag is in progress.
func (s *Scene) Overlay() *Node {
	return s.overlay
}

// Refresh recomputes world transforms for the world tree and the overlay.
// Input handling calls it before hit-testing.
func (s *Scene) Refresh() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	updateWorldTransform(s.overlay, identityTransform, 1.0, false)
}

// Update runs one tick: scripted steps, camera scrolling, tweens, and input.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.step(dt)
}

func (s *Scene) step(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	for _, cam := range s.cameras {
		cam.update(dt)
	}
	s.updateTweens(dt)
	s.pruneDroppables()
	s.Refresh()
	s.processInput()
}

// Animate registers a tween group that the scene advances every Update until
// it is done.
func (s *Scene) Animate(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}

// NewCamera creates a camera with the given viewport and adds it to the
// scene. The first camera converts pointer positions between screen and
// world space.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

func (s *Scene) primaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// ScreenToWorld converts screen coordinates to world coordinates using the
// primary camera. Without a camera the two spaces coincide.
func (s *Scene) ScreenToWorld(sx, sy float64) (float64, float64) {
	if cam := s.primaryCamera(); cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// WorldToScreen converts world coordinates to screen coordinates using the
// primary camera.
func (s *Scene) WorldToScreen(wx, wy float64) (float64, float64) {
	if cam := s.primaryCamera(); cam != nil {
		return cam.WorldToScreen(wx, wy)
	}
	return wx, wy
}

// ScreenBounds returns the screen-space bounding box of n and its visible
// descendants.
func (s *Scene) ScreenBounds(n *Node) Rect {
	s.Refresh()
	wb := n.WorldBounds()
	cam := s.primaryCamera()
	if cam == nil {
		return wb
	}
	return transformRect(cam.computeViewMatrix(), wb)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emit(r DragRecord) {
	if s.store != nil {
		s.store.EmitEvent(r)
	}
}

// SelectionSuppressed reports whether a pointer gesture is in progress and
// text selection should be suppressed.
func (s *Scene) SelectionSuppressed() bool {
	return s.selectionLocks > 0
}

func (s *Scene) suppressSelection() {
	s.selectionLocks++
}

func (s *Scene) restoreSelection() {
	if s.selectionLocks > 0 {
		s.selectionLocks--
	}
}

// ActiveDrags returns the number of gestures currently in progress.
func (s *Scene) ActiveDrags() int {
	return s.activeGestures
}

// lookupDroppable resolves a drop target ID to a mounted Droppable. A target
// whose node has been disposed is unmounted and reported as absent.
func (s *Scene) lookupDroppable(id uint32) *Droppable {
	if id == 0 {
		return nil
	}
	d := s.droppables[id]
	if d == nil {
		return nil
	}
	if d.node == nil || d.node.IsDisposed() {
		s.logger.Debug("droppable node disposed", zap.Uint32("droppable", id))
		d.Unmount()
		delete(s.droppables, id)
		return nil
	}
	return d
}

// pruneDroppables drops registry entries whose nodes were disposed.
func (s *Scene) pruneDroppables() {
	for id := range s.droppables {
		s.lookupDroppable(id)
	}
}
