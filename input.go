package dnd

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Window-level listener registry ---

type mouseHandler struct {
	id uint32
	fn func(MouseContext)
}

type touchHandler struct {
	id uint32
	fn func(TouchContext)
}

type listenerKind uint8

const (
	listenMouseMove listenerKind = iota
	listenMouseUp
	listenTouchMove
	listenTouchEnd
	listenTouchCancel
)

type handlerRegistry struct {
	mouseMove   []mouseHandler
	mouseUp     []mouseHandler
	touchMove   []touchHandler
	touchEnd    []touchHandler
	touchCancel []touchHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered window-level callback.
type CallbackHandle struct {
	id   uint32
	reg  *handlerRegistry
	kind listenerKind
}

// Remove unregisters this callback so it no longer fires. Removing from
// inside a dispatch does not disturb the handlers still to be called.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.kind {
	case listenMouseMove:
		h.reg.mouseMove = removeHandler(h.reg.mouseMove, func(m mouseHandler) bool { return m.id == h.id })
	case listenMouseUp:
		h.reg.mouseUp = removeHandler(h.reg.mouseUp, func(m mouseHandler) bool { return m.id == h.id })
	case listenTouchMove:
		h.reg.touchMove = removeHandler(h.reg.touchMove, func(t touchHandler) bool { return t.id == h.id })
	case listenTouchEnd:
		h.reg.touchEnd = removeHandler(h.reg.touchEnd, func(t touchHandler) bool { return t.id == h.id })
	case listenTouchCancel:
		h.reg.touchCancel = removeHandler(h.reg.touchCancel, func(t touchHandler) bool { return t.id == h.id })
	}
}

func removeHandler[T any](s []T, match func(T) bool) []T {
	i := slices.IndexFunc(s, match)
	if i < 0 {
		return s
	}
	return slices.Concat(s[:i], s[i+1:])
}

func (r *handlerRegistry) addMouse(list *[]mouseHandler, kind listenerKind, fn func(MouseContext)) CallbackHandle {
	r.nextID++
	*list = append(*list, mouseHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, kind: kind}
}

func (r *handlerRegistry) addTouch(list *[]touchHandler, kind listenerKind, fn func(TouchContext)) CallbackHandle {
	r.nextID++
	*list = append(*list, touchHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, kind: kind}
}

// OnMouseMove registers a window-level callback for mouse moves.
func (s *Scene) OnMouseMove(fn func(MouseContext)) CallbackHandle {
	return s.handlers.addMouse(&s.handlers.mouseMove, listenMouseMove, fn)
}

// OnMouseUp registers a window-level callback for mouse button releases.
func (s *Scene) OnMouseUp(fn func(MouseContext)) CallbackHandle {
	return s.handlers.addMouse(&s.handlers.mouseUp, listenMouseUp, fn)
}

// OnTouchMove registers a window-level callback for touch moves.
func (s *Scene) OnTouchMove(fn func(TouchContext)) CallbackHandle {
	return s.handlers.addTouch(&s.handlers.touchMove, listenTouchMove, fn)
}

// OnTouchEnd registers a window-level callback for lifted fingers.
func (s *Scene) OnTouchEnd(fn func(TouchContext)) CallbackHandle {
	return s.handlers.addTouch(&s.handlers.touchEnd, listenTouchEnd, fn)
}

// OnTouchCancel registers a window-level callback for cancelled touches.
func (s *Scene) OnTouchCancel(fn func(TouchContext)) CallbackHandle {
	return s.handlers.addTouch(&s.handlers.touchCancel, listenTouchCancel, fn)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the Width x Height rectangle.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order, appending
// hit-testable nodes to buf. Skips Visible=false or Interactable=false
// subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.paintOrder() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// HitTest returns the topmost interactable node at the world-space point,
// or nil. The overlay layer is never hit.
func (s *Scene) HitTest(worldX, worldY float64) *Node {
	s.Refresh()
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			clear(s.hitBuf)
			return n
		}
	}
	clear(s.hitBuf)
	return nil
}

// --- Raw input records ---

// MouseInput is a raw mouse record in screen coordinates.
type MouseInput struct {
	Phase     Phase
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// Touch is one finger of a raw touch record in screen coordinates.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchInput is a raw touch record. Touches holds every finger still down
// after the record; Changed holds the fingers that started, moved, ended, or
// were cancelled.
type TouchInput struct {
	Phase     Phase
	Touches   []Touch
	Changed   []Touch
	Modifiers KeyModifiers
}

// HandleMouse delivers a raw mouse record. Presses bubble OnMouseDown from
// the node under the pointer to the root; moves and releases go to the
// window-level listeners.
func (s *Scene) HandleMouse(in MouseInput) {
	wx, wy := s.ScreenToWorld(in.X, in.Y)
	ctx := MouseContext{
		Target:    s.HitTest(wx, wy),
		Button:    in.Button,
		ScreenX:   in.X,
		ScreenY:   in.Y,
		WorldX:    wx,
		WorldY:    wy,
		Modifiers: in.Modifiers,
	}
	switch in.Phase {
	case PhaseDown:
		for n := ctx.Target; n != nil; n = n.Parent {
			if n.OnMouseDown != nil {
				n.OnMouseDown(ctx)
			}
		}
	case PhaseMove:
		for _, h := range s.handlers.mouseMove {
			h.fn(ctx)
		}
	case PhaseUp, PhaseCancel:
		for _, h := range s.handlers.mouseUp {
			h.fn(ctx)
		}
	}
}

// HandleTouch delivers a raw touch record. Starts bubble OnTouchStart from
// the node under the first changed finger; the other phases go to the
// window-level listeners.
func (s *Scene) HandleTouch(in TouchInput) {
	ctx := TouchContext{
		Touches:   s.touchPoints(in.Touches),
		Changed:   s.touchPoints(in.Changed),
		Modifiers: in.Modifiers,
	}
	if len(ctx.Changed) > 0 {
		ctx.Target = s.HitTest(ctx.Changed[0].WorldX, ctx.Changed[0].WorldY)
	}
	switch in.Phase {
	case PhaseDown:
		for n := ctx.Target; n != nil; n = n.Parent {
			if n.OnTouchStart != nil {
				n.OnTouchStart(ctx)
			}
		}
	case PhaseMove:
		for _, h := range s.handlers.touchMove {
			h.fn(ctx)
		}
	case PhaseUp:
		for _, h := range s.handlers.touchEnd {
			h.fn(ctx)
		}
	case PhaseCancel:
		for _, h := range s.handlers.touchCancel {
			h.fn(ctx)
		}
	}
}

func (s *Scene) touchPoints(in []Touch) []TouchPoint {
	if len(in) == 0 {
		return nil
	}
	out := make([]TouchPoint, len(in))
	for i, t := range in {
		wx, wy := s.ScreenToWorld(t.X, t.Y)
		out[i] = TouchPoint{ID: t.ID, ScreenX: t.X, ScreenY: t.Y, WorldX: wx, WorldY: wy}
	}
	return out
}

// --- Ebiten polling ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

var ebitenButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// processInput is called from Scene.Update to turn this tick's mouse and
// touch state into raw records. A queued synthetic event replaces polling.
func (s *Scene) processInput() {
	mods := readModifiers()
	if s.processInjectedInput(mods) {
		return
	}
	s.pollMouse(mods)
	s.pollTouches(mods)
}

func (s *Scene) pollMouse(mods KeyModifiers) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			s.HandleMouse(MouseInput{Phase: PhaseDown, X: x, Y: y, Button: b.btn, Modifiers: mods})
		}
	}
	if x != s.cursor.X || y != s.cursor.Y {
		s.cursor = Vec2{x, y}
		s.HandleMouse(MouseInput{Phase: PhaseMove, X: x, Y: y, Modifiers: mods})
	}
	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			s.HandleMouse(MouseInput{Phase: PhaseUp, X: x, Y: y, Button: b.btn, Modifiers: mods})
		}
	}
}

func (s *Scene) pollTouches(mods KeyModifiers) {
	ids := ebiten.AppendTouchIDs(s.touchIDs[:0])
	s.touchIDs = ids

	current := make([]Touch, 0, len(ids))
	for _, id := range ids {
		x, y := ebiten.TouchPosition(id)
		current = append(current, Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}

	s.justTouched = inpututil.AppendJustPressedTouchIDs(s.justTouched[:0])
	for _, id := range s.justTouched {
		if t, ok := findTouch(current, int(id)); ok {
			s.HandleTouch(TouchInput{Phase: PhaseDown, Touches: current, Changed: []Touch{t}, Modifiers: mods})
		}
	}

	var moved []Touch
	for _, t := range current {
		prev, ok := s.touchPos[t.ID]
		if ok && (prev.X != t.X || prev.Y != t.Y) {
			moved = append(moved, t)
		}
	}
	if len(moved) > 0 {
		s.HandleTouch(TouchInput{Phase: PhaseMove, Touches: current, Changed: moved, Modifiers: mods})
	}

	s.justReleased = inpututil.AppendJustReleasedTouchIDs(s.justReleased[:0])
	if len(s.justReleased) > 0 {
		ended := make([]Touch, 0, len(s.justReleased))
		for _, id := range s.justReleased {
			x, y := inpututil.TouchPositionInPreviousTick(id)
			ended = append(ended, Touch{ID: int(id), X: float64(x), Y: float64(y)})
		}
		s.HandleTouch(TouchInput{Phase: PhaseUp, Touches: current, Changed: ended, Modifiers: mods})
	}

	clear(s.touchPos)
	for _, t := range current {
		s.touchPos[t.ID] = Vec2{t.X, t.Y}
	}
}

func findTouch(touches []Touch, id int) (Touch, bool) {
	for _, t := range touches {
		if t.ID == id {
			return t, true
		}
	}
	return Touch{}, false
}
