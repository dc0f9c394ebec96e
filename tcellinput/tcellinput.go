// Package tcellinput feeds terminal mouse events into a dnd scene, so drag
// gestures can be driven from a tcell screen.
package tcellinput

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/dnd"
)

// MouseHandler receives raw mouse records. *dnd.Scene implements it.
type MouseHandler interface {
	HandleMouse(in dnd.MouseInput)
}

var buttonMap = [...]struct {
	mask tcell.ButtonMask
	btn  dnd.MouseButton
}{
	{tcell.ButtonPrimary, dnd.MouseButtonLeft},
	{tcell.ButtonSecondary, dnd.MouseButtonRight},
	{tcell.ButtonMiddle, dnd.MouseButtonMiddle},
}

// Adapter converts tcell mouse events to dnd mouse records. Terminals report
// the full button state on every event, so the adapter keeps the previous
// state to derive press and release edges.
type Adapter struct {
	// CellWidth and CellHeight scale cell coordinates to scene pixels. Zero
	// means 1. Pointers are placed at the centre of the cell.
	CellWidth, CellHeight float64

	target  MouseHandler
	buttons tcell.ButtonMask
	x, y    float64
	seen    bool
}

// New creates an Adapter delivering to target.
func New(target MouseHandler) *Adapter {
	return &Adapter{target: target}
}

// HandleEvent processes ev. Non-mouse events are ignored and reported as not
// handled.
func (a *Adapter) HandleEvent(ev tcell.Event) bool {
	me, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	a.handleMouse(me)
	return true
}

func (a *Adapter) scale() (float64, float64) {
	cw, ch := a.CellWidth, a.CellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return cw, ch
}

func (a *Adapter) handleMouse(me *tcell.EventMouse) {
	cx, cy := me.Position()
	cw, ch := a.scale()
	x := (float64(cx) + 0.5) * cw
	y := (float64(cy) + 0.5) * ch
	mods := convertMod(me.Modifiers())
	buttons := me.Buttons() & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)

	pressed := buttons &^ a.buttons
	released := a.buttons &^ buttons

	if !a.seen || x != a.x || y != a.y {
		a.seen = true
		a.x, a.y = x, y
		a.target.HandleMouse(dnd.MouseInput{Phase: dnd.PhaseMove, X: x, Y: y, Modifiers: mods})
	}
	for _, b := range buttonMap {
		if pressed&b.mask != 0 {
			a.target.HandleMouse(dnd.MouseInput{Phase: dnd.PhaseDown, X: x, Y: y, Button: b.btn, Modifiers: mods})
		}
	}
	for _, b := range buttonMap {
		if released&b.mask != 0 {
			a.target.HandleMouse(dnd.MouseInput{Phase: dnd.PhaseUp, X: x, Y: y, Button: b.btn, Modifiers: mods})
		}
	}
	a.buttons = buttons
}

func convertMod(m tcell.ModMask) dnd.KeyModifiers {
	var mods dnd.KeyModifiers
	if m&tcell.ModShift != 0 {
		mods |= dnd.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= dnd.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= dnd.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= dnd.ModMeta
	}
	return mods
}
