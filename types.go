package dnd

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses a "#rrggbb" or "#rgb" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustParseColor is like ParseColor but panics on malformed input.
// Intended for package-level palette declarations.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic("dnd: " + err.Error())
	}
	return c
}

func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	a := clamp(c.A)
	return color.RGBA{
		R: clamp(c.R * c.A),
		G: clamp(c.G * c.A),
		B: clamp(c.B * c.A),
		A: a,
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle (zero width and height) is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.Width == 0 && r.Height == 0 {
		return other
	}
	if other.Width == 0 && other.Height == 0 {
		return r
	}
	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeRect                      // solid-color rectangle of Width x Height
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// PointerKind identifies the input device that drives a gesture.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// Phase is the lifecycle stage of a raw pointer record.
type Phase uint8

const (
	PhaseDown   Phase = iota // mouse button pressed / touch started
	PhaseMove                // pointer moved
	PhaseUp                  // mouse button released / touch ended
	PhaseCancel              // touch cancelled by the platform
)

// EventType identifies a drag lifecycle record forwarded to an EntityStore.
type EventType uint8

const (
	EventDragStart EventType = iota // threshold crossed
	EventDrag                       // every move while dragging
	EventDragEnter                  // pointer entered an accepting drop target
	EventDragLeave                  // pointer left an accepting drop target
	EventDrop                       // released over an accepting drop target
	EventDragEnd                    // gesture finished after dragging
)

func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "dragstart"
	case EventDrag:
		return "drag"
	case EventDragEnter:
		return "dragenter"
	case EventDragLeave:
		return "dragleave"
	case EventDrop:
		return "drop"
	case EventDragEnd:
		return "dragend"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}
