package dnd

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// channel drives one float64 field of a node.
type channel struct {
	tween *gween.Tween
	field *float64
	done  bool
}

// TweenGroup animates one or more fields of a Node together, for example a
// sortable item sliding into its new slot. Register it with Scene.Animate to
// have it advanced every Update, or call Update(dt) yourself.
//
// The group stops without writing if its node is disposed. Setting Done
// cancels it; the fields keep whatever value they last received.
type TweenGroup struct {
	// OnDone runs once when every channel has reached its end value. It does
	// not run for cancelled groups or disposed nodes.
	OnDone func()
	Done   bool

	target   *Node
	channels []channel
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, pairs ...*float64) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: node, channels: make([]channel, 0, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		field, to := pairs[i], *pairs[i+1]
		g.channels = append(g.channels, channel{
			tween: gween.New(float32(*field), float32(to), duration, fn),
			field: field,
		})
	}
	return g
}

// Update advances the group by dt seconds and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	finished := true
	for i := range g.channels {
		c := &g.channels[i]
		if c.done {
			continue
		}
		val, done := c.tween.Update(dt)
		*c.field = float64(val)
		c.done = done
		finished = finished && done
	}
	g.target.MarkDirty()

	if finished {
		g.Done = true
		if g.OnDone != nil {
			g.OnDone()
		}
	}
}

// TweenPosition moves node to (toX, toY) over duration seconds. A nil easing
// function is linear.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, &node.X, &toX, &node.Y, &toY)
}

// TweenAlpha fades node to the given alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, &node.Alpha, &to)
}
