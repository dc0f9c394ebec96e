package dnd

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image scaled and tinted to draw rect nodes.
// Created lazily so the package can be used without a graphics context.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders the world once per camera, then the overlay in screen space
// on top of everything.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.Refresh()

	if len(s.cameras) == 0 {
		drawTree(screen, s.root, identityTransform)
	}
	for _, cam := range s.cameras {
		vp := cam.Viewport
		target := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		drawTree(target, s.root, cam.computeViewMatrix())
	}

	drawTree(screen, s.overlay, identityTransform)
}

// drawTree draws n and its descendants in painter order. view is applied on
// top of each node's world transform.
func drawTree(dst *ebiten.Image, n *Node, view [6]float64) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeRect && n.Width > 0 && n.Height > 0 {
		drawRect(dst, n, multiplyAffine(view, n.worldTransform))
	}
	for _, child := range n.paintOrder() {
		drawTree(dst, child, view)
	}
}

func drawRect(dst *ebiten.Image, n *Node, m [6]float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.Width, n.Height)
	var world ebiten.GeoM
	world.SetElement(0, 0, m[0])
	world.SetElement(1, 0, m[1])
	world.SetElement(0, 1, m[2])
	world.SetElement(1, 1, m[3])
	world.SetElement(0, 2, m[4])
	world.SetElement(1, 2, m[5])
	op.GeoM.Concat(world)

	a := float32(n.Color.A * n.worldAlpha)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
	dst.DrawImage(ensureWhitePixel(), &op)
}
