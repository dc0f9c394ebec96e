package dnd

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraScreenWorldRoundTrip(t *testing.T) {
	cam := newCamera(Rect{X: 20, Y: 10, Width: 320, Height: 240})
	cam.X, cam.Y = 100, 200
	cam.Zoom = 2
	cam.MarkDirty()

	wx, wy := cam.ScreenToWorld(20, 10)
	if !approxEqual(wx, 100) || !approxEqual(wy, 200) {
		t.Errorf("viewport origin maps to (%v,%v), want (100,200)", wx, wy)
	}
	sx, sy := cam.WorldToScreen(wx+5, wy+5)
	if !approxEqual(sx, 30) || !approxEqual(sy, 20) {
		t.Errorf("WorldToScreen = (%v,%v), want (30,20)", sx, sy)
	}

	vb := cam.VisibleBounds()
	if !approxEqual(vb.Width, 160) || !approxEqual(vb.Height, 120) {
		t.Errorf("VisibleBounds = %+v", vb)
	}
}

func TestCameraScrollTo(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 640, Height: 480})
	cam.ScrollTo(100, 40, 0.5, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	cam.update(0.25)
	if !approxEqual(cam.X, 50) || !approxEqual(cam.Y, 20) {
		t.Errorf("half way = (%v,%v), want (50,20)", cam.X, cam.Y)
	}
	cam.update(0.5)
	if cam.X != 100 || cam.Y != 40 || cam.Scrolling() {
		t.Errorf("after scroll = (%v,%v), scrolling %v", cam.X, cam.Y, cam.Scrolling())
	}
	if wx, _ := s.ScreenToWorld(0, 0); wx != 100 {
		t.Errorf("ScreenToWorld did not follow the scroll: %v", wx)
	}
}

func TestCameraScrollToImmediate(t *testing.T) {
	cam := newCamera(Rect{Width: 100, Height: 100})
	cam.ScrollTo(30, 60, 0, nil)
	if cam.X != 30 || cam.Y != 60 || cam.Scrolling() {
		t.Errorf("camera = (%v,%v), scrolling %v", cam.X, cam.Y, cam.Scrolling())
	}
}

func TestSceneRemoveCamera(t *testing.T) {
	s := NewScene()
	a := s.NewCamera(Rect{Width: 10, Height: 10})
	b := s.NewCamera(Rect{Width: 10, Height: 10})
	s.RemoveCamera(a)
	if len(s.Cameras()) != 1 || s.primaryCamera() != b {
		t.Error("RemoveCamera did not promote the next camera")
	}
}
