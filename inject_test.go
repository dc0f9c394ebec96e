package dnd

import "testing"

func TestInjectMouseQueue(t *testing.T) {
	s := NewScene()
	n := NewRect("n", 100, 100, ColorWhite)
	s.Root().AddChild(n)

	var pressed, released int
	n.OnMouseDown = func(MouseContext) { pressed++ }
	s.OnMouseUp(func(MouseContext) { released++ })

	s.InjectClick(50, 50)
	if s.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", s.PendingInput())
	}

	// Frame 1: press
	s.processInput()
	if s.PendingInput() != 1 || pressed != 1 || released != 0 {
		t.Fatalf("after frame 1: pending %d, pressed %d, released %d", s.PendingInput(), pressed, released)
	}

	// Frame 2: release
	s.processInput()
	if s.PendingInput() != 0 || released != 1 {
		t.Fatalf("after frame 2: pending %d, released %d", s.PendingInput(), released)
	}
}

func TestInjectDragFrames(t *testing.T) {
	tests := []struct {
		name   string
		frames int
		want   int
	}{
		{"minimum", 0, 3},
		{"two", 2, 3},
		{"five", 5, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			s.InjectDrag(0, 0, 100, 0, tt.frames)
			if s.PendingInput() != tt.want {
				t.Errorf("queued %d events, want %d", s.PendingInput(), tt.want)
			}
			last := s.injectQueue[len(s.injectQueue)-1]
			if last.phase != PhaseUp || last.screenX != 100 {
				t.Errorf("last event = %+v, want release at 100", last)
			}
		})
	}
}

func TestInjectTouchTracksFingers(t *testing.T) {
	s := NewScene()
	var last TouchContext
	record := func(ctx TouchContext) { last = ctx }
	s.OnTouchMove(record)
	s.OnTouchEnd(record)
	s.OnTouchCancel(record)

	s.InjectTouchStart(1, 10, 10)
	s.InjectTouchStart(2, 50, 50)
	s.InjectTouchMove(1, 20, 10)
	drain(s)
	if len(last.Touches) != 2 || len(last.Changed) != 1 || last.Changed[0].ScreenX != 20 {
		t.Fatalf("move ctx = %+v", last)
	}

	s.InjectTouchEnd(2, 50, 50)
	drain(s)
	if len(last.Touches) != 1 || last.Touches[0].ID != 1 || last.Changed[0].ID != 2 {
		t.Fatalf("end ctx = %+v", last)
	}

	s.InjectTouchCancel(1)
	drain(s)
	if len(last.Touches) != 0 || last.Changed[0].ScreenX != 20 {
		t.Fatalf("cancel ctx = %+v, want last known position", last)
	}
}

func TestInjectedInputUsesCamera(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 640, Height: 480})
	cam.ScrollBy(0, 200)

	n := NewRect("n", 50, 50, ColorWhite)
	n.Y = 200
	s.Root().AddChild(n)

	var hit bool
	n.OnMouseDown = func(MouseContext) { hit = true }
	s.InjectPress(10, 10)
	drain(s)
	if !hit {
		t.Error("injected press did not reach the node under the scrolled camera")
	}
}
