package dnd

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		wantErr string
	}{
		{"malformed json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "fling"}]}`, `unknown action "fling"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	_, err := LoadTestScript([]byte(`{"steps": []}`))
	if !errors.Is(err, errNoSteps) {
		t.Errorf("errors.Is(err, errNoSteps) = false for %v", err)
	}
}

// runScript steps the scene until the runner finishes or limit frames pass.
func runScript(t *testing.T, s *Scene, r *TestRunner, limit int) {
	t.Helper()
	s.SetTestRunner(r)
	for i := 0; i < limit && !r.Done(); i++ {
		s.step(1.0 / 60)
	}
	if !r.Done() {
		t.Fatalf("script not finished after %d frames", limit)
	}
}

func TestScriptedDrag(t *testing.T) {
	s, src := newDragScene()
	var log []string
	bin := addTarget(s, "bin", 100, 0, &log, "card")

	var dropTarget *Droppable
	d := NewDraggable("card")
	d.OnEnd = func(ev DndEvent) { dropTarget = ev.DropTarget }
	d.Mount(s, src)

	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "drag", "fromX": 20, "fromY": 20, "toX": 120, "toY": 20, "frames": 4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 20)

	if !slices.Contains(log, "bin:drop") {
		t.Errorf("log = %v, want a drop on bin", log)
	}
	if dropTarget != bin {
		t.Error("OnEnd did not report the bin as drop target")
	}
	if s.ActiveDrags() != 0 {
		t.Error("gesture still open after the script")
	}
}

func TestScriptedTouch(t *testing.T) {
	s, src := newDragScene()
	var starts, ends int
	d := NewDraggable("")
	d.OnStart = func(DndEvent) { starts++ }
	d.OnEnd = func(DndEvent) { ends++ }
	d.Mount(s, src)

	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "touchstart", "id": 3, "x": 10, "y": 10},
		{"action": "touchmove", "id": 3, "x": 30, "y": 10},
		{"action": "touchend", "id": 3, "x": 30, "y": 10}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r, 20)

	if starts != 1 || ends != 1 {
		t.Errorf("starts=%d ends=%d, want 1 and 1", starts, ends)
	}
}

func TestScriptScrollAndWait(t *testing.T) {
	s := NewScene()
	cam := s.NewCamera(Rect{Width: 320, Height: 240})

	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "scroll", "x": 100, "y": 50},
		{"action": "wait", "frames": 3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)

	s.step(1.0 / 60)
	if cam.X != 100 || cam.Y != 50 {
		t.Errorf("camera = (%v,%v), want (100,50)", cam.X, cam.Y)
	}
	for i := 0; i < 3; i++ {
		s.step(1.0 / 60)
	}
	if r.Done() {
		t.Fatal("runner finished before the wait elapsed")
	}
	s.step(1.0 / 60)
	if !r.Done() {
		t.Error("runner not done after the wait")
	}
}
