package dnd

import "testing"

func TestDroppableAcceptable(t *testing.T) {
	tests := []struct {
		name    string
		accepts []DragType
		typ     DragType
		want    bool
	}{
		{"single", []DragType{"card"}, "card", true},
		{"list", []DragType{"card", "file"}, "file", true},
		{"not listed", []DragType{"card"}, "file", false},
		{"empty type", []DragType{"card"}, "", false},
		{"empty type listed", []DragType{""}, "", false},
		{"nothing accepted", nil, "card", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDroppable(tt.accepts...)
			if got := d.Acceptable(tt.typ); got != tt.want {
				t.Errorf("Acceptable(%q) = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestDroppableIDsAreUnique(t *testing.T) {
	a := NewDroppable()
	b := NewDroppable()
	if a.ID() == 0 || a.ID() == b.ID() {
		t.Errorf("IDs = %d, %d", a.ID(), b.ID())
	}
}

func TestDroppableMountUnmount(t *testing.T) {
	s := NewScene()
	n := NewRect("bin", 10, 10, ColorWhite)
	s.Root().AddChild(n)

	d := NewDroppable("card")
	d.Mount(s, n)
	if !d.Mounted() || d.Node() != n {
		t.Fatal("not mounted")
	}
	if n.NumEventListeners(DragEventName) != 1 {
		t.Errorf("listeners = %d, want 1", n.NumEventListeners(DragEventName))
	}
	if s.lookupDroppable(d.ID()) != d {
		t.Error("not registered with the scene")
	}

	// Mounting again moves the listener rather than adding a second one.
	other := NewRect("other", 10, 10, ColorWhite)
	s.Root().AddChild(other)
	d.Mount(s, other)
	if n.NumEventListeners(DragEventName) != 0 || other.NumEventListeners(DragEventName) != 1 {
		t.Error("remount left a stale listener")
	}

	d.Unmount()
	d.Unmount()
	if d.Mounted() || other.NumEventListeners(DragEventName) != 0 {
		t.Error("unmount left the listener in place")
	}
	if s.lookupDroppable(d.ID()) != nil {
		t.Error("still registered after unmount")
	}
}

func TestDroppableHandleDrag(t *testing.T) {
	s := NewScene()
	n := NewRect("bin", 10, 10, ColorWhite)
	s.Root().AddChild(n)

	d := NewDroppable("card")
	var over DndEvent
	var calls int
	d.OnDragOver = func(ev DndEvent) {
		calls++
		over = ev
	}
	d.Mount(s, n)

	n.DispatchEvent(NewCustomEvent(DragEventName, DndEvent{Type: "file", Target: n}))
	if calls != 0 {
		t.Fatal("OnDragOver fired for an unaccepted type")
	}

	ev := NewCustomEvent(DragEventName, DndEvent{Type: "card", Target: n})
	n.DispatchEvent(ev)
	if calls != 1 {
		t.Fatalf("OnDragOver fired %d times, want 1", calls)
	}
	if over.DropTarget != d {
		t.Error("OnDragOver event does not name the target")
	}
	if ev.AcceptedBy() != d {
		t.Error("event not accepted")
	}
}

func TestNodeDisposeDropsDroppableListener(t *testing.T) {
	s := NewScene()
	n := NewRect("bin", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	NewDroppable("card").Mount(s, n)

	n.Dispose()
	if n.NumEventListeners(DragEventName) != 0 {
		t.Error("disposed node kept its listeners")
	}
}

func TestDisposedDroppablePrunedOnUpdate(t *testing.T) {
	s := NewScene()
	n := NewRect("bin", 10, 10, ColorWhite)
	s.Root().AddChild(n)
	d := NewDroppable("card")
	d.Mount(s, n)

	n.Dispose()
	s.pruneDroppables()
	if d.Mounted() || len(s.droppables) != 0 {
		t.Error("disposed droppable still registered")
	}
	if s.lookupDroppable(d.ID()) != nil {
		t.Error("lookup returned a disposed droppable")
	}
}
