package tcellinput

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/dnd"
)

type recorder struct {
	got []dnd.MouseInput
}

func (r *recorder) HandleMouse(in dnd.MouseInput) {
	r.got = append(r.got, in)
}

func TestAdapter_PressMoveRelease(t *testing.T) {
	rec := &recorder{}
	a := New(rec)
	a.CellWidth, a.CellHeight = 8, 16

	a.HandleEvent(tcell.NewEventMouse(2, 1, tcell.ButtonPrimary, tcell.ModShift))
	a.HandleEvent(tcell.NewEventMouse(4, 1, tcell.ButtonPrimary, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(4, 1, tcell.ButtonNone, tcell.ModNone))

	want := []dnd.MouseInput{
		{Phase: dnd.PhaseMove, X: 20, Y: 24, Modifiers: dnd.ModShift},
		{Phase: dnd.PhaseDown, X: 20, Y: 24, Button: dnd.MouseButtonLeft, Modifiers: dnd.ModShift},
		{Phase: dnd.PhaseMove, X: 36, Y: 24},
		{Phase: dnd.PhaseUp, X: 36, Y: 24, Button: dnd.MouseButtonLeft},
	}
	if len(rec.got) != len(want) {
		t.Fatalf("got %d records %+v, want %d", len(rec.got), rec.got, len(want))
	}
	for i := range want {
		if rec.got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec.got[i], want[i])
		}
	}
}

func TestAdapter_Buttons(t *testing.T) {
	tests := []struct {
		name string
		mask tcell.ButtonMask
		want dnd.MouseButton
	}{
		{"primary", tcell.ButtonPrimary, dnd.MouseButtonLeft},
		{"secondary", tcell.ButtonSecondary, dnd.MouseButtonRight},
		{"middle", tcell.ButtonMiddle, dnd.MouseButtonMiddle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			a := New(rec)
			a.HandleEvent(tcell.NewEventMouse(0, 0, tt.mask, tcell.ModNone))
			last := rec.got[len(rec.got)-1]
			if last.Phase != dnd.PhaseDown || last.Button != tt.want {
				t.Errorf("got %+v, want press of %v", last, tt.want)
			}
		})
	}
}

func TestAdapter_WheelIgnored(t *testing.T) {
	rec := &recorder{}
	a := New(rec)
	a.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	for _, in := range rec.got {
		if in.Phase != dnd.PhaseMove {
			t.Errorf("wheel produced %+v", in)
		}
	}
}

func TestAdapter_NonMouseEvent(t *testing.T) {
	rec := &recorder{}
	a := New(rec)
	if a.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Error("key event reported as handled")
	}
	if len(rec.got) != 0 {
		t.Errorf("key event produced %d records", len(rec.got))
	}
}

func TestAdapter_DragsSceneNode(t *testing.T) {
	scene := dnd.NewScene()
	card := dnd.NewRect("card", 40, 40, dnd.ColorWhite)
	scene.Root().AddChild(card)

	var ended bool
	var dx float64
	d := dnd.NewDraggable("")
	d.OnEnd = func(ev dnd.DndEvent) {
		ended = true
		dx = ev.DeltaX
	}
	d.Mount(scene, card)

	a := New(scene)
	a.CellWidth, a.CellHeight = 10, 10
	a.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(3, 1, tcell.ButtonPrimary, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone))

	if !ended {
		t.Fatal("drag did not end")
	}
	if dx != 20 {
		t.Errorf("DeltaX = %v, want 20", dx)
	}
}
