package ecs

import (
	"testing"

	"github.com/phanxgames/dnd"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []dnd.DragRecord
	DragEventType.Subscribe(world, func(w donburi.World, r dnd.DragRecord) {
		received = append(received, r)
	})

	store.EmitEvent(dnd.DragRecord{
		Type:           dnd.EventDragStart,
		SourceEntityID: 42,
		PageX:          100,
		PageY:          200,
		DragType:       "card",
	})
	store.EmitEvent(dnd.DragRecord{
		Type:           dnd.EventDrop,
		SourceEntityID: 42,
		TargetEntityID: 7,
	})

	// Records are queued until processed.
	DragEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 records, got %d", len(received))
	}
	r0 := received[0]
	if r0.Type != dnd.EventDragStart || r0.SourceEntityID != 42 || r0.DragType != "card" {
		t.Errorf("record 0: %+v", r0)
	}
	if r0.PageX != 100 || r0.PageY != 200 {
		t.Errorf("record 0 position: (%v,%v)", r0.PageX, r0.PageY)
	}
	if r1 := received[1]; r1.Type != dnd.EventDrop || r1.TargetEntityID != 7 {
		t.Errorf("record 1: %+v", r1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store dnd.EntityStore = NewDonburiStore(world)
	_ = store
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	DragEventType.Subscribe(world, func(w donburi.World, r dnd.DragRecord) {
		count1++
	})
	DragEventType.Subscribe(world, func(w donburi.World, r dnd.DragRecord) {
		count2++
	})

	store.EmitEvent(dnd.DragRecord{Type: dnd.EventDragEnd})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_SceneDragLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	scene := dnd.NewScene()
	scene.SetEntityStore(NewDonburiStore(world))

	src := dnd.NewRect("src", 40, 40, dnd.ColorWhite)
	src.EntityID = 7
	scene.Root().AddChild(src)
	dnd.NewDraggable("card").Mount(scene, src)

	dst := dnd.NewRect("dst", 40, 40, dnd.ColorWhite)
	dst.X = 100
	dst.EntityID = 9
	scene.Root().AddChild(dst)
	dnd.NewDroppable("card").Mount(scene, dst)

	var got []dnd.EventType
	var drop dnd.DragRecord
	DragEventType.Subscribe(world, func(w donburi.World, r dnd.DragRecord) {
		got = append(got, r.Type)
		if r.Type == dnd.EventDrop {
			drop = r
		}
	})

	scene.InjectPress(10, 10)
	scene.InjectMove(60, 10)
	scene.InjectMove(120, 10)
	scene.InjectRelease(120, 10)
	for scene.PendingInput() > 0 {
		scene.Update()
	}
	DragEventType.ProcessEvents(world)

	want := []dnd.EventType{
		dnd.EventDragStart, dnd.EventDrag,
		dnd.EventDragEnter, dnd.EventDrag,
		dnd.EventDragLeave, dnd.EventDrop, dnd.EventDragEnd,
	}
	if len(got) != len(want) {
		t.Fatalf("records = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, got[i], want[i])
		}
	}
	if drop.SourceEntityID != 7 || drop.TargetEntityID != 9 {
		t.Errorf("drop record entities = %d -> %d, want 7 -> 9", drop.SourceEntityID, drop.TargetEntityID)
	}
}
