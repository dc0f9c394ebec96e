// Package ecs provides ECS adapters for dnd.
package ecs

import (
	"github.com/phanxgames/dnd"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DragEventType is the Donburi event type for drag lifecycle records.
// Subscribe to this in your ECS systems to receive drag start, drag, enter,
// leave, drop, and end records.
var DragEventType = events.NewEventType[dnd.DragRecord]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Records are published to DragEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dnd.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(record dnd.DragRecord) {
	DragEventType.Publish(s.world, record)
}
