// Package ecs bridges dnd drag lifecycle records into an ECS world.
//
// The primary adapter is [NewDonburiStore], which publishes every
// [dnd.DragRecord] into a [Donburi] world as a typed event. Give dragged
// nodes and drop targets an EntityID so systems can tell them apart.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
