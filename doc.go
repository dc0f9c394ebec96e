// Package dnd implements pointer-based drag and drop on a retained 2D scene
// graph rendered with [Ebitengine].
//
// Three components attach to nodes:
//
//   - [Draggable] turns a mouse press or a single-finger touch into a drag
//     once the pointer has moved past a small threshold. While dragging, a
//     translucent drag layer follows the pointer in the scene overlay.
//   - [Droppable] marks a node as a drop target for a set of drag types. It
//     is told when an accepted drag enters, moves over, leaves, or is
//     released over it.
//   - [Sortable] combines both on the items of a container so they can be
//     reordered by dragging. The final move is reported as (from, to) and
//     can be applied to a backing list with [ArrayMove].
//
// # Quick start
//
//	scene := dnd.NewScene()
//	box := dnd.NewRect("card", 80, 40, dnd.MustParseColor("#4aa3df"))
//	scene.Root().AddChild(box)
//
//	drag := dnd.NewDraggable("card")
//	drag.Mount(scene, box)
//
//	bin := dnd.NewRect("bin", 120, 120, dnd.MustParseColor("#333333"))
//	bin.X = 300
//	scene.Root().AddChild(bin)
//
//	drop := dnd.NewDroppable("card")
//	drop.OnDrop = func(ev dnd.DndEvent) { log.Println("dropped", ev.DragData) }
//	drop.Mount(scene, bin)
//
//	if err := dnd.Run(scene, dnd.RunConfig{Title: "dnd", Width: 640, Height: 480}); err != nil {
//		log.Fatal(err)
//	}
//
// # Coordinates
//
// Client coordinates are screen pixels. Page coordinates are world
// coordinates seen through the first [Camera]; panning the camera plays the
// role of scrolling. Deltas are measured in page space so they stay correct
// while the view scrolls under a held pointer.
//
// # Testing
//
// Synthetic input is queued with [Scene.InjectPress], [Scene.InjectMove],
// [Scene.InjectTouchStart] and friends, or scripted in JSON with
// [LoadTestScript]. Each queued event is consumed by one [Scene.Update].
//
// [Ebitengine]: https://ebitengine.org
package dnd
