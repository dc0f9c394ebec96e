package dnd

// ArrayMove moves the element at index from to index to, shifting the
// elements in between, and returns items. The slice is modified in place.
// Apply a Sortable's OnSortEnd(from, to) report to a backing list with it.
// Panics if either index is out of range.
func ArrayMove[S ~[]E, E any](items S, from, to int) S {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		panic("dnd: ArrayMove index out of range")
	}
	if from == to {
		return items
	}
	v := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = v
	return items
}
