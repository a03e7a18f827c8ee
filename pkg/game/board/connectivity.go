package board

import (
	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeonboard/pkg/engine/world"
)

func isFloor(f world.Field) bool {
	return f == world.Floor
}

// Reachable returns the set of Floor cells reachable from start through 4-connected Floor
func Reachable(grid *world.Grid, start gruid.Point) mapset.Set[gruid.Point] {
	visited := mapset.New[gruid.Point]()
	if !grid.IsFloor(start) {
		return visited
	}
	open := queue.New[gruid.Point]()
	open.Enqueue(start)
	visited.Put(start)
	for !open.Empty() {
		current := open.Dequeue()
		for _, d := range world.AllDirections() {
			n := grid.Neighbor(current, d)
			if grid.IsFloor(n) && !visited.Has(n) {
				visited.Put(n)
				open.Enqueue(n)
			}
		}
	}
	return visited
}

// Connected returns true if every Floor cell is reachable from the first one in scan order.
// A grid without floor counts as connected.
func Connected(grid *world.Grid) bool {
	var first gruid.Point
	found := false
	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if !found && f == world.Floor {
			first, found = p, true
		}
	})
	if !found {
		return true
	}
	return Reachable(grid, first).Size() == grid.CountFunc(isFloor)
}

// StillConnectedIfBlocked returns true if the Floor cells other than p remain one 4-connected region
// once p is treated as impassable. Non-floor cells never disconnect anything.
func StillConnectedIfBlocked(grid *world.Grid, p gruid.Point) bool {
	if !grid.IsFloor(p) {
		return Connected(grid)
	}
	grid.Set(p, world.Wall)
	defer grid.Set(p, world.Floor)
	return Connected(grid)
}
