// Package board runs the full generation pipeline and derives the outputs handed to a renderer.
package board

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"

	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/rooms"
)

// Board is a finished board.
type Board struct {
	Grid      *world.Grid
	Obstacles *Obstacles
	// OuterFloor holds Floor cells next to a wall, InnerFloor the Floor cells surrounded by floor.
	OuterFloor []gruid.Point
	InnerFloor []gruid.Point
	// Rooms are the rooms kept by the balancer, before corridors joined them.
	Rooms []rooms.Room
	Seed  uint64
	Stats Stats
}

// Stats records what each pipeline stage did.
type Stats struct {
	Strategy          string
	BalanceIterations int
	// FloorTiles is the kept room area the balancer converged on; corridors come on top.
	FloorTiles      int
	Links           int
	CorridorTiles   int
	SkippedLinks    int
	WallsClassified int
	ClutterRemoved  int
}

const (
	free  rl.Cell = 0
	taken rl.Cell = 1
)

// Obstacles marks every non-Floor cell as blocked.
type Obstacles struct {
	cells rl.Grid
}

// NewObstacles derives the obstacle mask of grid
func NewObstacles(grid *world.Grid) *Obstacles {
	o := &Obstacles{cells: rl.NewGrid(grid.Width(), grid.Height())}
	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if f == world.Floor {
			o.cells.Set(p, free)
		} else {
			o.cells.Set(p, taken)
		}
	})
	return o
}

// Blocked reports whether p cannot be walked on. Positions outside the board are blocked.
func (o *Obstacles) Blocked(p gruid.Point) bool {
	if !p.In(o.cells.Range()) {
		return true
	}
	return o.cells.At(p) == taken
}

// Count returns the number of blocked cells
func (o *Obstacles) Count() int {
	n := 0
	it := o.cells.Iterator()
	for it.Next() {
		if it.Cell() == taken {
			n++
		}
	}
	return n
}

// PartitionFloor splits the Floor cells of grid, in scan order, into those with a wall-family
// 4-neighbor and those without
func PartitionFloor(grid *world.Grid) (outer, inner []gruid.Point) {
	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if f != world.Floor {
			return
		}
		for _, d := range world.AllDirections() {
			if n, ok := grid.Lookup(grid.Neighbor(p, d)); ok && n.IsWall() {
				outer = append(outer, p)
				return
			}
		}
		inner = append(inner, p)
	})
	return outer, inner
}
