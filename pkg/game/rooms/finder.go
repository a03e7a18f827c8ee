// Package rooms discovers connected floor regions and balances board coverage.
package rooms

import (
	"sort"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"codeberg.org/anaseto/gruid/rl"
	"github.com/zyedidia/generic/stack"

	"dungeonboard/pkg/engine/world"
)

// Room is one 4-connected component of Floor cells.
type Room struct {
	ID    int
	Cells []gruid.Point
}

// Size returns the number of cells in the room
func (r Room) Size() int {
	return len(r.Cells)
}

// Labeling holds the rooms found on a grid and the component id of every cell.
// Ids start at 1; 0 marks cells that belong to no room.
type Labeling struct {
	Rooms []Room
	ids   rl.Grid
}

// RoomAt returns the id of the room containing p, or 0
func (l *Labeling) RoomAt(p gruid.Point) int {
	return int(l.ids.At(p))
}

// TotalSize returns the number of floor cells over all rooms
func (l *Labeling) TotalSize() int {
	total := 0
	for _, r := range l.Rooms {
		total += r.Size()
	}
	return total
}

// Biggest returns the largest room, or a zero Room when there is none
func (l *Labeling) Biggest() Room {
	if len(l.Rooms) == 0 {
		return Room{}
	}
	return l.Rooms[0]
}

// Covering returns the largest rooms, in descending size, whose sizes first add up to at least minTiles.
// All rooms are returned when their total falls short or minTiles asks for nothing.
func (l *Labeling) Covering(minTiles int) []Room {
	if minTiles <= 0 {
		return l.Rooms
	}
	total := 0
	for i, r := range l.Rooms {
		total += r.Size()
		if total >= minTiles {
			return l.Rooms[:i+1]
		}
	}
	return l.Rooms
}

// Find labels every Floor component of grid. The grid itself is left untouched.
func Find(grid *world.Grid) *Labeling {
	l := &Labeling{ids: rl.NewGrid(grid.Width(), grid.Height())}
	roomNumber := 1

	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if f != world.Floor || l.ids.At(p) != 0 {
			return
		}
		l.Rooms = append(l.Rooms, Room{ID: roomNumber, Cells: fill(grid, l.ids, p, roomNumber)})
		roomNumber++
	})

	// ties keep scan order
	sort.SliceStable(l.Rooms, func(i, j int) bool {
		return l.Rooms[i].Size() > l.Rooms[j].Size()
	})
	return l
}

// fill labels the component containing start with id and returns its cells in visit order
func fill(grid *world.Grid, ids rl.Grid, start gruid.Point, id int) []gruid.Point {
	var cells []gruid.Point
	var nbs paths.Neighbors
	open := stack.New[gruid.Point]()

	ids.Set(start, rl.Cell(id))
	open.Push(start)
	for open.Size() > 0 {
		p := open.Pop()
		cells = append(cells, p)
		for _, q := range nbs.Cardinal(p, grid.IsFloor) {
			if ids.At(q) == 0 {
				ids.Set(q, rl.Cell(id))
				open.Push(q)
			}
		}
	}
	return cells
}

// FindRooms returns every room on the grid, largest first
func FindRooms(grid *world.Grid) []Room {
	return Find(grid).Rooms
}

// FindBiggestRoom returns the largest room, or a Room with size 0 if the grid has no Floor
func FindBiggestRoom(grid *world.Grid) Room {
	return Find(grid).Biggest()
}

// KeepRooms turns the cells of the kept rooms into Floor and every other non-wall cell into Wall
func KeepRooms(grid *world.Grid, l *Labeling, keep []Room) {
	kept := make(map[int]bool, len(keep))
	for _, r := range keep {
		kept[r.ID] = true
	}
	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if f.IsWall() {
			return
		}
		if kept[l.RoomAt(p)] {
			grid.Set(p, world.Floor)
		} else {
			grid.Set(p, world.Wall)
		}
	})
}
