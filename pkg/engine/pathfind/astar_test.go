package pathfind

import (
	"errors"
	"testing"

	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/world"
)

func manhattan(a, b gruid.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func TestShortestPath_StraightLine(t *testing.T) {
	grid := world.NewGrid(12, 5, 1)
	start := gruid.Point{X: 2, Y: 2}
	goal := gruid.Point{X: 7, Y: 2}
	grid.Set(start, world.Floor)
	grid.Set(goal, world.Floor)

	path, err := NewFinder(grid).ShortestPath(start, goal)
	if err != nil {
		t.Fatalf("ShortestPath error: %v", err)
	}
	if len(path) != 4 {
		t.Fatalf("len(path) = %d, want 4 (endpoints excluded)", len(path))
	}
	for _, p := range path {
		if p == start || p == goal {
			t.Errorf("path contains endpoint %v", p)
		}
		if p.Y != 2 || p.X < 3 || p.X > 6 {
			t.Errorf("path cell %v is off the straight line", p)
		}
	}

	if changed := Carve(grid, path); changed != 4 {
		t.Errorf("Carve() changed %d cells, want 4", changed)
	}
	if got := grid.Count(world.Floor); got != 6 {
		t.Errorf("Count(Floor) after carving = %d, want 6 (4 carved + 2 anchors)", got)
	}
	for _, p := range path {
		if grid.At(p) != world.Floor {
			t.Errorf("carved cell %v = %v, want Floor", p, grid.At(p))
		}
	}
}

func TestShortestPath_LengthIsManhattan(t *testing.T) {
	f := &Finder{}
	cases := [][2]gruid.Point{
		{{X: 0, Y: 0}, {X: 4, Y: 3}},
		{{X: 10, Y: 2}, {X: 1, Y: 9}},
		{{X: -3, Y: 5}, {X: 2, Y: -1}},
	}
	for _, tc := range cases {
		end, err := f.Search(tc[0], tc[1])
		if err != nil {
			t.Fatalf("Search(%v, %v) error: %v", tc[0], tc[1], err)
		}
		if want := manhattan(tc[0], tc[1]); end.G() != want {
			t.Errorf("Search(%v, %v) G = %d, want %d", tc[0], tc[1], end.G(), want)
		}
		path := Interior(end)
		if want := manhattan(tc[0], tc[1]) - 1; len(path) != want {
			t.Errorf("interior length = %d, want %d", len(path), want)
		}
		// consecutive cells must be 4-adjacent
		prev := tc[1]
		for _, p := range append(path, tc[0]) {
			if manhattan(prev, p) != 1 {
				t.Fatalf("step %v -> %v is not a 4-connected move", prev, p)
			}
			prev = p
		}
	}
}

func TestShortestPath_DegenerateEndpoints(t *testing.T) {
	f := &Finder{}
	p := gruid.Point{X: 3, Y: 3}
	path, err := f.ShortestPath(p, p)
	if err != nil || len(path) != 0 {
		t.Errorf("ShortestPath(p, p) = %v, %v; want empty, nil", path, err)
	}
	path, err = f.ShortestPath(p, gruid.Point{X: 4, Y: 3})
	if err != nil || len(path) != 0 {
		t.Errorf("ShortestPath(adjacent) = %v, %v; want empty, nil", path, err)
	}
}

func TestShortestPath_NoPathOutsideBounds(t *testing.T) {
	f := &Finder{Bounds: gruid.NewRange(0, 0, 5, 5)}
	_, err := f.ShortestPath(gruid.Point{X: 1, Y: 1}, gruid.Point{X: 9, Y: 9})
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("ShortestPath to goal outside bounds error = %v, want ErrNoPath", err)
	}
}

func TestNode_CostTerms(t *testing.T) {
	root := newNode(gruid.Point{X: 0, Y: 0}, gruid.Point{X: 3, Y: 4}, nil, 0)
	if root.G() != 0 || root.H() != 5 || root.F() != 5 {
		t.Errorf("root g/h/f = %d/%v/%v, want 0/5/5", root.G(), root.H(), root.F())
	}
	child := newNode(gruid.Point{X: 0, Y: 1}, gruid.Point{X: 3, Y: 4}, root, 1)
	if child.G() != 1 {
		t.Errorf("child G = %d, want 1", child.G())
	}
}
