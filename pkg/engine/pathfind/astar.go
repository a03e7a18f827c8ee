// Package pathfind implements A* shortest-path search over grid coordinates.
package pathfind

import (
	"errors"
	"math"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"dungeonboard/pkg/engine/world"
)

// ErrNoPath is returned when the search space is exhausted before reaching the goal.
var ErrNoPath = errors.New("pathfind: no path found")

// Node is one search state. Children point to their parent only.
type Node struct {
	Position    gruid.Point
	Destination gruid.Point
	Parent      *Node

	g   int
	h   float64
	seq int
}

// G returns the path length from the start
func (n *Node) G() int {
	return n.g
}

// H returns the straight-line estimate to the destination
func (n *Node) H() float64 {
	return n.h
}

// F returns G + H
func (n *Node) F() float64 {
	return float64(n.g) + n.h
}

func newNode(pos, dest gruid.Point, parent *Node, seq int) *Node {
	n := &Node{Position: pos, Destination: dest, Parent: parent, seq: seq}
	if parent != nil {
		n.g = parent.g + 1
	}
	dx := float64(dest.X - pos.X)
	dy := float64(dest.Y - pos.Y)
	n.h = math.Sqrt(dx*dx + dy*dy)
	return n
}

// Finder searches 4-connected paths where every step costs 1 whatever the tile.
type Finder struct {
	// Bounds limits the search space; the zero range leaves it unbounded.
	Bounds gruid.Range
}

// NewFinder returns a finder restricted to the grid's coordinates
func NewFinder(grid *world.Grid) *Finder {
	return &Finder{Bounds: grid.Range()}
}

func (f *Finder) inBounds(p gruid.Point) bool {
	if f.Bounds == (gruid.Range{}) {
		return true
	}
	return p.In(f.Bounds)
}

// Search runs A* from start and returns the goal node, whose parent chain leads back to start
func (f *Finder) Search(start, goal gruid.Point) (*Node, error) {
	seq := 0
	root := newNode(start, goal, nil, seq)
	if start == goal {
		return root, nil
	}

	open := heap.New[*Node](func(a, b *Node) bool {
		if a.F() != b.F() {
			return a.F() < b.F()
		}
		return a.seq < b.seq
	})
	bestG := map[gruid.Point]int{start: 0}
	explored := mapset.New[gruid.Point]()
	open.Push(root)

	var nbs paths.Neighbors
	for open.Size() > 0 {
		smallest, _ := open.Pop()
		if explored.Has(smallest.Position) {
			continue
		}
		explored.Put(smallest.Position)

		for _, pos := range nbs.Cardinal(smallest.Position, f.inBounds) {
			if pos == goal {
				seq++
				return newNode(pos, goal, smallest, seq), nil
			}
			if explored.Has(pos) {
				continue
			}
			if g, ok := bestG[pos]; ok && g <= smallest.g+1 {
				continue
			}
			seq++
			current := newNode(pos, goal, smallest, seq)
			bestG[pos] = current.g
			open.Push(current)
		}
	}

	return nil, ErrNoPath
}

// ShortestPath returns the cells strictly between start and goal, ordered from goal towards start
func (f *Finder) ShortestPath(start, goal gruid.Point) ([]gruid.Point, error) {
	end, err := f.Search(start, goal)
	if err != nil {
		return nil, err
	}
	return Interior(end), nil
}

// Interior walks the parent chain of end and drops both anchor endpoints
func Interior(end *Node) []gruid.Point {
	var chain []gruid.Point
	for n := end; n != nil; n = n.Parent {
		chain = append(chain, n.Position)
	}
	if len(chain) <= 2 {
		return []gruid.Point{}
	}
	return chain[1 : len(chain)-1]
}

// Carve sets every path cell to Floor and returns how many cells changed
func Carve(grid *world.Grid, path []gruid.Point) int {
	changed := 0
	for _, p := range path {
		if grid.At(p) != world.Floor {
			grid.Set(p, world.Floor)
			changed++
		}
	}
	return changed
}
