// Package bridge joins disjoint rooms with carved corridors.
package bridge

import (
	"errors"
	"fmt"
	"io"
	"log"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/heap"

	"dungeonboard/pkg/engine/pathfind"
	"dungeonboard/pkg/engine/spatial"
	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/rooms"
)

// Linking selects which room pairs get a corridor.
type Linking int

const (
	// LinkSpanningTree carves a minimum spanning tree over room-pair distances, so every room is reachable.
	LinkSpanningTree Linking = iota
	// LinkNearest carves, for each room, only its closest pair. Rooms may stay in separate groups.
	LinkNearest
)

// String returns the configuration name of the linking mode
func (l Linking) String() string {
	switch l {
	case LinkSpanningTree:
		return "spanning-tree"
	case LinkNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// ParseLinking returns the linking mode with the given configuration name
func ParseLinking(name string) (Linking, bool) {
	switch name {
	case "spanning-tree":
		return LinkSpanningTree, true
	case "nearest":
		return LinkNearest, true
	default:
		return LinkSpanningTree, false
	}
}

// Link is the closest pair of cells between two rooms.
type Link struct {
	A, B     int // room ids
	From, To gruid.Point
	// Distance is the squared Euclidean distance between From and To.
	Distance int
}

// Report summarizes one Connect run.
type Report struct {
	Candidates int
	Links      []Link
	Carved     int
	Skipped    int
}

// Bridger connects rooms on a grid.
type Bridger struct {
	// Finder carves corridors; nil searches the whole grid.
	Finder  *pathfind.Finder
	Linking Linking
	Logger  *log.Logger
}

func (b *Bridger) logger() *log.Logger {
	if b.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return b.Logger
}

// Connect picks the links between rooms and carves each one into grid.
// A link the finder cannot route is logged and skipped.
func (b *Bridger) Connect(grid *world.Grid, rms []rooms.Room) (Report, error) {
	logger := b.logger()
	finder := b.Finder
	if finder == nil {
		finder = pathfind.NewFinder(grid)
	}

	var eligible []candidateRoom
	for _, r := range rms {
		cells := Boundary(grid, r)
		if len(cells) == 0 {
			logger.Printf("bridge: room %d has no boundary cells, skipped", r.ID)
			continue
		}
		eligible = append(eligible, candidateRoom{id: r.ID, cells: cells})
	}

	pairs, err := closestPairs(eligible)
	if err != nil {
		return Report{}, err
	}
	report := Report{Candidates: len(pairs)}

	var links []Link
	switch b.Linking {
	case LinkNearest:
		links = nearestLinks(len(eligible), pairs)
	default:
		links = spanningTree(len(eligible), pairs)
	}

	for _, l := range links {
		path, err := finder.ShortestPath(l.From, l.To)
		if errors.Is(err, pathfind.ErrNoPath) {
			logger.Printf("bridge: no path between room %d at %v and room %d at %v, skipped", l.A, l.From, l.B, l.To)
			report.Skipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("bridge: carving room %d to %d: %w", l.A, l.B, err)
		}
		carved := pathfind.Carve(grid, path)
		logger.Printf("bridge: room %d %v -> room %d %v, %d cells carved", l.A, l.From, l.B, l.To, carved)
		report.Carved += carved
		report.Links = append(report.Links, l)
	}
	return report, nil
}

// Boundary returns the cells of r that have at least one non-Floor 4-neighbor.
// The cell of a room closest to any point outside it is always one of these.
func Boundary(grid *world.Grid, r rooms.Room) []gruid.Point {
	var cells []gruid.Point
	for _, p := range r.Cells {
		for _, d := range world.AllDirections() {
			if !grid.IsFloor(grid.Neighbor(p, d)) {
				cells = append(cells, p)
				break
			}
		}
	}
	return cells
}

type candidateRoom struct {
	id    int
	cells []gruid.Point
}

// pair is the closest link between eligible rooms i < j
type pair struct {
	i, j int
	link Link
}

// closestPairs indexes B and queries it with every cell of A, for every unordered pair of rooms
func closestPairs(rms []candidateRoom) ([]pair, error) {
	var pairs []pair
	for i := 0; i < len(rms); i++ {
		for j := i + 1; j < len(rms); j++ {
			tree := spatial.Build(rms[j].cells)
			best := Link{A: rms[i].id, B: rms[j].id, Distance: -1}
			for _, p := range rms[i].cells {
				q, d, err := tree.NearestDistance(p)
				if err != nil {
					return nil, fmt.Errorf("bridge: room %d: %w", rms[j].id, err)
				}
				if best.Distance < 0 || d < best.Distance {
					best.From, best.To, best.Distance = p, q, d
				}
			}
			pairs = append(pairs, pair{i: i, j: j, link: best})
		}
	}
	return pairs, nil
}

// spanningTree runs Prim's algorithm from the first room over the complete pair graph
func spanningTree(n int, pairs []pair) []Link {
	if n < 2 {
		return nil
	}
	adjacent := make([][]int, n)
	for k, pr := range pairs {
		adjacent[pr.i] = append(adjacent[pr.i], k)
		adjacent[pr.j] = append(adjacent[pr.j], k)
	}

	// ties resolve to the earlier pair
	open := heap.New[int](func(a, b int) bool {
		if pairs[a].link.Distance != pairs[b].link.Distance {
			return pairs[a].link.Distance < pairs[b].link.Distance
		}
		return a < b
	})
	inTree := make([]bool, n)
	visit := func(room int) {
		inTree[room] = true
		for _, k := range adjacent[room] {
			if !inTree[pairs[k].i] || !inTree[pairs[k].j] {
				open.Push(k)
			}
		}
	}

	var links []Link
	visit(0)
	for len(links) < n-1 {
		k, ok := open.Pop()
		if !ok {
			break
		}
		pr := pairs[k]
		switch {
		case inTree[pr.i] && inTree[pr.j]:
			continue
		case inTree[pr.i]:
			visit(pr.j)
		default:
			visit(pr.i)
		}
		links = append(links, pr.link)
	}
	return links
}

// nearestLinks keeps, for each room in order, the closest pair it takes part in
func nearestLinks(n int, pairs []pair) []Link {
	best := make([]int, n)
	for i := range best {
		best[i] = -1
	}
	for k, pr := range pairs {
		for _, room := range []int{pr.i, pr.j} {
			if best[room] < 0 || pr.link.Distance < pairs[best[room]].link.Distance {
				best[room] = k
			}
		}
	}

	var links []Link
	taken := make(map[int]bool, n)
	for _, k := range best {
		if k < 0 || taken[k] {
			continue
		}
		taken[k] = true
		links = append(links, pairs[k].link)
	}
	return links
}
