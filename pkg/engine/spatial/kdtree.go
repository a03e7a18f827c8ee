// Package spatial provides a 2-D k-d tree over grid coordinates for nearest-neighbor queries.
package spatial

import (
	"errors"
	"math"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/stack"
)

// ErrEmptyIndex is returned when querying a tree that holds no points.
var ErrEmptyIndex = errors.New("spatial: nearest query on empty index")

// node wraps one point. Even levels split on X, odd levels on Y.
type node struct {
	point       gruid.Point
	level       int
	left, right *node
	next        *node // insertion order
}

func (n *node) split() int {
	return splitValue(n.level, n.point)
}

func splitValue(level int, p gruid.Point) int {
	if level%2 == 0 {
		return p.X
	}
	return p.Y
}

// KDTree indexes points for nearest-neighbor lookups. The zero value is an empty tree.
type KDTree struct {
	root  *node
	last  *node
	count int
}

// New returns an empty tree
func New() *KDTree {
	return &KDTree{}
}

// Build returns a tree holding points, inserted in order
func Build(points []gruid.Point) *KDTree {
	t := New()
	for _, p := range points {
		t.Insert(p)
	}
	return t
}

// Len returns the number of indexed points
func (t *KDTree) Len() int {
	return t.count
}

// Insert adds p to the tree
func (t *KDTree) Insert(p gruid.Point) {
	t.add(&node{point: p})
}

func (t *KDTree) add(n *node) {
	n.left, n.right, n.next, n.level = nil, nil, nil, 0
	t.count++

	if t.last != nil {
		t.last.next = n
	}
	t.last = n

	if t.root == nil {
		t.root = n
		return
	}

	parent := t.root
	for {
		var child **node
		if splitValue(parent.level, n.point) < parent.split() {
			child = &parent.left
		} else {
			child = &parent.right
		}
		if *child == nil {
			n.level = parent.level + 1
			*child = n
			return
		}
		parent = *child
	}
}

// Points returns the indexed points in insertion order
func (t *KDTree) Points() []gruid.Point {
	points := make([]gruid.Point, 0, t.count)
	for n := t.root; n != nil; n = n.next {
		points = append(points, n.point)
	}
	return points
}

// Clear removes every point
func (t *KDTree) Clear() {
	t.root = nil
	t.last = nil
	t.count = 0
}

// FindAll returns a new tree with the points matching the predicate
func (t *KDTree) FindAll(match func(gruid.Point) bool) *KDTree {
	found := New()
	for n := t.root; n != nil; n = n.next {
		if match(n.point) {
			found.Insert(n.point)
		}
	}
	return found
}

// CountAll returns how many points match the predicate
func (t *KDTree) CountAll(match func(gruid.Point) bool) int {
	count := 0
	for n := t.root; n != nil; n = n.next {
		if match(n.point) {
			count++
		}
	}
	return count
}

// RemoveAll drops the points matching the predicate and rebuilds the tree in insertion order
func (t *KDTree) RemoveAll(match func(gruid.Point) bool) int {
	var keep []*node
	removed := 0
	for n := t.root; n != nil; n = n.next {
		if match(n.point) {
			removed++
			continue
		}
		keep = append(keep, n)
	}
	if removed == 0 {
		return 0
	}
	t.Clear()
	for _, n := range keep {
		t.add(n)
	}
	return removed
}

// Nearest returns the indexed point closest to q
func (t *KDTree) Nearest(q gruid.Point) (gruid.Point, error) {
	p, _, err := t.NearestDistance(q)
	return p, err
}

type candidate struct {
	n *node
	// squared distance from the query to the splitting plane that led here
	plane int
}

// NearestDistance returns the indexed point closest to q together with its squared distance
func (t *KDTree) NearestDistance(q gruid.Point) (gruid.Point, int, error) {
	if t.root == nil {
		return gruid.Point{}, 0, ErrEmptyIndex
	}

	best := t.root
	bestDist := math.MaxInt
	open := stack.New[candidate]()
	open.Push(candidate{n: t.root})

	for open.Size() > 0 {
		c := open.Pop()
		if c.plane >= bestDist {
			continue
		}
		current := c.n

		if d := distance2(q, current.point); d < bestDist {
			bestDist = d
			best = current
		}

		splitCurrent := current.split()
		splitSearch := splitValue(current.level, q)
		diff := splitCurrent - splitSearch
		plane := diff * diff

		near, far := current.right, current.left
		if splitSearch < splitCurrent {
			near, far = current.left, current.right
		}
		// far goes in first so the near side is searched before it
		if far != nil && plane < bestDist {
			open.Push(candidate{n: far, plane: plane})
		}
		if near != nil {
			open.Push(candidate{n: near})
		}
	}

	return best.point, bestDist, nil
}

func distance2(a, b gruid.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
