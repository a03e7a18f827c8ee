package spatial

import (
	"errors"
	"math/rand/v2"
	"testing"

	"codeberg.org/anaseto/gruid"
)

func bruteNearest(points []gruid.Point, q gruid.Point) int {
	best := -1
	for _, p := range points {
		if d := distance2(p, q); best < 0 || d < best {
			best = d
		}
	}
	return best
}

func TestKDTree_NearestMatchesBruteForce(t *testing.T) {
	points := []gruid.Point{{X: 2, Y: 3}, {X: 5, Y: 4}, {X: 9, Y: 6}, {X: 4, Y: 7}, {X: 8, Y: 1}}
	tree := Build(points)

	queries := []struct {
		q    gruid.Point
		want gruid.Point
	}{
		{gruid.Point{X: 9, Y: 2}, gruid.Point{X: 8, Y: 1}},
		{gruid.Point{X: 3, Y: 8}, gruid.Point{X: 4, Y: 7}},
		{gruid.Point{X: 1, Y: 1}, gruid.Point{X: 2, Y: 3}},
		{gruid.Point{X: 6, Y: 4}, gruid.Point{X: 5, Y: 4}},
		{gruid.Point{X: 10, Y: 7}, gruid.Point{X: 9, Y: 6}},
	}
	for _, tc := range queries {
		got, d, err := tree.NearestDistance(tc.q)
		if err != nil {
			t.Fatalf("NearestDistance(%v) error: %v", tc.q, err)
		}
		if got != tc.want {
			t.Errorf("Nearest(%v) = %v, want %v", tc.q, got, tc.want)
		}
		if want := bruteNearest(points, tc.q); d != want {
			t.Errorf("NearestDistance(%v) distance = %d, brute force %d", tc.q, d, want)
		}
	}
}

func TestKDTree_RandomizedAgainstBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for round := 0; round < 20; round++ {
		n := 1 + r.IntN(60)
		points := make([]gruid.Point, n)
		for i := range points {
			points[i] = gruid.Point{X: r.IntN(40), Y: r.IntN(30)}
		}
		tree := Build(points)
		for i := 0; i < 25; i++ {
			q := gruid.Point{X: r.IntN(50) - 5, Y: r.IntN(40) - 5}
			got, err := tree.Nearest(q)
			if err != nil {
				t.Fatalf("Nearest(%v) error: %v", q, err)
			}
			if d, want := distance2(got, q), bruteNearest(points, q); d != want {
				t.Fatalf("round %d: Nearest(%v) = %v at %d, brute force %d", round, q, got, d, want)
			}
		}
	}
}

func TestKDTree_EmptyIndex(t *testing.T) {
	tree := New()
	if _, err := tree.Nearest(gruid.Point{X: 1, Y: 1}); !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("Nearest on empty tree error = %v, want ErrEmptyIndex", err)
	}
}

func TestKDTree_InsertionOrderAndLevels(t *testing.T) {
	points := []gruid.Point{{X: 5, Y: 5}, {X: 2, Y: 8}, {X: 7, Y: 1}, {X: 2, Y: 2}}
	tree := Build(points)
	if tree.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", tree.Len())
	}
	got := tree.Points()
	for i := range points {
		if got[i] != points[i] {
			t.Errorf("Points()[%d] = %v, want %v", i, got[i], points[i])
		}
	}
	// (2,8) goes left of the root on X; (2,2) follows it and splits on Y at level 1.
	if tree.root.left == nil || tree.root.left.point != (gruid.Point{X: 2, Y: 8}) {
		t.Fatal("expected (2,8) as left child of root")
	}
	if n := tree.root.left.left; n == nil || n.point != (gruid.Point{X: 2, Y: 2}) || n.level != 2 {
		t.Errorf("expected (2,2) at level 2 under (2,8)")
	}
	if tree.root.right == nil || tree.root.right.level != 1 {
		t.Error("expected (7,1) as level 1 right child of root")
	}
}

func TestKDTree_RemoveAllFindAllCountAll(t *testing.T) {
	tree := Build([]gruid.Point{{X: 1, Y: 1}, {X: 4, Y: 4}, {X: 6, Y: 2}, {X: 9, Y: 9}})
	right := func(p gruid.Point) bool { return p.X > 5 }

	if got := tree.CountAll(right); got != 2 {
		t.Errorf("CountAll() = %d, want 2", got)
	}
	if found := tree.FindAll(right); found.Len() != 2 {
		t.Errorf("FindAll().Len() = %d, want 2", found.Len())
	}
	if removed := tree.RemoveAll(right); removed != 2 {
		t.Errorf("RemoveAll() = %d, want 2", removed)
	}
	if tree.Len() != 2 {
		t.Fatalf("Len() after RemoveAll = %d, want 2", tree.Len())
	}
	got, err := tree.Nearest(gruid.Point{X: 9, Y: 9})
	if err != nil || got != (gruid.Point{X: 4, Y: 4}) {
		t.Errorf("Nearest after RemoveAll = %v, %v; want (4,4)", got, err)
	}

	tree.Clear()
	if tree.Len() != 0 || len(tree.Points()) != 0 {
		t.Error("Clear() left points behind")
	}
}
