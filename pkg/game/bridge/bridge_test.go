package bridge

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/pathfind"
	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/rooms"
)

// fourRooms returns two tight clusters of two rooms each, far from each other.
func fourRooms() *world.Grid {
	g := world.NewGrid(40, 12, 1)
	g.FillRect(gruid.NewRange(2, 2, 5, 5), world.Floor)
	g.FillRect(gruid.NewRange(7, 2, 10, 5), world.Floor)
	g.FillRect(gruid.NewRange(28, 6, 31, 9), world.Floor)
	g.FillRect(gruid.NewRange(33, 6, 36, 9), world.Floor)
	return g
}

func TestConnect_TwoRooms(t *testing.T) {
	g := world.NewGrid(16, 7, 1)
	g.FillRect(gruid.NewRange(1, 2, 4, 5), world.Floor)
	g.FillRect(gruid.NewRange(9, 2, 12, 5), world.Floor)

	b := &Bridger{}
	report, err := b.Connect(g, rooms.FindRooms(g))
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if report.Candidates != 1 || len(report.Links) != 1 {
		t.Fatalf("report = %+v, want 1 candidate and 1 link", report)
	}
	l := report.Links[0]
	if l.Distance != 36 {
		t.Errorf("link distance = %d, want 36 (6 cells apart)", l.Distance)
	}
	if report.Carved != 5 {
		t.Errorf("Carved = %d, want 5", report.Carved)
	}
	if n := len(rooms.FindRooms(g)); n != 1 {
		t.Errorf("rooms after Connect = %d, want 1", n)
	}
}

func TestConnect_SpanningTreeJoinsEverything(t *testing.T) {
	g := fourRooms()
	report, err := (&Bridger{Linking: LinkSpanningTree}).Connect(g, rooms.FindRooms(g))
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if report.Candidates != 6 {
		t.Errorf("Candidates = %d, want 6", report.Candidates)
	}
	if len(report.Links) != 3 {
		t.Errorf("len(Links) = %d, want 3", len(report.Links))
	}
	if n := len(rooms.FindRooms(g)); n != 1 {
		t.Errorf("rooms after Connect = %d, want 1", n)
	}
	if problem := g.Validate(); problem != "" {
		t.Error(problem)
	}
}

func TestConnect_NearestLeavesClusters(t *testing.T) {
	g := fourRooms()
	report, err := (&Bridger{Linking: LinkNearest}).Connect(g, rooms.FindRooms(g))
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if len(report.Links) != 2 {
		t.Errorf("len(Links) = %d, want 2 (one per cluster)", len(report.Links))
	}
	if n := len(rooms.FindRooms(g)); n != 2 {
		t.Errorf("rooms after Connect = %d, want 2", n)
	}
}

func TestConnect_SingleRoomDoesNothing(t *testing.T) {
	g := world.NewGrid(8, 8, 1)
	g.FillRect(gruid.NewRange(2, 2, 5, 5), world.Floor)
	before := g.Clone()
	report, err := (&Bridger{}).Connect(g, rooms.FindRooms(g))
	if err != nil || len(report.Links) != 0 || report.Candidates != 0 {
		t.Errorf("Connect = %+v, %v; want empty report", report, err)
	}
	if !g.Equal(before) {
		t.Error("Connect changed a single-room grid")
	}
}

func TestConnect_SkipsUnroutableLinks(t *testing.T) {
	g := world.NewGrid(16, 7, 1)
	g.FillRect(gruid.NewRange(1, 2, 4, 5), world.Floor)
	g.FillRect(gruid.NewRange(9, 2, 12, 5), world.Floor)

	var buf bytes.Buffer
	b := &Bridger{
		// the goal room lies outside the search space
		Finder: &pathfind.Finder{Bounds: gruid.NewRange(0, 0, 6, 7)},
		Logger: log.New(&buf, "", 0),
	}
	report, err := b.Connect(g, rooms.FindRooms(g))
	if err != nil {
		t.Fatalf("Connect error: %v", err)
	}
	if report.Skipped != 1 || report.Carved != 0 {
		t.Errorf("report = %+v, want 1 skipped link", report)
	}
	if !strings.Contains(buf.String(), "no path") {
		t.Errorf("skip was not logged: %q", buf.String())
	}
}

func TestConnect_SkipsRoomsWithoutCells(t *testing.T) {
	g := world.NewGrid(8, 8, 1)
	report, err := (&Bridger{}).Connect(g, []rooms.Room{{ID: 1}, {ID: 2}})
	if err != nil || report.Candidates != 0 {
		t.Errorf("Connect = %+v, %v; want no candidates", report, err)
	}
}

func TestBoundary(t *testing.T) {
	g := world.NewGrid(7, 7, 1)
	g.FillRect(gruid.NewRange(1, 1, 6, 6), world.Floor)
	cells := Boundary(g, rooms.FindBiggestRoom(g))
	// 5x5 room: every cell but the 3x3 core
	if len(cells) != 16 {
		t.Errorf("len(Boundary) = %d, want 16", len(cells))
	}
	for _, p := range cells {
		if p.X > 1 && p.X < 5 && p.Y > 1 && p.Y < 5 {
			t.Errorf("core cell %v reported as boundary", p)
		}
	}
}

func TestParseLinking(t *testing.T) {
	for _, l := range []Linking{LinkSpanningTree, LinkNearest} {
		if got, ok := ParseLinking(l.String()); !ok || got != l {
			t.Errorf("ParseLinking(%q) = %v, %v", l.String(), got, ok)
		}
	}
	if _, ok := ParseLinking("mst"); ok {
		t.Error("ParseLinking(mst) ok = true")
	}
}
