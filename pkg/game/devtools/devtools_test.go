package devtools

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/board"
	"dungeonboard/pkg/game/config"
	"dungeonboard/pkg/game/walls"
)

var update = flag.Bool("update", false, "rewrite golden files in testdata")

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	b, err := board.New(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return b
}

func TestCellSymbol(t *testing.T) {
	tests := []struct {
		f    world.Field
		want byte
	}{
		{world.Floor, '.'},
		{world.Wall, '#'},
		{world.Empty, ' '},
		{world.TopRightWall, 'c'},
		{world.LeftWall, '1'},
		{world.FullWall, 'f'},
	}
	for _, tt := range tests {
		if got := cellSymbol(tt.f); got != tt.want {
			t.Errorf("cellSymbol(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestWriteMap_NorthOnTop(t *testing.T) {
	g := world.NewGrid(4, 3, 1)
	g.Set(gruid.Point{X: 1, Y: 1}, world.Floor)
	g.Set(gruid.Point{X: 0, Y: 2}, world.Empty)
	var buf bytes.Buffer
	WriteMap(&buf, g)
	want := " ###\n#.##\n####\n"
	if buf.String() != want {
		t.Errorf("WriteMap =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestDumpBoard(t *testing.T) {
	b := testBoard(t)
	var buf bytes.Buffer
	if err := DumpBoard(&buf, b); err != nil {
		t.Fatalf("DumpBoard error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"=== BOARD DUMP ===", "seed: 7", "width: 40", "height: 30", "connected: true", "=== END BOARD DUMP ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %q", want)
		}
	}
	var mapBuf bytes.Buffer
	WriteMap(&mapBuf, b.Grid)
	if !strings.Contains(out, mapBuf.String()) {
		t.Error("dump does not contain the map")
	}
	if err := DumpBoard(&buf, nil); err == nil {
		t.Error("DumpBoard(nil) error = nil")
	}
}

func TestDumpBoardToFile(t *testing.T) {
	b := testBoard(t)
	path, err := DumpBoardToFile(b, t.TempDir())
	if err != nil {
		t.Fatalf("DumpBoardToFile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "=== BOARD DUMP ===") {
		t.Errorf("file starts with %q", string(data[:20]))
	}
}

func TestWriteColoredMap_MatchesPlainMap(t *testing.T) {
	b := testBoard(t)
	var plain, colored bytes.Buffer
	WriteMap(&plain, b.Grid)
	WriteColoredMap(&colored, b.Grid, DefaultPalette())
	if got := StripColors(colored.String()); got != plain.String() {
		t.Errorf("colored map without codes differs from plain map:\n%s\nvs\n%s", got, plain.String())
	}
}

func TestRenderHTML(t *testing.T) {
	b := testBoard(t)
	page := RenderHTML(b)
	if !strings.Contains(page, "Seed 7") {
		t.Error("page lacks the seed header")
	}
	if got := strings.Count(page, `<div class="map-row">`); got != b.Grid.Height() {
		t.Errorf("map rows = %d, want %d", got, b.Grid.Height())
	}
	if len(b.OuterFloor) > 0 && !strings.Contains(page, "floor-outer") {
		t.Error("outer floor cells are not marked")
	}

	path, err := SaveScreenshotHTML(b, t.TempDir())
	if err != nil {
		t.Fatalf("SaveScreenshotHTML error: %v", err)
	}
	if !strings.HasSuffix(path, "board-7.html") {
		t.Errorf("path = %q", path)
	}
}

func TestShowcaseGrid_HoldsEveryVariant(t *testing.T) {
	g := ShowcaseGrid()
	for mask := uint8(1); mask < 16; mask++ {
		center := gruid.Point{X: 2 + int(mask-1)*6 + 1, Y: 3}
		want, _ := walls.Variant(mask)
		if got := g.At(center); got != want {
			t.Errorf("stamp %s holds %v, want %v", walls.MaskString(mask), got, want)
		}
	}
	if problem := g.Validate(); problem != "" {
		t.Error(problem)
	}
}

// The 40x30 default board for a fixed seed. Any change to placement, balancing, bridging,
// classification or the order random numbers are drawn in shows up here.
func TestWriteMap_ReferenceBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 20240601
	b, err := board.New(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	var buf bytes.Buffer
	WriteMap(&buf, b.Grid)

	golden := filepath.Join("testdata", "reference_board.golden")
	if *update {
		if err := os.WriteFile(golden, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("reading %s: %v", golden, err)
	}
	if got := buf.String(); got != string(want) {
		t.Errorf("reference board changed (run with -update if intended)\ngot:\n%s\nwant:\n%s", got, want)
	}
	if b.Stats.BalanceIterations != 1 || len(b.Rooms) != 6 || b.Stats.Links != 5 {
		t.Errorf("stats = %+v with %d rooms, want 1 iteration, 6 rooms, 5 links", b.Stats, len(b.Rooms))
	}
}
