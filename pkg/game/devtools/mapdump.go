// Package devtools provides developer tools for inspecting generated boards.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/anaseto/gruid"
	"github.com/leonelquinteros/gotext"

	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/board"
	"dungeonboard/pkg/game/walls"
)

const mapDumpFilename = "board.txt"

var dynamicGet = gotext.Get

const hexDigits = "0123456789abcdef"

// cellSymbol returns the single-character symbol for a field. Wall variants print their NESW mask as a hex digit.
func cellSymbol(f world.Field) byte {
	switch {
	case f == world.Floor:
		return '.'
	case f == world.Wall:
		return '#'
	case f == world.Empty:
		return ' '
	}
	if mask, ok := walls.MaskOf(f); ok {
		return hexDigits[mask]
	}
	return '?'
}

// forEachRow calls fn for every row from the top of the board (highest Y) down, as players see it
func forEachRow(grid *world.Grid, fn func(y int)) {
	for y := grid.Height() - 1; y >= 0; y-- {
		fn(y)
	}
}

// WriteMap writes the grid, one line per row, north at the top
func WriteMap(w io.Writer, grid *world.Grid) {
	line := make([]byte, grid.Width()+1)
	forEachRow(grid, func(y int) {
		for x := 0; x < grid.Width(); x++ {
			line[x] = cellSymbol(grid.At(gruid.Point{X: x, Y: y}))
		}
		line[grid.Width()] = '\n'
		w.Write(line)
	})
}

// DumpBoard writes a full debug dump: metadata, stats, legend and map.
// Format is human-readable (sections, key: value, consistent structure).
func DumpBoard(w io.Writer, b *board.Board) error {
	if b == nil || b.Grid == nil {
		return fmt.Errorf("no board")
	}
	grid := b.Grid

	fmt.Fprintln(w, "=== BOARD DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", b.Seed)
	fmt.Fprintf(w, "width: %d\n", grid.Width())
	fmt.Fprintf(w, "height: %d\n", grid.Height())
	fmt.Fprintf(w, "border: %d\n", grid.Border())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, y grows north, top line is y=%d)\n", grid.Height()-1)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Stats ---")
	fmt.Fprintf(w, "strategy: %s\n", b.Stats.Strategy)
	fmt.Fprintf(w, "balance_iterations: %d\n", b.Stats.BalanceIterations)
	fmt.Fprintf(w, "rooms_kept: %d\n", len(b.Rooms))
	fmt.Fprintf(w, "room_floor_tiles: %d\n", b.Stats.FloorTiles)
	fmt.Fprintf(w, "links: %d\n", b.Stats.Links)
	fmt.Fprintf(w, "corridor_tiles: %d\n", b.Stats.CorridorTiles)
	fmt.Fprintf(w, "skipped_links: %d\n", b.Stats.SkippedLinks)
	fmt.Fprintf(w, "walls_classified: %d\n", b.Stats.WallsClassified)
	fmt.Fprintf(w, "clutter_removed: %d\n", b.Stats.ClutterRemoved)
	fmt.Fprintf(w, "floor_tiles: %d\n", grid.Count(world.Floor))
	fmt.Fprintf(w, "floor_ratio: %.3f\n", grid.FloorRatio())
	fmt.Fprintf(w, "outer_floor: %d\n", len(b.OuterFloor))
	fmt.Fprintf(w, "inner_floor: %d\n", len(b.InnerFloor))
	fmt.Fprintf(w, "connected: %v\n", board.Connected(grid))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- "+dynamicGet("Legend")+" ---")
	fmt.Fprintln(w, legendLine())
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- "+dynamicGet("Map")+" ---")
	WriteMap(w, grid)
	fmt.Fprintln(w, "")

	_, err := fmt.Fprintln(w, "=== END BOARD DUMP ===")
	return err
}

func legendLine() string {
	return fmt.Sprintf(". = %s  # = %s  1-f = %s",
		dynamicGet("floor"), dynamicGet("wall"), dynamicGet("wall variant (hex NESW floor mask)"))
}

// DumpBoardToFile writes DumpBoard into dir/board.txt and returns the absolute path
func DumpBoardToFile(b *board.Board, dir string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, mapDumpFilename))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := DumpBoard(f, b); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
