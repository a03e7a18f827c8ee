package world

import (
	"fmt"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/rl"
)

// Grid is a width×height board of Field tags with a wall margin of border cells.
// Cells are indexed [x, y] with the origin at (0, 0).
type Grid struct {
	cells  rl.Grid
	width  int
	height int
	border int
}

// NewGrid creates a grid with every cell set to Wall
func NewGrid(width, height, border int) *Grid {
	g := &Grid{}
	g.Build(width, height, border)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, height, border int) {
	if width <= 0 || height <= 0 {
		panic("Grid dimensions must be positive")
	}
	if border < 0 {
		panic("Grid border must not be negative")
	}

	g.width = width
	g.height = height
	g.border = border
	g.cells = rl.NewGrid(width, height)
	g.cells.Fill(rl.Cell(Wall))
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Border returns the width of the wall margin
func (g *Grid) Border() int {
	return g.border
}

// Range returns the full coordinate range of the grid
func (g *Grid) Range() gruid.Range {
	return gruid.NewRange(0, 0, g.width, g.height)
}

// InteriorRange returns the range strictly inside the border margin
func (g *Grid) InteriorRange() gruid.Range {
	return gruid.NewRange(g.border, g.border, g.width-g.border, g.height-g.border)
}

// UsableArea returns the number of cells inside the border margin
func (g *Grid) UsableArea() int {
	w := g.width - 2*g.border
	h := g.height - 2*g.border
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(p gruid.Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsInterior checks if a position is strictly inside the border margin
func (g *Grid) IsInterior(p gruid.Point) bool {
	return p.X >= g.border && p.X < g.width-g.border && p.Y >= g.border && p.Y < g.height-g.border
}

// IsOnPerimeter checks if a position is inside the grid but within the border margin
func (g *Grid) IsOnPerimeter(p gruid.Point) bool {
	return g.IsValidPosition(p) && !g.IsInterior(p)
}

// At returns the field at p. Out-of-range coordinates are a programming error.
func (g *Grid) At(p gruid.Point) Field {
	g.mustContain(p)
	return Field(g.cells.At(p))
}

// Lookup returns the field at p, or false when p is outside the grid
func (g *Grid) Lookup(p gruid.Point) (Field, bool) {
	if !g.IsValidPosition(p) {
		return Empty, false
	}
	return Field(g.cells.At(p)), true
}

// IsFloor returns true if p is inside the grid and holds Floor
func (g *Grid) IsFloor(p gruid.Point) bool {
	f, ok := g.Lookup(p)
	return ok && f == Floor
}

// Set stores f at p. Out-of-range coordinates are a programming error.
func (g *Grid) Set(p gruid.Point, f Field) {
	g.mustContain(p)
	g.cells.Set(p, rl.Cell(f))
}

// Fill sets every cell to f
func (g *Grid) Fill(f Field) {
	g.cells.Fill(rl.Cell(f))
}

// FillRect sets every cell of rg that lies inside the grid to f
func (g *Grid) FillRect(rg gruid.Range, f Field) {
	for x := rg.Min.X; x < rg.Max.X; x++ {
		for y := rg.Min.Y; y < rg.Max.Y; y++ {
			p := gruid.Point{X: x, Y: y}
			if g.IsValidPosition(p) {
				g.cells.Set(p, rl.Cell(f))
			}
		}
	}
}

// ForEachCell iterates over all cells, column by column, calling fn for each
func (g *Grid) ForEachCell(fn func(p gruid.Point, f Field)) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := gruid.Point{X: x, Y: y}
			fn(p, Field(g.cells.At(p)))
		}
	}
}

// ForEachInterior iterates over the cells strictly inside the border margin
func (g *Grid) ForEachInterior(fn func(p gruid.Point, f Field)) {
	for x := g.border; x < g.width-g.border; x++ {
		for y := g.border; y < g.height-g.border; y++ {
			p := gruid.Point{X: x, Y: y}
			fn(p, Field(g.cells.At(p)))
		}
	}
}

// Count returns the number of cells holding f
func (g *Grid) Count(f Field) int {
	return g.CountFunc(func(c Field) bool { return c == f })
}

// CountFunc returns the number of cells for which keep returns true
func (g *Grid) CountFunc(keep func(Field) bool) int {
	n := 0
	g.ForEachCell(func(_ gruid.Point, f Field) {
		if keep(f) {
			n++
		}
	})
	return n
}

// FloorRatio returns the share of the usable area covered by Floor
func (g *Grid) FloorRatio() float64 {
	area := g.UsableArea()
	if area == 0 {
		return 0
	}
	return float64(g.Count(Floor)) / float64(area)
}

// Neighbor returns the position next to p in the given direction
func (g *Grid) Neighbor(p gruid.Point, dir Direction) gruid.Point {
	return p.Add(dir.Delta())
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height, g.border)
	g.ForEachCell(func(p gruid.Point, f Field) {
		c.cells.Set(p, rl.Cell(f))
	})
	return c
}

// Equal reports whether both grids have the same shape and contents
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height || g.border != other.border {
		return false
	}
	equal := true
	g.ForEachCell(func(p gruid.Point, f Field) {
		if equal && Field(other.cells.At(p)) != f {
			equal = false
		}
	})
	return equal
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.width <= 0 || g.height <= 0 {
		return "Grid has invalid dimensions"
	}

	problem := ""
	g.ForEachCell(func(p gruid.Point, f Field) {
		if problem != "" {
			return
		}
		if !f.IsValid() {
			problem = fmt.Sprintf("Cell %d,%d holds unknown field %d", p.X, p.Y, int(f))
			return
		}
		if f == Floor && !g.IsInterior(p) {
			problem = fmt.Sprintf("Floor at %d,%d lies in the border margin", p.X, p.Y)
		}
	})
	return problem
}

func (g *Grid) mustContain(p gruid.Point) {
	if !g.IsValidPosition(p) {
		panic(fmt.Sprintf("position %d,%d outside %dx%d grid", p.X, p.Y, g.width, g.height))
	}
}
