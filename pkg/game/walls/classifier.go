// Package walls tags wall cells by the sides they share with floor.
package walls

import (
	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/engine/world"
)

// variants is indexed by mask; index 0 is the isolated wall and has no variant
var variants = [16]world.Field{
	0b1000: world.TopWall,
	0b0100: world.RightWall,
	0b0010: world.BottomWall,
	0b0001: world.LeftWall,
	0b1100: world.TopRightWall,
	0b1010: world.TopBottomWall,
	0b1001: world.TopLeftWall,
	0b0110: world.RightBottomWall,
	0b0101: world.RightLeftWall,
	0b0011: world.BottomLeftWall,
	0b1110: world.TopRightBottomWall,
	0b1101: world.TopRightLeftWall,
	0b1011: world.TopBottomLeftWall,
	0b0111: world.RightBottomLeftWall,
	0b1111: world.FullWall,
}

// Mask returns the floor-adjacency bits of p, one Direction.Bit per side facing Floor. Neighbors outside the grid count as not floor.
func Mask(grid *world.Grid, p gruid.Point) uint8 {
	var mask uint8
	for _, d := range world.AllDirections() {
		if grid.IsFloor(grid.Neighbor(p, d)) {
			mask |= d.Bit()
		}
	}
	return mask
}

// Variant returns the wall tag for mask, or false for the zero mask
func Variant(mask uint8) (world.Field, bool) {
	if mask == 0 || int(mask) >= len(variants) {
		return world.Wall, false
	}
	return variants[mask], true
}

// MaskOf returns the mask a wall variant was classified from
func MaskOf(f world.Field) (uint8, bool) {
	if !f.IsVariant() {
		return 0, false
	}
	for mask, v := range variants {
		if mask != 0 && v == f {
			return uint8(mask), true
		}
	}
	return 0, false
}

// MaskString renders mask as its "NESW" bit string, e.g. "1100"
func MaskString(mask uint8) string {
	b := []byte("0000")
	for i, d := range world.AllDirections() {
		if mask&d.Bit() != 0 {
			b[i] = '1'
		}
	}
	return string(b)
}

// Classify retags every interior Wall that touches Floor and returns how many cells changed.
// Variants are never floor, so the pass reads the same neighborhood it writes.
func Classify(grid *world.Grid) int {
	changed := 0
	grid.ForEachInterior(func(p gruid.Point, f world.Field) {
		if f != world.Wall {
			return
		}
		if v, ok := Variant(Mask(grid, p)); ok {
			grid.Set(p, v)
			changed++
		}
	})
	return changed
}

// RemoveClutter turns FullWall pillars into Floor with probability 1/odds and returns how many were removed.
func RemoveClutter(grid *world.Grid, r rng.Sampler, odds int) int {
	removed := 0
	grid.ForEachInterior(func(p gruid.Point, f world.Field) {
		if f == world.FullWall && rng.OneIn(r, odds) {
			grid.Set(p, world.Floor)
			removed++
		}
	})
	return removed
}
