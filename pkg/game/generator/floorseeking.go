package generator

import (
	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/engine/world"
)

// FloorSeekingName is the registry name of FloorSeeking
const FloorSeekingName = "floor-seeking"

// FloorSeeking fills the board in passes from the bottom up. Each room settles a gap above the highest floor
// under its footprint, and rooms that would float too far above the pass are skipped.
type FloorSeeking struct {
	Layout Layout
	Rand   rng.Sampler
}

// Name returns the name of this generator
func (g *FloorSeeking) Name() string {
	return FloorSeekingName
}

// Generate creates a new grid. Coverage is left to the balancer.
func (g *FloorSeeking) Generate(width, height, border int, _ Coverage) (*world.Grid, error) {
	if err := checkBoard(width, height, border, g.Layout); err != nil {
		return nil, err
	}
	grid := world.NewGrid(width, height, border)
	r := g.Rand
	l := g.Layout

	placedSum, placedCount := 0, 0
	averageHeight := func() int {
		if placedCount == 0 {
			return l.RoomHeight.Largest()
		}
		return placedSum / placedCount
	}

	for base := border; base < height-border; {
		rowSum, rowCount := 0, 0

		for translationX := border; ; {
			roomWidth := l.RoomWidth.Sample(r)
			roomHeight := l.RoomHeight.Sample(r)
			beginX := translationX + l.Inset.Sample(r)
			endX := beginX + roomWidth
			if endX > width-border {
				break
			}
			translationX = endX + l.GapX.Sample(r)

			support := highestFloor(grid, beginX, endX)
			if support+1-base > averageHeight() {
				continue
			}
			beginY := support + 1 + l.GapY.Sample(r)
			endY := beginY + roomHeight
			if endY > height-border-l.Inset.Sample(r) {
				continue
			}

			grid.FillRect(gruid.NewRange(beginX, beginY, endX, endY), world.Floor)
			rowSum += roomHeight
			rowCount++
			placedSum += roomHeight
			placedCount++
		}

		rowHeight := l.RoomHeight.Min
		if rowCount > 0 {
			rowHeight = rowSum / rowCount
		}
		base += rowHeight + l.GapY.Sample(r)
	}

	mustBeValid(grid)
	return grid, nil
}

// highestFloor scans each column in [beginX, endX) down from the top of the interior and returns the highest
// Floor row found, or border-1 when the columns hold no floor
func highestFloor(grid *world.Grid, beginX, endX int) int {
	support := grid.Border() - 1
	top := grid.Height() - grid.Border() - 1
	for x := beginX; x < endX; x++ {
		for y := top; y > support; y-- {
			if grid.At(gruid.Point{X: x, Y: y}) == world.Floor {
				support = y
				break
			}
		}
	}
	return support
}
