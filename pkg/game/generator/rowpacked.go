package generator

import (
	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/rooms"
)

// RowPackedName is the registry name of RowPacked
const RowPackedName = "row-packed"

// RowPacked lays rooms left to right and wraps to a new row when one would cross the right edge.
// Placement stops at the first room that would cross the top edge.
type RowPacked struct {
	Layout Layout
	Rand   rng.Sampler
}

// Name returns the name of this generator
func (g *RowPacked) Name() string {
	return RowPackedName
}

// Generate creates a new grid and keeps only the largest rooms that cover the minimum
func (g *RowPacked) Generate(width, height, border int, coverage Coverage) (*world.Grid, error) {
	if err := checkBoard(width, height, border, g.Layout); err != nil {
		return nil, err
	}
	grid := world.NewGrid(width, height, border)
	r := g.Rand
	l := g.Layout

	column := 0
	sumY := 0
	translationX := border
	translationY := border

	for {
		roomWidth := l.RoomWidth.Sample(r)
		roomHeight := l.RoomHeight.Sample(r)
		beginX := translationX + l.Inset.Sample(r)
		endX := beginX + roomWidth
		beginY := translationY + l.Inset.Sample(r)
		endY := beginY + roomHeight

		sumY += roomHeight

		if endY > height-border-l.Inset.Sample(r) {
			break
		}

		if endX > width-border-l.Inset.Sample(r) {
			// the wrapping room counts towards the row average, so an empty row still moves up
			translationX = border
			translationY += sumY/max(column, 1) + l.GapY.Sample(r)
			sumY = 0
			column = 0
			continue
		}

		grid.FillRect(gruid.NewRange(beginX, beginY, endX, endY), world.Floor)
		translationX = endX + l.GapX.Sample(r)
		column++
	}

	labels := rooms.Find(grid)
	rooms.KeepRooms(grid, labels, labels.Covering(coverage.MinFloorTiles))

	mustBeValid(grid)
	return grid, nil
}
