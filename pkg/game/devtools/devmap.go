package devtools

import (
	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/walls"
)

// ShowcaseGrid returns a hard-coded developer board holding every wall variant once.
// Each variant sits on its own 3x3 stamp, laid out in a row with a 3-cell margin between stamps.
func ShowcaseGrid() *world.Grid {
	const margin = 3
	const stride = 3 + margin
	grid := world.NewGrid(2+15*stride, 7, 1)

	for mask := uint8(1); mask < 16; mask++ {
		center := gruid.Point{X: 2 + int(mask-1)*stride + 1, Y: 3}
		for _, d := range world.AllDirections() {
			if mask&d.Bit() != 0 {
				grid.Set(grid.Neighbor(center, d), world.Floor)
			}
		}
	}

	walls.Classify(grid)
	return grid
}
