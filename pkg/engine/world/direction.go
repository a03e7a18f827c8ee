package world

import "codeberg.org/anaseto/gruid"

// Direction is one of the four sides of a cell. North points towards +Y.
type Direction int

// Directions, in the bit order of a wall mask
const (
	North Direction = iota
	East
	South
	West
)

var sides = [...]struct {
	name  string
	delta gruid.Point
}{
	North: {"North", gruid.Point{X: 0, Y: 1}},
	East:  {"East", gruid.Point{X: 1, Y: 0}},
	South: {"South", gruid.Point{X: 0, Y: -1}},
	West:  {"West", gruid.Point{X: -1, Y: 0}},
}

// AllDirections returns N, E, S, W
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if !d.IsValid() {
		return "Unknown"
	}
	return sides[d].name
}

// IsValid returns true if the direction is one of the four sides
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the facing side; invalid directions are returned unchanged
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 2) % 4
}

// Delta returns the step from a cell to its neighbor on side d
func (d Direction) Delta() gruid.Point {
	if !d.IsValid() {
		return gruid.Point{}
	}
	return sides[d].delta
}

// Bit returns the wall mask bit of side d: N=8, E=4, S=2, W=1
func (d Direction) Bit() uint8 {
	if !d.IsValid() {
		return 0
	}
	return 1 << (3 - uint(d))
}
