// Package generator stamps rectangular rooms into a fresh board grid.
package generator

import (
	"errors"
	"fmt"
	"sort"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/engine/world"
)

// ErrInvalidLayout is matched by every layout or board shape a strategy refuses to run with.
var ErrInvalidLayout = errors.New("generator: invalid layout")

// ErrUnknownStrategy is returned by ByName for names with no registered strategy.
var ErrUnknownStrategy = errors.New("generator: unknown strategy")

// Strategy is a room placement algorithm
type Strategy interface {
	Generate(width, height, border int, coverage Coverage) (*world.Grid, error)
	Name() string
}

// Coverage is the floor tile band a board should end up in. MaxFloorTiles <= 0 means unbounded.
type Coverage struct {
	MinFloorTiles int
	MaxFloorTiles int
}

// CoverageFromPercent converts coverage percentages of the usable area into tile counts, truncating
func CoverageFromPercent(width, height, border, minPercent, maxPercent int) Coverage {
	usable := (width - 2*border) * (height - 2*border)
	return Coverage{
		MinFloorTiles: usable * minPercent / 100,
		MaxFloorTiles: usable * maxPercent / 100,
	}
}

// Layout holds the size ranges shared by the placement strategies.
type Layout struct {
	RoomWidth  rng.Range `toml:"room_width"`
	RoomHeight rng.Range `toml:"room_height"`
	GapX       rng.Range `toml:"gap_x"`
	GapY       rng.Range `toml:"gap_y"`
	// Inset is the random margin kept between a room and the row start or the board edge.
	Inset rng.Range `toml:"inset"`
}

// Validate rejects ranges that could stop the placement loops from making progress
func (l Layout) Validate() error {
	for _, r := range []struct {
		name  string
		rg    rng.Range
		least int
	}{
		{"room_width", l.RoomWidth, 1},
		{"room_height", l.RoomHeight, 1},
		{"gap_x", l.GapX, 0},
		{"gap_y", l.GapY, 0},
		{"inset", l.Inset, 0},
	} {
		if err := r.rg.Validate(r.name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
		if r.rg.Min < r.least {
			return fmt.Errorf("%w: %s minimum %d is below %d", ErrInvalidLayout, r.name, r.rg.Min, r.least)
		}
	}
	return nil
}

// checkBoard validates the board shape and the layout before a strategy touches the grid
func checkBoard(width, height, border int, l Layout) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidLayout, width, height)
	}
	if border < 1 || 2*border >= width || 2*border >= height {
		return fmt.Errorf("%w: border %d does not leave room inside a %dx%d board", ErrInvalidLayout, border, width, height)
	}
	return l.Validate()
}

// mustBeValid panics when a strategy produced an inconsistent grid
func mustBeValid(grid *world.Grid) {
	if err := grid.Validate(); err != "" {
		panic("generated invalid grid: " + err)
	}
}

var strategies = map[string]func(Layout, rng.Sampler) Strategy{
	RowPackedName: func(l Layout, r rng.Sampler) Strategy {
		return &RowPacked{Layout: l, Rand: r}
	},
	FloorSeekingName: func(l Layout, r rng.Sampler) Strategy {
		return &FloorSeeking{Layout: l, Rand: r}
	},
}

// ByName returns the strategy registered under name
func ByName(name string, l Layout, r rng.Sampler) (Strategy, error) {
	build, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return build(l, r), nil
}

// Names returns the registered strategy names in sorted order
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
