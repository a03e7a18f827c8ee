package rooms

import (
	"errors"
	"fmt"
	"io"
	"log"

	"codeberg.org/anaseto/gruid"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/engine/world"
)

// ErrGenerationFailed is matched by the error returned when the coverage band cannot be reached.
var ErrGenerationFailed = errors.New("rooms: coverage band not reached")

// GenerationError reports a balancer that ran out of iterations.
type GenerationError struct {
	Iterations    int
	LastSize      int
	MinFloorTiles int
	MaxFloorTiles int
}

func (e *GenerationError) Error() string {
	if e.MaxFloorTiles > 0 {
		return fmt.Sprintf("rooms: floor size %d outside [%d,%d] after %d iterations",
			e.LastSize, e.MinFloorTiles, e.MaxFloorTiles, e.Iterations)
	}
	return fmt.Sprintf("rooms: floor size %d below %d after %d iterations", e.LastSize, e.MinFloorTiles, e.Iterations)
}

// Unwrap lets errors.Is match ErrGenerationFailed
func (e *GenerationError) Unwrap() error {
	return ErrGenerationFailed
}

// Policy selects which rooms survive balancing.
type Policy int

const (
	// KeepLargest keeps only the biggest room.
	KeepLargest Policy = iota
	// KeepCovering keeps the largest rooms whose sizes first reach the minimum.
	KeepCovering
)

// String returns the configuration name of the policy
func (p Policy) String() string {
	switch p {
	case KeepLargest:
		return "largest"
	case KeepCovering:
		return "covering"
	default:
		return "unknown"
	}
}

// ParsePolicy returns the policy with the given configuration name
func ParsePolicy(name string) (Policy, bool) {
	switch name {
	case "largest":
		return KeepLargest, true
	case "covering":
		return KeepCovering, true
	default:
		return KeepLargest, false
	}
}

type balanceState int

const (
	stateMeasure balanceState = iota
	stateConnectMore
	stateDisconnectSome
	stateFinalize
)

func (s balanceState) String() string {
	switch s {
	case stateMeasure:
		return "measure"
	case stateConnectMore:
		return "connect"
	case stateDisconnectSome:
		return "disconnect"
	case stateFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// Default balancer settings
const (
	DefaultConnectOdds    = 25
	DefaultDisconnectOdds = 30
	DefaultMaxIterations  = 500
)

// Balancer perturbs a grid until its kept floor area lies in a target band.
type Balancer struct {
	Rand   rng.Sampler
	Policy Policy
	// ConnectOdds is n in the 1/n chance of opening an interior wall per pass.
	ConnectOdds int
	// DisconnectOdds is n in the 1/n chance of closing an interior floor per pass.
	DisconnectOdds int
	MaxIterations  int
	Logger         *log.Logger
}

// NewBalancer returns a balancer with the default odds and iteration cap
func NewBalancer(r rng.Sampler, policy Policy) *Balancer {
	return &Balancer{
		Rand:           r,
		Policy:         policy,
		ConnectOdds:    DefaultConnectOdds,
		DisconnectOdds: DefaultDisconnectOdds,
		MaxIterations:  DefaultMaxIterations,
	}
}

// Result describes a converged balance run.
type Result struct {
	Rooms      []Room
	FloorTiles int
	Iterations int
}

func (b *Balancer) logger() *log.Logger {
	if b.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return b.Logger
}

// Balance runs the measure/connect/disconnect loop on grid and finalizes it so that only the selected
// rooms remain as Floor. maxFloorTiles <= 0 disables the upper bound.
func (b *Balancer) Balance(grid *world.Grid, minFloorTiles, maxFloorTiles int) (Result, error) {
	logger := b.logger()
	maxIterations := b.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	lastSize := 0
	for i := 1; i <= maxIterations; i++ {
		l := Find(grid)
		selected := b.selectRooms(l, minFloorTiles)
		lastSize = sizeOf(selected)

		state := b.next(lastSize, minFloorTiles, maxFloorTiles)
		logger.Printf("balance iteration %d: %d rooms, selected %d tiles, band [%d,%d] -> %v",
			i, len(l.Rooms), lastSize, minFloorTiles, maxFloorTiles, state)

		switch state {
		case stateConnectMore:
			b.connectMore(grid)
		case stateDisconnectSome:
			b.disconnectSome(grid)
		case stateFinalize:
			KeepRooms(grid, l, selected)
			return Result{Rooms: selected, FloorTiles: lastSize, Iterations: i}, nil
		}
	}

	return Result{}, &GenerationError{
		Iterations:    maxIterations,
		LastSize:      lastSize,
		MinFloorTiles: minFloorTiles,
		MaxFloorTiles: maxFloorTiles,
	}
}

func (b *Balancer) selectRooms(l *Labeling, minFloorTiles int) []Room {
	if len(l.Rooms) == 0 {
		return nil
	}
	if b.Policy == KeepCovering {
		return l.Covering(minFloorTiles)
	}
	return l.Rooms[:1]
}

func (b *Balancer) next(size, minFloorTiles, maxFloorTiles int) balanceState {
	if size < minFloorTiles || size == 0 {
		return stateConnectMore
	}
	if maxFloorTiles > 0 && size > maxFloorTiles {
		return stateDisconnectSome
	}
	return stateFinalize
}

// connectMore opens random interior walls, then flattens every open cell to Floor
func (b *Balancer) connectMore(grid *world.Grid) {
	grid.ForEachInterior(func(p gruid.Point, f world.Field) {
		if f == world.Wall && rng.OneIn(b.Rand, b.ConnectOdds) {
			grid.Set(p, world.Floor)
		}
	})
	flatten(grid)
}

// disconnectSome flattens every open cell to Floor, then closes random interior floors
func (b *Balancer) disconnectSome(grid *world.Grid) {
	flatten(grid)
	grid.ForEachInterior(func(p gruid.Point, f world.Field) {
		if f == world.Floor && rng.OneIn(b.Rand, b.DisconnectOdds) {
			grid.Set(p, world.Wall)
		}
	})
}

func flatten(grid *world.Grid) {
	grid.ForEachCell(func(p gruid.Point, f world.Field) {
		if !f.IsWall() && f != world.Floor {
			grid.Set(p, world.Floor)
		}
	})
}

func sizeOf(rooms []Room) int {
	n := 0
	for _, r := range rooms {
		n += r.Size()
	}
	return n
}
