package board

import (
	"fmt"
	"io"
	"log"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/game/bridge"
	"dungeonboard/pkg/game/config"
	"dungeonboard/pkg/game/generator"
	"dungeonboard/pkg/game/rooms"
	"dungeonboard/pkg/game/walls"
)

// Generator builds boards from a configuration.
type Generator struct {
	Config config.Config
	// Rand drives every random choice; nil seeds a source from Config.Seed.
	Rand   rng.Sampler
	Logger *log.Logger
}

// New returns a generator seeded from cfg.Seed
func New(cfg config.Config) *Generator {
	return &Generator{Config: cfg, Rand: rng.New(cfg.Seed)}
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return g.Logger
}

// Generate runs placement, balancing, bridging and wall classification, then derives the board outputs
func (g *Generator) Generate() (*Board, error) {
	cfg := g.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := g.logger()
	r := g.Rand
	if r == nil {
		r = rng.New(cfg.Seed)
	}
	coverage := cfg.Coverage()

	strategy, err := generator.ByName(cfg.Strategy, cfg.Layout, r)
	if err != nil {
		return nil, err
	}
	grid, err := strategy.Generate(cfg.Width, cfg.Height, cfg.Border, coverage)
	if err != nil {
		return nil, fmt.Errorf("board: %s placement: %w", strategy.Name(), err)
	}
	logger.Printf("board: %s placed %d floor tiles on %dx%d", strategy.Name(), grid.CountFunc(isFloor), cfg.Width, cfg.Height)

	balancer := rooms.NewBalancer(r, cfg.RoomPolicy())
	balancer.ConnectOdds = cfg.ConnectOdds
	balancer.DisconnectOdds = cfg.DisconnectOdds
	balancer.MaxIterations = cfg.MaxIterations
	balancer.Logger = g.Logger
	balanced, err := balancer.Balance(grid, coverage.MinFloorTiles, coverage.MaxFloorTiles)
	if err != nil {
		return nil, fmt.Errorf("board: seed %d: %w", cfg.Seed, err)
	}

	b := &Board{
		Grid:  grid,
		Rooms: balanced.Rooms,
		Seed:  cfg.Seed,
		Stats: Stats{
			Strategy:          strategy.Name(),
			BalanceIterations: balanced.Iterations,
			FloorTiles:        balanced.FloorTiles,
		},
	}

	if cfg.Bridge && len(balanced.Rooms) > 1 {
		bridger := &bridge.Bridger{Linking: cfg.LinkingMode(), Logger: g.Logger}
		report, err := bridger.Connect(grid, balanced.Rooms)
		if err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
		b.Stats.Links = len(report.Links)
		b.Stats.CorridorTiles = report.Carved
		b.Stats.SkippedLinks = report.Skipped
	}

	b.Stats.WallsClassified = walls.Classify(grid)
	if cfg.ClutterOdds > 0 {
		b.Stats.ClutterRemoved = walls.RemoveClutter(grid, r, cfg.ClutterOdds)
	}

	b.Obstacles = NewObstacles(grid)
	b.OuterFloor, b.InnerFloor = PartitionFloor(grid)
	logger.Printf("board: %d rooms, %d links, %d outer and %d inner floor tiles",
		len(b.Rooms), b.Stats.Links, len(b.OuterFloor), len(b.InnerFloor))
	return b, nil
}
