// Package config holds the board generation settings and their TOML form.
package config

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"dungeonboard/pkg/engine/rng"
	"dungeonboard/pkg/game/bridge"
	"dungeonboard/pkg/game/generator"
	"dungeonboard/pkg/game/rooms"
)

// ErrInvalidConfig is matched by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigError names the setting that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config is everything a board generation run needs besides the random source.
type Config struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Border   int    `toml:"border"`
	Strategy string `toml:"strategy"`

	Layout generator.Layout `toml:"layout"`

	MinCoveragePercent int `toml:"min_coverage_percent"`
	// MaxCoveragePercent of 0 leaves the coverage unbounded above.
	MaxCoveragePercent int `toml:"max_coverage_percent"`

	Policy         string `toml:"policy"`
	MaxIterations  int    `toml:"max_iterations"`
	ConnectOdds    int    `toml:"connect_odds"`
	DisconnectOdds int    `toml:"disconnect_odds"`

	Bridge  bool   `toml:"bridge"`
	Linking string `toml:"linking"`

	// ClutterOdds is n in the 1/n chance of clearing a pillar; 0 disables the pass.
	ClutterOdds int `toml:"clutter_odds"`

	// Seed of 0 asks the caller for a fresh one.
	Seed uint64 `toml:"seed"`
}

// Default returns the 40x30 reference board settings
func Default() Config {
	return Config{
		Width:    40,
		Height:   30,
		Border:   2,
		Strategy: generator.RowPackedName,
		Layout: generator.Layout{
			RoomWidth:  rng.Range{Min: 4, Max: 8},
			RoomHeight: rng.Range{Min: 4, Max: 6},
			GapX:       rng.Range{Min: 1, Max: 3},
			GapY:       rng.Range{Min: 1, Max: 3},
			Inset:      rng.Range{Min: 0, Max: 2},
		},
		MinCoveragePercent: 20,
		MaxCoveragePercent: 0,
		Policy:             rooms.KeepCovering.String(),
		MaxIterations:      rooms.DefaultMaxIterations,
		ConnectOdds:        rooms.DefaultConnectOdds,
		DisconnectOdds:     rooms.DefaultDisconnectOdds,
		Bridge:             true,
		Linking:            bridge.LinkSpanningTree.String(),
		ClutterOdds:        2,
		Seed:               1,
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Keys the file sets that Config does not know are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &ConfigError{Field: keys[0], Reason: "unknown key (" + strings.Join(keys, ", ") + ")"}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes the configuration as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Coverage returns the floor tile band for the configured board
func (c Config) Coverage() generator.Coverage {
	return generator.CoverageFromPercent(c.Width, c.Height, c.Border, c.MinCoveragePercent, c.MaxCoveragePercent)
}

// RoomPolicy returns the parsed balancer policy
func (c Config) RoomPolicy() rooms.Policy {
	p, _ := rooms.ParsePolicy(c.Policy)
	return p
}

// LinkingMode returns the parsed bridge linking mode
func (c Config) LinkingMode() bridge.Linking {
	l, _ := bridge.ParseLinking(c.Linking)
	return l
}

func invalid(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate rejects settings that cannot produce a board or could keep the placement loop from terminating
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return invalid("width", "board %dx%d must be positive", c.Width, c.Height)
	}
	if c.Border < 1 {
		return invalid("border", "must be at least 1, got %d", c.Border)
	}
	if smaller := min(c.Width, c.Height); 2*c.Border >= smaller {
		return invalid("border", "%d must be less than half of %d", c.Border, smaller)
	}

	ranges := []struct {
		field string
		rg    rng.Range
		least int
	}{
		{"layout.room_width", c.Layout.RoomWidth, 1},
		{"layout.room_height", c.Layout.RoomHeight, 1},
		{"layout.gap_x", c.Layout.GapX, 0},
		{"layout.gap_y", c.Layout.GapY, 0},
		{"layout.inset", c.Layout.Inset, 0},
	}
	for _, r := range ranges {
		if r.rg.Max <= r.rg.Min {
			return invalid(r.field, "range %v is empty", r.rg)
		}
		if r.rg.Min < r.least {
			return invalid(r.field, "minimum %d is below %d", r.rg.Min, r.least)
		}
	}
	if usable := c.Width - 2*c.Border; c.Layout.RoomWidth.Min > usable {
		return invalid("layout.room_width", "smallest room %d does not fit in usable width %d", c.Layout.RoomWidth.Min, usable)
	}
	if usable := c.Height - 2*c.Border; c.Layout.RoomHeight.Min > usable {
		return invalid("layout.room_height", "smallest room %d does not fit in usable height %d", c.Layout.RoomHeight.Min, usable)
	}

	if c.MinCoveragePercent < 0 || c.MinCoveragePercent > 100 {
		return invalid("min_coverage_percent", "%d is outside [0,100]", c.MinCoveragePercent)
	}
	if c.MaxCoveragePercent < 0 || c.MaxCoveragePercent > 100 {
		return invalid("max_coverage_percent", "%d is outside [0,100]", c.MaxCoveragePercent)
	}
	if c.MaxCoveragePercent > 0 && c.Coverage().MaxFloorTiles == 0 {
		return invalid("max_coverage_percent", "%d%% of the usable area rounds down to no floor tiles", c.MaxCoveragePercent)
	}
	if c.MaxCoveragePercent > 0 && c.MinCoveragePercent > c.MaxCoveragePercent {
		return invalid("min_coverage_percent", "%d is above max_coverage_percent %d", c.MinCoveragePercent, c.MaxCoveragePercent)
	}

	if !slices.Contains(generator.Names(), c.Strategy) {
		return invalid("strategy", "unknown strategy %q (want one of %s)", c.Strategy, strings.Join(generator.Names(), ", "))
	}
	if _, ok := rooms.ParsePolicy(c.Policy); !ok {
		return invalid("policy", "unknown policy %q", c.Policy)
	}
	if _, ok := bridge.ParseLinking(c.Linking); !ok {
		return invalid("linking", "unknown linking %q", c.Linking)
	}

	if c.MaxIterations <= 0 {
		return invalid("max_iterations", "must be positive, got %d", c.MaxIterations)
	}
	if c.ConnectOdds < 1 {
		return invalid("connect_odds", "must be at least 1, got %d", c.ConnectOdds)
	}
	if c.DisconnectOdds < 1 {
		return invalid("disconnect_odds", "must be at least 1, got %d", c.DisconnectOdds)
	}
	if c.ClutterOdds < 0 {
		return invalid("clutter_odds", "must not be negative, got %d", c.ClutterOdds)
	}
	return nil
}
