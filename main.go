package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeonboard/pkg/engine/terminal"
	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/board"
	"dungeonboard/pkg/game/config"
	"dungeonboard/pkg/game/devtools"
	"dungeonboard/pkg/game/rooms"
)

// rows kept free below a terminal-sized board for the legend and prompt
const reservedRows = 3

func initGettext(lang string) {
	gotext.Configure("locales", lang, "default")
}

type options struct {
	configPath  string
	seed        uint64
	width       int
	height      int
	border      int
	strategy    string
	policy      string
	linking     string
	minPercent  int
	maxPercent  int
	fit         bool
	debug       bool
	locale      string
	outDir      string
	htmlDir     string
	colorMode   string
	printConfig bool
	showcase    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "TOML file with generation settings")
	flag.Uint64Var(&o.seed, "seed", 0, "random seed (0 = time based)")
	flag.IntVar(&o.width, "width", 0, "board width")
	flag.IntVar(&o.height, "height", 0, "board height")
	flag.IntVar(&o.border, "border", 0, "wall border thickness")
	flag.StringVar(&o.strategy, "strategy", "", "room placement strategy (row-packed, floor-seeking)")
	flag.StringVar(&o.policy, "policy", "", "rooms kept by the balancer (largest, covering)")
	flag.StringVar(&o.linking, "linking", "", "room bridging mode (spanning-tree, nearest)")
	flag.IntVar(&o.minPercent, "min", 0, "minimum floor coverage in percent of the interior")
	flag.IntVar(&o.maxPercent, "max", 0, "maximum floor coverage in percent (0 = unbounded)")
	flag.BoolVar(&o.fit, "fit", false, "size the board to the terminal")
	flag.BoolVar(&o.debug, "debug", false, "log generation steps to stderr")
	flag.StringVar(&o.locale, "locale", "en_GB", "language for labels")
	flag.StringVar(&o.outDir, "out", "", "also write a text dump into this directory")
	flag.StringVar(&o.htmlDir, "html", "", "also write an HTML rendering into this directory")
	flag.StringVar(&o.colorMode, "color", "auto", "colored output (auto, always, never)")
	flag.BoolVar(&o.printConfig, "print-config", false, "print the effective configuration and exit")
	flag.BoolVar(&o.showcase, "showcase", false, "print every wall variant and exit")
	flag.Parse()
	return o
}

// buildConfig loads the base configuration and applies only the flags given on the command line
func buildConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = o.seed
		case "width":
			cfg.Width = o.width
		case "height":
			cfg.Height = o.height
		case "border":
			cfg.Border = o.border
		case "strategy":
			cfg.Strategy = o.strategy
		case "policy":
			cfg.Policy = o.policy
		case "linking":
			cfg.Linking = o.linking
		case "min":
			cfg.MinCoveragePercent = o.minPercent
		case "max":
			cfg.MaxCoveragePercent = o.maxPercent
		}
	})

	if o.fit {
		cfg.Width, cfg.Height = terminal.BoardSize(reservedRows)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, cfg.Validate()
}

func useColor(mode string) (bool, error) {
	switch mode {
	case "auto":
		return terminal.IsTerminal(), nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("unknown color mode %q", mode)
	}
}

func printGrid(w io.Writer, grid *world.Grid, colored bool) {
	if colored {
		p := devtools.DefaultPalette()
		devtools.WriteLegend(w, p)
		devtools.WriteColoredMap(w, grid, p)
		return
	}
	devtools.WriteMap(w, grid)
}

func run(o options) error {
	initGettext(o.locale)

	colored, err := useColor(o.colorMode)
	if err != nil {
		return err
	}
	if !colored {
		color.Disable()
	}

	if o.showcase {
		printGrid(os.Stdout, devtools.ShowcaseGrid(), colored)
		return nil
	}

	cfg, err := buildConfig(o)
	if err != nil {
		return err
	}
	if o.printConfig {
		return cfg.Write(os.Stdout)
	}

	gen := board.New(cfg)
	if o.debug {
		gen.Logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	}
	b, err := gen.Generate()
	if err != nil {
		if errors.Is(err, rooms.ErrGenerationFailed) {
			return fmt.Errorf("%w (try another seed or a wider coverage band)", err)
		}
		return err
	}

	if colored {
		printGrid(os.Stdout, b.Grid, true)
	} else if err := devtools.DumpBoard(os.Stdout, b); err != nil {
		return err
	}

	if o.outDir != "" {
		path, err := devtools.DumpBoardToFile(b, o.outDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", path)
	}
	if o.htmlDir != "" {
		path, err := devtools.SaveScreenshotHTML(b, o.htmlDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", path)
	}
	return nil
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "dungeonboard:", err)
		os.Exit(1)
	}
}
