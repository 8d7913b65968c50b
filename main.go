package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/config"
	"github.com/adri326/vector-fields/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the simulation without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	recordDir := flag.String("record", "", "Directory for PNG frame capture (windowed only)")
	seed := flag.Uint64("seed", 0, "Respawn seed (0 = config value, config 0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	runSeed := *seed
	if runSeed == 0 {
		runSeed = cfg.Particles.Seed
	}
	if runSeed == 0 {
		runSeed = uint64(time.Now().UnixNano())
	}

	opts := game.Options{
		Seed:           runSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		RecordDir:      *recordDir,
		Headless:       *headless,
	}

	if *headless {
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", runSeed,
			"depth", cfg.Field.Depth,
			"particles", cfg.Particles.Capacity,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Vector Fields")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting",
		"seed", runSeed,
		"depth", cfg.Field.Depth,
		"particles", cfg.Particles.Capacity,
	)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if err := g.Err(); err != nil {
			slog.Error("render pipeline failed", "error", err)
			os.Exit(1)
		}
		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
