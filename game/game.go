// Package game wires the simulation, renderer, telemetry, and input into
// the frame loop.
package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/adri326/vector-fields/camera"
	"github.com/adri326/vector-fields/config"
	"github.com/adri326/vector-fields/particles"
	"github.com/adri326/vector-fields/renderer"
	"github.com/adri326/vector-fields/telemetry"
	"github.com/adri326/vector-fields/ui"
)

// Options configure a run beyond what the config file covers.
type Options struct {
	Seed           uint64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	RecordDir      string
	Headless       bool
}

// Game holds the complete run state.
type Game struct {
	opts Options

	pool *particles.Pool
	cam  *camera.Camera

	// Rendering, nil in headless mode
	pipeline *renderer.Pipeline
	scene    *renderer.SceneRenderer
	recorder *renderer.Recorder

	panel      *ui.Panel
	panelState ui.PanelState

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	speedSample []float64
	lastStats   telemetry.WindowStats

	tick   int32
	paused bool
	err    error
}

// NewGameWithOptions builds a game. In windowed mode the raylib window must
// already exist; pipeline construction compiles shaders and allocates the
// render targets.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Particles.Seed
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		opts: opts,
		pool: particles.NewPool(particles.Params{
			Capacity:     cfg.Particles.Capacity,
			Depth:        cfg.Field.Depth,
			SpeedScale:   cfg.Particles.SpeedScale,
			Substeps:     cfg.Particles.Substeps,
			Normalize:    cfg.Particles.NormalizeVelocity,
			MaxLifetime:  cfg.Particles.MaxLifetime,
			DomainRadius: cfg.Particles.DomainRadius,
			DarkFraction: cfg.Particles.DarkFraction,
			CenterRe:     cfg.View.CenterRe,
			CenterIm:     cfg.View.CenterIm,
			Background:   cfg.Render.Background,
			Seed:         seed,
		}),
		cam:         camera.New(cfg.Screen.Width, cfg.Screen.Height, cfg.View.Scale, cfg.View.CenterRe, cfg.View.CenterIm),
		collector:   telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perf:        telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		speedSample: make([]float64, 0, cfg.Telemetry.SpeedSample),
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.pool.Close()
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.Unload()
		return nil, err
	}

	if !opts.Headless {
		bg := cfg.Render.Background
		g.pipeline, err = renderer.NewPipeline(renderer.PipelineParams{
			Width:     int32(cfg.Screen.Width),
			Height:    int32(cfg.Screen.Height),
			Threshold: cfg.Derived.Threshold3,
			Sigma:     float32(cfg.Bloom.Sigma),
			Support:   cfg.Bloom.Support,
			Background: rl.NewColor(
				uint8(bg[0]*255), uint8(bg[1]*255), uint8(bg[2]*255), 255,
			),
			TrailFade: float32(cfg.Render.TrailFade),
		})
		if err != nil {
			g.Unload()
			return nil, fmt.Errorf("creating render pipeline: %w", err)
		}

		g.scene = renderer.NewSceneRenderer(
			float32(cfg.Render.ParticleSize),
			cfg.Particles.FadeIn,
			cfg.Particles.FadeOut,
		)
		g.panel = ui.NewPanel(20, 60, 280)
		g.panelState = ui.PanelState{Threshold: cfg.Derived.Threshold3}

		if opts.RecordDir != "" {
			g.recorder, err = renderer.NewRecorder(opts.RecordDir)
			if err != nil {
				g.Unload()
				return nil, err
			}
		}
	}

	return g, nil
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Err returns the first fatal error hit inside the frame loop, if any.
func (g *Game) Err() error {
	return g.err
}

// Unload releases everything the game owns. Safe to call on a partially
// constructed game.
func (g *Game) Unload() {
	if g.recorder != nil {
		g.recorder.Close()
	}
	if g.pipeline != nil {
		g.pipeline.Unload()
	}
	if g.pool != nil {
		g.pool.Close()
	}
	if g.output != nil {
		g.output.Close()
	}
}
