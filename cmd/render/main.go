// Offline renderer: runs the simulation headless and produces PNG frames
// through the CPU post-process pipeline. Useful for reproducible output and
// for rendering on machines without a GPU.
//
// Usage: go run ./cmd/render -out frames -frames 300
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adri326/vector-fields/camera"
	"github.com/adri326/vector-fields/components"
	"github.com/adri326/vector-fields/config"
	"github.com/adri326/vector-fields/field"
	"github.com/adri326/vector-fields/particles"
	"github.com/adri326/vector-fields/postfx"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "frames", "Output directory for PNG frames")
	warmup := flag.Int("warmup", 120, "Simulation ticks before the first frame")
	frames := flag.Int("frames", 300, "Number of frames to render")
	seed := flag.Uint64("seed", 1, "Respawn seed")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	pool := particles.NewPool(particles.Params{
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
		Seed:         *seed,
	})
	defer pool.Close()

	cam := camera.New(cfg.Screen.Width, cfg.Screen.Height, cfg.View.Scale, cfg.View.CenterRe, cfg.View.CenterIm)

	bg := cfg.Render.Background
	bgR, bgG, bgB := float32(bg[0]), float32(bg[1]), float32(bg[2])

	scene := postfx.NewImage(cfg.Screen.Width, cfg.Screen.Height)
	scene.Fill(bgR, bgG, bgB, 1)

	slog.Info("warming up", "ticks", *warmup)
	for i := 0; i < *warmup; i++ {
		pool.Update(cfg.Physics.DT)
	}

	bloom := postfx.BloomParams{Threshold: cfg.Derived.Threshold3}
	blurH := postfx.BlurParams{StepX: 1, StepY: 1, Horizontal: true, Sigma: cfg.Bloom.Sigma, Support: cfg.Bloom.Support}
	blurV := blurH
	blurV.Horizontal = false

	thickness := float32(cfg.Render.ParticleSize)
	fadeIn := cfg.Particles.FadeIn
	fadeOut := cfg.Particles.FadeOut

	slog.Info("rendering", "frames", *frames, "size", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height))

	for f := 0; f < *frames; f++ {
		pool.Update(cfg.Physics.DT)

		postfx.FadeOver(scene, bgR, bgG, bgB, float32(cfg.Render.TrailFade))

		pool.Visit(func(pos *components.Position, trail *components.Trail, life *components.Lifetime, tint *components.Tint) {
			alpha := 1.0
			if fadeIn > 0 {
				alpha *= field.Sigmoid(life.Age / fadeIn)
			}
			if fadeOut > 0 {
				alpha *= field.Sigmoid((life.Max - life.Age) / fadeOut)
			}
			if alpha <= 0 {
				return
			}

			x0, y0 := cam.PlaneToScreen(complex(trail.Re, trail.Im))
			x1, y1 := cam.PlaneToScreen(complex(pos.Re, pos.Im))
			postfx.AddLine(scene, x0, y0, x1, y1, thickness, tint.R, tint.G, tint.B, float32(alpha))
		})

		bright := postfx.Extract(scene, bloom)
		blurred := postfx.Blur(postfx.Blur(bright, blurH), blurV)
		frame := postfx.Composite(scene, blurred)

		name := filepath.Join(*outDir, fmt.Sprintf("frame_%06d.png", f))
		if err := writePNG(name, frame); err != nil {
			slog.Error("frame write failed", "file", name, "error", err)
			os.Exit(1)
		}

		if f%30 == 0 {
			slog.Info("progress", "frame", f)
		}
	}

	slog.Info("done", "frames", *frames, "dir", *outDir)
}

// writePNG encodes a float32 RGBA image as an 8-bit PNG.
func writePNG(name string, img *postfx.Image) error {
	out := image.NewNRGBA(image.Rect(0, 0, img.W, img.H))
	for y := 0; y < img.H; y++ {
		for x := 0; x < img.W; x++ {
			r, g, b, a := img.At(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: channel(r),
				G: channel(g),
				B: channel(b),
				A: channel(a),
			})
		}
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
