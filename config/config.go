// Package config provides configuration loading and access for the
// visualization. All tunables are set once at startup; nothing here is
// hot-reloadable mid-run.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adri326/vector-fields/field"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	View      ViewConfig      `yaml:"view"`
	Field     FieldConfig     `yaml:"field"`
	Particles ParticlesConfig `yaml:"particles"`
	Bloom     BloomConfig     `yaml:"bloom"`
	Render    RenderConfig    `yaml:"render"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ViewConfig positions the window over the complex plane. Scale is the
// number of plane units spanned by the shorter window axis; the center is
// the plane coordinate at the middle of the window.
type ViewConfig struct {
	Scale    float64 `yaml:"scale"`
	CenterRe float64 `yaml:"center_re"`
	CenterIm float64 `yaml:"center_im"`
}

// FieldConfig holds the field formula parameters.
type FieldConfig struct {
	Depth int `yaml:"depth"` // iteration depth n, composed terms i = 2..n
}

// ParticlesConfig holds the particle pool parameters.
type ParticlesConfig struct {
	Capacity          int     `yaml:"capacity"`
	SpeedScale        float64 `yaml:"speed_scale"`
	Substeps          int     `yaml:"substeps"`
	NormalizeVelocity bool    `yaml:"normalize_velocity"`
	MaxLifetime       float64 `yaml:"max_lifetime"`  // seconds
	FadeIn            float64 `yaml:"fade_in"`       // seconds to fade in
	FadeOut           float64 `yaml:"fade_out"`      // seconds to fade out before expiry
	DomainRadius      float64 `yaml:"domain_radius"` // respawn beyond this distance from view center
	DarkFraction      float64 `yaml:"dark_fraction"` // share of particles tinted background-dark
	Seed              uint64  `yaml:"seed"`          // respawn seed salt (0 = default constant)
}

// BloomConfig holds the post-process parameters.
type BloomConfig struct {
	Threshold float64 `yaml:"threshold"` // luminance cutoff for the bright pass
	Sigma     float64 `yaml:"sigma"`     // Gaussian sigma for the blur passes
	Support   int     `yaml:"support"`   // symmetric tap pairs per blur pass
}

// RenderConfig holds presentation settings.
type RenderConfig struct {
	ParticleSize float64    `yaml:"particle_size"` // trail thickness in pixels
	TrailFade    float64    `yaml:"trail_fade"`    // per-frame background overlay alpha; 1 = full clear
	Background   [3]float64 `yaml:"background"`    // RGB in [0,1]
}

// PhysicsConfig holds the fixed simulation timestep.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	SpeedSample int     `yaml:"speed_sample"` // particles sampled for speed stats per window
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	DT32       float32
	ScreenW32  float32
	ScreenH32  float32
	Threshold3 float32 // bloom threshold as float32 for the shader uniform
}

var global *Config

// Init loads configuration and installs it as the global config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Field.Depth < 2 {
		return fmt.Errorf("field.depth must be >= 2, got %d", c.Field.Depth)
	}
	if c.Field.Depth > field.MaxDepth {
		return fmt.Errorf("field.depth must be <= %d, got %d", field.MaxDepth, c.Field.Depth)
	}
	if c.Particles.Capacity < 1 {
		return fmt.Errorf("particles.capacity must be >= 1, got %d", c.Particles.Capacity)
	}
	if c.Particles.Substeps < 1 {
		return fmt.Errorf("particles.substeps must be >= 1, got %d", c.Particles.Substeps)
	}
	if c.Particles.DomainRadius <= 0 {
		return fmt.Errorf("particles.domain_radius must be > 0, got %f", c.Particles.DomainRadius)
	}
	if c.Particles.MaxLifetime <= 0 {
		return fmt.Errorf("particles.max_lifetime must be > 0, got %f", c.Particles.MaxLifetime)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be > 0, got %f", c.Physics.DT)
	}
	if c.Bloom.Sigma <= 0 {
		return fmt.Errorf("bloom.sigma must be > 0, got %f", c.Bloom.Sigma)
	}
	if c.Bloom.Support < 1 {
		return fmt.Errorf("bloom.support must be >= 1, got %d", c.Bloom.Support)
	}
	if c.Render.TrailFade <= 0 || c.Render.TrailFade > 1 {
		return fmt.Errorf("render.trail_fade must be in (0, 1], got %f", c.Render.TrailFade)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Threshold3 = float32(c.Bloom.Threshold)
}

// WriteYAML writes the configuration to a file for experiment provenance.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
