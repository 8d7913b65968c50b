package telemetry

import (
	"math"

	"github.com/adri326/vector-fields/particles"
)

// Collector accumulates respawn events within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	oob       int
	nonFinite int
	expired   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// dt arrives as float32; rounding keeps a 1s window at 60 ticks
	// instead of truncating 59.99998 down to 59.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordRespawns accumulates one tick's respawn counts.
func (c *Collector) RecordRespawns(counts particles.RespawnCounts) {
	c.oob += counts.OutOfBounds
	c.nonFinite += counts.NonFinite
	c.expired += counts.Expired
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds is the field speed sample taken at window end.
func (c *Collector) Flush(currentTick int32, particleCount int, speeds []float64) WindowStats {
	mean, std, p10, p50, p90 := ComputeSpeedStats(speeds)

	windowSec := float64(currentTick-c.windowStartTick) * float64(c.dt)
	var rate float64
	if windowSec > 0 {
		rate = float64(c.oob+c.nonFinite+c.expired) / windowSec
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Particles: particleCount,

		RespawnsOutOfBounds: c.oob,
		RespawnsNonFinite:   c.nonFinite,
		RespawnsExpired:     c.expired,
		RespawnRate:         rate,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	c.windowStartTick = currentTick
	c.oob = 0
	c.nonFinite = 0
	c.expired = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
