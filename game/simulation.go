package game

import (
	"log/slog"

	"github.com/adri326/vector-fields/config"
	"github.com/adri326/vector-fields/telemetry"
)

// step advances the simulation one fixed timestep and feeds telemetry.
func (g *Game) step() {
	cfg := config.Cfg()

	counts := g.pool.Update(cfg.Physics.DT)
	g.collector.RecordRespawns(counts)
	g.tick++

	if g.collector.ShouldFlush(g.tick) {
		g.flushTelemetry()
	}
}

// flushTelemetry closes the current stats window: sample speeds, aggregate,
// log, and append to the CSV files when output is enabled.
func (g *Game) flushTelemetry() {
	stats := g.collector.Flush(g.tick, g.pool.Len(), g.sampleSpeeds())
	g.lastStats = stats

	if g.opts.LogStats {
		stats.LogStats()
		g.perf.Stats().LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("telemetry write failed", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), g.tick); err != nil {
		slog.Error("perf write failed", "error", err)
	}
}

// sampleSpeeds picks an evenly strided subset of the pool's field speeds,
// bounded by the configured sample size.
func (g *Game) sampleSpeeds() []float64 {
	speeds := g.pool.Speeds()
	limit := config.Cfg().Telemetry.SpeedSample
	if limit < 1 || limit > len(speeds) {
		limit = len(speeds)
	}
	stride := len(speeds) / limit
	if stride < 1 {
		stride = 1
	}

	g.speedSample = g.speedSample[:0]
	for i := 0; i < len(speeds) && len(g.speedSample) < limit; i += stride {
		g.speedSample = append(g.speedSample, float64(speeds[i]))
	}
	return g.speedSample
}

// UpdateHeadless runs one simulation tick without any rendering.
func (g *Game) UpdateHeadless() {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseSimulation)
	g.step()
	g.perf.EndTick()
}
