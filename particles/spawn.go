package particles

import (
	"math"
	"math/rand"

	"github.com/adri326/vector-fields/components"
	"github.com/adri326/vector-fields/field"
)

// spawnRNG builds the deterministic RNG stream for one respawn. The stream
// depends only on the configured seed, the tick, and the slot, so a run
// with the same seed replays the same spawn sequence.
func spawnRNG(seed, tick uint64, slot uint32) *rand.Rand {
	s := (tick<<32 | uint64(slot)) ^ respawnSeedMix ^ seed
	return rand.New(rand.NewSource(int64(s)))
}

// spawn draws fresh components for a slot: a position uniform over the
// domain disk, a lifetime in (0, max], and a color from the palette policy.
func (p *Pool) spawn(slot uint32) (components.Position, components.Lifetime, components.Tint) {
	rng := spawnRNG(p.params.Seed, p.tick, slot)

	// Uniform over the disk: sqrt keeps density flat instead of bunching
	// at the center.
	r := p.params.DomainRadius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	z := complex(p.params.CenterRe+r*math.Cos(theta), p.params.CenterIm+r*math.Sin(theta))

	pos := components.Position{Re: real(z), Im: imag(z)}
	life := components.Lifetime{
		Age: 0,
		Max: p.params.MaxLifetime * (0.1 + 0.9*rng.Float64()),
	}
	return pos, life, p.colorAt(z, rng)
}

// colorAt implements the palette policy. A configured fraction of spawns
// takes the background color and reads as negative space; the rest get a
// warm tone shifted by the field at the spawn point, so regions where the
// field runs hot or curls downward pick up more red and green.
func (p *Pool) colorAt(z complex128, rng *rand.Rand) components.Tint {
	if rng.Float64() < p.params.DarkFraction {
		bg := p.params.Background
		return components.Tint{R: float32(bg[0]), G: float32(bg[1]), B: float32(bg[2])}
	}
	v := field.Evaluate(z, p.params.Depth)
	if !field.IsFinite(v) {
		v = 0
	}
	mix := rng.Float64()
	return components.Tint{
		R: float32(0.8 + 0.2*mix*field.Sigmoid(magnitude(v))),
		G: float32(0.45 + 0.2*mix*field.Sigmoid(-imag(v))),
		B: 0.23,
	}
}

func magnitude(z complex128) float64 {
	return math.Hypot(real(z), imag(z))
}
