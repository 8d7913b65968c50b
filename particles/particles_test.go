package particles

import (
	"math"
	"testing"

	"github.com/adri326/vector-fields/components"
)

func testParams() Params {
	return Params{
		Capacity:     256,
		Depth:        3,
		SpeedScale:   0.6,
		Substeps:     6,
		Normalize:    true,
		MaxLifetime:  2.7,
		DomainRadius: 2,
		DarkFraction: 0.3,
		CenterRe:     0,
		CenterIm:     0,
		Background:   [3]float64{0.08, 0.085, 0.12},
		Seed:         42,
	}
}

func TestPoolSizeInvariant(t *testing.T) {
	pool := NewPool(testParams())
	defer pool.Close()

	if pool.Len() != 256 {
		t.Fatalf("expected 256 particles, got %d", pool.Len())
	}

	for i := 0; i < 100; i++ {
		pool.Update(1.0 / 60.0)
	}

	if pool.Len() != 256 {
		t.Errorf("pool size changed: got %d", pool.Len())
	}
	count := 0
	pool.Visit(func(_ *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		count++
	})
	if count != 256 {
		t.Errorf("expected 256 live entities, got %d", count)
	}
}

func TestNonFinitePositionRespawns(t *testing.T) {
	p := testParams()
	pool := NewPool(p)
	defer pool.Close()

	poisoned := 0
	pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		if poisoned == 0 {
			pos.Re = math.NaN()
			poisoned++
		}
	})

	counts := pool.Update(1.0 / 60.0)
	if counts.NonFinite < 1 {
		t.Errorf("expected at least one non-finite respawn, got %d", counts.NonFinite)
	}

	pool.Visit(func(pos *components.Position, _ *components.Trail, life *components.Lifetime, _ *components.Tint) {
		if math.IsNaN(pos.Re) || math.IsNaN(pos.Im) || math.IsInf(pos.Re, 0) || math.IsInf(pos.Im, 0) {
			t.Errorf("non-finite position survived update: (%f, %f)", pos.Re, pos.Im)
		}
		if life.Age < 0 || life.Age > life.Max {
			t.Errorf("age %f outside [0, %f]", life.Age, life.Max)
		}
	})
}

func TestExpiredParticleRespawnsWithZeroAge(t *testing.T) {
	pool := NewPool(testParams())
	defer pool.Close()

	forced := 0
	pool.Visit(func(_ *components.Position, _ *components.Trail, life *components.Lifetime, _ *components.Tint) {
		if forced == 0 {
			life.Age = life.Max + 1
			forced++
		}
	})

	counts := pool.Update(1.0 / 60.0)
	if counts.Expired < 1 {
		t.Errorf("expected at least one expired respawn, got %d", counts.Expired)
	}

	fresh := 0
	pool.Visit(func(_ *components.Position, _ *components.Trail, life *components.Lifetime, _ *components.Tint) {
		if life.Age == 0 {
			fresh++
		}
	})
	if fresh < counts.Total() {
		t.Errorf("expected %d fresh particles with age 0, found %d", counts.Total(), fresh)
	}
}

func TestRespawnInsideDomain(t *testing.T) {
	p := testParams()
	pool := NewPool(p)
	defer pool.Close()

	pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		pos.Re = p.DomainRadius * 10
		pos.Im = 0
	})

	counts := pool.Update(1.0 / 60.0)
	if counts.OutOfBounds != p.Capacity {
		t.Errorf("expected %d out-of-bounds respawns, got %d", p.Capacity, counts.OutOfBounds)
	}

	pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		d := math.Hypot(pos.Re-p.CenterRe, pos.Im-p.CenterIm)
		if d > p.DomainRadius {
			t.Errorf("respawned particle outside domain: distance %f > %f", d, p.DomainRadius)
		}
	})
}

func TestLongRunStaysBounded(t *testing.T) {
	p := testParams()
	p.Capacity = 1000
	pool := NewPool(p)
	defer pool.Close()

	for i := 0; i < 600; i++ {
		pool.Update(1.0 / 60.0)
	}

	pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		if math.IsNaN(pos.Re) || math.IsNaN(pos.Im) {
			t.Fatalf("NaN position after long run")
		}
		d := math.Hypot(pos.Re-p.CenterRe, pos.Im-p.CenterIm)
		if d > p.DomainRadius {
			t.Errorf("particle escaped domain: distance %f", d)
		}
	})
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []float64 {
		pool := NewPool(testParams())
		defer pool.Close()
		for i := 0; i < 120; i++ {
			pool.Update(1.0 / 60.0)
		}
		out := make([]float64, 0, pool.Len()*2)
		pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
			out = append(out, pos.Re, pos.Im)
		})
		return out
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at index %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestTrailFollowsPosition(t *testing.T) {
	pool := NewPool(testParams())
	defer pool.Close()

	type pair struct{ re, im float64 }
	before := make([]pair, 0, pool.Len())
	pool.Visit(func(pos *components.Position, _ *components.Trail, _ *components.Lifetime, _ *components.Tint) {
		before = append(before, pair{pos.Re, pos.Im})
	})

	counts := pool.Update(1.0 / 60.0)

	i := 0
	pool.Visit(func(pos *components.Position, trail *components.Trail, life *components.Lifetime, _ *components.Tint) {
		respawned := life.Age == 0
		if respawned {
			if trail.Re != pos.Re || trail.Im != pos.Im {
				t.Errorf("slot %d: respawned trail not reset to position", i)
			}
		} else {
			if trail.Re != before[i].re || trail.Im != before[i].im {
				t.Errorf("slot %d: trail %v, expected previous position %v", i, *trail, before[i])
			}
		}
		i++
	})
	_ = counts
}

func TestSpeedsPopulated(t *testing.T) {
	pool := NewPool(testParams())
	defer pool.Close()

	pool.Update(1.0 / 60.0)

	speeds := pool.Speeds()
	if len(speeds) != pool.Len() {
		t.Fatalf("speeds length %d, pool %d", len(speeds), pool.Len())
	}
	nonzero := 0
	for _, s := range speeds {
		if s > 0 {
			nonzero++
		}
	}
	if nonzero == 0 {
		t.Errorf("no particle reported a positive field speed")
	}
}

func TestDarkFractionZeroGivesWarmPalette(t *testing.T) {
	p := testParams()
	p.DarkFraction = 0
	pool := NewPool(p)
	defer pool.Close()

	pool.Visit(func(_ *components.Position, _ *components.Trail, _ *components.Lifetime, tint *components.Tint) {
		if tint.R < 0.8 {
			t.Errorf("warm palette red channel %f below base 0.8", tint.R)
		}
		if tint.B != 0.23 {
			t.Errorf("warm palette blue channel %f, expected 0.23", tint.B)
		}
	})
}
