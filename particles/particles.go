// Package particles owns the fixed-capacity particle pool. The pool is an
// ark ECS world populated once at startup; particles are never added or
// removed afterwards, respawning overwrites components in place so entity
// identity and iteration order stay stable for the life of the run.
package particles

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/adri326/vector-fields/components"
	"github.com/adri326/vector-fields/field"
)

// respawnSeedMix decorrelates the per-respawn RNG streams derived from
// (tick, slot) pairs.
const respawnSeedMix = 0xCBF52D44320FD62A

// RespawnCounts tallies respawns by cause over one Update call.
type RespawnCounts struct {
	OutOfBounds int
	NonFinite   int
	Expired     int
}

// Total returns the number of respawns across all causes.
func (c RespawnCounts) Total() int {
	return c.OutOfBounds + c.NonFinite + c.Expired
}

// Params are the simulation settings the pool needs. They are fixed for the
// lifetime of the pool.
type Params struct {
	Capacity     int
	Depth        int
	SpeedScale   float64
	Substeps     int
	Normalize    bool
	MaxLifetime  float64
	DomainRadius float64
	DarkFraction float64
	CenterRe     float64
	CenterIm     float64
	Background   [3]float64
	Seed         uint64
}

// Pool is the particle system. All methods must be called from the
// simulation goroutine; Update farms work out to its internal worker pool
// but writes back single-threaded.
type Pool struct {
	params Params

	world    *ecs.World
	mapper   *ecs.Map4[components.Position, components.Trail, components.Lifetime, components.Tint]
	filter   *ecs.Filter4[components.Position, components.Trail, components.Lifetime, components.Tint]
	posMap   *ecs.Map[components.Position]
	trailMap *ecs.Map[components.Trail]
	lifeMap  *ecs.Map[components.Lifetime]
	tintMap  *ecs.Map[components.Tint]
	entities []ecs.Entity

	tick     uint64
	speeds   []float32
	parallel *parallelState
}

// NewPool creates the world and spawns the full pool. Initial ages are
// randomized so lifetimes desynchronize from the first frame instead of
// expiring in waves.
func NewPool(p Params) *Pool {
	world := ecs.NewWorld()
	pool := &Pool{
		params:   p,
		world:    world,
		entities: make([]ecs.Entity, 0, p.Capacity),
		speeds:   make([]float32, p.Capacity),
		parallel: newParallelState(p.Capacity),
	}
	pool.mapper = ecs.NewMap4[components.Position, components.Trail, components.Lifetime, components.Tint](pool.world)
	pool.filter = ecs.NewFilter4[components.Position, components.Trail, components.Lifetime, components.Tint](pool.world)
	pool.posMap = ecs.NewMap[components.Position](pool.world)
	pool.trailMap = ecs.NewMap[components.Trail](pool.world)
	pool.lifeMap = ecs.NewMap[components.Lifetime](pool.world)
	pool.tintMap = ecs.NewMap[components.Tint](pool.world)

	ageRNG := rand.New(rand.NewSource(int64(p.Seed ^ 0x9E3779B97F4A7C15)))
	for slot := 0; slot < p.Capacity; slot++ {
		pos, life, tint := pool.spawn(uint32(slot))
		// Initial population only: start partway through the lifetime so
		// expiries do not arrive in waves.
		life.Age = ageRNG.Float64() * life.Max

		trail := components.Trail{Re: pos.Re, Im: pos.Im}
		e := pool.mapper.NewEntity(&pos, &trail, &life, &tint)
		pool.entities = append(pool.entities, e)
	}
	return pool
}

// Len returns the pool capacity, which is also its live population.
func (p *Pool) Len() int {
	return len(p.entities)
}

// Tick returns the number of completed Update calls.
func (p *Pool) Tick() uint64 {
	return p.tick
}

// Speeds returns the field speed of each particle as of the last Update,
// indexed by slot. The slice is reused across updates.
func (p *Pool) Speeds() []float32 {
	return p.speeds
}

// Visit iterates the pool in slot order, passing component pointers.
// Callers must not retain the pointers past the callback.
func (p *Pool) Visit(fn func(pos *components.Position, trail *components.Trail, life *components.Lifetime, tint *components.Tint)) {
	query := p.filter.Query()
	for query.Next() {
		pos, trail, life, tint := query.Get()
		fn(pos, trail, life, tint)
	}
}

// Update advances every particle by dt seconds and respawns the ones that
// left the domain, went non-finite, or expired. Numeric anomalies never
// abort the frame; they are a respawn cause.
func (p *Pool) Update(dt float64) RespawnCounts {
	n := len(p.entities)
	p.tick++

	// Phase A: snapshot current state, single-threaded.
	snaps := p.parallel.snapshots[:0]
	query := p.filter.Query()
	for query.Next() {
		pos, _, life, _ := query.Get()
		snaps = append(snaps, particleSnapshot{
			Pos: *pos,
			Age: life.Age,
			Max: life.Max,
		})
	}
	p.parallel.snapshots = snaps

	if cap(p.parallel.intents) < n {
		p.parallel.intents = make([]particleIntent, n)
	}
	p.parallel.intents = p.parallel.intents[:n]

	// Phase B: integrate, parallel above the threshold.
	if n < parallelThreshold {
		p.computeChunk(0, n, dt)
	} else {
		p.computeParallel(n, dt)
	}

	// Phase C: write back single-threaded, respawning as needed.
	var counts RespawnCounts
	for slot, e := range p.entities {
		it := p.parallel.intents[slot]
		pos := p.posMap.Get(e)
		trail := p.trailMap.Get(e)
		life := p.lifeMap.Get(e)
		p.speeds[slot] = it.Speed

		if it.Respawn == respawnNone {
			trail.Re, trail.Im = pos.Re, pos.Im
			pos.SetComplex(complex(it.Re, it.Im))
			life.Age = it.Age
			continue
		}

		switch it.Respawn {
		case respawnOutOfBounds:
			counts.OutOfBounds++
		case respawnNonFinite:
			counts.NonFinite++
		case respawnExpired:
			counts.Expired++
		}

		np, nl, nt := p.spawn(uint32(slot))
		*pos = np
		trail.Re, trail.Im = np.Re, np.Im
		*life = nl
		*p.tintMap.Get(e) = nt
	}
	return counts
}

// computeChunk integrates slots [start, end). Safe to run concurrently with
// other chunks: it reads only snapshots and writes only its intent range.
func (p *Pool) computeChunk(start, end int, dt float64) {
	depth := p.params.Depth
	center := complex(p.params.CenterRe, p.params.CenterIm)
	radius := p.params.DomainRadius
	step := p.params.SpeedScale * dt / float64(p.params.Substeps)

	for slot := start; slot < end; slot++ {
		s := &p.parallel.snapshots[slot]
		z := s.Pos.Complex()

		speed := float32(0)
		for i := 0; i < p.params.Substeps; i++ {
			v := field.Evaluate(z, depth)
			m := cmplx.Abs(v)
			if i == 0 && !math.IsNaN(m) && !math.IsInf(m, 0) {
				speed = float32(m)
			}
			if p.params.Normalize && m > 0 {
				v = complex(real(v)/m, imag(v)/m)
			}
			z += v * complex(step, 0)
		}

		it := &p.parallel.intents[slot]
		it.Re, it.Im = real(z), imag(z)
		it.Age = s.Age + dt
		it.Speed = speed

		switch {
		case !field.IsFinite(z):
			it.Respawn = respawnNonFinite
		case cmplx.Abs(z-center) > radius:
			it.Respawn = respawnOutOfBounds
		case it.Age > s.Max:
			it.Respawn = respawnExpired
		default:
			it.Respawn = respawnNone
		}
	}
}
