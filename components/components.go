// Package components defines ECS components for the particle pool.
package components

// Position is a point in the complex plane. The field maps positions to
// velocities in the same space, so Re/Im serve both roles.
type Position struct {
	Re, Im float64
}

// Complex returns the position as a complex128.
func (p Position) Complex() complex128 {
	return complex(p.Re, p.Im)
}

// SetComplex stores z into the position.
func (p *Position) SetComplex(z complex128) {
	p.Re = real(z)
	p.Im = imag(z)
}

// Trail caches the position at the previous render so the scene renderer can
// draw a segment from there to the current position. It is presentation
// state, reset on respawn so streaks never cross a respawn.
type Trail struct {
	Re, Im float64
}

// Lifetime tracks particle age in seconds. Max is redrawn on every respawn.
type Lifetime struct {
	Age float64
	Max float64
}

// Tint is the particle's draw color, assigned at spawn and fixed until the
// next respawn. Alpha is computed per frame from Lifetime, not stored here.
type Tint struct {
	R, G, B float32
}
