// Package field evaluates the recursive complex map the vector field is
// derived from.
package field

import (
	"math"
	"math/cmplx"
)

// MaxDepth is the largest iteration depth the coefficient table covers.
// Evaluate panics beyond it; the config layer rejects such depths at load.
const MaxDepth = 64

// coeff[i] = e^{-i}, precomputed so Evaluate does no exponentials.
var coeff [MaxDepth + 1]float64

func init() {
	for i := range coeff {
		coeff[i] = math.Exp(-float64(i))
	}
}

// Evaluate applies the composed map to z for the given iteration depth:
// for each i in 2..depth, z += z^i * e^{-i}. Depth below 2 returns z
// unchanged. The result of one step feeds the next, so magnitudes grow
// quickly for |z| > 1; overflow yields Inf/NaN rather than an error and
// callers are expected to check IsFinite.
func Evaluate(z complex128, depth int) complex128 {
	if depth > MaxDepth {
		panic("field: depth exceeds MaxDepth")
	}
	for i := 2; i <= depth; i++ {
		z += powi(z, i) * complex(coeff[i], 0)
	}
	return z
}

// powi raises z to a non-negative integer power by repeated multiplication.
// cmplx.Pow goes through log/exp and picks up branch-cut discontinuities
// near the origin; repeated multiplication keeps the map single-valued.
func powi(z complex128, n int) complex128 {
	result := complex(1, 0)
	base := z
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	return result
}

// IsFinite reports whether both components of z are finite.
func IsFinite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

// Sigmoid maps x to (-1, 1); used by the color and fade policies.
func Sigmoid(x float64) float64 {
	return 2.0/(1.0+math.Exp(-x)) - 1.0
}
