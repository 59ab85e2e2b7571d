package galaxy

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Rand is a source of uniformly distributed numbers in [0, 1).
// *math/rand.Rand and *math/rand/v2.Rand implement Rand.
type Rand interface {
	Float32() float32
}

type globalRand struct{}

func (globalRand) Float32() float32 { return rand.Float32() }

// AppendPositions generates p.Count points and appends them to dst as contiguous
// (x,y,z) triples, so that point i occupies dst[3i:3i+3] relative to the original length of dst.
// A nil rng uses the math/rand/v2 global source.
//
// The idealized position of point i lies on arm i%p.Branches at a random
// distance r from the center, rotated by r*p.Spin*100 radians. Each axis then
// receives independent jitter of magnitude u^p.RandomnessPower * p.Randomness * r
// with u uniform in [0,1) and a random sign. Y has no base elevation.
func AppendPositions(dst []float32, p Params, rng Rand) ([]float32, error) {
	err := p.Validate()
	if err != nil {
		return dst, err
	}
	if rng == nil {
		rng = globalRand{}
	}
	start := len(dst)
	dst = growf(dst, 3*p.Count)
	pos := dst[start:]
	for i := 0; i < p.Count; i++ {
		r := rng.Float32() * p.Radius
		spinAngle := r * p.Spin * spinScale
		branchAngle := BranchAngle(i, p.Branches)

		jx := jitter(rng, p.RandomnessPower, p.Randomness*r)
		jy := jitter(rng, p.RandomnessPower, p.Randomness*r)
		jz := jitter(rng, p.RandomnessPower, p.Randomness*r)

		s, c := math32.Sincos(branchAngle + spinAngle)
		i3 := 3 * i
		pos[i3] = c*r + jx
		pos[i3+1] = jy
		pos[i3+2] = s*r + jz
	}
	return dst, nil
}

// BranchAngle returns the angle in radians of the arm point i is assigned to.
func BranchAngle(i, branches int) float32 {
	if branches < 1 {
		return 0
	}
	return float32(i%branches) / float32(branches) * twoPi
}

func jitter(rng Rand, power, scale float32) float32 {
	mag := math32.Pow(rng.Float32(), power)
	if rng.Float32() < 0.5 {
		mag = -mag
	}
	return mag * scale
}

// growf extends b by n elements, reallocating if needed. New elements are not zeroed.
func growf(b []float32, n int) []float32 {
	if n <= cap(b)-len(b) {
		return b[:len(b)+n]
	}
	nb := make([]float32, len(b)+n)
	copy(nb, b)
	return nb
}
