// Package galaxy generates spiral galaxy point clouds from a small set of
// numeric parameters and manages the lifetime of the rendering resources
// that back them.
package galaxy

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// spinScale makes Spin usable over a small range while still producing
	// a visible spiral twist.
	spinScale = 100
	twoPi     = 2 * math32.Pi
)

// ErrInvalidParams is wrapped by all errors returned by [Params.Validate].
var ErrInvalidParams = errors.New("invalid galaxy parameters")

// Params is the full set of controls for a single galaxy generation.
type Params struct {
	// Count is the amount of points generated. Zero yields an empty cloud.
	Count int
	// Size is the rendered point size. Only renderers consume it.
	Size float32
	// Radius is the maximum galactic radius of the idealized spiral.
	Radius float32
	// Branches is the number of evenly spaced spiral arms.
	Branches int
	// Spin is the spiral twist coefficient. The angular offset of a point is
	// proportional to Spin times its distance from the center.
	Spin float32
	// Randomness scales per-axis jitter relative to a point's radius.
	Randomness float32
	// RandomnessPower concentrates jitter near zero for values above 1.
	RandomnessPower float32
	// RotationSpeed is the angle in radians added to the cloud's rotation
	// around the Y axis every frame. Changing it does not require regeneration.
	RotationSpeed float32
}

// DefaultParams returns the parameters of the galaxy ("blossom") shown on startup.
func DefaultParams() Params {
	return Params{
		Count:           1000,
		Size:            0.01,
		Radius:          100,
		Branches:        9,
		Spin:            3,
		Randomness:      0.1,
		RandomnessPower: 9,
		RotationSpeed:   0.0023,
	}
}

// Validate checks the parameters are within contract and returns all violations
// joined in a single error. Generation with valid parameters never yields NaN positions.
func (p Params) Validate() error {
	var errs []error
	addErr := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
	}
	floats := [...]struct {
		name string
		v    float32
	}{
		{"size", p.Size},
		{"radius", p.Radius},
		{"spin", p.Spin},
		{"randomness", p.Randomness},
		{"randomnessPower", p.RandomnessPower},
		{"rotationSpeed", p.RotationSpeed},
	}
	for _, f := range floats {
		if !isFinite(f.v) {
			addErr("%s not finite (%v)", f.name, f.v)
		}
	}
	if p.Count < 0 {
		addErr("negative count %d", p.Count)
	}
	if p.Branches < 1 {
		addErr("branches must be at least 1, got %d", p.Branches)
	}
	if p.Size <= 0 {
		addErr("zero or negative point size %v", p.Size)
	}
	if p.Radius < 0 {
		addErr("negative radius %v", p.Radius)
	}
	if p.Randomness < 0 {
		addErr("negative randomness %v", p.Randomness)
	}
	if p.RandomnessPower < 0 {
		// 0 raised to a negative power is +Inf.
		addErr("negative randomness power %v", p.RandomnessPower)
	}
	return errors.Join(errs...)
}

// MaxExtent returns the largest distance from the Y axis any generated point may have.
// X and Z jitter are each at most Randomness*Radius, so the bound is slightly
// above Radius*(1+Randomness).
func (p Params) MaxExtent() float32 {
	return p.Radius * (1 + math32.Sqrt2*p.Randomness)
}

// MaxHeight returns the largest distance from the XZ plane any generated point may have.
func (p Params) MaxHeight() float32 {
	return p.Radius * p.Randomness
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}
