package galaxy

import (
	"math"
	"strconv"
	"strings"
)

// Control is an editable field of [Params] with the bounds and step exposed to
// interactive parameter editors.
type Control struct {
	Name string
	Min  float64
	Max  float64
	Step float64
	// Regenerates is true if committing an edit requires a new cloud.
	// RotationSpeed is applied live by the rotation driver instead.
	Regenerates bool

	get func(p *Params) float64
	set func(p *Params, v float64)
}

// Controls returns the editable parameters in display order.
func Controls() []Control {
	return []Control{
		{
			Name: "count", Min: 100, Max: 1000000, Step: 100, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Count) },
			set: func(p *Params, v float64) { p.Count = int(math.Round(v)) },
		},
		{
			Name: "size", Min: 0.001, Max: 0.1, Step: 0.001, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Size) },
			set: func(p *Params, v float64) { p.Size = float32(v) },
		},
		{
			Name: "spin", Min: -5, Max: 5, Step: 0.001, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Spin) },
			set: func(p *Params, v float64) { p.Spin = float32(v) },
		},
		{
			Name: "radius", Min: 0.01, Max: 20, Step: 0.01, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Radius) },
			set: func(p *Params, v float64) { p.Radius = float32(v) },
		},
		{
			Name: "branches", Min: 2, Max: 20, Step: 1, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Branches) },
			set: func(p *Params, v float64) { p.Branches = int(math.Round(v)) },
		},
		{
			Name: "randomness", Min: 0, Max: 2, Step: 0.001, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.Randomness) },
			set: func(p *Params, v float64) { p.Randomness = float32(v) },
		},
		{
			Name: "randomnessPower", Min: 1, Max: 10, Step: 0.001, Regenerates: true,
			get: func(p *Params) float64 { return float64(p.RandomnessPower) },
			set: func(p *Params, v float64) { p.RandomnessPower = float32(v) },
		},
		{
			Name: "rotationSpeed", Min: -0.01, Max: 0.01, Step: 0.0001, Regenerates: false,
			get: func(p *Params) float64 { return float64(p.RotationSpeed) },
			set: func(p *Params, v float64) { p.RotationSpeed = float32(v) },
		},
	}
}

// Value returns the current value of the control's field in p.
func (c Control) Value(p Params) float64 {
	return c.get(&p)
}

// Set snaps v to the control's step, clamps it to [Min, Max] and stores it in p.
// It returns true if the new value differs from the old one and requires regeneration.
func (c Control) Set(p *Params, v float64) (regenerate bool) {
	if math.IsNaN(v) {
		return false
	}
	if c.Step > 0 {
		v = math.Round(v/c.Step) * c.Step
	}
	v = math.Max(c.Min, math.Min(c.Max, v))
	old := c.get(p)
	c.set(p, v)
	return c.Regenerates && c.get(p) != old
}

// Nudge moves the control's value by steps increments. See [Control.Set].
func (c Control) Nudge(p *Params, steps int) (regenerate bool) {
	return c.Set(p, c.get(p)+float64(steps)*c.Step)
}

// Format returns the control's value in p with as many decimals as its step.
func (c Control) Format(p Params) string {
	return strconv.FormatFloat(c.get(&p), 'f', c.decimals(), 64)
}

func (c Control) decimals() int {
	s := strconv.FormatFloat(c.Step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
