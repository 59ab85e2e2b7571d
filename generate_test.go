package galaxy_test

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/galaxy"
)

// constRand always returns the same value.
type constRand float32

func (c constRand) Float32() float32 { return float32(c) }

// seqRand cycles through a fixed sequence of values.
type seqRand struct {
	vals []float32
	i    int
}

func (s *seqRand) Float32() float32 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestAppendPositionsLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := galaxy.DefaultParams()
	for _, count := range []int{0, 1, 2, 3, 100, 1001} {
		p.Count = count
		pos, err := galaxy.AppendPositions(nil, p, rng)
		if err != nil {
			t.Fatal(err)
		}
		if len(pos) != 3*count {
			t.Errorf("count=%d: got %d floats, want %d", count, len(pos), 3*count)
		}
	}
	// Appending keeps the existing contents.
	prefix := []float32{1, 2, 3}
	p.Count = 10
	pos, err := galaxy.AppendPositions(prefix, p, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(pos) != 3+30 || pos[0] != 1 || pos[1] != 2 || pos[2] != 3 {
		t.Errorf("prefix not preserved: len=%d %v", len(pos), pos[:3])
	}
}

func TestAppendPositionsInvalid(t *testing.T) {
	p := galaxy.DefaultParams()
	p.Radius = math32.NaN()
	pos, err := galaxy.AppendPositions(nil, p, nil)
	if err == nil {
		t.Fatal("expected error for NaN radius")
	}
	if len(pos) != 0 {
		t.Error("expected no positions on error")
	}
}

func TestTwoBranchScenario(t *testing.T) {
	const tol = 1e-4
	p := galaxy.Params{
		Count:           4,
		Size:            0.01,
		Radius:          10,
		Branches:        2,
		Spin:            0,
		Randomness:      0,
		RandomnessPower: 9,
	}
	// Radius draws of 1 place every point on the outer circle.
	pos, err := galaxy.AppendPositions(nil, p, constRand(1))
	if err != nil {
		t.Fatal(err)
	}
	want := [4][3]float32{
		{10, 0, 0},
		{-10, 0, 0},
		{10, 0, 0},
		{-10, 0, 0},
	}
	for i, w := range want {
		got := pos[3*i : 3*i+3]
		for j := range w {
			if math32.Abs(got[j]-w[j]) > tol {
				t.Errorf("point %d: got %v, want %v", i, got, w)
				break
			}
		}
		r := math32.Hypot(got[0], got[2])
		if math32.Abs(r-10) > tol {
			t.Errorf("point %d not on circle of radius 10: r=%v", i, r)
		}
	}
}

func TestBranchAssignment(t *testing.T) {
	const tol = 1e-3
	for _, branches := range []int{1, 2, 3, 7, 20} {
		p := galaxy.Params{
			Count:           4 * branches,
			Size:            0.01,
			Radius:          5,
			Branches:        branches,
			RandomnessPower: 1,
		}
		// Radius draws vary but spin and randomness are zero so the angle is the branch angle.
		rng := &seqRand{vals: []float32{0.9, 0.1, 0.2, 0.3, 0.5, 0.6, 0.7, 0.8}}
		pos, err := galaxy.AppendPositions(nil, p, rng)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < p.Count; i++ {
			x, z := pos[3*i], pos[3*i+2]
			got := math32.Atan2(z, x)
			want := galaxy.BranchAngle(i, branches)
			if want > math32.Pi {
				want -= 2 * math32.Pi
			}
			if d := angleDiff(got, want); d > tol {
				t.Errorf("branches=%d point %d: angle %v, want %v", branches, i, got, want)
			}
			if galaxy.BranchAngle(i, branches) != galaxy.BranchAngle(i+branches, branches) {
				t.Errorf("branch angle of %d and %d differ", i, i+branches)
			}
		}
	}
}

func TestSpinTwist(t *testing.T) {
	const tol = 1e-3
	p := galaxy.Params{Count: 1, Size: 0.01, Radius: 1, Branches: 3, Spin: 0.001, RandomnessPower: 1}
	// r = 0.5 so spin angle is 0.5*0.001*100 = 0.05 radians.
	pos, err := galaxy.AppendPositions(nil, p, constRand(0.5))
	if err != nil {
		t.Fatal(err)
	}
	got := math32.Atan2(pos[2], pos[0])
	if math32.Abs(got-0.05) > tol {
		t.Errorf("spin angle got %v, want 0.05", got)
	}
}

func TestPositionBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	params := []galaxy.Params{
		galaxy.DefaultParams(),
		{Count: 5000, Size: 0.01, Radius: 5, Branches: 3, Spin: 1, Randomness: 2, RandomnessPower: 1},
		{Count: 5000, Size: 0.01, Radius: 20, Branches: 20, Spin: -5, Randomness: 0.5, RandomnessPower: 10},
		{Count: 5000, Size: 0.01, Radius: 3, Branches: 2, Spin: 4, Randomness: 0, RandomnessPower: 3},
	}
	for _, p := range params {
		pos, err := galaxy.AppendPositions(nil, p, rng)
		if err != nil {
			t.Fatal(err)
		}
		maxR := p.MaxExtent() * (1 + 1e-5)
		maxY := p.MaxHeight() * (1 + 1e-5)
		for i := 0; i < p.Count; i++ {
			x, y, z := pos[3*i], pos[3*i+1], pos[3*i+2]
			if r := math32.Hypot(x, z); r > maxR {
				t.Fatalf("%+v: point %d at XZ distance %v exceeds %v", p, i, r, maxR)
			}
			if math32.Abs(y) > maxY {
				t.Fatalf("%+v: point %d at height %v exceeds %v", p, i, y, maxY)
			}
			if p.Randomness == 0 && y != 0 {
				t.Fatalf("expected flat disk with zero randomness, got y=%v", y)
			}
		}
	}
}

func TestJitterConcentration(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	p := galaxy.Params{Count: 10000, Size: 0.01, Radius: 1, Branches: 4, Spin: 1, Randomness: 1, RandomnessPower: 9}
	pos, err := galaxy.AppendPositions(nil, p, rng)
	if err != nil {
		t.Fatal(err)
	}
	small := 0
	var positive, negative int
	for i := 0; i < p.Count; i++ {
		y := pos[3*i+1]
		if math32.Abs(y) < 0.1 {
			small++
		}
		if y > 0 {
			positive++
		} else if y < 0 {
			negative++
		}
	}
	if frac := float32(small) / float32(p.Count); frac < 0.7 {
		t.Errorf("expected jitter concentrated near zero, only %v of points have |y|<0.1", frac)
	}
	// Signs are drawn with equal probability.
	if positive < p.Count/3 || negative < p.Count/3 {
		t.Errorf("unbalanced jitter signs: %d positive, %d negative", positive, negative)
	}
}

func angleDiff(a, b float32) float32 {
	d := math32.Mod(math32.Abs(a-b), 2*math32.Pi)
	return math32.Min(d, 2*math32.Pi-d)
}
