package galaxy_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/galaxy"
)

func TestValidate(t *testing.T) {
	if err := galaxy.DefaultParams().Validate(); err != nil {
		t.Fatal("default params invalid:", err)
	}
	empty := galaxy.DefaultParams()
	empty.Count = 0
	if err := empty.Validate(); err != nil {
		t.Error("zero count must be valid:", err)
	}
	var tests = []struct {
		name   string
		modify func(p *galaxy.Params)
	}{
		{"count", func(p *galaxy.Params) { p.Count = -1 }},
		{"branches", func(p *galaxy.Params) { p.Branches = 0 }},
		{"size", func(p *galaxy.Params) { p.Size = 0 }},
		{"radius", func(p *galaxy.Params) { p.Radius = -1 }},
		{"radius", func(p *galaxy.Params) { p.Radius = math32.Inf(1) }},
		{"randomness", func(p *galaxy.Params) { p.Randomness = -0.1 }},
		{"randomness power", func(p *galaxy.Params) { p.RandomnessPower = -1 }},
		{"spin", func(p *galaxy.Params) { p.Spin = math32.NaN() }},
		{"rotationSpeed", func(p *galaxy.Params) { p.RotationSpeed = math32.Inf(-1) }},
	}
	for _, test := range tests {
		p := galaxy.DefaultParams()
		test.modify(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if !errors.Is(err, galaxy.ErrInvalidParams) {
			t.Errorf("%s: error does not wrap ErrInvalidParams: %v", test.name, err)
		}
		if !strings.Contains(err.Error(), test.name) {
			t.Errorf("%s: error does not name the field: %v", test.name, err)
		}
	}
	// All violations are reported together.
	p := galaxy.Params{Count: -1, Branches: 0, Size: -1, Radius: -1}
	err := p.Validate()
	for _, field := range []string{"count", "branches", "size", "radius"} {
		if err == nil || !strings.Contains(err.Error(), field) {
			t.Errorf("missing %s violation in %v", field, err)
		}
	}
}

func TestControls(t *testing.T) {
	controls := galaxy.Controls()
	byName := make(map[string]galaxy.Control)
	for _, c := range controls {
		byName[c.Name] = c
		if c.Min >= c.Max || c.Step <= 0 {
			t.Errorf("%s: bad bounds [%v,%v] step %v", c.Name, c.Min, c.Max, c.Step)
		}
	}
	if len(byName) != 8 {
		t.Fatalf("expected 8 controls, got %d", len(byName))
	}
	p := galaxy.DefaultParams()
	count := byName["count"]
	if !count.Nudge(&p, 1) || p.Count != 1100 {
		t.Errorf("count nudge got %d", p.Count)
	}
	if !count.Set(&p, 1e9) || p.Count != 1000000 {
		t.Errorf("count not clamped to max: %d", p.Count)
	}
	if count.Set(&p, 2e6) {
		t.Error("unchanged clamped value should not regenerate")
	}
	branches := byName["branches"]
	branches.Set(&p, 0)
	if p.Branches != 2 {
		t.Errorf("branches not clamped to min: %d", p.Branches)
	}
	spin := byName["spin"]
	spin.Set(&p, 1.23456)
	if got := spin.Format(p); got != "1.235" {
		t.Errorf("spin format got %q", got)
	}
	speed := byName["rotationSpeed"]
	old := p.RotationSpeed
	if speed.Nudge(&p, 3) {
		t.Error("rotation speed must not require regeneration")
	}
	if math32.Abs(p.RotationSpeed-(old+0.0003)) > 1e-6 {
		t.Errorf("rotation speed nudge got %v", p.RotationSpeed)
	}
	if got := speed.Format(p); !strings.HasPrefix(got, "0.00") || len(got) != 6 {
		t.Errorf("rotation speed format got %q", got)
	}
	if err := p.Validate(); err != nil {
		t.Error("controls produced invalid params:", err)
	}
}
