package term_test

import (
	"image/color"
	"testing"

	"github.com/soypat/galaxy/term"
)

func TestGradient(t *testing.T) {
	c0 := color.RGBA{R: 0x1b, G: 0x39, B: 0x84, A: 0xff}
	c1 := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	g := term.NewGradient(c0, c1)
	near := func(a, b color.RGBA) bool {
		d := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
		return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && a.A == b.A
	}
	if got := g.At(0); !near(got, c0) {
		t.Errorf("At(0): want %v, got %v", c0, got)
	}
	if got := g.At(1); !near(got, c1) {
		t.Errorf("At(1): want %v, got %v", c1, got)
	}
	if got := g.At(-3); !near(got, c0) {
		t.Errorf("At(-3) not clamped: got %v", got)
	}
	// Brightness increases monotonically towards white.
	prev := -1
	for i := 0; i <= 10; i++ {
		c := g.At(float32(i) / 10)
		v := int(max(c.R, c.G, c.B))
		if v < prev {
			t.Errorf("brightness decreased at %d: %d < %d", i, v, prev)
		}
		prev = v
	}
	red := term.NewGradient(color.RGBA{R: 255, A: 255}, color.RGBA{R: 255, A: 255})
	if got := red.At(0.5); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("constant gradient changed color: %v", got)
	}
	// Hue travels the short way from red to blue, through magenta.
	rb := term.NewGradient(color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})
	if got := rb.At(0.5); !near(got, color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("red to blue midpoint: want magenta, got %v", got)
	}
	if got := rb.At(1); !near(got, color.RGBA{B: 255, A: 255}) {
		t.Errorf("red to blue end: got %v", got)
	}
}
