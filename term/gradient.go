package term

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms1"
)

// Gradient interpolates between two colors in HSV space.
type Gradient struct {
	from, to hsv
}

// hsv holds hue, saturation and value, all in [0, 1].
type hsv struct {
	h, s, v float32
}

// NewGradient returns a gradient starting at c0 and ending at c1.
func NewGradient(c0, c1 color.Color) Gradient {
	return Gradient{from: toHSV(c0), to: toHSV(c1)}
}

// At returns the color at t in [0, 1]. t is clamped.
func (g Gradient) At(t float32) color.RGBA {
	t = ms1.Clamp(t, 0, 1)
	a, b := g.from, g.to
	// Grey endpoints have no hue of their own.
	if a.s == 0 {
		a.h = b.h
	} else if b.s == 0 {
		b.h = a.h
	}
	// Shortest path around the hue circle.
	if b.h-a.h > 0.5 {
		a.h++
	} else if a.h-b.h > 0.5 {
		b.h++
	}
	mix := hsv{
		h: math.Mod(ms1.Interp(a.h, b.h, t), 1),
		s: ms1.Interp(a.s, b.s, t),
		v: ms1.Interp(a.v, b.v, t),
	}
	return mix.rgba()
}

func toHSV(c color.Color) hsv {
	r32, g32, b32, _ := c.RGBA()
	r := float32(r32) / 0xffff
	g := float32(g32) / 0xffff
	b := float32(b32) / 0xffff
	hi := max(r, g, b)
	chroma := hi - min(r, g, b)
	out := hsv{v: hi}
	if chroma == 0 {
		return out
	}
	out.s = chroma / hi
	var sector float32
	switch hi {
	case r:
		sector = math.Mod((g-b)/chroma+6, 6)
	case g:
		sector = (b-r)/chroma + 2
	default:
		sector = (r-g)/chroma + 4
	}
	out.h = sector / 6
	return out
}

func (c hsv) rgba() color.RGBA {
	sector := c.h * 6
	i := int(sector) % 6
	f := sector - math.Floor(sector)
	p := c.v * (1 - c.s)
	q := c.v * (1 - c.s*f)
	u := c.v * (1 - c.s*(1-f))
	var r, g, b float32
	switch i {
	case 0:
		r, g, b = c.v, u, p
	case 1:
		r, g, b = q, c.v, p
	case 2:
		r, g, b = p, c.v, u
	case 3:
		r, g, b = p, q, c.v
	case 4:
		r, g, b = u, p, c.v
	default:
		r, g, b = c.v, p, q
	}
	return color.RGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 0xff}
}

// unit8 maps x in [0, 1] to [0, 255].
func unit8(x float32) uint8 {
	return uint8(ms1.Clamp(x, 0, 1)*0xff + 0.5)
}
