package raster

import (
	"image"
	"image/color"
	"image/draw"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/soypat/galaxy"
)

// DisplayImage adapts a tinygo [drivers.Displayer] into a [draw.Image] so
// that scenes can be rendered directly onto embedded displays.
type DisplayImage struct {
	drivers.Displayer
}

var _ draw.Image = DisplayImage{}

func (d DisplayImage) ColorModel() color.Model { return color.RGBAModel }

func (d DisplayImage) Bounds() image.Rectangle {
	w, h := d.Displayer.Size()
	return image.Rect(0, 0, int(w), int(h))
}

// At always returns transparent black since displays are write only.
func (d DisplayImage) At(x, y int) color.Color { return color.RGBA{} }

func (d DisplayImage) Set(x, y int, c color.Color) {
	d.SetPixel(int16(x), int16(y), color.RGBAModel.Convert(c).(color.RGBA))
}

// ImageDisplay adapts an [*image.RGBA] into a [drivers.Displayer] so that
// tinyfont text can be written onto it.
type ImageDisplay struct {
	*image.RGBA
}

var _ drivers.Displayer = ImageDisplay{}

func (d ImageDisplay) Size() (x, y int16) {
	b := d.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d ImageDisplay) SetPixel(x, y int16, c color.RGBA) {
	b := d.Bounds()
	d.SetRGBA(int(x)+b.Min.X, int(y)+b.Min.Y, c)
}

func (d ImageDisplay) Display() error { return nil }

// HUD draws parameter labels onto a display.
type HUD struct {
	Font  tinyfont.Fonter
	Color color.RGBA
	// Highlight is the color of the selected control.
	Highlight color.RGBA
}

// DefaultHUD returns a HUD using a small bitmap font.
func DefaultHUD() HUD {
	return HUD{
		Font:      &tinyfont.TomThumb,
		Color:     color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff},
		Highlight: color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff},
	}
}

// Draw writes one line per control with its current value in p starting at
// the top left corner. The control at index selected is highlighted.
func (h HUD) Draw(d drivers.Displayer, p galaxy.Params, controls []galaxy.Control, selected int) {
	lineHeight := int16(h.Font.GetYAdvance())
	if lineHeight <= 0 {
		lineHeight = 8
	}
	y := lineHeight
	for i, c := range controls {
		col := h.Color
		prefix := "  "
		if i == selected {
			col = h.Highlight
			prefix = "> "
		}
		tinyfont.WriteLine(d, h.Font, 2, y, prefix+c.Name+" "+c.Format(p), col)
		y += lineHeight
	}
}

// Line writes a single line of text with its baseline at y.
func (h HUD) Line(d drivers.Displayer, y int, text string, c color.RGBA) {
	tinyfont.WriteLine(d, h.Font, 2, int16(y), text, c)
}
