// Package galaxyaux contains auxiliary functions to get galaxies on screen
// or on disk quickly. Applications with specific needs should implement their
// own viewers on top of the galaxy, raster and glpoints packages.
package galaxyaux

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/raster"
	"github.com/soypat/galaxy/view"
)

// UIConfig configures the interactive OpenGL viewer started by [UI].
type UIConfig struct {
	Width  int
	Height int
	// Params is the galaxy shown on startup. If zero [galaxy.DefaultParams] is used.
	Params galaxy.Params
	// Context, if set, stops the UI when done.
	Context context.Context
	// FrameRate normalizes rotation speed to wall-clock time. See [galaxy.RotationDriver].
	FrameRate float32
	// WrapRotation keeps the cloud rotation within [0, 2π).
	WrapRotation bool
	// Rand is the generator randomness source. If nil the global source is used.
	Rand   galaxy.Rand
	Silent bool
}

// UI opens a window rendering a galaxy with an orbit camera. Parameters are
// edited with the keyboard: Tab selects a control, arrow keys change it and
// the galaxy is regenerated once the key is released. R restores defaults.
//
// UI must be called from the main thread. See [runtime.LockOSThread].
func UI(cfg UIConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("UI requires positive window dimensions")
	}
	if cfg.Params == (galaxy.Params{}) {
		cfg.Params = galaxy.DefaultParams()
	}
	if err := cfg.Params.Validate(); err != nil {
		return err
	}
	return ui(cfg)
}

// RenderConfig configures [RenderPNGFile].
type RenderConfig struct {
	Width  int
	Height int
	// Camera used to render. If nil the default camera framing the galaxy is used.
	Camera *view.Camera
	// Rotation around the Y axis of the rendered cloud in radians.
	Rotation   float32
	Background color.Color
	// Caption draws the parameter values on the bottom left corner of the image.
	Caption bool
	Rand    galaxy.Rand
	Silent  bool
}

// RenderPNGFile generates a galaxy with p and saves a single frame of it to a PNG file with said filename.
func RenderPNGFile(filename string, p galaxy.Params, cfg RenderConfig) error {
	if filename == "" {
		return errors.New("RenderPNGFile requires a filename")
	}
	img, err := RenderImage(p, cfg)
	if err != nil {
		return err
	}
	log := logger(cfg.Silent)
	watch := stopwatch()
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = png.Encode(fp, img)
	if err != nil {
		return err
	}
	err = fp.Sync()
	if err != nil {
		return err
	}
	log("wrote", filename, "in", watch())
	return nil
}

// RenderImage generates a galaxy with p and renders a single frame of it.
func RenderImage(p galaxy.Params, cfg RenderConfig) (*image.RGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("RenderImage requires positive image dimensions")
	}
	log := logger(cfg.Silent)
	var scene raster.Scene
	gen, err := galaxy.NewGenerator(&scene, cfg.Rand)
	if err != nil {
		return nil, err
	}
	defer gen.Close()
	watch := stopwatch()
	pc, err := gen.Generate(p)
	if err != nil {
		return nil, err
	}
	log("generated", pc.Len(), "points in", watch())
	galaxy.RotationDriver{}.Advance(pc, cfg.Rotation)
	var cam view.Camera
	if cfg.Camera != nil {
		cam = *cfg.Camera
	} else {
		cam = view.DefaultCamera()
		cam.Frame(p)
	}
	bg := cfg.Background
	if bg == nil {
		bg = color.Black
	}
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	raster.Clear(img, bg)
	watch = stopwatch()
	drawn := scene.Draw(img, cam)
	log("drew", drawn, "points in", watch())
	if cfg.Caption {
		err = drawCaption(img, Caption(p))
		if err != nil {
			return nil, fmt.Errorf("drawing caption: %w", err)
		}
	}
	return img, nil
}

// Caption returns a single line summary of the parameters.
func Caption(p galaxy.Params) string {
	var sb strings.Builder
	for i, c := range galaxy.Controls() {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(c.Name)
		sb.WriteByte('=')
		sb.WriteString(c.Format(p))
	}
	return sb.String()
}

func drawCaption(img *image.RGBA, text string) error {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	size := float64(img.Bounds().Dy()) / 48
	size = max(8, min(size, 18))
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, Hinting: font.HintingFull})
	defer face.Close()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		Face: face,
	}
	margin := fixed.I(int(size / 2))
	d.Dot = fixed.Point26_6{
		X: fixed.I(img.Bounds().Min.X) + margin,
		Y: fixed.I(img.Bounds().Max.Y) - margin - face.Metrics().Descent,
	}
	d.DrawString(text)
	return nil
}

// Editor tracks interactive edits of galaxy parameters through [galaxy.Controls].
// Edits accumulate until committed so that holding a key does not
// regenerate the galaxy on every step.
type Editor struct {
	Params   galaxy.Params
	controls []galaxy.Control
	selected int
	pending  bool
}

// NewEditor returns an editor starting at p with the first control selected.
func NewEditor(p galaxy.Params) *Editor {
	return &Editor{Params: p, controls: galaxy.Controls()}
}

// Controls returns the editable controls in display order.
func (e *Editor) Controls() []galaxy.Control { return e.controls }

// Selected returns the index of the selected control.
func (e *Editor) Selected() int { return e.selected }

// Select moves the selection by delta controls, wrapping around.
func (e *Editor) Select(delta int) {
	n := len(e.controls)
	e.selected = ((e.selected+delta)%n + n) % n
}

// Nudge moves the selected control by steps.
func (e *Editor) Nudge(steps int) {
	if e.controls[e.selected].Nudge(&e.Params, steps) {
		e.pending = true
	}
}

// Reset restores the default parameters.
func (e *Editor) Reset() {
	if e.Params != galaxy.DefaultParams() {
		e.Params = galaxy.DefaultParams()
		e.pending = true
	}
}

// Pending reports whether there are edits that require regeneration.
func (e *Editor) Pending() bool { return e.pending }

// Commit regenerates the galaxy with gen if there are pending edits. It
// returns the new cloud or nil if nothing was regenerated.
func (e *Editor) Commit(gen *galaxy.Generator) (*galaxy.PointCloud, error) {
	if !e.pending {
		return nil, nil
	}
	e.pending = false
	return gen.Generate(e.Params)
}

// RegisterFlags defines a command line flag for every field of p on fs
// named after its control. The current values of p are the flag defaults.
func RegisterFlags(fs *flag.FlagSet, p *galaxy.Params) {
	fs.IntVar(&p.Count, "count", p.Count, "number of points")
	fs.Var((*float32Value)(&p.Size), "size", "point size")
	fs.Var((*float32Value)(&p.Radius), "radius", "galactic radius")
	fs.IntVar(&p.Branches, "branches", p.Branches, "number of spiral arms")
	fs.Var((*float32Value)(&p.Spin), "spin", "spiral twist coefficient")
	fs.Var((*float32Value)(&p.Randomness), "randomness", "jitter relative to radius")
	fs.Var((*float32Value)(&p.RandomnessPower), "randomnessPower", "jitter concentration exponent")
	fs.Var((*float32Value)(&p.RotationSpeed), "rotationSpeed", "rotation in radians per frame")
}

type float32Value float32

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

func logger(silent bool) func(args ...any) {
	return func(args ...any) {
		if !silent {
			fmt.Println(args...)
		}
	}
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
