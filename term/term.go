// Package term renders galaxies on a terminal using tcell. Points are
// accumulated per character cell and drawn as glyphs of increasing density.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/galaxyaux"
	"github.com/soypat/galaxy/raster"
	"github.com/soypat/galaxy/view"
)

// ramp is ordered from sparsest to densest.
var ramp = []rune(" .:-=+*#%@")

// Config configures a [Viewer].
type Config struct {
	// Params is the galaxy shown on startup. If zero [galaxy.DefaultParams] is used.
	Params galaxy.Params
	Rand   galaxy.Rand
	// FrameRate normalizes rotation speed to wall-clock time. See [galaxy.RotationDriver].
	FrameRate    float32
	WrapRotation bool
	// TickRate is the time between frames. Defaults to 30 frames per second.
	TickRate time.Duration
	// HideHUD omits the parameter list overlay.
	HideHUD bool
	// Sparse is the color of the least dense cells. Denser cells blend
	// towards the galaxy material color. Defaults to a deep blue.
	Sparse color.Color
}

// Viewer draws a galaxy on a tcell screen and edits its parameters with the keyboard.
type Viewer struct {
	screen  tcell.Screen
	scene   raster.Scene
	gen     *galaxy.Generator
	editor  *galaxyaux.Editor
	orbit   *view.Orbit
	driver  galaxy.RotationDriver
	pc      *galaxy.PointCloud
	tick    time.Duration
	hideHUD bool
	density []int
	sparse  color.Color
	lastErr error
}

// NewViewer generates the initial galaxy. The screen must already be initialized.
func NewViewer(screen tcell.Screen, cfg Config) (*Viewer, error) {
	if screen == nil {
		return nil, errors.New("nil screen")
	}
	if cfg.Params == (galaxy.Params{}) {
		cfg.Params = galaxy.DefaultParams()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = time.Second / 30
	}
	v := &Viewer{
		screen:  screen,
		editor:  galaxyaux.NewEditor(cfg.Params),
		driver:  galaxy.RotationDriver{FrameRate: cfg.FrameRate, Wrap: cfg.WrapRotation},
		tick:    cfg.TickRate,
		hideHUD: cfg.HideHUD,
		sparse:  cfg.Sparse,
	}
	if v.sparse == nil {
		v.sparse = color.RGBA{R: 0x1b, G: 0x39, B: 0x84, A: 0xff}
	}
	var err error
	v.gen, err = galaxy.NewGenerator(&v.scene, cfg.Rand)
	if err != nil {
		return nil, err
	}
	v.pc, err = v.gen.Generate(cfg.Params)
	if err != nil {
		return nil, err
	}
	cam := view.DefaultCamera()
	cam.Frame(cfg.Params)
	v.orbit = view.NewOrbit(cam)
	return v, nil
}

// Cloud returns the galaxy currently displayed. It may be disposed if the last regeneration failed.
func (v *Viewer) Cloud() *galaxy.PointCloud { return v.pc }

// Params returns the parameters being edited.
func (v *Viewer) Params() galaxy.Params { return v.editor.Params }

// Close disposes the displayed galaxy.
func (v *Viewer) Close() error { return v.gen.Close() }

// HandleEvent processes a single screen event. It returns false when the viewer should exit.
//
// Key bindings: Tab and Up/Down select a control, Left/Right change it
// (regenerating immediately), r restores defaults, WASD orbits the camera,
// +/- zoom and Esc, q or Ctrl-C quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		const orbitStep = 0.1
		steps := 1
		if ev.Modifiers()&tcell.ModShift != 0 {
			steps = 10
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab, tcell.KeyDown:
			v.editor.Select(1)
		case tcell.KeyBacktab, tcell.KeyUp:
			v.editor.Select(-1)
		case tcell.KeyRight:
			v.editor.Nudge(steps)
			v.commit()
		case tcell.KeyLeft:
			v.editor.Nudge(-steps)
			v.commit()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.editor.Reset()
				v.commit()
			case 'a':
				v.orbit.Rotate(-orbitStep, 0)
			case 'd':
				v.orbit.Rotate(orbitStep, 0)
			case 'w':
				v.orbit.Rotate(0, -orbitStep)
			case 's':
				v.orbit.Rotate(0, orbitStep)
			case '+', '=':
				v.orbit.Zoom(0.9)
			case '-':
				v.orbit.Zoom(1 / 0.9)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) commit() {
	pc, err := v.editor.Commit(v.gen)
	v.lastErr = err
	if pc != nil {
		v.pc = pc
	}
}

// Step advances the camera and the galaxy rotation by one frame.
func (v *Viewer) Step(elapsed time.Duration) {
	v.orbit.Update()
	v.driver.AdvanceElapsed(v.pc, v.editor.Params.RotationSpeed, elapsed)
}

// Draw renders the current frame to the screen and shows it.
func (v *Viewer) Draw() {
	s := v.screen
	s.Clear()
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if cap(v.density) < w*h {
		v.density = make([]int, w*h)
	}
	density := v.density[:w*h]
	clear(density)
	dense := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	maxDensity := 0
	// Character cells are roughly twice as tall as they are wide.
	v.scene.Visit(v.orbit.Camera, w, 2*h, func(p view.Projected, radius float32, c color.RGBA) {
		x, y := int(p.X), int(p.Y)/2
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		dense = c
		i := y*w + x
		density[i]++
		maxDensity = max(maxDensity, density[i])
	})
	grad := NewGradient(v.sparse, dense)
	for i, d := range density {
		if d == 0 {
			continue
		}
		c := grad.At(float32(d) / float32(maxDensity))
		style := tcell.StyleDefault.Background(tcell.ColorBlack).
			Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		s.SetContent(i%w, i/w, glyph(d, maxDensity), nil, style)
	}
	if !v.hideHUD {
		v.drawHUD()
	}
	s.Show()
}

func (v *Viewer) drawHUD() {
	normal := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	selected := normal.Foreground(tcell.ColorYellow)
	for i, c := range v.editor.Controls() {
		style, prefix := normal, "  "
		if i == v.editor.Selected() {
			style, prefix = selected, "> "
		}
		v.text(0, i, style, prefix+c.Name+" "+c.Format(v.editor.Params))
	}
	if v.lastErr != nil {
		_, h := v.screen.Size()
		v.text(0, h-1, normal.Foreground(tcell.ColorRed), v.lastErr.Error())
	}
}

func (v *Viewer) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run draws frames at the configured tick rate and processes events until
// the user quits or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()
	last := time.Now()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.Step(now.Sub(last))
			last = now
			v.Draw()
		}
	}
}

// Run initializes the terminal, runs a [Viewer] with cfg and restores the terminal on exit.
func Run(ctx context.Context, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	err = screen.Init()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	v, err := NewViewer(screen, cfg)
	if err != nil {
		return err
	}
	defer v.Close()
	return v.Run(ctx)
}

func glyph(density, maxDensity int) rune {
	if density <= 0 || maxDensity <= 0 {
		return ramp[0]
	}
	i := 1 + (density-1)*(len(ramp)-1)/maxDensity
	return ramp[min(i, len(ramp)-1)]
}
