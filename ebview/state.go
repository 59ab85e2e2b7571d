// Package ebview displays galaxies in an ebiten window. Frames are rasterized
// on the CPU with the raster package and uploaded as a single image.
package ebview

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/galaxyaux"
	"github.com/soypat/galaxy/raster"
	"github.com/soypat/galaxy/view"
)

// Config configures the viewer window.
type Config struct {
	Width  int
	Height int
	// Params is the galaxy shown on startup. If zero [galaxy.DefaultParams] is used.
	Params galaxy.Params
	Rand   galaxy.Rand
	// TPS is the number of updates per second. Defaults to 60.
	TPS int
	// FrameRate normalizes rotation speed to wall-clock time. See [galaxy.RotationDriver].
	FrameRate    float32
	WrapRotation bool
	HideHUD      bool
}

// State is the window independent part of the viewer: the galaxy, the
// camera and the parameter editor. It renders frames to an [*image.RGBA].
type State struct {
	scene   raster.Scene
	gen     *galaxy.Generator
	editor  *galaxyaux.Editor
	orbit   *view.Orbit
	driver  galaxy.RotationDriver
	pc      *galaxy.PointCloud
	hud     raster.HUD
	hideHUD bool
	frame   *image.RGBA
	lastErr error
}

// NewState generates the initial galaxy described by cfg.
func NewState(cfg Config) (*State, error) {
	if cfg.Params == (galaxy.Params{}) {
		cfg.Params = galaxy.DefaultParams()
	}
	st := &State{
		editor:  galaxyaux.NewEditor(cfg.Params),
		driver:  galaxy.RotationDriver{FrameRate: cfg.FrameRate, Wrap: cfg.WrapRotation},
		hud:     raster.DefaultHUD(),
		hideHUD: cfg.HideHUD,
	}
	var err error
	st.gen, err = galaxy.NewGenerator(&st.scene, cfg.Rand)
	if err != nil {
		return nil, err
	}
	st.pc, err = st.gen.Generate(cfg.Params)
	if err != nil {
		return nil, err
	}
	cam := view.DefaultCamera()
	cam.Frame(cfg.Params)
	st.orbit = view.NewOrbit(cam)
	return st, nil
}

// Editor returns the parameter editor. Call [State.Commit] after editing.
func (st *State) Editor() *galaxyaux.Editor { return st.editor }

// Orbit returns the camera controller.
func (st *State) Orbit() *view.Orbit { return st.orbit }

// Cloud returns the galaxy currently displayed.
func (st *State) Cloud() *galaxy.PointCloud { return st.pc }

// Commit regenerates the galaxy if there are pending edits. A failed
// regeneration is reported on the HUD and returned.
func (st *State) Commit() error {
	pc, err := st.editor.Commit(st.gen)
	st.lastErr = err
	if pc != nil {
		st.pc = pc
	}
	return err
}

// Step advances the camera and the galaxy rotation by one frame.
func (st *State) Step(elapsed time.Duration) {
	st.orbit.Update()
	st.driver.AdvanceElapsed(st.pc, st.editor.Params.RotationSpeed, elapsed)
}

// Render draws the current frame. The returned image is reused by the next call.
func (st *State) Render(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("invalid frame size")
	}
	if st.frame == nil || st.frame.Bounds().Dx() != width || st.frame.Bounds().Dy() != height {
		st.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	raster.Clear(st.frame, color.Black)
	st.scene.Draw(st.frame, st.orbit.Camera)
	if !st.hideHUD {
		d := raster.ImageDisplay{RGBA: st.frame}
		st.hud.Draw(d, st.editor.Params, st.editor.Controls(), st.editor.Selected())
		if st.lastErr != nil {
			st.hud.Line(d, height-2, st.lastErr.Error(), color.RGBA{R: 0xff, A: 0xff})
		}
	}
	return st.frame, nil
}

// Close disposes the displayed galaxy.
func (st *State) Close() error { return st.gen.Close() }
