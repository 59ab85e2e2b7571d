// Package rlview displays galaxies in a raylib window. Point clouds are kept
// in a [raster.Scene] and drawn as 3D points every frame.
package rlview

import (
	"github.com/soypat/galaxy"
)

// Config configures the viewer window.
type Config struct {
	Width  int
	Height int
	// Params is the galaxy shown on startup. If zero [galaxy.DefaultParams] is used.
	Params galaxy.Params
	Rand   galaxy.Rand
	// FPS is the target frame rate. Defaults to 60.
	FPS          int
	FrameRate    float32
	WrapRotation bool
	ShowFPS      bool
}

// Run opens a window displaying the galaxy described by cfg and blocks until it closes.
//
// Drag with the left mouse button to orbit and scroll to zoom. Tab and Up/Down
// select a control, Left/Right change it and the galaxy is regenerated once the
// key is released. R restores defaults and Esc closes the window.
func Run(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.Params == (galaxy.Params{}) {
		cfg.Params = galaxy.DefaultParams()
	}
	if err := cfg.Params.Validate(); err != nil {
		return err
	}
	return run(cfg)
}
