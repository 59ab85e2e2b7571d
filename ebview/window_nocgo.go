//go:build tinygo || !cgo

package ebview

import "errors"

// Run requires cgo. Use [State.Render] to draw frames without a window.
func Run(cfg Config) error {
	return errors.New("require cgo for ebiten window")
}
