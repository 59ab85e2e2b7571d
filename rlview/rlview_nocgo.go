//go:build tinygo || !cgo

package rlview

import "errors"

func run(cfg Config) error {
	return errors.New("require cgo for raylib rendering")
}
