//go:build tinygo || !cgo

package glpoints

import (
	"errors"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/view"
)

var errNoCGO = errors.New("glpoints requires cgo and is not supported on tinygo")

type Scene struct{}

type Buffer struct{}

type Material struct{}

type Points struct{}

func (s *Scene) NewBuffer(positions []float32) (galaxy.Resource, error) { return nil, errNoCGO }

func (s *Scene) NewMaterial(m galaxy.Material) (galaxy.Resource, error) { return nil, errNoCGO }

func (s *Scene) Attach(buffer, material galaxy.Resource) (galaxy.Drawable, error) {
	return nil, errNoCGO
}

func (s *Scene) Attached() int { return 0 }

func (s *Scene) Draw(cam view.Camera, width, height int) error { return errNoCGO }

func (b *Buffer) Dispose() error { return errNoCGO }

func (m *Material) Dispose() error { return errNoCGO }

func (p *Points) SetRotationY(radians float32) {}

func (p *Points) Detach() error { return errNoCGO }

func Init1x1GLFW() (terminate func(), err error) { return nil, errNoCGO }
