// Package raster draws galaxy point clouds on the CPU. It provides a
// [galaxy.Scene] whose resources live in Go memory and renders it onto
// images and tinygo displays.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/view"
)

var (
	errForeignResource = errors.New("resource not created by this scene")
	errDisposed        = errors.New("resource already disposed")
)

// Scene is a [galaxy.Scene] that keeps buffers and materials in memory.
// The zero value is ready to use.
type Scene struct {
	mu       sync.Mutex
	points   []*Points
	resident int
}

// Buffer is a position buffer owned by a [Scene].
type Buffer struct {
	scene     *Scene
	positions []float32 // nil once disposed. Guarded by scene.mu.
}

// Dispose releases the buffer.
func (b *Buffer) Dispose() error {
	s := b.scene
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.positions != nil {
		b.positions = nil
		s.resident--
	}
	return nil
}

// Material is a points material owned by a [Scene].
type Material struct {
	scene    *Scene
	disposed bool // Guarded by scene.mu.
	galaxy.Material
}

// Dispose releases the material.
func (m *Material) Dispose() error {
	s := m.scene
	s.mu.Lock()
	defer s.mu.Unlock()
	if !m.disposed {
		m.disposed = true
		s.resident--
	}
	return nil
}

// Points is a drawable attached to a [Scene].
type Points struct {
	scene *Scene
	buf   *Buffer
	mat   *Material
	rotY  float32
}

// SetRotationY implements [galaxy.Drawable].
func (p *Points) SetRotationY(radians float32) {
	p.scene.mu.Lock()
	p.rotY = radians
	p.scene.mu.Unlock()
}

// Detach removes the points from the scene.
func (p *Points) Detach() error {
	s := p.scene
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, pts := range s.points {
		if pts == p {
			s.points = append(s.points[:i], s.points[i+1:]...)
			break
		}
	}
	return nil
}

// NewBuffer implements [galaxy.Scene]. The positions are copied.
func (s *Scene) NewBuffer(positions []float32) (galaxy.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resident++
	// Never nil while live, even when empty.
	return &Buffer{scene: s, positions: append(make([]float32, 0, len(positions)), positions...)}, nil
}

// NewMaterial implements [galaxy.Scene].
func (s *Scene) NewMaterial(m galaxy.Material) (galaxy.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resident++
	return &Material{scene: s, Material: m}, nil
}

// Attach implements [galaxy.Scene].
func (s *Scene) Attach(buffer, material galaxy.Resource) (galaxy.Drawable, error) {
	buf, ok := buffer.(*Buffer)
	if !ok || buf == nil {
		return nil, errForeignResource
	}
	mat, ok := material.(*Material)
	if !ok || mat == nil {
		return nil, errForeignResource
	}
	if buf.scene != s || mat.scene != s {
		return nil, errForeignResource
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if buf.positions == nil || mat.disposed {
		return nil, errDisposed
	}
	p := &Points{scene: s, buf: buf, mat: mat}
	s.points = append(s.points, p)
	return p, nil
}

// Resident returns the number of buffers and materials not yet disposed.
func (s *Scene) Resident() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resident
}

// Attached returns the number of drawables in the scene.
func (s *Scene) Attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Visit calls fn for every point of every attached drawable after projecting
// it through cam onto a width x height viewport. radius is the half-size in pixels
// of the point as dictated by its material.
func (s *Scene) Visit(cam view.Camera, width, height int, fn func(p view.Projected, radius float32, c color.RGBA)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	viewMat := cam.View()
	proj := cam.Projection(aspect)
	for _, pts := range s.points {
		if pts.buf.positions == nil || pts.mat.disposed {
			continue
		}
		mat := pts.mat.Material
		view.ProjectPoints(pts.buf.positions, view.Model(pts.rotY), viewMat, proj, width, height, func(p view.Projected) {
			px := cam.PointPixels(mat.Size, p.Depth, mat.SizeAttenuation, height)
			fn(p, px/2, mat.Color)
		})
	}
}

// Each calls fn with the world-space positions, Y rotation and material of every
// attached drawable. positions must not be modified.
func (s *Scene) Each(fn func(positions []float32, rotationY float32, m galaxy.Material)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pts := range s.points {
		if pts.buf.positions == nil || pts.mat.disposed {
			continue
		}
		fn(pts.buf.positions, pts.rotY, pts.mat.Material)
	}
}

// Draw renders the scene onto img over its current contents and returns the
// number of points drawn.
func (s *Scene) Draw(img draw.Image, cam view.Camera) (drawn int) {
	bounds := img.Bounds()
	s.Visit(cam, bounds.Dx(), bounds.Dy(), func(p view.Projected, radius float32, c color.RGBA) {
		drawn++
		x0 := int(p.X-radius) + bounds.Min.X
		y0 := int(p.Y-radius) + bounds.Min.Y
		x1 := int(p.X+radius) + bounds.Min.X
		y1 := int(p.Y+radius) + bounds.Min.Y
		if x1 == x0 {
			x1++
		}
		if y1 == y0 {
			y1++
		}
		r := image.Rect(x0, y0, x1, y1).Intersect(bounds)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, c)
			}
		}
	})
	return drawn
}

// Clear fills img with c.
func Clear(img draw.Image, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
