package view

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projected is a point transformed to viewport coordinates.
type Projected struct {
	// X, Y are viewport coordinates with the origin at the top left corner.
	X, Y float32
	// Depth is the distance along the view direction, used for size attenuation.
	Depth float32
	// Index of the point in the source buffer.
	Index int
}

// ProjectPoints transforms the flat (x,y,z) positions by the model, view and
// projection matrices and calls fn for every point that lands inside the
// clip volume of a width x height viewport.
func ProjectPoints(positions []float32, model, view, proj mgl32.Mat4, width, height int, fn func(p Projected)) {
	if width <= 0 || height <= 0 {
		return
	}
	mv := view.Mul4(model)
	hw := float32(width) / 2
	hh := float32(height) / 2
	for i := 0; i+2 < len(positions); i += 3 {
		eye := mv.Mul4x1(mgl32.Vec4{positions[i], positions[i+1], positions[i+2], 1})
		clip := proj.Mul4x1(eye)
		w := clip[3]
		if w <= 0 {
			continue // Behind the camera.
		}
		nx, ny, nz := clip[0]/w, clip[1]/w, clip[2]/w
		if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
			continue
		}
		fn(Projected{
			X:     (nx + 1) * hw,
			Y:     (1 - ny) * hh,
			Depth: -eye[2],
			Index: i / 3,
		})
	}
}

// PointPixels returns the on-screen diameter of a point of the given size at depth.
// With attenuation disabled size is taken as pixels. The result is at least 1.
func (c Camera) PointPixels(size, depth float32, attenuate bool, viewportHeight int) float32 {
	px := size
	if attenuate && depth > 0 {
		px = size * c.PixelScale(viewportHeight) / depth
	}
	return clampf(px, 1, 64)
}
