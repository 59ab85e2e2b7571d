// Package view implements the orbit camera shared by all galaxy viewers.
package view

import (
	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/galaxy"
)

const minPolar = 0.01

// Camera is a perspective camera orbiting the origin. Azimuth and Polar
// are spherical angles: Polar is measured from the +Y axis.
type Camera struct {
	Azimuth  float32
	Polar    float32
	Distance float32
	// FOV is the vertical field of view in radians.
	FOV  float32
	Near float32
	Far  float32
}

// DefaultCamera returns a camera 4 units above the origin looking down at it
// with a 75 degree field of view.
func DefaultCamera() Camera {
	return Camera{
		Polar:    minPolar,
		Distance: 4,
		FOV:      mgl32.DegToRad(75),
		Near:     0.1,
		Far:      100,
	}
}

// Eye returns the camera position in world space.
func (c Camera) Eye() mgl32.Vec3 {
	sp, cp := math.Sincos(c.Polar)
	sa, ca := math.Sincos(c.Azimuth)
	return mgl32.Vec3{c.Distance * sp * sa, c.Distance * cp, c.Distance * sp * ca}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix for a viewport of the given aspect ratio.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// ViewProjection returns Projection(aspect) * View().
func (c Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// PixelScale returns how many pixels a world-space unit spans at distance 1
// from the camera on a viewport of the given pixel height.
func (c Camera) PixelScale(viewportHeight int) float32 {
	return float32(viewportHeight) / (2 * math.Tan(c.FOV/2))
}

// Model returns the model matrix of a drawable rotated radians around the Y axis.
func Model(rotationY float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(rotationY)
}

// Frame adjusts the camera distance and far plane so that a galaxy generated
// with p fits in view.
func (c *Camera) Frame(p galaxy.Params) {
	extent := p.MaxExtent()
	if extent <= 0 {
		return
	}
	c.Distance = extent / math.Tan(c.FOV/2)
	c.Far = math.Max(c.Far, 4*(c.Distance+extent))
}

// Orbit is a damped orbit controller modeled after the usual orbit controls
// found in web 3D libraries: user input accumulates deltas which are applied
// gradually every frame.
type Orbit struct {
	Camera
	// Damping is the fraction of accumulated motion applied per frame.
	// Zero applies motion immediately.
	Damping     float32
	MinDistance float32
	MaxDistance float32

	dAzimuth float32
	dPolar   float32
	zoom     float32
}

// NewOrbit returns an orbit controller with damping enabled.
func NewOrbit(cam Camera) *Orbit {
	return &Orbit{
		Camera:      cam,
		Damping:     0.05,
		MinDistance: 0.01,
		MaxDistance: 10000,
		zoom:        1,
	}
}

// Rotate queues a rotation in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float32) {
	o.dAzimuth += dAzimuth
	o.dPolar += dPolar
}

// Zoom queues a dolly by factor. factor < 1 moves the camera closer.
func (o *Orbit) Zoom(factor float32) {
	if factor > 0 {
		o.zoom *= factor
	}
}

// Update applies queued motion and returns true if the camera moved.
func (o *Orbit) Update() bool {
	const eps = 1e-6
	f := o.Damping
	if f <= 0 || f > 1 {
		f = 1
	}
	moved := math.Abs(o.dAzimuth) > eps || math.Abs(o.dPolar) > eps || o.zoom != 1
	o.Azimuth += o.dAzimuth * f
	o.Polar = clampf(o.Polar+o.dPolar*f, minPolar, math.Pi-minPolar)
	o.Distance = clampf(o.Distance*o.zoom, o.MinDistance, o.MaxDistance)
	o.zoom = 1
	if f == 1 {
		o.dAzimuth, o.dPolar = 0, 0
	} else {
		o.dAzimuth *= 1 - f
		o.dPolar *= 1 - f
	}
	return moved
}

func clampf(v, Min, Max float32) float32 {
	if v < Min {
		return Min
	} else if v > Max {
		return Max
	}
	return v
}
