package galaxy

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/soypat/geometry/ms3"
)

// Resource is a rendering resource such as a GPU resident position buffer
// or a material. Dispose on an already disposed Resource must be a no-op.
type Resource interface {
	Dispose() error
}

// Drawable is a renderable object bound into a [Scene].
type Drawable interface {
	// SetRotationY sets the orientation of the drawable around the Y axis.
	// The renderer reads it when drawing the next frame.
	SetRotationY(radians float32)
	// Detach removes the drawable from its scene. Detaching twice is a no-op.
	Detach() error
}

// Scene is the rendering collaborator that owns GPU state. Implementations
// exist for OpenGL, raylib, ebiten, terminals and plain images.
type Scene interface {
	// NewBuffer uploads a flat (x,y,z) position buffer.
	NewBuffer(positions []float32) (Resource, error)
	// NewMaterial creates a material for rendering points.
	NewMaterial(m Material) (Resource, error)
	// Attach creates a drawable from a buffer and material previously
	// created by the same Scene and adds it to the scene.
	Attach(buffer, material Resource) (Drawable, error)
}

// Material describes how the points of a cloud are rendered.
type Material struct {
	// Size of each point in world units if SizeAttenuation is set, else in pixels.
	Size            float32
	SizeAttenuation bool
	DepthWrite      bool
	Color           color.RGBA
}

// PointsMaterial returns the material used for galaxies generated with p.
func PointsMaterial(p Params) Material {
	return Material{
		Size:            p.Size,
		SizeAttenuation: true,
		DepthWrite:      false,
		Color:           color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// PointCloud is a generated galaxy along with the rendering resources it owns.
// A PointCloud is live from its creation by [Generator.Generate] until Dispose is called.
type PointCloud struct {
	params    Params
	positions []float32
	buffer    Resource
	material  Resource
	drawable  Drawable
	rotY      float64
	disposed  bool
}

// Params returns the parameters the cloud was generated with.
func (pc *PointCloud) Params() Params { return pc.params }

// Len returns the number of points in the cloud.
func (pc *PointCloud) Len() int { return len(pc.positions) / 3 }

// Positions returns the flat (x,y,z) position buffer in model space. It must not be modified.
func (pc *PointCloud) Positions() []float32 { return pc.positions }

// Point returns the model space position of the i'th point.
func (pc *PointCloud) Point(i int) ms3.Vec {
	i3 := 3 * i
	return ms3.Vec{X: pc.positions[i3], Y: pc.positions[i3+1], Z: pc.positions[i3+2]}
}

// Bounds returns the bounding box of the cloud in model space. An empty cloud has a zero box.
func (pc *PointCloud) Bounds() ms3.Box {
	if pc.Len() == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: pc.Point(0), Max: pc.Point(0)}
	for i := 1; i < pc.Len(); i++ {
		v := pc.Point(i)
		bb.Min = ms3.Vec{X: minf(bb.Min.X, v.X), Y: minf(bb.Min.Y, v.Y), Z: minf(bb.Min.Z, v.Z)}
		bb.Max = ms3.Vec{X: maxf(bb.Max.X, v.X), Y: maxf(bb.Max.Y, v.Y), Z: maxf(bb.Max.Z, v.Z)}
	}
	return bb
}

// RotationY returns the accumulated rotation of the cloud around the Y axis in radians.
func (pc *PointCloud) RotationY() float64 { return pc.rotY }

// Drawable returns the handle attached to the scene. It is nil after Dispose.
func (pc *PointCloud) Drawable() Drawable { return pc.drawable }

// Live reports whether the cloud is attached and holds its resources.
func (pc *PointCloud) Live() bool { return pc != nil && !pc.disposed }

// Dispose detaches the drawable from its scene and releases the buffer and
// material. Calling Dispose more than once is a no-op.
func (pc *PointCloud) Dispose() error {
	if pc == nil || pc.disposed {
		return nil
	}
	pc.disposed = true
	var errs []error
	if pc.drawable != nil {
		if err := pc.drawable.Detach(); err != nil {
			errs = append(errs, fmt.Errorf("detaching drawable: %w", err))
		}
	}
	if pc.buffer != nil {
		if err := pc.buffer.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("disposing buffer: %w", err))
		}
	}
	if pc.material != nil {
		if err := pc.material.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("disposing material: %w", err))
		}
	}
	pc.drawable, pc.buffer, pc.material = nil, nil, nil
	return errors.Join(errs...)
}

// Generator owns the single live [PointCloud] of a [Scene] and replaces it
// on every call to Generate. It is safe for concurrent use; calls are serialized.
type Generator struct {
	mu    sync.Mutex
	scene Scene
	rng   Rand
	cloud *PointCloud
	// scratch holds positions of a cloud whose resources could not be created
	// so the next generation can reuse the allocation.
	scratch []float32
	gens    uint64
}

// NewGenerator returns a Generator that attaches clouds to scene. A nil rng
// uses the math/rand/v2 global source.
func NewGenerator(scene Scene, rng Rand) (*Generator, error) {
	if scene == nil {
		return nil, errors.New("nil Scene")
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &Generator{scene: scene, rng: rng}, nil
}

// Generate validates p, disposes the live cloud, and generates and attaches a new one.
// Invalid parameters return an error and leave the live cloud untouched.
// If the scene fails to create resources no cloud is left live.
func (g *Generator) Generate(p Params) (*PointCloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cloud != nil {
		// The previous cloud is gone regardless of how its release went.
		_ = g.cloud.Dispose()
		g.cloud = nil
	}
	positions, err := AppendPositions(g.scratch[:0], p, g.rng)
	g.scratch = nil
	if err != nil {
		return nil, err
	}
	pc := &PointCloud{params: p, positions: positions}
	pc.buffer, err = g.scene.NewBuffer(positions)
	if err != nil {
		return nil, g.abort(pc, fmt.Errorf("creating position buffer: %w", err))
	}
	pc.material, err = g.scene.NewMaterial(PointsMaterial(p))
	if err != nil {
		return nil, g.abort(pc, fmt.Errorf("creating material: %w", err))
	}
	pc.drawable, err = g.scene.Attach(pc.buffer, pc.material)
	if err != nil {
		return nil, g.abort(pc, fmt.Errorf("attaching points: %w", err))
	}
	g.cloud = pc
	g.gens++
	return pc, nil
}

func (g *Generator) abort(pc *PointCloud, err error) error {
	if derr := pc.Dispose(); derr != nil {
		err = errors.Join(err, derr)
	}
	g.scratch = pc.positions
	return err
}

// Current returns the live cloud or nil if there is none.
func (g *Generator) Current() *PointCloud {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cloud
}

// Generations returns the number of successful calls to Generate.
func (g *Generator) Generations() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens
}

// Close disposes the live cloud. The Generator may still be used afterwards.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cloud == nil {
		return nil
	}
	err := g.cloud.Dispose()
	g.cloud = nil
	return err
}
