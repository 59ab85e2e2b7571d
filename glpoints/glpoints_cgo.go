//go:build !tinygo && cgo

package glpoints

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/view"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW creates a hidden 1x1 window and makes its OpenGL 4.6 context
// current so that a [Scene] can be used without a visible window.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "glpoints",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// Scene holds the point drawables rendered each frame. The zero value is ready to use
// once a GL context is current.
type Scene struct {
	points []*Points
}

// Buffer is a vertex array and position vertex buffer on the GPU.
type Buffer struct {
	scene *Scene
	vao   uint32
	vbo   uint32
	n     int32
}

// Material is a compiled point shader program.
type Material struct {
	scene *Scene
	prog  glgl.Program
	cfg   galaxy.Material
	// Uniform locations.
	model, view, proj, size, pixelScale, attenuate, color int32
}

// Points is a buffer drawn with a material.
type Points struct {
	scene *Scene
	buf   *Buffer
	mat   *Material
	model mgl32.Mat4
}

// NewBuffer uploads positions to a new vertex buffer. Attribute 0 is bound to the positions.
func (s *Scene) NewBuffer(positions []float32) (galaxy.Resource, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("position buffer length %d not a multiple of 3", len(positions))
	}
	b := &Buffer{scene: s, n: int32(len(positions) / 3)}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(positions) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 4*len(positions), gl.Ptr(positions), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	if err := glgl.Err(); err != nil {
		b.Dispose()
		return nil, fmt.Errorf("uploading positions: %w", err)
	}
	if b.vao == 0 || b.vbo == 0 {
		b.Dispose()
		return nil, fmt.Errorf("GL returned zero id for position buffer")
	}
	return b, nil
}

// Dispose deletes the vertex array and buffer.
func (b *Buffer) Dispose() error {
	if b.scene == nil {
		return nil
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	b.scene, b.vao, b.vbo = nil, 0, 0
	return glgl.Err()
}

// NewMaterial compiles the point shader program for m.
func (s *Scene) NewMaterial(m galaxy.Material) (galaxy.Resource, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   vertexSource,
		Fragment: fragmentSource,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling point shader: %w", err)
	}
	mat := &Material{scene: s, prog: prog, cfg: m}
	locs := []struct {
		name string
		dst  *int32
	}{
		{"uModel\x00", &mat.model},
		{"uView\x00", &mat.view},
		{"uProj\x00", &mat.proj},
		{"uSize\x00", &mat.size},
		{"uPixelScale\x00", &mat.pixelScale},
		{"uAttenuate\x00", &mat.attenuate},
		{"uColor\x00", &mat.color},
	}
	for _, loc := range locs {
		*loc.dst, err = prog.UniformLocation(loc.name)
		if err != nil {
			prog.Delete()
			return nil, err
		}
	}
	return mat, nil
}

// Dispose deletes the shader program.
func (m *Material) Dispose() error {
	if m.scene == nil {
		return nil
	}
	m.prog.Delete()
	m.scene = nil
	return glgl.Err()
}

// Attach adds a drawable rendering buffer with material to the scene.
func (s *Scene) Attach(buffer, material galaxy.Resource) (galaxy.Drawable, error) {
	buf, ok := buffer.(*Buffer)
	if !ok || buf == nil {
		return nil, errForeignResource
	}
	mat, ok := material.(*Material)
	if !ok || mat == nil {
		return nil, errForeignResource
	}
	if buf.scene == nil || mat.scene == nil {
		return nil, errDisposed
	} else if buf.scene != s || mat.scene != s {
		return nil, errForeignResource
	}
	p := &Points{scene: s, buf: buf, mat: mat, model: mgl32.Ident4()}
	s.points = append(s.points, p)
	return p, nil
}

// SetRotationY implements [galaxy.Drawable].
func (p *Points) SetRotationY(radians float32) {
	p.model = view.Model(radians)
}

// Detach removes the points from the scene.
func (p *Points) Detach() error {
	s := p.scene
	for i, pts := range s.points {
		if pts == p {
			s.points = append(s.points[:i], s.points[i+1:]...)
			break
		}
	}
	return nil
}

// Attached returns the number of drawables in the scene.
func (s *Scene) Attached() int { return len(s.points) }

// Draw renders every attached drawable as seen from cam on a width x height viewport.
// The caller is responsible for clearing buffers and swapping.
func (s *Scene) Draw(cam view.Camera, width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	viewMat := cam.View()
	proj := cam.Projection(float32(width) / float32(height))
	pixelScale := cam.PixelScale(height)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Disable(gl.BLEND)
	for _, p := range s.points {
		if p.buf.scene == nil || p.mat.scene == nil {
			continue // Resources released while still attached.
		}
		mat := p.mat
		cfg := mat.cfg
		gl.DepthMask(cfg.DepthWrite)
		mat.prog.Bind()
		gl.UniformMatrix4fv(mat.model, 1, false, &p.model[0])
		gl.UniformMatrix4fv(mat.view, 1, false, &viewMat[0])
		gl.UniformMatrix4fv(mat.proj, 1, false, &proj[0])
		gl.Uniform1f(mat.size, cfg.Size)
		gl.Uniform1f(mat.pixelScale, pixelScale)
		attenuate := int32(0)
		if cfg.SizeAttenuation {
			attenuate = 1
		}
		gl.Uniform1i(mat.attenuate, attenuate)
		gl.Uniform4f(mat.color, float32(cfg.Color.R)/255, float32(cfg.Color.G)/255, float32(cfg.Color.B)/255, float32(cfg.Color.A)/255)
		gl.BindVertexArray(p.buf.vao)
		gl.DrawArrays(gl.POINTS, 0, p.buf.n)
		gl.BindVertexArray(0)
		mat.prog.Unbind()
	}
	gl.DepthMask(true)
	return glgl.Err()
}
