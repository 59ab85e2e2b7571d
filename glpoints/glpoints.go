// Package glpoints implements a [galaxy.Scene] on OpenGL 4.6. Position buffers
// are uploaded to vertex buffer objects and materials are compiled point shader programs.
//
// All functions must be called from the thread that owns the current GL context.
package glpoints

import (
	"errors"

	"github.com/soypat/galaxy"
)

var (
	errForeignResource = errors.New("resource not created by this scene")
	errDisposed        = errors.New("resource already disposed")
)

// Compile-time interface checks.
var (
	_ galaxy.Scene    = (*Scene)(nil)
	_ galaxy.Resource = (*Buffer)(nil)
	_ galaxy.Resource = (*Material)(nil)
	_ galaxy.Drawable = (*Points)(nil)
)

const vertexSource = `#version 460
layout(location = 0) in vec3 aPos;
uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;
uniform float uSize;
uniform float uPixelScale;
uniform int uAttenuate;
void main() {
	vec4 eye = uView * uModel * vec4(aPos, 1.0);
	gl_Position = uProj * eye;
	float px = uSize;
	if (uAttenuate != 0) {
		px = uSize * uPixelScale / max(-eye.z, 1e-4);
	}
	gl_PointSize = clamp(px, 1.0, 64.0);
}
` + "\x00"

const fragmentSource = `#version 460
uniform vec4 uColor;
out vec4 fragColor;
void main() {
	fragColor = uColor;
}
` + "\x00"
