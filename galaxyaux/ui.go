//go:build !tinygo && cgo

package galaxyaux

import (
	"fmt"
	"time"

	math "github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/glpoints"
	"github.com/soypat/galaxy/view"
)

func ui(cfg UIConfig) error {
	log := logger(cfg.Silent)
	window, term, err := startGLFW(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer term()
	log("OpenGL", gl.GoStr(gl.GetString(gl.VERSION)))

	var scene glpoints.Scene
	gen, err := galaxy.NewGenerator(&scene, cfg.Rand)
	if err != nil {
		return err
	}
	defer gen.Close()
	editor := NewEditor(cfg.Params)
	pc, err := gen.Generate(editor.Params)
	if err != nil {
		return err
	}
	log("generated", pc.Len(), "points")

	cam := view.DefaultCamera()
	cam.Frame(editor.Params)
	orbit := view.NewOrbit(cam)
	driver := galaxy.RotationDriver{FrameRate: cfg.FrameRate, Wrap: cfg.WrapRotation}

	const rotateSensitivity = 0.005
	var (
		width, height  = window.GetFramebufferSize()
		lastMouseX     float64
		lastMouseY     float64
		firstMouseMove = true
		isMousePressed = false
	)
	regenerate := func() {
		watch := stopwatch()
		newPC, err := editor.Commit(gen)
		if err != nil {
			log("regenerating:", err)
			return
		} else if newPC != nil {
			pc = newPC
			log("generated", pc.Len(), "points in", watch())
		}
	}
	updateTitle := func() {
		c := editor.Controls()[editor.Selected()]
		window.SetTitle(fmt.Sprintf("galaxy  %s = %s", c.Name, c.Format(editor.Params)))
	}
	updateTitle()

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, fbWidth, fbHeight int) {
		width, height = fbWidth, fbHeight
		gl.Viewport(0, 0, int32(width), int32(height))
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos float64, ypos float64) {
		if !isMousePressed {
			return
		}
		if firstMouseMove {
			lastMouseX = xpos
			lastMouseY = ypos
			firstMouseMove = false
		}
		deltaX := xpos - lastMouseX
		deltaY := ypos - lastMouseY
		orbit.Rotate(-float32(deltaX)*rotateSensitivity, -float32(deltaY)*rotateSensitivity)
		lastMouseX = xpos
		lastMouseY = ypos
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		orbit.Zoom(math.Pow(0.95, float32(yoff)))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		if action == glfw.Press {
			isMousePressed = true
			firstMouseMove = true
		} else if action == glfw.Release {
			isMousePressed = false
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		steps := 1
		if mods&glfw.ModShift != 0 {
			steps = 10
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			switch key {
			case glfw.KeyTab:
				if mods&glfw.ModShift != 0 {
					editor.Select(-1)
				} else {
					editor.Select(1)
				}
			case glfw.KeyUp:
				editor.Select(-1)
			case glfw.KeyDown:
				editor.Select(1)
			case glfw.KeyRight:
				editor.Nudge(steps)
			case glfw.KeyLeft:
				editor.Nudge(-steps)
			case glfw.KeyR:
				editor.Reset()
				regenerate()
			case glfw.KeyEnter:
				regenerate()
			case glfw.KeyEscape:
				w.SetShouldClose(true)
			}
			updateTitle()
		case glfw.Release:
			if key == glfw.KeyLeft || key == glfw.KeyRight {
				regenerate()
			}
		}
	})

	gl.Enable(gl.DEPTH_TEST)
	gl.Viewport(0, 0, int32(width), int32(height))
	glfw.SwapInterval(1)
	ctx := cfg.Context
	previousTime := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		currentTime := glfw.GetTime()
		elapsed := time.Duration((currentTime - previousTime) * float64(time.Second))
		previousTime = currentTime

		orbit.Update()
		driver.AdvanceElapsed(pc, editor.Params.RotationSpeed, elapsed)

		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		err = scene.Draw(orbit.Camera, width, height)
		if err != nil {
			return fmt.Errorf("drawing galaxy: %w", err)
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func startGLFW(width, height int) (window *glfw.Window, term func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	// Create GLFW window
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err = glfw.CreateWindow(width, height, "galaxy", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return window, glfw.Terminate, nil
}
