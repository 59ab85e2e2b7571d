//go:build !tinygo && cgo

package rlview

import (
	"fmt"
	"image/color"
	"time"

	math "github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/galaxyaux"
	"github.com/soypat/galaxy/raster"
	"github.com/soypat/galaxy/view"
)

func run(cfg Config) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "galaxy")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))

	var scene raster.Scene
	gen, err := galaxy.NewGenerator(&scene, cfg.Rand)
	if err != nil {
		return err
	}
	defer gen.Close()
	editor := galaxyaux.NewEditor(cfg.Params)
	pc, err := gen.Generate(editor.Params)
	if err != nil {
		return err
	}
	cam := view.DefaultCamera()
	cam.Frame(editor.Params)
	orbit := view.NewOrbit(cam)
	driver := galaxy.RotationDriver{FrameRate: cfg.FrameRate, Wrap: cfg.WrapRotation}
	var lastErr error
	commit := func() {
		newPC, err := editor.Commit(gen)
		lastErr = err
		if newPC != nil {
			pc = newPC
		}
	}

	const rotateSensitivity = 0.005
	for !rl.WindowShouldClose() {
		steps := 1
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			steps = 10
		}
		switch {
		case rl.IsKeyPressed(rl.KeyTab) && steps == 10:
			editor.Select(-1)
		case rl.IsKeyPressed(rl.KeyTab), rl.IsKeyPressed(rl.KeyDown):
			editor.Select(1)
		case rl.IsKeyPressed(rl.KeyUp):
			editor.Select(-1)
		case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight):
			editor.Nudge(steps)
		case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft):
			editor.Nudge(-steps)
		case rl.IsKeyPressed(rl.KeyR):
			editor.Reset()
			commit()
		}
		if rl.IsKeyReleased(rl.KeyLeft) || rl.IsKeyReleased(rl.KeyRight) || rl.IsKeyPressed(rl.KeyEnter) {
			commit()
		}
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			d := rl.GetMouseDelta()
			orbit.Rotate(-d.X*rotateSensitivity, -d.Y*rotateSensitivity)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			orbit.Zoom(math.Pow(0.95, wheel))
		}
		orbit.Update()
		elapsed := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		driver.AdvanceElapsed(pc, editor.Params.RotationSpeed, elapsed)

		rl.BeginDrawing()
		rl.ClearBackground(color.RGBA{A: 255})
		rl.BeginMode3D(camera3D(orbit.Camera))
		scene.Each(drawPoints)
		rl.EndMode3D()
		drawHUD(editor, lastErr)
		if cfg.ShowFPS {
			rl.DrawFPS(int32(rl.GetScreenWidth())-90, 10)
		}
		rl.EndDrawing()
	}
	return nil
}

func camera3D(c view.Camera) rl.Camera3D {
	eye := c.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(eye[0], eye[1], eye[2]),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       mgl32.RadToDeg(c.FOV),
		Projection: rl.CameraPerspective,
	}
}

func drawPoints(positions []float32, rotationY float32, m galaxy.Material) {
	rl.PushMatrix()
	rl.Rotatef(mgl32.RadToDeg(rotationY), 0, 1, 0)
	for i := 0; i+2 < len(positions); i += 3 {
		rl.DrawPoint3D(rl.NewVector3(positions[i], positions[i+1], positions[i+2]), m.Color)
	}
	rl.PopMatrix()
}

func drawHUD(editor *galaxyaux.Editor, lastErr error) {
	const fontSize = 16
	gray := color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	highlight := color.RGBA{R: 0xff, G: 0xdd, B: 0x66, A: 0xff}
	y := int32(10)
	for i, c := range editor.Controls() {
		col, prefix := gray, "  "
		if i == editor.Selected() {
			col, prefix = highlight, "> "
		}
		rl.DrawText(fmt.Sprintf("%s%s %s", prefix, c.Name, c.Format(editor.Params)), 10, y, fontSize, col)
		y += fontSize + 4
	}
	if lastErr != nil {
		rl.DrawText(lastErr.Error(), 10, int32(rl.GetScreenHeight())-fontSize-10, fontSize, color.RGBA{R: 0xff, A: 0xff})
	}
}
