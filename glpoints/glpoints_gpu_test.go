//go:build !tinygo && cgo

package glpoints_test

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"testing"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/glpoints"
	"github.com/soypat/galaxy/view"
)

// GL calls must happen on the main thread so tests run from TestMain.
func TestMain(m *testing.M) {
	runtime.LockOSThread()
	var exit int
	err := testGLPoints()
	if err != nil {
		exit = 1
		log.Println(err)
	}
	runtime.UnlockOSThread()
	os.Exit(m.Run() | exit)
}

func testGLPoints() error {
	term, err := glpoints.Init1x1GLFW()
	if err != nil {
		log.Println("skipping GL tests, no context available:", err)
		return nil
	}
	defer term()
	var scene glpoints.Scene
	gen, err := galaxy.NewGenerator(&scene, rand.New(rand.NewSource(1)))
	if err != nil {
		return err
	}
	p := galaxy.DefaultParams()
	for i := 0; i < 10; i++ {
		p.Count = 100 * i
		pc, err := gen.Generate(p)
		if err != nil {
			return fmt.Errorf("generation %d: %w", i, err)
		}
		if scene.Attached() != 1 {
			return fmt.Errorf("generation %d: want 1 attached drawable, got %d", i, scene.Attached())
		}
		var rd galaxy.RotationDriver
		rd.Advance(pc, p.RotationSpeed)
		err = scene.Draw(view.DefaultCamera(), 1, 1)
		if err != nil {
			return fmt.Errorf("generation %d draw: %w", i, err)
		}
	}
	err = gen.Close()
	if err != nil {
		return err
	}
	if scene.Attached() != 0 {
		return errors.New("drawable still attached after close")
	}
	buf, err := scene.NewBuffer([]float32{0, 0, 0, 1, 1, 1})
	if err != nil {
		return err
	}
	if err = buf.Dispose(); err != nil {
		return err
	}
	if err = buf.Dispose(); err != nil {
		return fmt.Errorf("second dispose: %w", err)
	}
	mat, err := scene.NewMaterial(galaxy.PointsMaterial(p))
	if err != nil {
		return err
	}
	defer mat.Dispose()
	if _, err = scene.Attach(buf, mat); err == nil {
		return errors.New("attached disposed buffer")
	}
	if _, err = scene.NewBuffer([]float32{0, 0}); err == nil {
		return errors.New("accepted buffer length not multiple of 3")
	}
	return nil
}
