package galaxy_test

import (
	"math"
	"testing"
	"time"

	"github.com/soypat/galaxy"
)

func newTestCloud(t *testing.T) (*galaxy.PointCloud, *trackingScene) {
	t.Helper()
	scene := &trackingScene{}
	gen, err := galaxy.NewGenerator(scene, constRand(0.5))
	if err != nil {
		t.Fatal(err)
	}
	pc, err := gen.Generate(galaxy.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return pc, scene
}

func TestRotationAdvance(t *testing.T) {
	pc, _ := newTestCloud(t)
	var rd galaxy.RotationDriver
	const speed float32 = 0.01
	var want float64
	p0 := pc.Point(0)
	for i := 0; i < 1000; i++ {
		rd.Advance(pc, speed)
		want += float64(speed)
		if pc.RotationY() != want {
			t.Fatalf("frame %d: rotation %v, want %v", i, pc.RotationY(), want)
		}
	}
	d := pc.Drawable().(*trackedDrawable)
	if wantDrawn := math.Mod(want, 2*math.Pi); math.Abs(float64(d.rot)-wantDrawn) > 1e-5 {
		t.Errorf("drawable rotation %v, want %v", d.rot, wantDrawn)
	}
	// Unbounded when not wrapping.
	if pc.RotationY() < 2*math.Pi {
		t.Errorf("expected rotation past 2π, got %v", pc.RotationY())
	}
	// Positions are untouched by rotation.
	if pc.Point(0) != p0 {
		t.Error("rotation must not modify positions")
	}
}

func TestRotationNilCloud(t *testing.T) {
	var rd galaxy.RotationDriver
	rd.Advance(nil, 0.01)
	rd.AdvanceElapsed(nil, 0.01, time.Second)
	pc, _ := newTestCloud(t)
	pc.Dispose()
	rd.Advance(pc, 0.01)
	if pc.RotationY() != 0 {
		t.Error("disposed cloud must not rotate")
	}
}

func TestRotationWrap(t *testing.T) {
	pc, _ := newTestCloud(t)
	rd := galaxy.RotationDriver{Wrap: true}
	for i := 0; i < 1000; i++ {
		rd.Advance(pc, 0.05)
		if a := pc.RotationY(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("wrapped angle out of range: %v", a)
		}
	}
	for i := 0; i < 1000; i++ {
		rd.Advance(pc, -0.07)
		if a := pc.RotationY(); a < 0 || a >= 2*math.Pi {
			t.Fatalf("wrapped angle out of range: %v", a)
		}
	}
}

func TestRotationElapsed(t *testing.T) {
	const tol = 1e-6
	pc, _ := newTestCloud(t)
	// Zero FrameRate ignores elapsed time.
	var perFrame galaxy.RotationDriver
	perFrame.AdvanceElapsed(pc, 0.01, time.Second)
	if pc.RotationY() != float64(float32(0.01)) {
		t.Errorf("per-frame rotation got %v", pc.RotationY())
	}
	pc2, _ := newTestCloud(t)
	timed := galaxy.RotationDriver{FrameRate: 60}
	// Two frames at 30fps rotate as much as four frames at 60fps.
	timed.AdvanceElapsed(pc2, 0.01, time.Second/30)
	timed.AdvanceElapsed(pc2, 0.01, time.Second/30)
	if got := pc2.RotationY(); math.Abs(got-0.04) > tol {
		t.Errorf("frame-rate independent rotation got %v, want 0.04", got)
	}
}

func TestRotationLargeAngle(t *testing.T) {
	pc, _ := newTestCloud(t)
	var rd galaxy.RotationDriver
	// Roughly 12 days of rotation at the default speed and 60 frames per second.
	rd.Advance(pc, 1e5)
	speed := galaxy.DefaultParams().RotationSpeed
	d := pc.Drawable().(*trackedDrawable)
	for i := 0; i < 1000; i++ {
		prev, prevDrawn := pc.RotationY(), d.rot
		rd.Advance(pc, speed)
		if delta := pc.RotationY() - prev; math.Abs(delta-float64(speed)) > 1e-9 {
			t.Fatalf("frame %d: rotation advanced %v, want %v", i, delta, speed)
		}
		if d.rot < 0 || d.rot >= 2*math.Pi {
			t.Fatalf("frame %d: drawable angle %v out of [0, 2π)", i, d.rot)
		}
		if d.rot == prevDrawn {
			t.Fatalf("frame %d: drawable did not rotate", i)
		}
	}
	want := math.Mod(pc.RotationY(), 2*math.Pi)
	if math.Abs(float64(d.rot)-want) > 1e-5 {
		t.Errorf("drawable angle %v, want %v", d.rot, want)
	}
}
