package ebview_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/soypat/galaxy"
	"github.com/soypat/galaxy/ebview"
)

func TestStateRender(t *testing.T) {
	st, err := ebview.NewState(ebview.Config{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	frame, err := st.Render(200, 150)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Bounds().Dx() != 200 || frame.Bounds().Dy() != 150 {
		t.Fatalf("unexpected frame size %v", frame.Bounds())
	}
	// Center pixel region should contain galaxy points.
	lit := 0
	for y := 65; y < 85; y++ {
		for x := 90; x < 110; x++ {
			if c := frame.RGBAAt(x, y); c.R|c.G|c.B != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no points drawn near galactic center")
	}
	again, err := st.Render(200, 150)
	if err != nil {
		t.Fatal(err)
	}
	if again != frame {
		t.Error("expected frame reuse for equal size")
	}
	if _, err = st.Render(0, 10); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestStateCommit(t *testing.T) {
	st, err := ebview.NewState(ebview.Config{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	first := st.Cloud()
	ed := st.Editor()
	ed.Nudge(-1) // count is selected.
	if st.Cloud() != first {
		t.Fatal("edit regenerated before commit")
	}
	if err := st.Commit(); err != nil {
		t.Fatal(err)
	}
	if first.Live() || st.Cloud().Len() != 900 {
		t.Errorf("expected old cloud disposed and 900 points, got live=%v len=%d", first.Live(), st.Cloud().Len())
	}
	st.Step(time.Second / 60)
	if got := st.Cloud().RotationY(); got != float64(galaxy.DefaultParams().RotationSpeed) {
		t.Errorf("expected single rotation step, got %v", got)
	}
}
