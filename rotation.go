package galaxy

import (
	"math"
	"time"
)

// RotationDriver spins a [PointCloud] around the Y axis once per frame.
// The zero value adds the rotation speed once per frame regardless of how much
// time has elapsed, so apparent speed depends on the display refresh rate.
type RotationDriver struct {
	// FrameRate, when positive, makes AdvanceElapsed frame-rate independent by
	// treating speed as radians per frame at FrameRate frames per second.
	FrameRate float32
	// Wrap keeps the angle reported by [PointCloud.RotationY] within [0, 2π).
	Wrap bool
}

// Advance adds speed radians to the cloud's rotation and updates its drawable.
// It is a no-op for a nil or disposed cloud.
//
// The angle accumulates in float64 so that increments are not lost to float32
// rounding after hours of rotation. The drawable receives the angle reduced to [0, 2π).
func (rd RotationDriver) Advance(pc *PointCloud, speed float32) {
	if !pc.Live() {
		return
	}
	angle := pc.rotY + float64(speed)
	if rd.Wrap {
		angle = wrapAngle(angle)
	}
	pc.rotY = angle
	if pc.drawable != nil {
		pc.drawable.SetRotationY(drawableAngle(angle))
	}
}

// AdvanceElapsed advances the rotation for a frame that took elapsed time.
// With zero FrameRate it is equivalent to Advance.
func (rd RotationDriver) AdvanceElapsed(pc *PointCloud, speed float32, elapsed time.Duration) {
	if rd.FrameRate > 0 {
		speed *= float32(elapsed.Seconds()) * rd.FrameRate
	}
	rd.Advance(pc, speed)
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		// Mod of tiny negative values rounds up to exactly 2π.
		a = 0
	}
	return a
}

func drawableAngle(a float64) float32 {
	f := float32(wrapAngle(a))
	if f >= twoPi {
		f = 0
	}
	return f
}
