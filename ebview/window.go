//go:build !tinygo && cgo

package ebview

import (
	"errors"
	"time"

	math "github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Run opens a window displaying the galaxy described by cfg and blocks until it closes.
//
// Drag with the left mouse button to orbit and scroll to zoom. Tab and Up/Down
// select a control, Left/Right change it and the galaxy is regenerated once the
// key is released. R restores defaults and Esc closes the window.
func Run(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	st, err := NewState(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	g := &game{st: st, last: time.Now()}
	ebiten.SetWindowTitle("galaxy")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	st       *State
	img      *ebiten.Image
	last     time.Time
	dragging bool
	lastX    int
	lastY    int
	err      error
}

// repeat reports whether a held key should act this tick: on press and then
// periodically once held for half a second.
func repeat(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%3 == 0)
}

func (g *game) Update() error {
	const rotateSensitivity = 0.005
	st := g.st
	ed := st.Editor()
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	steps := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		steps = 10
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyTab) && steps == 10:
		ed.Select(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab), repeat(ebiten.KeyArrowDown):
		ed.Select(1)
	case repeat(ebiten.KeyArrowUp):
		ed.Select(-1)
	case repeat(ebiten.KeyArrowRight):
		ed.Nudge(steps)
	case repeat(ebiten.KeyArrowLeft):
		ed.Nudge(-steps)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		ed.Reset()
		st.Commit()
	}
	if inpututil.IsKeyJustReleased(ebiten.KeyArrowLeft) || inpututil.IsKeyJustReleased(ebiten.KeyArrowRight) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		st.Commit()
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			st.Orbit().Rotate(-float32(x-g.lastX)*rotateSensitivity, -float32(y-g.lastY)*rotateSensitivity)
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y
	if _, yoff := ebiten.Wheel(); yoff != 0 {
		st.Orbit().Zoom(math.Pow(0.95, float32(yoff)))
	}

	now := time.Now()
	st.Step(now.Sub(g.last))
	g.last = now
	return g.err
}

func (g *game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	frame, err := g.st.Render(b.Dx(), b.Dy())
	if err != nil {
		g.err = err
		return
	}
	if g.img == nil || g.img.Bounds() != frame.Bounds() {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.img.WritePixels(frame.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
