package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Watcher is a frame-limited observer that redraws a top-down character map
// of the bodies during a headless run.
type Watcher struct {
	out       io.Writer
	name      string
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	frames    int
}

func NewWatcher(out io.Writer, name string, frameRate int) *Watcher {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate < 1 {
		frameRate = 1
	}
	return &Watcher{
		out:       out,
		name:      name,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
	}
}

func (w *Watcher) Frames() int { return w.frames }

func (w *Watcher) OnStep(bodies []*dynamo.Body, t float64) {
	now := w.now()
	if now.Sub(w.lastFrame) < time.Second/time.Duration(w.frameRate) {
		return
	}
	w.lastFrame = now
	w.frames++

	w.clear()
	w.plot(bodies)
	w.render(bodies, t)
}

func (w *Watcher) clear() {
	for y := range w.canvas {
		for x := range w.canvas[y] {
			w.canvas[y][x] = ' '
		}
	}
}

func (w *Watcher) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		w.canvas[y][x] = c
	}
}

// plot fits every body into the grid around the primary (or the origin).
// Character cells are about twice as tall as wide, hence the halved y scale.
func (w *Watcher) plot(bodies []*dynamo.Body) {
	center := r2.Vec{}
	if p := physics.Primary(bodies); p != nil {
		center = p.Pos
	}

	extent := 0.0
	for _, b := range bodies {
		extent = math.Max(extent, r2.Norm(r2.Sub(b.Pos, center)))
	}
	if extent == 0 {
		extent = 1
	}
	k := float64(width/2-1) / extent

	for _, b := range bodies {
		rel := r2.Sub(b.Pos, center)
		x := width/2 + int(math.Round(rel.X*k))
		y := height/2 - int(math.Round(rel.Y*k/2))
		mark := '*'
		if b.Name != "" {
			mark = []rune(b.Name)[0]
		}
		if b.Primary {
			mark = '@'
		}
		w.set(x, y, mark)
	}
}

func (w *Watcher) render(bodies []*dynamo.Body, t float64) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  day %.1f  bodies %d\n", w.name, t/physics.Day, len(bodies)))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range w.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprint(w.out, b.String())
}

func (w *Watcher) Start() { fmt.Fprint(w.out, hideCursor) }
func (w *Watcher) Stop()  { fmt.Fprint(w.out, showCursor) }
