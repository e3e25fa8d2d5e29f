package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetColor(0, 0, "#ff0000")
	c.Set(3, 3)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}
	if c.Colors[0][0] != "#ff0000" || c.Colors[0][1] != "" {
		t.Errorf("unexpected colours %v", c.Colors[0])
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != blank || c.Colors[0][0] != "" {
		t.Error("unset should clear the cell and its colour")
	}

	// out of range writes are ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	c.Clear()
	if got := c.String(); got != "\u2800\u2800\n" {
		t.Errorf("cleared canvas = %q", got)
	}
}

func TestCanvasDrawing(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 0, "#00ff00")
	for col := 0; col < 10; col++ {
		if c.Grid[0][col]&0x9 != 0x9 {
			t.Errorf("line missing in cell %d: %U", col, c.Grid[0][col])
		}
	}

	c.Clear()
	c.FillCircle(10, 10, 2, "#ffff00")
	count := 0
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0 {
				count++
			}
		}
	}
	// discrete disc of radius 2
	if count != 13 {
		t.Errorf("filled %d pixels, want 13", count)
	}

	if !strings.Contains(c.Render(), string(c.Grid[2][5])) {
		t.Error("render should contain the drawn cells")
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(DefaultScale)
	w, h := 800, 400

	x, y := cam.Project(r2.Vec{}, w, h)
	if x != 400 || y != 200 {
		t.Errorf("origin projected to (%d,%d), want centre", x, y)
	}

	x, y = cam.Project(r2.Vec{X: physics.AU, Y: physics.AU}, w, h)
	if x != 600 || y != 0 {
		t.Errorf("1 AU projected to (%d,%d), want (600,0)", x, y)
	}

	cam.ZoomBy(2)
	cam.Pan(10, -5)
	x, y = cam.Project(r2.Vec{X: physics.AU}, w, h)
	if x != 810 || y != 195 {
		t.Errorf("zoomed projection (%d,%d), want (810,195)", x, y)
	}

	cam.Reset()
	if cam.Zoom != 1 || cam.OffsetX != 0 || cam.OffsetY != 0 {
		t.Errorf("reset camera %+v", cam)
	}
}
