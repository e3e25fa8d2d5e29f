package viz

import (
	"math"

	"github.com/san-kum/gravsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultScale is pixels per meter at zoom 1 on an 800 pixel wide view for
	// systems shown in AU.
	DefaultScale   = 200 / physics.AU
	referenceWidth = 800.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
	PanStep       = 4
)

// Camera maps world coordinates to canvas sub-pixels. The world origin sits
// at the canvas centre shifted by the pan offset; +Y points up.
type Camera struct {
	Scale   float64
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

func NewCamera(scale float64) *Camera {
	return &Camera{Scale: scale, Zoom: 1}
}

// Project returns the sub-pixel position of p on a w x h sub-pixel canvas.
// The scale is relative to an 800 pixel wide view so the framing does not
// depend on terminal size.
func (c *Camera) Project(p r2.Vec, w, h int) (int, int) {
	k := c.Scale * c.Zoom * float64(w) / referenceWidth
	x := p.X*k + float64(w)/2 + c.OffsetX
	y := -p.Y*k + float64(h)/2 + c.OffsetY
	return int(math.Round(x)), int(math.Round(y))
}

func (c *Camera) ZoomBy(factor float64) { c.Zoom *= factor }

func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

func (c *Camera) Reset() {
	c.Zoom = 1
	c.OffsetX = 0
	c.OffsetY = 0
}
