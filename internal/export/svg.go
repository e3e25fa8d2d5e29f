package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Path is one body's trajectory.
type Path struct {
	Name   string
	Color  string
	Points []r2.Vec
}

// TrajectoriesToSVG draws every path on a shared, equal-aspect frame with 10%
// padding. Single-point paths are drawn as dots. +Y points up.
func TrajectoriesToSVG(paths []Path, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range paths {
		for _, pt := range p.Points {
			minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
			minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	k := math.Min(float64(width)/(rangeX*1.2), float64(height)/(rangeY*1.2))
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	project := func(p r2.Vec) (float64, float64) {
		return float64(width)/2 + (p.X-cx)*k, float64(height)/2 - (p.Y-cy)*k
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, p := range paths {
		if len(p.Points) == 0 {
			continue
		}
		color := p.Color
		if color == "" {
			color = "#00ff00"
		}

		if len(p.Points) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
			for i, pt := range p.Points {
				x, y := project(pt)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(p.Points[len(p.Points)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>
`, x, y, color, escape(p.Name)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// WriteSVG renders paths to w.
func WriteSVG(w io.Writer, paths []Path, width, height int) error {
	svg := TrajectoriesToSVG(paths, width, height)
	if svg == "" {
		return fmt.Errorf("no trajectory points to draw")
	}
	_, err := io.WriteString(w, svg)
	return err
}

func WriteSVGFile(path string, paths []Path, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, paths, width, height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
