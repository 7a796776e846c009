package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/cosmosim/internal/panels"
	"github.com/san-kum/cosmosim/internal/sim"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 400
	strokeColor   = "#ff00ff"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// paddedBounds returns the data bounds grown by 10% on every side. Flat
// ranges are widened to 1 first.
func paddedBounds(points []sim.Point) bounds {
	b := bounds{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points {
		b.minX = min(b.minX, p.X)
		b.maxX = max(b.maxX, p.X)
		b.minY = min(b.minY, p.Y)
		b.maxY = max(b.maxY, p.Y)
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// project maps p into a w x h box with y growing downwards.
func (b bounds) project(p sim.Point, w, h float64) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * w
	y := h - (p.Y-b.minY)/(b.maxY-b.minY)*h
	return x, y
}

// ChartToSVG draws the points as a single polyline path with the chart
// title and axis names.
func ChartToSVG(c *panels.Chart, width, height int) (string, error) {
	points := c.Result.Points()
	if len(points) < 2 {
		return "", ErrTooFewPoints
	}
	b := paddedBounds(points)
	w, h := float64(width), float64(height)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="20" fill="#ffffff" font-family="monospace" font-size="14" text-anchor="middle">%s</text>
`, w/2, html.EscapeString(c.Title)))
	sb.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" fill="#888888" font-family="monospace" font-size="12" text-anchor="middle">%s</text>
`, w/2, h-6, html.EscapeString(c.XLabel)))
	sb.WriteString(fmt.Sprintf(`<text x="12" y="%.0f" fill="#888888" font-family="monospace" font-size="12" text-anchor="middle" transform="rotate(-90 12 %.0f)">%s</text>
`, h/2, h/2, html.EscapeString(c.YLabel)))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x, y := b.project(p, w, h)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}

func WriteSVG(w io.Writer, c *panels.Chart, width, height int) error {
	svg, err := ChartToSVG(c, width, height)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+svg+"\n")
	return err
}
