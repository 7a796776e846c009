package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cosmosim/internal/panels"
)

const (
	DefaultChartWidth  = 60
	DefaultChartHeight = 12
	minChartWidth      = 10
	minChartHeight     = 3
)

// PlotChart draws c as an asciigraph line plot. The caption names the
// series and the y axis; a footer line gives the time span.
func PlotChart(c *panels.Chart, width, height int) string {
	if c == nil || c.Result == nil || c.Result.Len() == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	caption := c.YLabel
	if c.Series != "" && c.Series != c.YLabel {
		caption = fmt.Sprintf("%s (%s)", c.Series, c.YLabel)
	}

	graph := asciigraph.Plot(c.Result.Values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)

	t0 := c.Result.Times[0]
	t1, _ := c.Result.Last()
	footer := fmt.Sprintf("%s: %.2f .. %.2f", c.XLabel, t0, t1)
	return graph + "\n" + strings.Repeat(" ", 2) + footer
}
