package export

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/cosmosim/internal/panels"
)

// WritePNG renders c as a go-chart line chart with named axes.
func WritePNG(w io.Writer, c *panels.Chart, width, height int) error {
	if c.Result.Len() < 2 {
		return ErrTooFewPoints
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.Series,
				XValues: c.Result.Times,
				YValues: c.Result.Values,
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex(strokeColor[1:]),
					StrokeWidth: 2.0,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
