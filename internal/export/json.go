package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/cosmosim/internal/panels"
)

type ViewData struct {
	Header      string     `json:"header"`
	Description string     `json:"description,omitempty"`
	Lines       []string   `json:"lines,omitempty"`
	Markdown    string     `json:"markdown,omitempty"`
	Chart       *ChartData `json:"chart,omitempty"`
}

type ChartData struct {
	Title   string             `json:"title"`
	XLabel  string             `json:"x_label"`
	YLabel  string             `json:"y_label"`
	Series  string             `json:"series"`
	Samples int                `json:"samples"`
	Horizon float64            `json:"horizon"`
	Times   []float64          `json:"times"`
	Values  []float64          `json:"values"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func NewViewData(v *panels.View) ViewData {
	data := ViewData{
		Header:      v.Header,
		Description: v.Description,
		Lines:       v.Lines,
		Markdown:    v.Markdown,
	}
	if c := v.Chart; c != nil && c.Result != nil {
		data.Chart = &ChartData{
			Title:   c.Title,
			XLabel:  c.XLabel,
			YLabel:  c.YLabel,
			Series:  c.Series,
			Samples: c.Result.Len(),
			Horizon: c.Result.Horizon,
			Times:   c.Result.Times,
			Values:  c.Result.Values,
			Metrics: c.Result.Metrics,
		}
	}
	return data
}

func WriteJSON(w io.Writer, v *panels.View) error {
	if v == nil {
		return ErrNoView
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewViewData(v))
}
