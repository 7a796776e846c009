package panels

import (
	"fmt"
	"strconv"
	"strings"
)

type Universe struct{}

func (Universe) ID() string    { return "universe" }
func (Universe) Title() string { return "Build Your Own Universe" }

func (Universe) Controls() []Control {
	temp := IntSlider("temperature", "Initial Temperature (K)", 1, 10000, 3000)
	temp.Unit = "K"
	return []Control{
		FloatSlider("density", "Initial Density", 0.1, 10.0, 0.01, 1.0),
		temp,
	}
}

func (u Universe) Render(in Input) (*View, error) {
	in = Normalize(u, in)
	return &View{
		Header:      u.Title(),
		Description: "Manipulate initial conditions and see how the universe evolves.",
		Lines: []string{
			fmt.Sprintf("Simulating universe with initial density %s and temperature %d K.",
				shortFloat(in.Float("density")), in.Int("temperature")),
			"Universe evolution results will be displayed here.",
		},
	}, nil
}

// shortFloat prints the shortest exact decimal, keeping one fractional digit
// for whole numbers (1 -> "1.0", 2.35 -> "2.35").
func shortFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
