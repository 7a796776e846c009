package panels

import (
	"fmt"

	"github.com/san-kum/cosmosim/internal/sim"
)

// BlackHole plots accreting mass over time from a GrowthODE simulation.
type BlackHole struct {
	sim     *sim.Simulator
	samples int
}

func NewBlackHole(s *sim.Simulator, samples int) *BlackHole {
	return &BlackHole{sim: s, samples: samples}
}

func (b *BlackHole) ID() string    { return "blackhole" }
func (b *BlackHole) Title() string { return "Black Hole Dynamics" }

func (b *BlackHole) Controls() []Control {
	return []Control{
		IntSlider("mass", "Black Hole Mass", 1, 100, 10),
		IntSlider("time", "Simulation Time", 1, 100, 10),
	}
}

func (b *BlackHole) Render(in Input) (*View, error) {
	in = Normalize(b, in)

	req := sim.NewRequest(sim.GrowthODE, in.Float("mass"), in.Float("time"))
	req.SampleCount = b.samples
	res, err := b.sim.Simulate(req)
	if err != nil {
		return nil, err
	}

	_, final := res.Last()
	lines := []string{
		fmt.Sprintf("Final mass: %.2f (x%.2f)", final, res.Metrics["growth_factor"]),
	}
	if dt := res.Metrics["doubling_time"]; dt > 0 {
		lines = append(lines, fmt.Sprintf("Mass doubled by t = %.2f", dt))
	}

	return &View{
		Header:      b.Title(),
		Description: "Simulating the dynamics of a black hole.",
		Lines:       lines,
		Chart: &Chart{
			Title:  b.Title(),
			XLabel: "Time",
			YLabel: "Black Hole Mass",
			Series: "Mass",
			Result: res,
		},
	}, nil
}
