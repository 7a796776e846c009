package panels

import (
	"github.com/san-kum/cosmosim/internal/sim"
)

// Cosmic plots the inflation curve e^t over the unit interval.
type Cosmic struct {
	sim     *sim.Simulator
	samples int
}

func NewCosmic(s *sim.Simulator, samples int) *Cosmic {
	return &Cosmic{sim: s, samples: samples}
}

func (c *Cosmic) ID() string          { return "cosmic" }
func (c *Cosmic) Title() string       { return "Cosmic Evolution" }
func (c *Cosmic) Controls() []Control { return nil }

func (c *Cosmic) Render(Input) (*View, error) {
	req := sim.NewRequest(sim.ExponentialClosedForm, 1, 1)
	req.SampleCount = c.samples
	res, err := c.sim.Simulate(req)
	if err != nil {
		return nil, err
	}

	return &View{
		Header:      c.Title(),
		Description: "Visualize the evolution of the universe.",
		Chart: &Chart{
			Title:  c.Title(),
			XLabel: "Time",
			YLabel: "Universe Size",
			Series: "Cosmic Inflation",
			Result: res,
		},
	}, nil
}
