package physics

import (
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Inflation models the scale factor a(t) = a0·e^{H·t}. It only has a closed
// form; cosmic inflation samples are never integrated.
type Inflation struct {
	Hubble float64
}

func NewInflation() *Inflation {
	return &Inflation{Hubble: 1.0}
}

func (i *Inflation) Solve(x0 dynamo.State, t float64) dynamo.State {
	return dynamo.State{x0[0] * math.Exp(i.Hubble*t)}
}
