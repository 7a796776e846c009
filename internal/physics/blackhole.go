package physics

import (
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// DefaultAccretionRate is the growth constant k in dM/dt = k·M.
const DefaultAccretionRate = 0.1

type BlackHole struct {
	Rate float64
}

func NewBlackHole() *BlackHole {
	return &BlackHole{Rate: DefaultAccretionRate}
}

func (b *BlackHole) StateDim() int {
	return 1
}

func (b *BlackHole) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{b.Rate * x[0]}
}

// Solve returns M(t) = M0·e^{k·t}.
func (b *BlackHole) Solve(x0 dynamo.State, t float64) dynamo.State {
	return dynamo.State{x0[0] * math.Exp(b.Rate*t)}
}
