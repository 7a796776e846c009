package integrators

import (
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Dormand-Prince 5(4) tableau. dpA[s] holds the coefficients of stage s on
// the earlier stages, dpB the fifth-order weights and dpE the difference
// between the fifth- and fourth-order weights (seven stages, FSAL).
var (
	dpC = []float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1}

	dpA = [][]float64{
		nil,
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
	}

	dpB = []float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84}

	dpE = []float64{
		35.0/384 - 5179.0/57600,
		0,
		500.0/1113 - 7571.0/16695,
		125.0/192 - 393.0/640,
		-2187.0/6784 + 92097.0/339200,
		11.0/84 - 187.0/2100,
		-1.0 / 40,
	}
)

// RK45 is the Dormand-Prince 5(4) pair. Step always takes the full step;
// StepAdaptive rejects steps whose error estimate exceeds tol.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, t, dt)
	return xNew
}

// StepAdaptive tries one step of size dt. On success it returns the new
// state and the suggested next step. When the scaled error exceeds tol it
// returns x unchanged, a smaller dt to retry with and ErrStepRejected.
func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	xNew, errMax := r.attempt(dyn, x, t, dt)
	if !xNew.IsValid() {
		return x, dt * r.minScale, dynamo.ErrInvalidState
	}

	errRatio := errMax / tol
	if errRatio > 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
		return x, dt * scale, dynamo.ErrStepRejected
	}
	if errRatio == 0 {
		return xNew, dt * r.maxScale, nil
	}
	scale := math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	return xNew, dt * scale, nil
}

// attempt computes the fifth-order solution and the largest per-component
// error of the embedded fourth-order estimate, relative to the state size.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, float64) {
	n := len(x)
	k := make([]dynamo.State, len(dpE))
	stage := make(dynamo.State, n)

	k[0] = dyn.Derive(x, t)
	for s := 1; s < len(dpA); s++ {
		k[s] = dyn.Derive(combine(stage, x, dt, dpA[s], k[:s]), t+dpC[s]*dt)
	}

	xNew := combine(make(dynamo.State, n), x, dt, dpB, k[:len(dpB)])
	if !xNew.IsValid() {
		return xNew, math.Inf(1)
	}
	k[6] = dyn.Derive(xNew, t+dt)

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := 0.0
		for j, e := range dpE {
			if e != 0 {
				errEst += e * k[j][i]
			}
		}
		scale := math.Abs(x[i]) + math.Abs(dt*k[0][i]) + 1e-10
		errMax = math.Max(errMax, math.Abs(dt*errEst)/scale)
	}
	return xNew, errMax
}
