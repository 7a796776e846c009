package integrators

import "github.com/san-kum/cosmosim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method. Stage buffers are
// reused between steps, so one RK4 must not be shared across goroutines.
type RK4 struct {
	k       [4]dynamo.State
	scratch dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

var rk4Weights = []float64{1, 2, 2, 1}

func (r *RK4) ensureScratch(n int) {
	if len(r.scratch) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.scratch = make(dynamo.State, n)
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.ensureScratch(len(x))
	k := r.k[:]

	copy(k[0], dyn.Derive(x, t))
	copy(k[1], dyn.Derive(axpy(r.scratch, x, dt/2, k[0]), t+dt/2))
	copy(k[2], dyn.Derive(axpy(r.scratch, x, dt/2, k[1]), t+dt/2))
	copy(k[3], dyn.Derive(axpy(r.scratch, x, dt, k[2]), t+dt))

	return combine(make(dynamo.State, len(x)), x, dt/6, rk4Weights, k)
}

// axpy sets dst = x + h·k and returns dst.
func axpy(dst, x dynamo.State, h float64, k dynamo.State) dynamo.State {
	for i := range x {
		dst[i] = x[i] + h*k[i]
	}
	return dst
}

// combine sets dst = x + h·Σ w[j]·k[j] and returns dst. Zero weights are
// skipped so unused stages never contribute.
func combine(dst, x dynamo.State, h float64, w []float64, k []dynamo.State) dynamo.State {
	for i := range x {
		sum := 0.0
		for j, wj := range w {
			if wj != 0 {
				sum += wj * k[j][i]
			}
		}
		dst[i] = x[i] + h*sum
	}
	return dst
}
