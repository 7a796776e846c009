package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/metrics"
	"github.com/san-kum/cosmosim/internal/physics"
)

const (
	DefaultSubsteps  = 10
	DefaultTolerance = 1e-9
	maxAdaptiveSteps = 100000
)

// Simulator turns requests into sampled time series. It holds no state
// between calls and may be shared across goroutines.
type Simulator struct {
	method    Method
	substeps  int
	tolerance float64
	metrics   func() []dynamo.Metric
}

type Option func(*Simulator)

func WithMethod(m Method) Option {
	return func(s *Simulator) { s.method = m }
}

// WithSubsteps sets the number of fixed integrator steps between two
// consecutive samples.
func WithSubsteps(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.substeps = n
		}
	}
}

func WithTolerance(tol float64) Option {
	return func(s *Simulator) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithMetrics replaces the metric set. fn is called once per simulation so
// every result gets fresh metric instances.
func WithMetrics(fn func() []dynamo.Metric) Option {
	return func(s *Simulator) { s.metrics = fn }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		method:    MethodRK4,
		substeps:  DefaultSubsteps,
		tolerance: DefaultTolerance,
		metrics:   metrics.Defaults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Method() Method { return s.method }

// Simulate runs req with the default Simulator (RK4, 10 sub-steps).
func Simulate(req Request) (*Result, error) {
	return New().Simulate(req)
}

func (s *Simulator) Simulate(req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		result *Result
		err    error
	)
	switch req.Kind {
	case GrowthODE:
		result, err = s.growth(req)
	case ExponentialClosedForm:
		result = s.inflation(req)
	}
	if err != nil {
		return nil, err
	}

	s.observe(result)
	return result, nil
}

func (s *Simulator) growth(req Request) (*Result, error) {
	times := dynamo.Grid(0, req.Horizon, req.SampleCount)
	values, err := s.solve(physics.NewBlackHole(), dynamo.State{req.InitialValue}, times)
	if err != nil {
		return nil, err
	}
	return &Result{Times: times, Values: values, Horizon: req.Horizon}, nil
}

// inflation always spans one time unit from unit size.
func (s *Simulator) inflation(req Request) *Result {
	times := dynamo.Grid(0, 1, req.SampleCount)
	values := Solve(physics.NewInflation(), dynamo.State{1}, times)
	return &Result{Times: times, Values: values, Horizon: 1}
}

func (s *Simulator) solve(dyn dynamo.System, x0 dynamo.State, times []float64) ([]float64, error) {
	switch s.method {
	case MethodAnalytic:
		an, ok := dyn.(dynamo.Analytic)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrNoClosedForm, dyn)
		}
		return Solve(an, x0, times), nil
	case MethodRK4:
		return Integrate(dyn, NewRK4Integrator(), x0, times, s.substeps)
	case MethodRK45:
		return s.integrateAdaptive(dyn, x0, times)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, s.method)
	}
}

// Solve samples the closed form of an at every time in times and returns
// the first state component.
func Solve(an dynamo.Analytic, x0 dynamo.State, times []float64) []float64 {
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = an.Solve(x0, t)[0]
	}
	return values
}

func (s *Simulator) observe(r *Result) {
	r.Metrics = make(map[string]float64)
	if s.metrics == nil {
		return
	}
	ms := s.metrics()
	for _, m := range ms {
		m.Reset()
	}
	for i, t := range r.Times {
		x := dynamo.State{r.Values[i]}
		for _, m := range ms {
			m.Observe(x, t)
		}
	}
	for _, m := range ms {
		r.Metrics[m.Name()] = m.Value()
	}
}

// NewRK4Integrator is the default fixed-step integrator.
func NewRK4Integrator() dynamo.Integrator {
	integ, _ := NewIntegrator("rk4")
	return integ
}

// Integrate advances x0 through every time in times (times[0] is the start)
// taking substeps equal fixed steps per interval, and returns the first
// state component at each time.
func Integrate(dyn dynamo.System, integ dynamo.Integrator, x0 dynamo.State, times []float64, substeps int) ([]float64, error) {
	if err := checkDim(dyn, x0); err != nil {
		return nil, err
	}
	if substeps < 1 {
		substeps = 1
	}
	values := make([]float64, len(times))
	if len(times) == 0 {
		return values, nil
	}

	x := x0.Clone()
	values[0] = x[0]
	step := 0
	for i := 1; i < len(times); i++ {
		t := times[i-1]
		dt := (times[i] - times[i-1]) / float64(substeps)
		for j := 0; j < substeps; j++ {
			x = integ.Step(dyn, x, t, dt)
			t += dt
			step++
		}
		if !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: step, Time: times[i], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		values[i] = x[0]
	}
	return values, nil
}

func checkDim(dyn dynamo.System, x0 dynamo.State) error {
	if len(x0) != dyn.StateDim() {
		return &dynamo.SimulationError{
			State:   x0,
			Wrapped: fmt.Errorf("%w: state has %d components, system wants %d", dynamo.ErrDimensionMismatch, len(x0), dyn.StateDim()),
		}
	}
	return nil
}

// integrateAdaptive walks each sample interval with RK45, retrying rejected
// steps at the smaller size the integrator proposes. Steps never overshoot a
// sample time.
func (s *Simulator) integrateAdaptive(dyn dynamo.System, x0 dynamo.State, times []float64) ([]float64, error) {
	if err := checkDim(dyn, x0); err != nil {
		return nil, err
	}
	integ, err := NewIntegrator(string(MethodRK45))
	if err != nil {
		return nil, err
	}
	adaptive := integ.(dynamo.AdaptiveIntegrator)

	values := make([]float64, len(times))
	if len(times) == 0 {
		return values, nil
	}

	x := x0.Clone()
	values[0] = x[0]
	step := 0
	dt := 0.0
	for i := 1; i < len(times); i++ {
		t, end := times[i-1], times[i]
		if dt <= 0 {
			dt = end - t
		}
		for end-t > 1e-12*math.Max(1, math.Abs(end)) {
			h := math.Min(dt, end-t)
			next, proposed, err := adaptive.StepAdaptive(dyn, x, t, h, s.tolerance)
			step++
			if step > maxAdaptiveSteps {
				return nil, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: dynamo.ErrStepLimit}
			}
			if errors.Is(err, dynamo.ErrStepRejected) {
				dt = proposed
				continue
			}
			if err != nil {
				return nil, &dynamo.SimulationError{Step: step, Time: t, State: x, Wrapped: err}
			}
			if h == end-t {
				// a step cut short at the sample time says little about dt
				t, dt = end, math.Max(dt, proposed)
			} else {
				t, dt = t+h, proposed
			}
			x = next
		}
		values[i] = x[0]
	}
	return values, nil
}
