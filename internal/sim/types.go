package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

// DefaultSampleCount is the number of chart points every panel asks for.
const DefaultSampleCount = 100

// ErrInvalidRequest is returned for non-positive horizons or sample counts
// and unknown kinds.
var ErrInvalidRequest = dynamo.ErrInvalidRequest

type Kind int

const (
	// GrowthODE integrates dM/dt = 0.1·M from the initial value over
	// [0, horizon].
	GrowthODE Kind = iota
	// ExponentialClosedForm evaluates e^t over [0, 1], ignoring the initial
	// value and horizon.
	ExponentialClosedForm
)

var kindNames = map[Kind]string{
	GrowthODE:             "growth",
	ExponentialClosedForm: "inflation",
}

var kindAliases = map[string]Kind{
	"growth":      GrowthODE,
	"blackhole":   GrowthODE,
	"inflation":   ExponentialClosedForm,
	"exponential": ExponentialClosedForm,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, s)
	}
	return k, nil
}

// Kinds returns the canonical kind names.
func Kinds() []string {
	return []string{GrowthODE.String(), ExponentialClosedForm.String()}
}

type Request struct {
	Kind         Kind
	InitialValue float64
	Horizon      float64
	SampleCount  int
}

func NewRequest(kind Kind, initial, horizon float64) Request {
	return Request{
		Kind:         kind,
		InitialValue: initial,
		Horizon:      horizon,
		SampleCount:  DefaultSampleCount,
	}
}

func (r Request) Validate() error {
	if _, ok := kindNames[r.Kind]; !ok {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidRequest, int(r.Kind))
	}
	if math.IsNaN(r.Horizon) || math.IsInf(r.Horizon, 0) || r.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %v", ErrInvalidRequest, r.Horizon)
	}
	if r.SampleCount <= 0 {
		return fmt.Errorf("%w: sample count must be positive, got %d", ErrInvalidRequest, r.SampleCount)
	}
	if math.IsNaN(r.InitialValue) || math.IsInf(r.InitialValue, 0) {
		return fmt.Errorf("%w: initial value must be finite, got %v", ErrInvalidRequest, r.InitialValue)
	}
	return nil
}

type Point struct {
	X, Y float64
}

// Result is a sampled series over [0, Horizon]. Horizon is the requested
// span even when a single sample leaves the grid at t=0.
type Result struct {
	Times   []float64
	Values  []float64
	Horizon float64
	Metrics map[string]float64
}

func (r *Result) Len() int {
	return len(r.Times)
}

// Last returns the final (time, value) sample.
func (r *Result) Last() (float64, float64) {
	n := len(r.Times)
	if n == 0 {
		return 0, 0
	}
	return r.Times[n-1], r.Values[n-1]
}

func (r *Result) Points() []Point {
	pts := make([]Point, len(r.Times))
	for i := range r.Times {
		pts[i] = Point{X: r.Times[i], Y: r.Values[i]}
	}
	return pts
}
