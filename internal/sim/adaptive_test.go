package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/physics"
)

// fastDecay has no closed form registered so it exercises the numeric paths only.
type fastDecay struct{}

func (fastDecay) StateDim() int { return 1 }

func (fastDecay) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{-4 * x[0]}
}

func TestIntegrateAdaptive_FastGrowth(t *testing.T) {
	s := New(WithMethod(MethodRK45), WithTolerance(1e-9))
	bh := &physics.BlackHole{Rate: 5}
	times := dynamo.Grid(0, 10, 5)

	values, err := s.integrateAdaptive(bh, dynamo.State{1}, times)
	if err != nil {
		t.Fatal(err)
	}

	worst := 0.0
	for i, tm := range times {
		want := math.Exp(5 * tm)
		worst = math.Max(worst, math.Abs(values[i]-want)/want)
	}
	if worst > 1e-5 {
		t.Errorf("worst relative error %e, want < 1e-5", worst)
	}
}

func TestIntegrateAdaptive_TracksTolerance(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"loose", 1e-4},
		{"tight", 1e-10},
	}

	times := dynamo.Grid(0, 3, 4)
	errs := make([]float64, len(tests))
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithMethod(MethodRK45), WithTolerance(tt.tol))
			values, err := s.integrateAdaptive(fastDecay{}, dynamo.State{1}, times)
			if err != nil {
				t.Fatal(err)
			}
			for j, tm := range times {
				want := math.Exp(-4 * tm)
				errs[i] = math.Max(errs[i], math.Abs(values[j]-want)/want)
			}
		})
	}
	if errs[1] >= errs[0] {
		t.Errorf("tight tolerance error %e not below loose %e", errs[1], errs[0])
	}
}

func TestIntegrateAdaptive_DimensionMismatch(t *testing.T) {
	s := New(WithMethod(MethodRK45))
	_, err := s.integrateAdaptive(physics.NewBlackHole(), dynamo.State{1, 1}, dynamo.Grid(0, 1, 3))
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSolve_RequiresClosedForm(t *testing.T) {
	s := New(WithMethod(MethodAnalytic))
	_, err := s.solve(fastDecay{}, dynamo.State{1}, dynamo.Grid(0, 1, 3))
	if !errors.Is(err, ErrNoClosedForm) {
		t.Errorf("expected ErrNoClosedForm, got %v", err)
	}

	values, err := s.solve(physics.NewBlackHole(), dynamo.State{2}, []float64{0, 10})
	if err != nil {
		t.Fatal(err)
	}
	if values[0] != 2 || math.Abs(values[1]-2*math.E) > 1e-12 {
		t.Errorf("values = %v", values)
	}
}
