package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &oscillator{}

	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_ExponentialGrowth(t *testing.T) {
	integrator := NewRK45()
	dyn := &expGrowth{k: 0.1}

	x := dynamo.State{10.0}
	dt := 0.1
	for i := 0; i < 100; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	expected := 10.0 * math.E
	if rel := math.Abs(x[0]-expected) / expected; rel > 1e-9 {
		t.Errorf("relative error %e too large", rel)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &oscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, 0, 0.1, 1e-8)

	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}

	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}

	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}

func TestRK45_AdaptiveRejectsLargeError(t *testing.T) {
	integrator := NewRK45()
	dyn := &expGrowth{k: 5}
	x0 := dynamo.State{1}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, 0, 2.0, 1e-10)
	if !errors.Is(err, dynamo.ErrStepRejected) {
		t.Fatalf("expected ErrStepRejected, got %v", err)
	}
	if x[0] != x0[0] {
		t.Errorf("rejected step advanced the state to %f", x[0])
	}
	if newDt <= 0 || newDt >= 2.0 {
		t.Errorf("expected step to shrink, got %f", newDt)
	}
}

func TestRK45_AdaptiveRetryConverges(t *testing.T) {
	integrator := NewRK45()
	dyn := &expGrowth{k: 5}
	tol := 1e-10

	x := dynamo.State{1}
	tm, dt := 0.0, 2.0
	for 2.0-tm > 1e-12 {
		h := math.Min(dt, 2.0-tm)
		next, proposed, err := integrator.StepAdaptive(dyn, x, tm, h, tol)
		dt = proposed
		if errors.Is(err, dynamo.ErrStepRejected) {
			continue
		}
		if err != nil {
			t.Fatalf("StepAdaptive: %v", err)
		}
		x, tm = next, tm+h
	}

	want := math.Exp(10)
	if rel := math.Abs(x[0]-want) / want; rel > 1e-6 {
		t.Errorf("relative error %e too large", rel)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &expGrowth{k: 0.1}

	x4 := dynamo.State{1.0}
	x45 := dynamo.State{1.0}
	dt := 1.0

	for i := 0; i < 10; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45 = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	exact := math.E
	e4 := math.Abs(x4[0] - exact)
	e45 := math.Abs(x45[0] - exact)
	t.Logf("RK4 err: %e, RK45 err: %e", e4, e45)

	if e45 > e4 {
		t.Errorf("RK45 (%e) less accurate than RK4 (%e)", e45, e4)
	}
}
