package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/cosmosim/internal/dynamo"
)

func feed(m dynamo.Metric, times, values []float64) {
	for i := range times {
		m.Observe(dynamo.State{values[i]}, times[i])
	}
}

func TestFinalAndPeak(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	values := []float64{1, 5, 3, 2}

	f := NewFinal()
	feed(f, times, values)
	if f.Value() != 2 {
		t.Errorf("final = %f, want 2", f.Value())
	}

	p := NewPeak()
	feed(p, times, values)
	if p.Value() != 5 {
		t.Errorf("peak = %f, want 5", p.Value())
	}

	p.Reset()
	feed(p, []float64{0}, []float64{-3})
	if p.Value() != -3 {
		t.Errorf("peak after reset = %f, want -3", p.Value())
	}
}

func TestGrowthFactor(t *testing.T) {
	g := NewGrowthFactor()
	if g.Value() != 0 {
		t.Error("expected zero before any sample")
	}

	feed(g, []float64{0, 10}, []float64{10, 10 * math.E})
	if math.Abs(g.Value()-math.E) > 1e-12 {
		t.Errorf("growth factor = %f, want e", g.Value())
	}

	g.Reset()
	if g.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDoublingTime(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
		want   float64
	}{
		{"doubles", []float64{0, 1, 2, 3}, []float64{1, 1.5, 2.1, 4}, 2},
		{"exact double", []float64{0, 1}, []float64{3, 6}, 1},
		{"never", []float64{0, 1, 2}, []float64{1, 1.2, 1.4}, 0},
		{"non-positive start", []float64{0, 1}, []float64{0, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDoublingTime()
			feed(d, tt.times, tt.values)
			if d.Value() != tt.want {
				t.Errorf("doubling time = %f, want %f", d.Value(), tt.want)
			}
		})
	}
}

func TestDefaultsAreFresh(t *testing.T) {
	a := Defaults()
	b := Defaults()
	if len(a) != 4 {
		t.Fatalf("expected 4 default metrics, got %d", len(a))
	}
	a[0].Observe(dynamo.State{7}, 0)
	if b[0].Value() != 0 {
		t.Error("Defaults shares metric instances between calls")
	}
}
