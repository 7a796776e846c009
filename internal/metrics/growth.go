package metrics

import (
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// GrowthFactor is last/first of the first state component.
type GrowthFactor struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewGrowthFactor() *GrowthFactor {
	return &GrowthFactor{name: "growth_factor"}
}

func (g *GrowthFactor) Name() string { return g.name }

func (g *GrowthFactor) Observe(x dynamo.State, t float64) {
	if len(x) == 0 {
		return
	}
	if g.samples == 0 {
		g.initial = x[0]
	}
	g.current = x[0]
	g.samples++
}

func (g *GrowthFactor) Value() float64 {
	if g.samples == 0 || g.initial == 0 {
		return 0
	}
	return g.current / g.initial
}

func (g *GrowthFactor) Reset() {
	g.initial = 0
	g.current = 0
	g.samples = 0
}

// DoublingTime is the first sample time at which the value reached twice
// its initial value. Zero when it never did.
type DoublingTime struct {
	name    string
	initial float64
	at      float64
	reached bool
	samples int
}

func NewDoublingTime() *DoublingTime {
	return &DoublingTime{name: "doubling_time"}
}

func (d *DoublingTime) Name() string { return d.name }

func (d *DoublingTime) Observe(x dynamo.State, t float64) {
	if len(x) == 0 {
		return
	}
	if d.samples == 0 {
		d.initial = x[0]
	}
	d.samples++
	if d.reached || d.initial <= 0 {
		return
	}
	if x[0] >= 2*d.initial {
		d.at = t
		d.reached = true
	}
}

func (d *DoublingTime) Value() float64 {
	if !d.reached {
		return 0
	}
	return d.at
}

func (d *DoublingTime) Reset() {
	d.initial = 0
	d.at = 0
	d.reached = false
	d.samples = 0
}

// Defaults returns a fresh set of the series metrics attached to every
// simulation result.
func Defaults() []dynamo.Metric {
	return []dynamo.Metric{
		NewFinal(),
		NewPeak(),
		NewGrowthFactor(),
		NewDoublingTime(),
	}
}
