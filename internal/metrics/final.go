package metrics

import (
	"github.com/san-kum/cosmosim/internal/dynamo"
)

// Final records the last observed value of the first state component.
type Final struct {
	name    string
	value   float64
	samples int
}

func NewFinal() *Final {
	return &Final{name: "final"}
}

func (f *Final) Name() string { return f.name }

func (f *Final) Observe(x dynamo.State, t float64) {
	if len(x) == 0 {
		return
	}
	f.value = x[0]
	f.samples++
}

func (f *Final) Value() float64 {
	return f.value
}

func (f *Final) Reset() {
	f.value = 0
	f.samples = 0
}

// Peak records the largest observed value of the first state component.
type Peak struct {
	name    string
	max     float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if len(x) == 0 {
		return
	}
	if p.samples == 0 || x[0] > p.max {
		p.max = x[0]
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}
