// Package panels implements the universe explorer pages. Every page is a
// [Panel]: it declares its input controls and renders a [View] from the
// current input values. A View may carry a [Chart] produced by the
// simulator; the shells (terminal UI, CLI, exporters) only display it.
package panels

import (
	"errors"
	"fmt"

	"github.com/san-kum/cosmosim/internal/sim"
)

var (
	ErrUnknownPanel = errors.New("panels: unknown panel")
	ErrInvalidInput = errors.New("panels: invalid input")
)

type Panel interface {
	ID() string
	Title() string
	Controls() []Control
	Render(in Input) (*View, error)
}

// Input maps control names to values (select values are option indices).
type Input map[string]float64

func (in Input) Float(name string) float64 {
	return in[name]
}

func (in Input) Int(name string) int {
	return int(in[name])
}

// Choice resolves a select control to its option text.
func (in Input) Choice(c Control) string {
	return c.Format(in[c.Name])
}

func (in Input) Clone() Input {
	out := make(Input, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series string
	Result *sim.Result
}

type View struct {
	Header      string
	Description string
	Lines       []string
	Markdown    string
	Chart       *Chart
}

// Defaults returns the default value of every control of p.
func Defaults(p Panel) Input {
	in := make(Input)
	for _, c := range p.Controls() {
		in[c.Name] = c.Clamp(c.Default)
	}
	return in
}

// Normalize fills missing controls with defaults and clamps the rest.
// Unknown keys are dropped.
func Normalize(p Panel, in Input) Input {
	out := make(Input)
	for _, c := range p.Controls() {
		v, ok := in[c.Name]
		if !ok {
			v = c.Default
		}
		out[c.Name] = c.Clamp(v)
	}
	return out
}

// Bind builds an Input from textual values keyed by control name, starting
// from the defaults.
func Bind(p Panel, values map[string]string) (Input, error) {
	in := Defaults(p)
	byName := make(map[string]Control)
	for _, c := range p.Controls() {
		byName[c.Name] = c
	}
	for name, raw := range values {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: panel %s has no control %q", ErrInvalidInput, p.ID(), name)
		}
		v, err := c.Parse(raw)
		if err != nil {
			return nil, err
		}
		in[name] = v
	}
	return in, nil
}

// control returns the named control of p; panels only ask for their own.
func control(p Panel, name string) Control {
	for _, c := range p.Controls() {
		if c.Name == name {
			return c
		}
	}
	return Control{Name: name}
}
