package panels

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ControlKind int

const (
	Slider ControlKind = iota
	Select
)

// Control describes one input widget. Slider values are numbers within
// [Min, Max]; select values are option indices.
type Control struct {
	Kind    ControlKind
	Name    string
	Label   string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Integer bool
	Unit    string
	Options []string
}

func IntSlider(name, label string, min, max, def int) Control {
	return Control{
		Kind:    Slider,
		Name:    name,
		Label:   label,
		Min:     float64(min),
		Max:     float64(max),
		Step:    1,
		Default: float64(def),
		Integer: true,
	}
}

func FloatSlider(name, label string, min, max, step, def float64) Control {
	return Control{
		Kind:    Slider,
		Name:    name,
		Label:   label,
		Min:     min,
		Max:     max,
		Step:    step,
		Default: def,
	}
}

func SelectBox(name, label string, options ...string) Control {
	return Control{
		Kind:    Select,
		Name:    name,
		Label:   label,
		Max:     float64(len(options) - 1),
		Step:    1,
		Integer: true,
		Options: options,
	}
}

// Clamp forces v into the control's domain.
func (c Control) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return c.Default
	}
	if c.Integer {
		v = math.Round(v)
	} else if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
		// snap to the step precision, not 0.30000000000000004
		v = roundTo(v, decimals(c.Step))
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Adjust moves v by delta steps. Selects wrap around; sliders saturate.
func (c Control) Adjust(v float64, delta int) float64 {
	if c.Kind == Select {
		n := len(c.Options)
		if n == 0 {
			return 0
		}
		i := (int(c.Clamp(v)) + delta) % n
		if i < 0 {
			i += n
		}
		return float64(i)
	}
	return c.Clamp(v + float64(delta)*c.Step)
}

func (c Control) Format(v float64) string {
	v = c.Clamp(v)
	switch {
	case c.Kind == Select:
		if len(c.Options) == 0 {
			return ""
		}
		return c.Options[int(v)]
	case c.Integer:
		return strconv.Itoa(int(v))
	default:
		return strconv.FormatFloat(v, 'f', max(1, decimals(c.Step)), 64)
	}
}

// Parse reads a textual value: a number for sliders, an option name
// (case-insensitive) or index for selects. The result is clamped.
func (c Control) Parse(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if c.Kind == Select {
		for i, opt := range c.Options {
			if strings.EqualFold(opt, s) {
				return float64(i), nil
			}
		}
		if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(c.Options) {
			return float64(i), nil
		}
		return 0, fmt.Errorf("%w: %s must be one of %s", ErrInvalidInput, c.Name, strings.Join(c.Options, ", "))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidInput, c.Name, s)
	}
	return c.Clamp(v), nil
}

func decimals(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(step) - 1e-9))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
