package sim

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/integrators"
)

var (
	ErrUnknownMethod = errors.New("sim: unknown integration method")
	ErrNoClosedForm  = errors.New("sim: system has no closed-form solution")
)

// Method selects how GrowthODE requests are solved.
type Method string

const (
	MethodRK4      Method = "rk4"
	MethodRK45     Method = "rk45"
	MethodAnalytic Method = "analytic"
)

// Methods usable by a Simulator. Euler only lives in the integrator
// registry, for comparisons.
var methods = map[Method]bool{
	MethodRK4:      true,
	MethodRK45:     true,
	MethodAnalytic: true,
}

func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if !methods[m] {
		return "", fmt.Errorf("%w: %q (available: %v)", ErrUnknownMethod, s, MethodNames())
	}
	return m, nil
}

func MethodNames() []string {
	names := make([]string, 0, len(methods))
	for m := range methods {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

var integratorFactories = map[string]func() dynamo.Integrator{
	"euler": func() dynamo.Integrator { return integrators.NewEuler() },
	"rk4":   func() dynamo.Integrator { return integrators.NewRK4() },
	"rk45":  func() dynamo.Integrator { return integrators.NewRK45() },
}

// NewIntegrator returns a fresh integrator by name.
func NewIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := integratorFactories[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func IntegratorNames() []string {
	names := make([]string, 0, len(integratorFactories))
	for name := range integratorFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
