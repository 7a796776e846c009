package panels

import (
	"fmt"
	"strings"

	"github.com/san-kum/cosmosim/internal/sim"
)

type Registry struct {
	panels []Panel
	byID   map[string]Panel
}

// NewRegistry builds the panel set in sidebar order. Simulation panels use
// s and request samples points per chart.
func NewRegistry(s *sim.Simulator, samples int) *Registry {
	if s == nil {
		s = sim.New()
	}
	if samples <= 0 {
		samples = sim.DefaultSampleCount
	}

	r := &Registry{byID: make(map[string]Panel)}
	for _, p := range []Panel{
		Home{},
		NewBlackHole(s, samples),
		NewCosmic(s, samples),
		Particle{},
		Education{},
		Universe{},
		Collider{},
	} {
		r.panels = append(r.panels, p)
		r.byID[p.ID()] = p
	}
	return r
}

func (r *Registry) All() []Panel {
	out := make([]Panel, len(r.panels))
	copy(out, r.panels)
	return out
}

func (r *Registry) IDs() []string {
	ids := make([]string, len(r.panels))
	for i, p := range r.panels {
		ids[i] = p.ID()
	}
	return ids
}

// Lookup finds a panel by id or title, ignoring case.
func (r *Registry) Lookup(name string) (Panel, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := r.byID[key]; ok {
		return p, nil
	}
	for _, p := range r.panels {
		if strings.EqualFold(p.Title(), key) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPanel, name, strings.Join(r.IDs(), ", "))
}
