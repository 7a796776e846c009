package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/cosmosim/internal/panels"
	"github.com/san-kum/cosmosim/internal/sim"
	"github.com/san-kum/cosmosim/internal/viz"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownTheme  = errors.New("config: unknown theme")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

const (
	DefaultIntegrator  = "rk4"
	DefaultSampleCount = sim.DefaultSampleCount
	DefaultTheme       = "cyberpunk"

	DefaultMass        = 10.0
	DefaultTime        = 10.0
	DefaultEnergy      = 13.0
	DefaultParticle    = "Electron"
	DefaultModule      = "General Relativity"
	DefaultDensity     = 1.0
	DefaultTemperature = 3000.0
)

type Config struct {
	Integrator  string      `yaml:"integrator"`
	SampleCount int         `yaml:"sample_count"`
	Theme       string      `yaml:"theme"`
	Panels      PanelConfig `yaml:"panels"`
}

type PanelConfig struct {
	BlackHole BlackHoleConfig `yaml:"blackhole"`
	Particle  ParticleConfig  `yaml:"particle"`
	Education EducationConfig `yaml:"education"`
	Universe  UniverseConfig  `yaml:"universe"`
	Collider  ColliderConfig  `yaml:"collider"`
}

type BlackHoleConfig struct {
	Mass float64 `yaml:"mass"`
	Time float64 `yaml:"time"`
}

type ParticleConfig struct {
	Energy   float64 `yaml:"energy"`
	Particle string  `yaml:"particle"`
}

type EducationConfig struct {
	Module string `yaml:"module"`
}

type UniverseConfig struct {
	Density     float64 `yaml:"density"`
	Temperature float64 `yaml:"temperature"`
}

type ColliderConfig struct {
	Energy float64 `yaml:"energy"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator:  DefaultIntegrator,
		SampleCount: DefaultSampleCount,
		Theme:       DefaultTheme,
		Panels: PanelConfig{
			BlackHole: BlackHoleConfig{Mass: DefaultMass, Time: DefaultTime},
			Particle:  ParticleConfig{Energy: DefaultEnergy, Particle: DefaultParticle},
			Education: EducationConfig{Module: DefaultModule},
			Universe:  UniverseConfig{Density: DefaultDensity, Temperature: DefaultTemperature},
			Collider:  ColliderConfig{Energy: DefaultEnergy},
		},
	}
}

// Load reads a YAML config; keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.SampleCount <= 0 {
		return fmt.Errorf("%w: sample_count must be positive, got %d", sim.ErrInvalidRequest, c.SampleCount)
	}
	if _, err := sim.ParseMethod(c.Integrator); err != nil {
		return err
	}
	if _, ok := viz.LookupTheme(c.Theme); !ok {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, c.Theme, viz.ThemeNames())
	}
	for _, p := range panels.NewRegistry(nil, c.SampleCount).All() {
		if _, err := panels.Bind(p, c.Overrides(p.ID())); err != nil {
			return fmt.Errorf("panels.%s: %w", p.ID(), err)
		}
	}
	return nil
}

// Method is the parsed integrator setting.
func (c *Config) Method() sim.Method {
	m, err := sim.ParseMethod(c.Integrator)
	if err != nil {
		return sim.MethodRK4
	}
	return m
}

// Overrides returns the configured control values for a panel, keyed by
// control name, in the textual form panels.Bind accepts.
func (c *Config) Overrides(panelID string) map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	p := c.Panels
	switch panelID {
	case "blackhole":
		return map[string]string{"mass": f(p.BlackHole.Mass), "time": f(p.BlackHole.Time)}
	case "particle":
		return map[string]string{"energy": f(p.Particle.Energy), "particle": p.Particle.Particle}
	case "education":
		return map[string]string{"module": p.Education.Module}
	case "universe":
		return map[string]string{"density": f(p.Universe.Density), "temperature": f(p.Universe.Temperature)}
	case "collider":
		return map[string]string{"energy": f(p.Collider.Energy)}
	default:
		return map[string]string{}
	}
}

// PanelInput resolves the control values for p. Later layers win:
// control defaults, this config, the named preset, then flags.
func (c *Config) PanelInput(p panels.Panel, preset string, flags map[string]string) (panels.Input, error) {
	values := c.Overrides(p.ID())
	if preset != "" {
		pv := GetPreset(p.ID(), preset)
		if pv == nil {
			return nil, fmt.Errorf("%w: %s/%s (available: %v)", ErrUnknownPreset, p.ID(), preset, ListPresets(p.ID()))
		}
		for k, v := range pv {
			values[k] = v
		}
	}
	for k, v := range flags {
		values[k] = v
	}
	return panels.Bind(p, values)
}

// Inputs resolves config values for every panel, for seeding the shell.
func (c *Config) Inputs(reg *panels.Registry) (map[string]panels.Input, error) {
	out := make(map[string]panels.Input)
	for _, p := range reg.All() {
		in, err := c.PanelInput(p, "", nil)
		if err != nil {
			return nil, err
		}
		out[p.ID()] = in
	}
	return out, nil
}
