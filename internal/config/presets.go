package config

import "sort"

// Presets holds named control settings per panel id.
var Presets = map[string]map[string]map[string]string{
	"blackhole": {
		"stellar":      {"mass": "10", "time": "50"},
		"supermassive": {"mass": "100", "time": "100"},
		"seed":         {"mass": "1", "time": "100"},
		"brief":        {"mass": "50", "time": "1"},
	},
	"particle": {
		"lhc":   {"energy": "13", "particle": "Proton"},
		"higgs": {"energy": "100", "particle": "Higgs Boson"},
		"beta":  {"energy": "1", "particle": "Neutron"},
	},
	"education": {
		"relativity": {"module": "General Relativity"},
		"strings":    {"module": "String Theory"},
	},
	"universe": {
		"hot":   {"density": "1.0", "temperature": "10000"},
		"cold":  {"density": "0.1", "temperature": "1"},
		"dense": {"density": "10.0", "temperature": "3000"},
	},
	"collider": {
		"lhc": {"energy": "13"},
		"fcc": {"energy": "100"},
	},
}

func GetPreset(panel, preset string) map[string]string {
	panelPresets, ok := Presets[panel]
	if !ok {
		return nil
	}
	values, ok := panelPresets[preset]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func ListPresets(panel string) []string {
	panelPresets, ok := Presets[panel]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(panelPresets))
	for name := range panelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
