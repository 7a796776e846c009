package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cosmosim/internal/sim"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPanelsCommand(t *testing.T) {
	out, err := execute(t, "panels")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"blackhole", "Black Hole Dynamics", "mass[1..100]", "particle{Electron|Proton|Neutron|Higgs Boson}", "density[0.10..10.00]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default home", []string{"show"}, "Welcome to the Universe Explorer!"},
		{"particle flags", []string{"show", "particle", "--energy", "42", "--particle", "proton"}, "Simulating collisions at 42 TeV involving Proton."},
		{"universe preset", []string{"show", "universe", "--preset", "hot"}, "temperature 10000 K."},
		{"flag beats preset", []string{"show", "collider", "--preset", "fcc", "--energy", "5"}, "Running collisions at 5 TeV."},
		{"chart", []string{"show", "blackhole"}, "Black Hole Mass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestShowCommand_Errors(t *testing.T) {
	tests := [][]string{
		{"show", "wormhole"},
		{"show", "collider", "--mass", "3"},
		{"show", "blackhole", "--preset", "quasar"},
		{"show", "--theme", "neon"},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestSimulateCommand(t *testing.T) {
	out, err := execute(t, "simulate", "growth", "--samples", "3", "--format", "csv")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "time,value" {
		t.Errorf("unexpected csv:\n%s", out)
	}

	out, err = execute(t, "simulate", "inflation", "--format", "json", "--samples", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"samples": 2`) {
		t.Errorf("unexpected json:\n%s", out)
	}

	if _, err := execute(t, "simulate", "growth", "--horizon", "0"); err == nil {
		t.Error("expected error for zero horizon")
	}
	if _, err := execute(t, "simulate", "wormhole"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestSimulateCommand_Integrator(t *testing.T) {
	for _, method := range []string{"rk4", "rk45", "analytic"} {
		t.Run(method, func(t *testing.T) {
			out, err := execute(t, "simulate", "growth", "--integrator", method, "--samples", "5")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, "method="+method) {
				t.Errorf("method not applied:\n%s", out)
			}
		})
	}

	_, err := execute(t, "simulate", "growth", "--integrator", "euler")
	if !errors.Is(err, sim.ErrUnknownMethod) {
		t.Errorf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestSimulateCommand_SingleSampleHorizon(t *testing.T) {
	out, err := execute(t, "simulate", "growth", "--samples", "1", "--horizon", "10", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"horizon": 10`) {
		t.Errorf("expected requested horizon in json:\n%s", out)
	}
}

func TestShowCommand_FineDensity(t *testing.T) {
	out, err := execute(t, "show", "universe", "--density", "2.35")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "initial density 2.35") {
		t.Errorf("density was coarsened:\n%s", out)
	}
}

func TestSweepCommand(t *testing.T) {
	out, err := execute(t, "sweep", "--from", "1", "--to", "4", "--steps", "4", "--samples", "10")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "sweeping 4 initial masses") || !strings.Contains(out, "4 runs") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "--horizon", "10")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"euler", "rk4", "rk45", "analytic"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bh.csv")

	out, err := execute(t, "export", "blackhole", "-o", path, "--mass", "20")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "wrote") {
		t.Errorf("unexpected output: %s", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "0.000000,20.000000") {
		t.Errorf("unexpected csv:\n%s", data)
	}

	if _, err := execute(t, "export", "particle", "-o", filepath.Join(dir, "p.csv")); err == nil {
		t.Error("echo panels have no chart to export as csv")
	}
	if _, err := execute(t, "export", "particle", "-o", filepath.Join(dir, "p.html")); err != nil {
		t.Errorf("html export: %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cosmosim.yaml")
	if _, err := execute(t, "config", "init", path); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "init", path); err == nil {
		t.Error("expected refusal to overwrite")
	}
	if _, err := execute(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("--force: %v", err)
	}

	if err := os.WriteFile(path, []byte("panels:\n  collider:\n    energy: 64\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "show", "collider", "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Running collisions at 64 TeV.") {
		t.Errorf("config value not applied:\n%s", out)
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "blackhole")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "supermassive") || !strings.Contains(out, "mass=100 time=100") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "presets", "home")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "no presets") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
