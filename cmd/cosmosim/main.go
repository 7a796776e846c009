package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/cosmosim/internal/config"
	"github.com/san-kum/cosmosim/internal/dynamo"
	"github.com/san-kum/cosmosim/internal/export"
	"github.com/san-kum/cosmosim/internal/panels"
	"github.com/san-kum/cosmosim/internal/physics"
	"github.com/san-kum/cosmosim/internal/sim"
	"github.com/san-kum/cosmosim/internal/tui"
	"github.com/san-kum/cosmosim/internal/viz"
)

const debugEnv = "COSMOSIM_DEBUG"

// controlFlags are the panel control flags shared by show and export.
// Only flags set on the command line are forwarded to the panel.
var controlFlags = []string{"mass", "time", "energy", "particle", "module", "density", "temperature"}

type cli struct {
	configFile string
	theme      string
	preset     string

	initial    float64
	horizon    float64
	samples    int
	integrator string
	format     string

	from  float64
	to    float64
	steps int

	output string
	force  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:          "cosmosim",
		Short:        "universe explorer: toy cosmology panels and simulations",
		SilenceUsage: true,
		RunE:         c.runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&c.theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	panelsCmd := &cobra.Command{
		Use:   "panels",
		Short: "list panels and their controls",
		Args:  cobra.NoArgs,
		RunE:  c.listPanels,
	}

	showCmd := &cobra.Command{
		Use:   "show [panel]",
		Short: "render a panel to the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.showPanel,
	}
	addControlFlags(showCmd.Flags(), &c.preset)

	simulateCmd := &cobra.Command{
		Use:   "simulate [kind]",
		Short: "run one simulation (" + strings.Join(sim.Kinds(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE:  c.simulate,
	}
	simulateCmd.Flags().Float64Var(&c.initial, "initial", config.DefaultMass, "initial value")
	simulateCmd.Flags().Float64Var(&c.horizon, "horizon", config.DefaultTime, "time horizon")
	simulateCmd.Flags().IntVar(&c.samples, "samples", config.DefaultSampleCount, "sample count")
	simulateCmd.Flags().StringVar(&c.integrator, "integrator", config.DefaultIntegrator, "method ("+strings.Join(sim.MethodNames(), ", ")+")")
	simulateCmd.Flags().StringVar(&c.format, "format", "table", "output format (table, csv, json)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run black hole growth across a range of initial masses",
		Args:  cobra.NoArgs,
		RunE:  c.sweep,
	}
	sweepCmd.Flags().Float64Var(&c.from, "from", 1, "first initial mass")
	sweepCmd.Flags().Float64Var(&c.to, "to", 100, "last initial mass")
	sweepCmd.Flags().IntVar(&c.steps, "steps", 10, "number of masses")
	sweepCmd.Flags().Float64Var(&c.horizon, "horizon", config.DefaultTime, "time horizon")
	sweepCmd.Flags().IntVar(&c.samples, "samples", config.DefaultSampleCount, "sample count")
	sweepCmd.Flags().StringVar(&c.integrator, "integrator", config.DefaultIntegrator, "method")

	compareCmd := &cobra.Command{
		Use:   "compare [integrators...]",
		Short: "compare integrators against the analytic growth curve",
		RunE:  c.compare,
	}
	compareCmd.Flags().Float64Var(&c.initial, "initial", config.DefaultMass, "initial mass")
	compareCmd.Flags().Float64Var(&c.horizon, "horizon", 100, "time horizon")
	compareCmd.Flags().IntVar(&c.samples, "samples", config.DefaultSampleCount, "sample count")

	exportCmd := &cobra.Command{
		Use:   "export [panel]",
		Short: "write a panel to a file (" + strings.Join(export.Formats(), ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE:  c.exportPanel,
	}
	addControlFlags(exportCmd.Flags(), &c.preset)
	exportCmd.Flags().StringVarP(&c.output, "output", "o", "", "output file")
	exportCmd.Flags().StringVar(&c.format, "format", "", "output format (default: from file extension)")
	_ = exportCmd.MarkFlagRequired("output")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.configInit,
	}
	configInitCmd.Flags().BoolVar(&c.force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [panel]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.listPresets,
	}

	rootCmd.AddCommand(panelsCmd, showCmd, simulateCmd, sweepCmd, compareCmd, exportCmd, configCmd, presetsCmd)
	return rootCmd
}

func addControlFlags(fs *pflag.FlagSet, preset *string) {
	fs.Float64("mass", config.DefaultMass, "black hole mass")
	fs.Float64("time", config.DefaultTime, "simulation time")
	fs.Float64("energy", config.DefaultEnergy, "collision energy (TeV)")
	fs.String("particle", config.DefaultParticle, "particle ("+strings.Join(panels.Particles, ", ")+")")
	fs.String("module", config.DefaultModule, "educational module")
	fs.Float64("density", config.DefaultDensity, "initial density")
	fs.Float64("temperature", config.DefaultTemperature, "initial temperature (K)")
	fs.StringVar(preset, "preset", "", "use preset control values")
}

// changedControls collects the control flags set on the command line.
func changedControls(fs *pflag.FlagSet) map[string]string {
	values := make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		for _, name := range controlFlags {
			if f.Name == name {
				values[name] = f.Value.String()
			}
		}
	})
	return values
}

func (c *cli) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if c.configFile != "" {
		loaded, err := config.Load(c.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("theme") {
		if _, ok := viz.LookupTheme(c.theme); !ok {
			return nil, fmt.Errorf("%w: %q (available: %v)", config.ErrUnknownTheme, c.theme, viz.ThemeNames())
		}
		cfg.Theme = c.theme
	}
	if f := cmd.Flags().Lookup("samples"); f != nil && f.Changed {
		cfg.SampleCount = c.samples
	}
	if f := cmd.Flags().Lookup("integrator"); f != nil && f.Changed {
		cfg.Integrator = c.integrator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSimulator expects cfg to have passed Validate.
func newSimulator(cfg *config.Config) *sim.Simulator {
	return sim.New(sim.WithMethod(cfg.Method()))
}

func (c *cli) setup(cmd *cobra.Command) (*config.Config, *panels.Registry, error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, panels.NewRegistry(newSimulator(cfg), cfg.SampleCount), nil
}

func (c *cli) runTUI(cmd *cobra.Command, args []string) error {
	cfg, reg, err := c.setup(cmd)
	if err != nil {
		return err
	}

	if os.Getenv(debugEnv) != "" {
		f, err := tea.LogToFile("cosmosim-debug.log", "cosmosim")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	inputs, err := cfg.Inputs(reg)
	if err != nil {
		return err
	}
	m := tui.New(reg, tui.WithTheme(viz.GetTheme(cfg.Theme)), tui.WithInputs(inputs))
	return tui.Run(m)
}

func (c *cli) listPanels(cmd *cobra.Command, args []string) error {
	_, reg, err := c.setup(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCONTROLS")
	for _, p := range reg.All() {
		var controls []string
		for _, ctl := range p.Controls() {
			if ctl.Kind == panels.Select {
				controls = append(controls, fmt.Sprintf("%s{%s}", ctl.Name, strings.Join(ctl.Options, "|")))
			} else {
				controls = append(controls, fmt.Sprintf("%s[%s..%s]", ctl.Name, ctl.Format(ctl.Min), ctl.Format(ctl.Max)))
			}
		}
		if len(controls) == 0 {
			controls = []string{"-"}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID(), p.Title(), strings.Join(controls, " "))
	}
	return w.Flush()
}

// renderPanel looks up the panel and renders it with resolved controls.
func (c *cli) renderPanel(cmd *cobra.Command, name string) (*config.Config, *panels.View, error) {
	cfg, reg, err := c.setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := reg.Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	in, err := cfg.PanelInput(p, c.preset, changedControls(cmd.Flags()))
	if err != nil {
		return nil, nil, err
	}
	v, err := p.Render(in)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func (c *cli) showPanel(cmd *cobra.Command, args []string) error {
	name := "home"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, v, err := c.renderPanel(cmd, name)
	if err != nil {
		return err
	}
	styles := viz.NewStyles(viz.GetTheme(cfg.Theme))
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderView(v, 80, styles))
	return nil
}

func (c *cli) simulate(cmd *cobra.Command, args []string) error {
	kind, err := sim.ParseKind(args[0])
	if err != nil {
		return err
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	s := newSimulator(cfg)

	req := sim.NewRequest(kind, c.initial, c.horizon)
	req.SampleCount = cfg.SampleCount
	res, err := s.Simulate(req)
	if err != nil {
		return err
	}

	chart := &panels.Chart{
		Title:  kind.String(),
		XLabel: "Time",
		YLabel: "Value",
		Series: kind.String(),
		Result: res,
	}
	out := cmd.OutOrStdout()

	switch c.format {
	case "csv":
		return export.WriteCSV(out, chart)
	case "json":
		return export.WriteJSON(out, &panels.View{Header: kind.String(), Chart: chart})
	case "table":
	default:
		return fmt.Errorf("unknown format: %s (available: table, csv, json)", c.format)
	}

	fmt.Fprintf(out, "%s: initial=%g horizon=%g samples=%d method=%s\n\n", kind, c.initial, c.horizon, req.SampleCount, s.Method())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "TIME\tVALUE\t")
	for i := range res.Times {
		fmt.Fprintf(w, "%.6f\t%.6f\t\n", res.Times[i], res.Values[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.RenderMetrics(res.Metrics, viz.NewStyles(viz.GetTheme(cfg.Theme))))
	return nil
}

func (c *cli) sweep(cmd *cobra.Command, args []string) error {
	if c.steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", sim.ErrInvalidRequest, c.steps)
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	s := newSimulator(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := sim.NewRequest(sim.GrowthODE, 0, c.horizon)
	base.SampleCount = cfg.SampleCount
	masses := dynamo.Grid(c.from, c.to, c.steps)

	start := time.Now()
	results, err := s.Sweep(ctx, base, masses)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "sweeping %d initial masses over t=[0, %g] (method=%s)\n\n", len(masses), c.horizon, s.Method())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INITIAL\tFINAL\tGROWTH\tDOUBLING")
	finals := make([]float64, len(results))
	for i, res := range results {
		_, final := res.Last()
		finals[i] = final
		doubling := "-"
		if dt := res.Metrics["doubling_time"]; dt > 0 {
			doubling = fmt.Sprintf("%.2f", dt)
		}
		fmt.Fprintf(w, "%.2f\t%.4f\t%.4f\t%s\n", masses[i], final, res.Metrics["growth_factor"], doubling)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nfinal %s  (%d runs in %s)\n", viz.Sparkline(finals, len(finals)), len(results), elapsed.Round(time.Microsecond))
	return nil
}

func (c *cli) compare(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	req := sim.NewRequest(sim.GrowthODE, c.initial, c.horizon)
	req.SampleCount = cfg.SampleCount
	if err := req.Validate(); err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = sim.IntegratorNames()
	}

	var sys dynamo.System = physics.NewBlackHole()
	ref, ok := sys.(dynamo.Analytic)
	if !ok {
		return fmt.Errorf("%w: %T", sim.ErrNoClosedForm, sys)
	}
	x0 := dynamo.State{c.initial}
	times := dynamo.Grid(0, c.horizon, req.SampleCount)
	exact := sim.Solve(ref, x0, times)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators for growth (initial=%g, horizon=%g, samples=%d)\n\n", c.initial, c.horizon, req.SampleCount)
	fmt.Fprintf(out, "%-12s  %-14s  %-12s  %-10s\n", "integrator", "final", "max_rel_err", "time_ms")
	fmt.Fprintln(out, strings.Repeat("-", 54))

	for _, name := range names {
		integ, err := sim.NewIntegrator(name)
		if err != nil {
			fmt.Fprintf(out, "%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		values, err := sim.Integrate(sys, integ, x0, times, sim.DefaultSubsteps)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(out, "%-12s  error: %v\n", name, err)
			continue
		}

		worst := 0.0
		for i, want := range exact {
			if want != 0 {
				worst = math.Max(worst, math.Abs(values[i]-want)/math.Abs(want))
			}
		}
		fmt.Fprintf(out, "%-12s  %14.6f  %12.2e  %10.3f\n", name, values[len(values)-1], worst, float64(elapsed.Microseconds())/1000)
	}

	fmt.Fprintf(out, "%-12s  %14.6f  %12s\n", "analytic", ref.Solve(x0, c.horizon)[0], "-")
	return nil
}

func (c *cli) exportPanel(cmd *cobra.Command, args []string) error {
	var (
		format export.Format
		err    error
	)
	if c.format != "" {
		format, err = export.ParseFormat(c.format)
	} else {
		format, err = export.FormatFromPath(c.output)
	}
	if err != nil {
		return err
	}

	_, v, err := c.renderPanel(cmd, args[0])
	if err != nil {
		return err
	}
	if err := export.WriteFile(c.output, format, v); err != nil {
		if errors.Is(err, export.ErrNoChart) {
			return fmt.Errorf("%w: %s exports as json, pdf or html", err, args[0])
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", c.output, format)
	return nil
}

func (c *cli) configInit(cmd *cobra.Command, args []string) error {
	path := "cosmosim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !c.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func (c *cli) listPresets(cmd *cobra.Command, args []string) error {
	_, reg, err := c.setup(cmd)
	if err != nil {
		return err
	}
	ids := reg.IDs()
	if len(args) > 0 {
		p, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		ids = []string{p.ID()}
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		presets := config.ListPresets(id)
		if len(presets) == 0 {
			if len(args) > 0 {
				fmt.Fprintf(out, "no presets for panel: %s\n", id)
			}
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", id)
		for _, name := range presets {
			values := config.GetPreset(id, name)
			fmt.Fprintf(out, "  %-14s %s\n", name, formatValues(values))
		}
	}
	return nil
}

func formatValues(values map[string]string) string {
	parts := make([]string, 0, len(values))
	for _, name := range controlFlags {
		if v, ok := values[name]; ok {
			parts = append(parts, name+"="+v)
		}
	}
	return strings.Join(parts, " ")
}
