package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dialmenu/internal/automation"
	"github.com/san-kum/dialmenu/internal/config"
	"github.com/san-kum/dialmenu/internal/export"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/inflate"
	"github.com/san-kum/dialmenu/internal/layout"
	"github.com/san-kum/dialmenu/internal/observability"
	"github.com/san-kum/dialmenu/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	items      int
	radius     float64
	solver     string
	integrator string
	seed       int64
	fps        int
	logFile    string
	logLevel   string
	// script
	csvOut   string
	plotItem int
	svgOut   string
	svgItem  int
	// sweep
	sweepSteps int
	sweepItem  int
	releaseX   float64
	releaseY   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "dialmenu",
		Short:        "radial dial menu with spring constraints",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&items, "items", config.DefaultItems, "number of items")
	pf.Float64Var(&radius, "radius", config.DefaultRadius, "layout radius")
	pf.StringVar(&solver, "solver", "spring", "constraint solver (rigid|spring)")
	pf.StringVar(&integrator, "integrator", "symplectic", "spring integrator")
	pf.Int64Var(&seed, "seed", 1, "colour seed")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "ticks per second")
	pf.StringVar(&logFile, "log-file", "", "rotating log file")
	pf.StringVar(&logLevel, "log-level", "info", "log level")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal dial",
		RunE:  runTUI,
	}

	slotsCmd := &cobra.Command{
		Use:   "slots",
		Short: "print the slot layout",
		RunE:  printSlots,
	}

	nearestCmd := &cobra.Command{
		Use:   "nearest [x] [y]",
		Short: "resolve the nearest slot to a point",
		Args:  cobra.ExactArgs(2),
		RunE:  printNearest,
	}

	inflateCmd := &cobra.Command{
		Use:   "inflate",
		Short: "plot the inflate scale against distance",
		RunE:  plotInflate,
	}

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a pointer scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().StringVar(&csvOut, "csv", "", "write recorded frames to CSV")
	scriptCmd.Flags().IntVar(&plotItem, "plot", -1, "plot an item's distance to its final position")
	scriptCmd.Flags().StringVar(&svgOut, "svg", "", "write the final frame as SVG")
	scriptCmd.Flags().IntVar(&svgItem, "svg-trace", -1, "write an item's trajectory as SVG next to --svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "measure snap settle time across a spring parameter",
		Args:  cobra.ExactArgs(3),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&sweepItem, "item", 0, "item to drag")
	sweepCmd.Flags().Float64Var(&releaseX, "release-x", 50, "release point x")
	sweepCmd.Flags().Float64Var(&releaseY, "release-y", 50, "release point y")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s items=%-3d radius=%-5.0f solver=%s\n", name, cfg.Items, cfg.Radius, cfg.Solver)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, slotsCmd, nearestCmd, inflateCmd, scriptCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves config file, then preset, then defaults, and applies
// any flag the user actually set on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := baseConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return applyFlags(cmd, cfg)
}

// baseConfig returns nil when neither --config nor --preset was given.
func baseConfig() (*config.Config, error) {
	switch {
	case configFile != "":
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		return cfg, nil
	}
	return nil, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("items") {
		cfg.Items = items
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("solver") {
		cfg.Solver = solver
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("log-file") {
		cfg.Logger.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.Logger.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	observability.InitializeLogger(cfg.Logger)
	return cfg, observability.GetLogger(), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the UI; logs go to the file only
	observability.InitializeFileOnly(cfg.Logger)
	defer observability.Sync()

	return viz.Run(cfg, observability.GetLogger())
}

func printSlots(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer observability.Sync()

	l, err := layout.New(cfg.Items, geom.Pt(cfg.Center.X, cfg.Center.Y), cfg.Radius)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tANGLE\tX\tY")
	for i, s := range l.Slots {
		deg := geom.SlotAngle(i, l.Len()) * 180 / math.Pi
		fmt.Fprintf(w, "%d\t%.1f°\t%.3f\t%.3f\n", i, deg, s.X, s.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncenter (%.1f, %.1f)  radius %.1f  chord %.3f\n", l.Center.X, l.Center.Y, l.Radius, l.Chord())
	return nil
}

func printNearest(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer observability.Sync()

	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	slots, err := layout.ComputeSlots(cfg.Items, geom.Pt(cfg.Center.X, cfg.Center.Y), cfg.Radius)
	if err != nil {
		return err
	}
	p := geom.Pt(x, y)
	idx, err := layout.NearestSlotIndex(p, slots)
	if err != nil {
		return err
	}
	fmt.Printf("slot %d at (%.3f, %.3f), distance %.3f\n", idx, slots[idx].X, slots[idx].Y, geom.Distance(p, slots[idx]))
	return nil
}

func plotInflate(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer observability.Sync()

	rule := inflate.Rule{
		MinScale:  cfg.Inflate.MinScale,
		MaxScale:  cfg.Inflate.MaxScale,
		Threshold: cfg.Inflate.Threshold,
		Falloff:   cfg.Inflate.Falloff,
	}
	maxD := 2 * (cfg.Radius + cfg.Inflate.Threshold)
	data := make([]float64, 80)
	for i := range data {
		data[i] = rule.ScaleAt(maxD * float64(i) / float64(len(data)-1))
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("scale vs distance 0..%.0f (baseline %.3f)", maxD, rule.Baseline())),
	))
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	// --config and --preset replace the scenario's own choice
	cfg, err := baseConfig()
	if err != nil {
		return err
	}
	if cfg == nil {
		if cfg, err = scenario.ResolveConfig(); err != nil {
			return err
		}
	}
	if cfg, err = applyFlags(cmd, cfg); err != nil {
		return err
	}
	observability.InitializeLogger(cfg.Logger)
	defer observability.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := automation.RunScenario(ctx, scenario, cfg, observability.GetLogger())
	if err != nil {
		return err
	}

	fmt.Printf("scenario %q: %d frames, %d transitions, phase %s\n",
		scenario.Name, res.Recorder.Len(), len(res.Transitions), res.Final.Phase)
	for _, t := range res.Transitions {
		fmt.Printf("  item %d: %s -> %s (%s)\n", t.Item, t.From, t.To, t.Cause)
	}
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %.4f\n", name, res.Metrics[name])
	}

	if csvOut != "" {
		if err := res.Recorder.SaveCSV(csvOut); err != nil {
			return err
		}
		fmt.Printf("frames written to %s\n", csvOut)
	}

	if plotItem >= 0 {
		if plotItem >= len(res.Final.Items) {
			return fmt.Errorf("no item %d", plotItem)
		}
		chart, err := res.Recorder.PlotDistance(plotItem, res.Final.Items[plotItem].Position, 80, 10)
		if err != nil {
			return err
		}
		fmt.Println(chart)
	}

	if svgOut != "" {
		if err := writeSVG(res); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(res *automation.Result) error {
	slots, err := layout.ComputeSlots(res.Config.Items, geom.Pt(res.Config.Center.X, res.Config.Center.Y), res.Config.Radius)
	if err != nil {
		return err
	}
	svg, err := export.FrameSVG(res.Final, slots, 480, 480)
	if err != nil {
		return err
	}
	if err := export.Save(svgOut, svg); err != nil {
		return err
	}
	fmt.Printf("final frame written to %s\n", svgOut)

	if svgItem < 0 {
		return nil
	}
	traj, err := export.TrajectorySVG(res.Recorder.Frames(), svgItem, 480, 480, "")
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(svgOut, filepath.Ext(svgOut)) + fmt.Sprintf("-item%d.svg", svgItem)
	if err := export.Save(path, traj); err != nil {
		return err
	}
	fmt.Printf("item %d trajectory written to %s\n", svgItem, path)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer observability.Sync()

	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid max: %w", err)
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: args[0],
		ParamMin:  lo,
		ParamMax:  hi,
		NumSteps:  sweepSteps,
		Item:      sweepItem,
		Release:   geom.Pt(releaseX, releaseY),
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSLOT\tSETTLE\tREST\tSETTLED\tPEAK ENERGY\tOVERSHOOT\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%d\t%v\t%.2f\t%.3f\n", r.ParamValue, r.Slot, r.SettleTicks, r.RestTicks, r.Settled, r.PeakEnergy, r.Overshoot)
	}
	return w.Flush()
}
