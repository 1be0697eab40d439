package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ckopec-dev/Computational-Astronomy/internal/config"
	"github.com/ckopec-dev/Computational-Astronomy/internal/geom"
	"github.com/ckopec-dev/Computational-Astronomy/internal/metrics"
	"github.com/ckopec-dev/Computational-Astronomy/internal/quadtree"
	"github.com/ckopec-dev/Computational-Astronomy/internal/sim"
	"github.com/ckopec-dev/Computational-Astronomy/internal/snapshot"
	"github.com/ckopec-dev/Computational-Astronomy/internal/tui"
)

var (
	configFile string
	preset     string
	scenario   string
	bodies     int
	radius     float64
	worldSize  float64
	theta      float64
	g          float64
	dt         float64
	steps      int
	every      int
	seed       int64
	workers    int
	outDir     string
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "galaxsim",
		Short: "barnes-hut galaxy simulation",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and write snapshot frames",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run the same scenario across several seeds",
		RunE:  runEnsemble,
	}
	addConfigFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 4, "number of runs")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare tree evaluation against the pairwise sum",
		RunE:  runBench,
	}
	addConfigFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
	cmd.Flags().StringVar(&scenario, "scenario", "disk", "scenario (disk|collision|binary)")
	cmd.Flags().IntVar(&bodies, "bodies", config.DefaultBodies, "number of bodies")
	cmd.Flags().Float64Var(&radius, "radius", config.DefaultRadius, "disk radius")
	cmd.Flags().Float64Var(&worldSize, "world", config.DefaultWorldSize, "root region side length")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "acceptance threshold")
	cmd.Flags().Float64Var(&g, "g", config.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "total steps")
	cmd.Flags().IntVar(&every, "every", config.DefaultSnapshotEvery, "snapshot cadence (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&workers, "workers", 0, "force workers (0 = all cpus)")
	cmd.Flags().StringVar(&outDir, "out", "frames", "snapshot output directory")
}

// resolveConfig layers preset, config file and explicitly set flags over the
// defaults, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, err
		}
	}

	overrides := map[string]func(){
		"scenario": func() { cfg.Scenario = scenario },
		"bodies":   func() { cfg.Bodies = bodies },
		"radius":   func() { cfg.Radius = radius },
		"world":    func() { cfg.WorldSize = worldSize },
		"theta":    func() { cfg.Theta = theta },
		"g":        func() { cfg.G = g },
		"dt":       func() { cfg.Dt = dt },
		"steps":    func() { cfg.Steps = steps },
		"every":    func() { cfg.SnapshotEvery = every },
		"seed":     func() { cfg.Seed = seed },
		"workers":  func() { cfg.Workers = workers },
		"out":      func() { cfg.Snapshot.Dir = outDir },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func newStepper(cfg *config.Config) (*sim.Stepper, *metrics.EnergyDrift, error) {
	stepper := sim.NewStepper(cfg.Particles(cfg.Seed), cfg.SimConfig())

	drift := metrics.NewEnergyDrift(cfg.G)
	stepper.AddMetric(drift)
	stepper.AddMetric(metrics.NewMomentum())
	stepper.AddMetric(metrics.NewAngularMomentum())

	if cfg.SnapshotEvery > 0 {
		writer, err := snapshot.NewWriter(cfg.Snapshot.Dir, cfg.Snapshot.Width, cfg.Snapshot.Height, cfg.Snapshot.Scale)
		if err != nil {
			return nil, nil, err
		}
		stepper.AddObserver(writer)
	}

	return stepper, drift, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stepper, drift, err := newStepper(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("scenario=%s bodies=%d theta=%.2f dt=%.3f steps=%d seed=%d\n",
		cfg.Scenario, len(stepper.Particles()), cfg.Theta, cfg.Dt, cfg.Steps, cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result, err := stepper.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		fmt.Printf("interrupted after %d steps\n", result.StepsTaken)
	}

	fmt.Printf("ran %d steps in %s\n", result.StepsTaken, time.Since(start).Truncate(time.Millisecond))
	printMetrics(result)

	if history := drift.History(); len(history) > 1 {
		fmt.Println("\ntotal energy:")
		fmt.Println(asciigraph.Plot(history, asciigraph.Height(10), asciigraph.Width(60)))
	}

	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "snapshot: %v\n", err)
	}
	return nil
}

func printMetrics(result *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6g\n", name, value)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	stepper := sim.NewStepper(cfg.Particles(cfg.Seed), cfg.SimConfig())
	model := tui.NewModel(stepper, cfg.SimConfig(), cfg.Radius*2)

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// Ensemble runs attach metrics only; with no snapshot observers,
	// concurrent runs never contend for an output directory.
	ensemble := sim.NewEnsemble(cfg.SimConfig(), cfg.Particles, runs, cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := ensemble.Run(ctx, func() []sim.Metric {
		return []sim.Metric{metrics.NewEnergyDrift(cfg.G), metrics.NewAngularMomentum()}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "run\tseed\tsteps\tenergy_drift\tangular_momentum")
	for i, r := range results {
		if r == nil {
			continue
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%.3e\t%.6g\n",
			i, cfg.Seed+int64(i), r.StepsTaken, r.Metrics["energy_drift"], r.Metrics["angular_momentum"])
	}
	return w.Flush()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	particles := cfg.Particles(cfg.Seed)
	region := geom.NewRegion(geom.Vec2{}, cfg.WorldSize)

	// Both passes evaluate forces on identical positions: build plus tree
	// walk on one side, the exact pairwise sum on the other.
	start := time.Now()
	root := quadtree.Build(region, particles)
	for _, p := range particles {
		root.Force(p, cfg.Theta, cfg.G)
	}
	treeTime := time.Since(start)

	start = time.Now()
	for _, p := range particles {
		quadtree.BruteForce(particles, p, cfg.G)
	}
	bruteTime := time.Since(start)

	fmt.Printf("bodies=%d theta=%.2f\n", len(particles), cfg.Theta)
	fmt.Printf("tree:  %s per evaluation\n", treeTime)
	fmt.Printf("brute: %s per evaluation\n", bruteTime)
	if treeTime > 0 {
		fmt.Printf("speedup: %.1fx\n", float64(bruteTime)/float64(treeTime))
	}
	return nil
}
