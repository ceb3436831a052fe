package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/analysis"
	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/epi"
	"github.com/san-kum/episim/internal/experiment"
	"github.com/san-kum/episim/internal/export"
	"github.com/san-kum/episim/internal/sim"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/viz"
)

var (
	dataDir    string
	integrator string
	configFile string
	preset     string

	beta  float64
	gamma float64
	sigma float64
	mu    float64

	s0   float64
	e0   float64
	i0   float64
	rec0 float64
	d0   float64

	tStart    float64
	tEnd      float64
	interval  float64
	tolerance float64

	// Phase plot axes
	xAxis int
	yAxis int

	// Sweep range
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	// Render output path
	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "episim",
		Short: "deterministic compartmental epidemic simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase plane plot (S vs I by default)",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "compartment index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "compartment index for y-axis")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render run curves to an image file",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "epidemic.png", "output image path (.png, .svg, .pdf)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "epidemic analysis: growth rate, peak, thresholds",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one parameter across a range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "beta", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.2, "sweep start value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.8, "sweep end value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of sweep values")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, renderCmd, analyzeCmd, liveCmd, compareCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate per day")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate per day")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "incubation rate per day (seir)")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "infection fatality rate per day (sird)")
	cmd.Flags().Float64Var(&s0, "s0", 1.0, "initial susceptible fraction")
	cmd.Flags().Float64Var(&e0, "e0", 0.0, "initial exposed fraction (seir)")
	cmd.Flags().Float64Var(&i0, "i0", config.DefaultI0, "initial infected fraction")
	cmd.Flags().Float64Var(&rec0, "r0", 0.0, "initial recovered fraction")
	cmd.Flags().Float64Var(&d0, "d0", 0.0, "initial dead fraction (sird)")
	cmd.Flags().Float64Var(&tStart, "t-start", config.DefaultTStart, "start time (days)")
	cmd.Flags().Float64Var(&tEnd, "t-end", config.DefaultTEnd, "end time (days)")
	cmd.Flags().Float64Var(&interval, "interval", config.DefaultInterval, "output interval (days)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-8, "adaptive solver tolerance")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
}

func scenarioParams() map[string]float64 {
	return map[string]float64{"beta": beta, "gamma": gamma, "sigma": sigma, "mu": mu}
}

func initStateFor(model string) []float64 {
	switch model {
	case "seir":
		return []float64{s0, e0, i0, rec0}
	case "sis":
		return []float64{s0, i0}
	case "sird":
		return []float64{s0, i0, rec0, d0}
	default:
		return []float64{s0, i0, rec0}
	}
}

func applyConfig(cmd *cobra.Command, model string) error {
	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		applyConfigValues(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfigValues(cmd, cfg)
	}
	return nil
}

// applyConfigValues fills values from cfg for every flag the user did not
// set explicitly; CLI flags win.
func applyConfigValues(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("beta") {
		beta = cfg.Params.Beta
	}
	if !cmd.Flags().Changed("gamma") {
		gamma = cfg.Params.Gamma
	}
	if !cmd.Flags().Changed("sigma") && cfg.Params.Sigma != 0 {
		sigma = cfg.Params.Sigma
	}
	if !cmd.Flags().Changed("mu") && cfg.Params.Mu != 0 {
		mu = cfg.Params.Mu
	}
	if !cmd.Flags().Changed("s0") {
		s0 = cfg.InitState.S
	}
	if !cmd.Flags().Changed("e0") {
		e0 = cfg.InitState.E
	}
	if !cmd.Flags().Changed("i0") {
		i0 = cfg.InitState.I
	}
	if !cmd.Flags().Changed("r0") {
		rec0 = cfg.InitState.R
	}
	if !cmd.Flags().Changed("d0") {
		d0 = cfg.InitState.D
	}
	if !cmd.Flags().Changed("t-start") {
		tStart = cfg.TStart
	}
	if !cmd.Flags().Changed("t-end") {
		tEnd = cfg.TEnd
	}
	if !cmd.Flags().Changed("interval") {
		interval = cfg.Interval
	}
	if !cmd.Flags().Changed("tolerance") && cfg.Tolerance != 0 {
		tolerance = cfg.Tolerance
	}
	if !cmd.Flags().Changed("integrator") && cfg.Integrator != "" {
		integrator = cfg.Integrator
	}
}

// reproducer is the optional R0 surface models expose.
type reproducer interface {
	R0() float64
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	if err := applyConfig(cmd, model); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	sys, err := registry.GetModel(model, scenarioParams())
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	cfg := experiment.Config{
		Model:      model,
		Integrator: integrator,
		InitState:  initStateFor(model),
		TStart:     tStart,
		TEnd:       tEnd,
		Interval:   interval,
		Tolerance:  tolerance,
		Params:     scenarioParams(),
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(sys, integ, registry.DefaultMetrics(model)); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", model)
	start := time.Now()

	traj, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Model:      model,
		Integrator: integrator,
		Params:     scenarioParams(),
		Labels:     sys.Labels(),
		TStart:     tStart,
		TEnd:       tEnd,
		Interval:   interval,
		Metrics:    exp.Metrics(),
	}, traj)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", traj.Len())
	if r, ok := sys.(reproducer); ok {
		fmt.Printf("R0: %.3f\n", r.R0())
	}
	fmt.Println("\nmetrics:")
	for name, val := range exp.Metrics() {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tHORIZON\tINTERVAL\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fd\t%.2fd\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TEnd-run.TStart,
			run.Interval,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", traj.Len())

	renderer := viz.NewASCIIRenderer(fmt.Sprintf("%s compartments vs time", meta.Model))
	return renderer.Render(traj, meta.Labels)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(traj.States[0]) <= xAxis || len(traj.States[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	xLabel, yLabel := fmt.Sprintf("x%d", xAxis), fmt.Sprintf("x%d", yAxis)
	if xAxis < len(meta.Labels) {
		xLabel = meta.Labels[xAxis]
	}
	if yAxis < len(meta.Labels) {
		yLabel = meta.Labels[yAxis]
	}

	fmt.Printf("phase plane plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xLabel, yLabel)

	xData := traj.Series(xAxis)
	yData := traj.Series(yAxis)

	printScatter(xData, yData)
	return nil
}

// printScatter draws an ASCII scatter of the phase trajectory, marking
// progress through time with denser glyphs.
func printScatter(xData, yData []float64) {
	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		xMin = math.Min(xMin, xData[i])
		xMax = math.Max(xMax, xData[i])
		yMin = math.Min(yMin, yData[i])
		yMax = math.Max(yMax, yData[i])
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width, height := 70, 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2g ┌%s┐\n", yMax, strings.Repeat("─", width))
	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2g │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}
	fmt.Printf("  %.2g └%s┘\n", yMin, strings.Repeat("─", width))
	fmt.Printf("       %.2g%s%.2g\n", xMin, strings.Repeat(" ", width-12), xMax)
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.ExportCSV(os.Stdout, meta.Labels, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(*meta, traj)
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	renderer := export.NewFileRenderer(outPath, fmt.Sprintf("%s epidemic curves", meta.Model))
	if err := renderer.Render(traj, meta.Labels); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data")
	}

	infectedIdx := 1
	for i, l := range meta.Labels {
		if l == "I" {
			infectedIdx = i
		}
	}

	fmt.Printf("epidemic analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	peakT, peakV := analysis.FindPeak(traj, infectedIdx)
	fmt.Printf("peak infected: %.6g at t=%.1f\n", peakV, peakT)

	window := traj.Len() / 10
	if window < 5 {
		window = traj.Len()
	}
	if r, err := analysis.GrowthRate(traj, infectedIdx, window); err == nil {
		fmt.Printf("early growth rate: %.4f /day", r)
		if r > 0 {
			fmt.Printf(" (doubling time %.1f days)", math.Ln2/r)
		}
		fmt.Println()
	}

	if g, ok := meta.Params["gamma"]; ok && g > 0 {
		r0 := meta.Params["beta"] / g
		fmt.Printf("R0: %.3f\n", r0)
		fmt.Printf("herd immunity threshold: %.1f%%\n", 100*analysis.HerdImmunityThreshold(r0))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()

	sys, err := registry.GetModel(model, scenarioParams())
	if err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, integ, initStateFor(model), interval/4, model)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	names := args[1:]

	registry := experiment.NewRegistry()

	grid, err := sim.Grid(tStart, tEnd, interval)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s (horizon %.0fd, interval %.2fd)\n\n", model, tEnd-tStart, interval)
	fmt.Printf("%-10s  %-12s  %-14s  %-10s\n", "integrator", "final_I", "conservation", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	for _, name := range names {
		sys, err := registry.GetModel(model, scenarioParams())
		if err != nil {
			return err
		}
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		solver := sim.New(sys, integ)
		for _, m := range registry.DefaultMetrics(model) {
			solver.AddMetric(m)
		}

		opts := sim.DefaultOptions()
		opts.Tolerance = tolerance
		// Fixed-step integrators take one internal step per output point.
		if name != "rk45" {
			opts.InitialStep = interval
		}

		start := time.Now()
		traj, err := solver.Solve(context.Background(), initStateFor(model), grid, opts)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		infectedIdx := 1
		if model == "seir" {
			infectedIdx = 2
		}
		finalI := traj.Final()[infectedIdx]
		drift := solver.Metrics()["conservation_drift"]

		fmt.Printf("%-10s  %12.6g  %14.2e  %10.2f\n", name, finalI, drift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	model := args[0]

	if sweepSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps")
	}

	registry := experiment.NewRegistry()

	grid, err := sim.Grid(tStart, tEnd, interval)
	if err != nil {
		return err
	}

	values := make([]float64, sweepSteps)
	for i := range values {
		values[i] = sweepFrom + float64(i)*(sweepTo-sweepFrom)/float64(sweepSteps-1)
	}

	build := func(v float64) (epi.System, epi.State, error) {
		params := scenarioParams()
		params[sweepParam] = v
		sys, err := registry.GetModel(model, params)
		if err != nil {
			return nil, nil, err
		}
		return sys, initStateFor(model), nil
	}

	opts := sim.DefaultOptions()
	opts.Tolerance = tolerance

	start := time.Now()
	results, err := sim.Sweep(context.Background(), values, build, grid, opts, func() epi.Integrator {
		integ, _ := registry.GetIntegrator("rk45")
		return integ
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	infectedIdx := 1
	if model == "seir" {
		infectedIdx = 2
	}

	fmt.Printf("sweep of %s over %s (%d runs in %v)\n\n", model, sweepParam, len(values), elapsed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK_I\tPEAK_T\tFINAL_S\n", strings.ToUpper(sweepParam))

	for i, traj := range results {
		peakT, peakV := analysis.FindPeak(traj, infectedIdx)
		fmt.Fprintf(w, "%.4f\t%.6g\t%.1f\t%.6g\n", values[i], peakV, peakT, traj.Final()[0])
	}

	return w.Flush()
}
