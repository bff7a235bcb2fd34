package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/MoniFarsang/deer/internal/analysis"
	"github.com/MoniFarsang/deer/internal/config"
	"github.com/MoniFarsang/deer/internal/deer"
	"github.com/MoniFarsang/deer/internal/export"
	"github.com/MoniFarsang/deer/internal/idae"
	"github.com/MoniFarsang/deer/internal/models"
	"github.com/MoniFarsang/deer/internal/num"
	"github.com/MoniFarsang/deer/internal/state"
	"github.com/MoniFarsang/deer/internal/tui"
	"github.com/MoniFarsang/deer/internal/viz"
)

var (
	configFile string
	preset     string
	method     string
	precision  string
	steps      int
	t0         float64
	t1         float64
	y0Flag     []float64
	paramFlags []string
	maxIter    int
	memEff     bool
	verbose    bool
	diagnose   bool
	output     string
	// Phase plot axes
	xAxis int
	yAxis int
	// Spectrum column
	column int
	// Lyapunov estimation knobs
	lyapWindows int
	lyapSteps   int
	lyapDt      float64
	lyapSep     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deer",
		Short: "parallel-in-time solver for implicit time recurrences",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	solveCmd := &cobra.Command{
		Use:   "solve [model]",
		Short: "solve a model over a time grid",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveModel,
	}
	addRunFlags(solveCmd)
	solveCmd.Flags().BoolVar(&verbose, "verbose", false, "print each fixed-point iteration")
	solveCmd.Flags().BoolVar(&diagnose, "diagnose", false, "report contraction rate and spectral radii")
	solveCmd.Flags().StringVar(&output, "output", "", "write trajectory to file (.csv or .json)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "solve with a live convergence view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveModel,
	}
	addRunFlags(liveCmd)

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list available models",
		RunE:  listModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run.json]",
		Short: "chart a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run.json]",
		Short: "phase space plot of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run.json]",
		Short: "frequency analysis of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&column, "column", 0, "state column to analyze")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "solve with both methods and compare",
		Args:  cobra.ExactArgs(1),
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [model]",
		Short: "estimate the largest lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  estimateLyapunov,
	}
	lyapunovCmd.Flags().IntVar(&lyapWindows, "windows", 40, "renormalization windows")
	lyapunovCmd.Flags().IntVar(&lyapSteps, "steps", 50, "solver steps per window")
	lyapunovCmd.Flags().Float64Var(&lyapDt, "dt", 0.01, "step size")
	lyapunovCmd.Flags().Float64Var(&lyapSep, "sep", 1e-8, "initial trajectory separation")
	lyapunovCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "model parameter override (name=value)")

	rootCmd.AddCommand(solveCmd, liveCmd, modelsCmd, presetsCmd, plotCmd, phaseCmd, analyzeCmd, compareCmd, lyapunovCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRunFlags attaches the flags shared by every command that performs a
// solve. Flags override config files, config files override presets.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "solve method (deer or newton)")
	cmd.Flags().StringVar(&precision, "precision", config.DefaultPrecise, "working precision (double or single)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "time grid steps")
	cmd.Flags().Float64Var(&t0, "t0", 0, "window start")
	cmd.Flags().Float64Var(&t1, "t1", 0, "window end (0 uses the model span)")
	cmd.Flags().Float64SliceVar(&y0Flag, "y0", nil, "initial state (comma separated)")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "model parameter override (name=value)")
	cmd.Flags().IntVar(&maxIter, "max-iter", 0, "iteration budget (0 uses the method default)")
	cmd.Flags().BoolVar(&memEff, "memory-efficient", false, "sequential recurrence solve")
}

// loadRunConfig assembles the effective configuration for a solve command:
// defaults, then preset, then config file, then explicitly set flags.
func loadRunConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("preset needs a model argument")
		}
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(args[0]))
		}
		cfg = clonePreset(p)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) == 1 {
		cfg.Model = args[0]
	}

	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = precision
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if cmd.Flags().Changed("t1") {
		cfg.T1 = t1
	}
	if cmd.Flags().Changed("y0") {
		cfg.Y0 = y0Flag
	}
	if cmd.Flags().Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if cmd.Flags().Changed("memory-efficient") {
		cfg.MemoryEfficient = memEff
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}

	var err error
	cfg.Params, err = parseParams(paramFlags, cfg.Params)
	if err != nil {
		return nil, err
	}

	if cfg.Method == "" {
		cfg.Method = config.DefaultMethod
	}
	if cfg.Precision == "" {
		cfg.Precision = config.DefaultPrecise
	}
	return cfg, nil
}

func clonePreset(p *config.Config) *config.Config {
	c := *p
	if p.Y0 != nil {
		c.Y0 = append([]float64(nil), p.Y0...)
	}
	if p.Params != nil {
		c.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			c.Params[k] = v
		}
	}
	return &c
}

func parseParams(specs []string, into map[string]float64) (map[string]float64, error) {
	for _, s := range specs {
		name, val, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("bad param %q, want name=value", s)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("bad param %q: %w", s, err)
		}
		if into == nil {
			into = make(map[string]float64)
		}
		into[name] = f
	}
	return into, nil
}

// resolve turns a configuration into concrete run inputs: catalog entry,
// initial state, parameter vector, and time grid.
func resolve(cfg *config.Config) (models.Info, []float64, []float64, []float64, error) {
	info, err := models.Describe(cfg.Model)
	if err != nil {
		return models.Info{}, nil, nil, nil, err
	}
	y0 := cfg.Y0
	if len(y0) == 0 {
		y0 = append([]float64(nil), info.Y0...)
	}
	if len(y0) != info.Dim {
		return models.Info{}, nil, nil, nil, fmt.Errorf("y0 has %d entries, %s needs %d", len(y0), info.Name, info.Dim)
	}
	params := cfg.ParamVector(info.Params, info.Defaults)
	return info, y0, params, cfg.Grid(info.Span), nil
}

// outcome is a solve result widened to float64 for display and export.
// jac is the first linearization bundle of a double-precision DEER run,
// nil otherwise.
type outcome struct {
	y         *state.Seq[float64]
	jac       *state.Blocks[float64]
	iters     int
	delta     float64
	converged bool
}

func buildMethod[T num.Float](cfg *config.Config, obs deer.Observer) (idae.Method[T], error) {
	switch cfg.Method {
	case "deer":
		return idae.DEER[T]{MaxIter: cfg.MaxIter, MemoryEfficient: cfg.MemoryEfficient, Observer: obs}, nil
	case "newton":
		return idae.Newton[T]{MaxIter: cfg.MaxIter}, nil
	}
	return nil, fmt.Errorf("unknown method: %s (deer or newton)", cfg.Method)
}

func runDouble(cfg *config.Config, y0, params, tpts []float64, obs deer.Observer) (outcome, error) {
	r, err := models.Build[float64](cfg.Model)
	if err != nil {
		return outcome{}, err
	}
	m, err := buildMethod[float64](cfg, obs)
	if err != nil {
		return outcome{}, err
	}
	rep, err := idae.Run(r, y0, nil, params, tpts, m)
	if err != nil {
		return outcome{}, err
	}
	out := outcome{y: rep.Y, iters: rep.Iters, delta: rep.Delta, converged: rep.Converged}
	if len(rep.Jac) > 0 {
		out.jac = rep.Jac[0]
	}
	return out, nil
}

func runSingle(cfg *config.Config, y0, params, tpts []float64, obs deer.Observer) (outcome, error) {
	r, err := models.Build[float32](cfg.Model)
	if err != nil {
		return outcome{}, err
	}
	m, err := buildMethod[float32](cfg, obs)
	if err != nil {
		return outcome{}, err
	}
	rep, err := idae.Run(r, narrow(y0), nil, narrow(params), narrow(tpts), m)
	if err != nil {
		return outcome{}, err
	}
	return outcome{y: widen(rep.Y), iters: rep.Iters, delta: float64(rep.Delta), converged: rep.Converged}, nil
}

func runConfigured(cfg *config.Config, y0, params, tpts []float64, obs deer.Observer) (outcome, error) {
	switch cfg.Precision {
	case "double":
		return runDouble(cfg, y0, params, tpts, obs)
	case "single":
		return runSingle(cfg, y0, params, tpts, obs)
	}
	return outcome{}, fmt.Errorf("unknown precision: %s (double or single)", cfg.Precision)
}

func narrow(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}

func widen(s *state.Seq[float32]) *state.Seq[float64] {
	out := state.NewSeq[float64](s.Len(), s.Dim)
	for i, x := range s.Data {
		out.Data[i] = float64(x)
	}
	return out
}

// iterPrinter echoes each fixed-point iteration to stdout.
type iterPrinter struct{}

func (iterPrinter) OnIteration(iter int, delta float64) {
	fmt.Printf("  iter %4d  delta %.3e\n", iter, delta)
}

type fanout []deer.Observer

func (f fanout) OnIteration(iter int, delta float64) {
	for _, o := range f {
		o.OnIteration(iter, delta)
	}
}

func solveModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}
	info, y0, params, tpts, err := resolve(cfg)
	if err != nil {
		return err
	}

	var watchers fanout
	var hist *analysis.History
	if verbose {
		watchers = append(watchers, iterPrinter{})
	}
	if diagnose {
		if cfg.Precision != "double" {
			return fmt.Errorf("diagnostics need double precision")
		}
		hist = &analysis.History{}
		watchers = append(watchers, hist)
	}
	var obs deer.Observer
	if len(watchers) > 0 {
		obs = watchers
	}

	fmt.Printf("solving %s (%s, %s)...\n", cfg.Model, cfg.Method, cfg.Precision)
	start := time.Now()
	out, err := runConfigured(cfg, y0, params, tpts, obs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", out.y.Len())
	fmt.Printf("iterations: %d\n", out.iters)
	fmt.Printf("delta: %.3e\n", out.delta)
	fmt.Printf("status: %s\n", viz.Status(out.converged))

	if diagnose {
		if err := printDiagnostics(hist, out); err != nil {
			return err
		}
	}

	if cfg.Output != "" {
		return saveRun(cfg, info, params, tpts, out)
	}

	fmt.Println()
	fmt.Println(viz.SolutionChart(out.y, nil, viz.DefaultWidth, viz.DefaultHeight))
	return nil
}

func printDiagnostics(hist *analysis.History, out outcome) error {
	fmt.Println("\ndiagnostics:")
	if rate := analysis.ContractionRate(hist.Deltas); rate > 0 {
		fmt.Printf("  contraction rate: %.4f\n", rate)
	}
	if out.jac == nil {
		fmt.Println("  no linearization bundle (newton runs carry none)")
		return nil
	}
	radii, err := analysis.SpectralRadii(out.jac)
	if err != nil {
		return err
	}
	max, sum := 0.0, 0.0
	for _, r := range radii {
		if r > max {
			max = r
		}
		sum += r
	}
	fmt.Printf("  max spectral radius: %.4f\n", max)
	fmt.Printf("  mean spectral radius: %.4f\n", sum/float64(len(radii)))
	return nil
}

func saveRun(cfg *config.Config, info models.Info, params, tpts []float64, out outcome) error {
	states := make([][]float64, out.y.Len())
	for i := range states {
		states[i] = append([]float64(nil), out.y.Row(i)...)
	}

	switch ext := filepath.Ext(cfg.Output); ext {
	case ".csv":
		if err := export.SaveCSV(cfg.Output, tpts, states); err != nil {
			return err
		}
	case ".json":
		pmap := make(map[string]float64, len(info.Params))
		for i, name := range info.Params {
			pmap[name] = params[i]
		}
		run := export.Run{
			Model:     cfg.Model,
			Method:    cfg.Method,
			Precision: cfg.Precision,
			Samples:   out.y.Len(),
			Iters:     out.iters,
			Delta:     out.delta,
			Converged: out.converged,
			Params:    pmap,
			Times:     tpts,
			States:    states,
		}
		if err := export.SaveJSON(cfg.Output, run); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q (want .csv or .json)", cfg.Output)
	}
	fmt.Printf("wrote %s\n", cfg.Output)
	return nil
}

func liveModel(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Method != "deer" {
		return fmt.Errorf("the live view follows the deer iteration; method is %s", cfg.Method)
	}
	_, y0, params, tpts, err := resolve(cfg)
	if err != nil {
		return err
	}

	solver := func(obs deer.Observer) (tui.Outcome, error) {
		out, err := runConfigured(cfg, y0, params, tpts, obs)
		if err != nil {
			return tui.Outcome{}, err
		}
		return tui.Outcome{Y: out.y, Iters: out.iters, Delta: out.delta, Converged: out.converged}, nil
	}
	return tui.Run(cfg.Model, nil, solver)
}

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIM\tPARAMS\tSPAN\tSUMMARY")
	for _, name := range models.Names() {
		info, err := models.Describe(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t[%g, %g]\t%s\n",
			info.Name,
			info.Dim,
			strings.Join(info.Params, ","),
			info.Span[0], info.Span[1],
			info.Summary,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	run, err := export.LoadJSON(args[0])
	if err != nil {
		return err
	}
	if len(run.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("model: %s (%s, %s)\n", run.Model, run.Method, run.Precision)
	fmt.Printf("samples: %d\n", len(run.States))
	fmt.Printf("status: %s\n\n", viz.Status(run.Converged))

	fmt.Println(viz.SolutionChart(toSeq(run.States), nil, viz.DefaultWidth, viz.DefaultHeight))
	return nil
}

func toSeq(states [][]float64) *state.Seq[float64] {
	y := state.NewSeq[float64](len(states), len(states[0]))
	for i, row := range states {
		copy(y.Row(i), row)
	}
	return y
}

func phasePlot(cmd *cobra.Command, args []string) error {
	run, err := export.LoadJSON(args[0])
	if err != nil {
		return err
	}
	if len(run.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	pts, err := analysis.PhasePortrait(toSeq(run.States), xAxis, yAxis)
	if err != nil {
		return err
	}

	fmt.Printf("phase space plot: %s\n", run.Model)
	fmt.Printf("x-axis: y%d, y-axis: y%d\n\n", xAxis, yAxis)

	xMin, xMax := pts[0].X, pts[0].X
	yMin, yMax := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.X < xMin {
			xMin = p.X
		}
		if p.X > xMax {
			xMax = p.X
		}
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
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

	for i, p := range pts {
		px := int(float64(width-1) * (p.X - xMin) / xRange)
		py := int(float64(height-1) * (p.Y - yMin) / yRange)
		py = height - 1 - py
		if px < 0 || px >= width || py < 0 || py >= height {
			continue
		}
		switch {
		case i < len(pts)/3:
			canvas[py][px] = '.'
		case i < 2*len(pts)/3:
			canvas[py][px] = 'o'
		default:
			canvas[py][px] = '*'
		}
	}

	fmt.Printf("  %8.3f +%s+\n", yMax, strings.Repeat("-", width))
	for _, row := range canvas {
		fmt.Printf("           |%s|\n", string(row))
	}
	fmt.Printf("  %8.3f +%s+\n", yMin, strings.Repeat("-", width))
	fmt.Printf("            %-10.3f%s%10.3f\n", xMin, strings.Repeat(" ", width-20), xMax)
	fmt.Println("\nlegend: . = early, o = middle, * = late")
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	run, err := export.LoadJSON(args[0])
	if err != nil {
		return err
	}
	if len(run.States) == 0 || len(run.Times) < 2 {
		return fmt.Errorf("no data")
	}
	if column < 0 || column >= len(run.States[0]) {
		return fmt.Errorf("column %d out of range for dim %d", column, len(run.States[0]))
	}

	fmt.Printf("frequency analysis: %s\n\n", run.Model)

	series := make([]float64, len(run.States))
	for i := range run.States {
		series[i] = run.States[i][column]
	}
	dt := run.Times[1] - run.Times[0]

	ps := analysis.PowerSpectrum(series)
	if len(ps) >= 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (y%d)", column)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(series, dt)
	fmt.Printf("dominant frequency: %.4f cycles per time unit\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1/freq)
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, args)
	if err != nil {
		return err
	}
	_, y0, params, tpts, err := resolve(cfg)
	if err != nil {
		return err
	}
	r, err := models.Build[float64](cfg.Model)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods for %s (%d steps)\n\n", cfg.Model, len(tpts)-1)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tITERS\tDELTA\tFINAL_Y0\tTIME")

	results := make(map[string]*state.Seq[float64])
	for _, m := range []struct {
		name string
		cfg  idae.Method[float64]
	}{
		{"deer", idae.DEER[float64]{MaxIter: cfg.MaxIter, MemoryEfficient: cfg.MemoryEfficient}},
		{"newton", idae.Newton[float64]{MaxIter: cfg.MaxIter}},
	} {
		start := time.Now()
		rep, err := idae.Run(r, y0, nil, params, tpts, m.cfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", m.name, err)
			continue
		}
		results[m.name] = rep.Y
		final := rep.Y.Row(rep.Y.Len() - 1)[0]
		fmt.Fprintf(w, "%s\t%d\t%.2e\t%.6f\t%v\n",
			m.name, rep.Iters, rep.Delta, final, elapsed.Round(time.Microsecond))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if a, b := results["deer"], results["newton"]; a != nil && b != nil {
		fmt.Printf("\nmax disagreement: %.3e\n", a.MaxAbsDiff(b))
	}
	return nil
}

func estimateLyapunov(cmd *cobra.Command, args []string) error {
	info, err := models.Describe(args[0])
	if err != nil {
		return err
	}
	overrides, err := parseParams(paramFlags, nil)
	if err != nil {
		return err
	}
	params := append([]float64(nil), info.Defaults...)
	for i, name := range info.Params {
		if v, ok := overrides[name]; ok {
			params[i] = v
		}
	}
	r, err := models.Build[float64](args[0])
	if err != nil {
		return err
	}

	fmt.Printf("estimating largest lyapunov exponent for %s...\n", args[0])
	start := time.Now()
	lam, err := analysis.LyapunovExponent(r, info.Y0, params, lyapDt, lyapWindows, lyapSteps, lyapSep)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("largest lyapunov exponent: %.4f\n", lam)
	if lam > 0.01 {
		fmt.Println("nearby trajectories diverge exponentially: chaotic")
	} else {
		fmt.Println("no exponential divergence detected")
	}
	return nil
}
