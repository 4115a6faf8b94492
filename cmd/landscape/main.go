package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/landscape/internal/analysis"
	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/export"
	"github.com/san-kum/landscape/internal/geom"
	"github.com/san-kum/landscape/internal/metrics"
	"github.com/san-kum/landscape/internal/optim"
	"github.com/san-kum/landscape/internal/scenario"
	"github.com/san-kum/landscape/internal/sim"
	"github.com/san-kum/landscape/internal/storage"
	"github.com/san-kum/landscape/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	configFile     string
	preset         string
	seed           int64
	frames         int
	noise          float64
	stopOnCollapse bool
	// ensemble
	numRuns int
	workers int
	sweepParams []string
	// plot / analyze
	series    string
	window    int
	output    string
	themeName string
)

var seriesFuncs = map[string]func(sim.Frame) float64{
	"oscillation": sim.Oscillation,
	"recovery":    sim.Recovery,
	"distance":    sim.Distance,
	"speed":       sim.Speed,
}

// main registers the landscape commands. With no subcommand it opens the
// interactive scenario menu.
func main() {
	rootCmd := &cobra.Command{
		Use:   "landscape",
		Short: "resilience landscapes on a hex grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(time.Now().UnixNano())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".landscape", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addSessionFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "watch a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "run many seeds of a scenario in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addSessionFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 32, "number of runs")
	ensembleCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid search parameters for the fewest collapses",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSessionFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 16, "runs per grid point")
	sweepCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (one of "+strings.Join(optim.Params(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "series to plot (oscillation, recovery, distance, speed); all when empty")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "early warning analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "distance", "series to analyze")
	analyzeCmd.Flags().IntVar(&window, "window", 0, "rolling window in frames (0 = half the run)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with all frames as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "-", "output file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "-", "output file")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final landscape of a run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "-", "output file")
	exportSVGCmd.Flags().StringVar(&themeName, "theme", "earth", "colour theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			r := scenario.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range r.List() {
				sc, _ := r.Get(name)
				fmt.Fprintf(w, "%s\t%s\n", name, sc.Description)
			}
			w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets for a scenario",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, scenariosCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to run")
	cmd.Flags().Float64Var(&noise, "noise", 0, "marker noise amplitude")
	cmd.Flags().BoolVar(&stopOnCollapse, "stop-on-collapse", false, "stop at the first terminal frame")
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := config.DefaultScenario
	if len(args) > 0 {
		name = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Scenario = name
	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Scenario = name
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("noise") {
		cfg.Noise = noise
	}
	if flags.Changed("stop-on-collapse") {
		cfg.StopOnCollapse = stopOnCollapse
	}
	return cfg, cfg.Validate()
}

func prepare(cmd *cobra.Command, args []string) (*sim.Session, *scenario.Registry, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	s, err := sim.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	r := scenario.NewRegistry()
	if err := r.Apply(s); err != nil {
		return nil, nil, err
	}
	return s, r, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	s, _, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	defer s.Teardown()
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cfg := s.Config()
	fmt.Printf("running %s (seed %d, %d frames)...\n", cfg.Scenario, cfg.Seed, cfg.Frames)
	start := time.Now()

	result, err := s.Run(cmd.Context(), cfg.Frames)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesRun)
	if result.Collapsed {
		fmt.Printf("collapsed at frame %d\n", result.CollapseFrame)
	}
	printMetrics(result.Metrics)

	if len(result.Events) > 0 {
		fmt.Println("\nevents:")
		for _, e := range result.Events {
			fmt.Printf("  %6d  %s\n", e.Frame, e.Name)
		}
	}

	fmt.Println()
	fmt.Print(analysis.Assess(result.Series(sim.Distance), 0))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && preset == "" && configFile == "" {
		return viz.RunInteractive(seed)
	}
	s, r, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(s, r)
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	r := scenario.NewRegistry()
	ens := sim.NewEnsemble(cfg, numRuns, cfg.Seed).
		WithSetup(r.Setup()).
		WithMetrics(metrics.Standard).
		WithLimit(workers)

	fmt.Printf("running %d x %s from seed %d on %d workers...\n", numRuns, cfg.Scenario, cfg.Seed, workers)
	start := time.Now()
	results, err := ens.Run(cmd.Context())
	if err != nil {
		return err
	}
	sum := sim.Summarize(results)

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("collapsed: %d/%d (%.1f%%)\n", sum.Collapsed, sum.Runs, sum.CollapseFraction*100)
	if sum.MeanCollapseFrame >= 0 {
		fmt.Printf("mean collapse frame: %.1f\n", sum.MeanCollapseFrame)
	}
	printMetrics(sum.MeanMetrics)
	return nil
}

func parseSweepParams(args []string) ([]string, [][]float64, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required")
	}
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("bad --param %q: want name=v1,v2", arg)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad --param %q: %w", arg, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	names, ranges, err := parseSweepParams(sweepParams)
	if err != nil {
		return err
	}

	r := scenario.NewRegistry()
	build := func(params map[string]float64) (*sim.Ensemble, error) {
		cfg, err := optim.Apply(base, params)
		if err != nil {
			return nil, err
		}
		return sim.NewEnsemble(cfg, numRuns, cfg.Seed).
			WithSetup(r.Setup()).
			WithLimit(workers), nil
	}

	best, points, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), build, optim.CollapseScore)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\tCOLLAPSED\tMEAN_FRAME")
	for _, p := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", p.Params[n])
		}
		fmt.Fprintf(w, "%.1f%%\t%.1f\n", p.Summary.CollapseFraction*100, p.Summary.MeanCollapseFrame)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (%.1f%% collapsed)\n", best.Params, best.Summary.CollapseFraction*100)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %-18s %.6f\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSEED\tFRAMES\tCOLLAPSE")

	for _, run := range runs {
		collapse := "-"
		if run.Collapsed {
			collapse = fmt.Sprintf("%d", run.CollapseFrame)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.FramesRun,
			collapse,
		)
	}

	return w.Flush()
}

func loadResult(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(frames) == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, &sim.Result{
		Scenario:      meta.Scenario,
		Seed:          meta.Seed,
		Frames:        frames,
		Metrics:       meta.Metrics,
		FramesRun:     meta.FramesRun,
		Collapsed:     meta.Collapsed,
		CollapseFrame: meta.CollapseFrame,
		Events:        meta.Events,
	}, nil
}

func seriesNames(only string) ([]string, error) {
	if only != "" {
		if _, ok := seriesFuncs[only]; !ok {
			return nil, fmt.Errorf("unknown series: %s", only)
		}
		return []string{only}, nil
	}
	return []string{"oscillation", "recovery", "distance", "speed"}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	names, err := seriesNames(series)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(result.Frames))

	for _, name := range names {
		graph := asciigraph.Plot(result.Series(seriesFuncs[name]),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	fn, ok := seriesFuncs[series]
	if !ok {
		return fmt.Errorf("unknown series: %s", series)
	}

	fmt.Printf("early warning analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s, series: %s\n\n", meta.Scenario, series)

	data := result.Series(fn)
	w := analysis.Assess(data, window)
	if len(data) >= 8 {
		ps := analysis.PowerSpectrum(data)
		graph := asciigraph.Plot(ps[:max(len(ps)/4, 1)],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum ("+series+")"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	fmt.Print(w)

	points := make([]geom.Vec, len(result.Frames))
	for i, f := range result.Frames {
		points[i] = f.Marker.Position
	}
	fmt.Println("\ntrajectory:")
	fmt.Print(analysis.TrajectoryToASCII(points, equilibriumOf(cmd.Context(), meta), 60, 20))
	return nil
}

// replay rebuilds a stored run from its config and steps it to the frame
// the run stopped at. Sessions are deterministic per seed.
func replay(ctx context.Context, meta *storage.RunMetadata) (*sim.Session, error) {
	if meta.Config == nil {
		return nil, fmt.Errorf("run %s has no stored config", meta.ID)
	}
	s, err := sim.New(meta.Config)
	if err != nil {
		return nil, err
	}
	if err := scenario.NewRegistry().Apply(s); err != nil {
		return nil, err
	}
	if meta.FramesRun > 0 {
		if _, err := s.Run(ctx, meta.FramesRun); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func equilibriumOf(ctx context.Context, meta *storage.RunMetadata) *geom.Vec {
	s, err := replay(ctx, meta)
	if err != nil {
		return nil
	}
	defer s.Teardown()
	eq, ok := s.Marker.Equilibrium()
	if !ok {
		return nil
	}
	return &eq
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	s, err := replay(cmd.Context(), meta)
	if err != nil {
		return err
	}
	defer s.Teardown()

	theme := viz.GetTheme(themeName)
	svg := export.HexMapToSVG(s.Grid, s.Overlay, s.Marker.Trail(), theme)
	if output == "-" {
		_, err = fmt.Println(svg)
		return err
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "rendered frame %d to %s\n", s.FrameIndex(), output)
	return nil
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

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	cfg := meta.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Scenario = meta.Scenario
	}
	if err := storage.ExportJSON(output, cfg, result); err != nil {
		return err
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "exported %d frames to %s\n", len(result.Frames), output)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(output, result); err != nil {
		return err
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "exported %d frames to %s\n", len(result.Frames), output)
	}
	return nil
}
