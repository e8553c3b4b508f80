package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/plexus/internal/analysis"
	"github.com/san-kum/plexus/internal/automation"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
	"github.com/san-kum/plexus/internal/storage"
	"github.com/san-kum/plexus/internal/viz"
	"github.com/spf13/cobra"
)

var (
	runFrames    int
	anaFrames    int
	sweepFrames  int
	benchFrames  int
	snapFrames   int
	save         bool
	plot         bool
	scenarioFile string
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	sweepSeeds   int
	benchSeeds   int
	outPath      string
	vector       bool
	svgWidth     int
	svgHeight    int
)

func addCommands(root *cobra.Command) {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the field headless and report metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to simulate")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run under --data-dir")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot edge counts")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml) scripting control changes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and statistics of the edge count",
		Long:  "analyze a saved run, or simulate --frames with the current configuration when no run id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&anaFrames, "frames", 600, "frames to simulate when no run id is given")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one control and report ensemble means",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", automation.ParamMinDistance, "control to sweep (min_distance, max_connections, particle_count)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 300, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 4, "seeds per value")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 120, "frames per run")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every graph builder",
		RunE:  benchBuilders,
	}
	benchCmd.Flags().IntVar(&benchSeeds, "seeds", 4, "concurrent runs per builder")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames per run")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as SVG",
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 60, "frames to simulate first")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "plexus.svg", "output file")
	snapshotCmd.Flags().BoolVar(&vector, "vector", true, "draw lines as vectors instead of braille dots")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 800, "vector image width")
	snapshotCmd.Flags().IntVar(&svgHeight, "height", 600, "vector image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tDISTANCE\tMAX CONN\tBUILDER\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				c := p.ControlState()
				limit := "off"
				if c.LimitConnections {
					limit = fmt.Sprintf("%d", c.MaxConnections)
				}
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%s\t%s\t%s\n", name, c.ParticleCount, c.MinDistance, limit, p.Builder, p.Theme)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			path := "plexus.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	root.AddCommand(runCmd, listCmd, analyzeCmd, exportCmd, sweepCmd, benchCmd, snapshotCmd, presetsCmd, initCmd)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func simOptions(cfg *config.Config) field.Options {
	opts := cfg.Options()
	opts.Logger = logger
	return opts
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	opts := simOptions(cfg)
	base := cfg.ControlState()
	scenarioName := ""

	start := time.Now()
	var result *field.Result
	if scenarioFile != "" {
		sc, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("frames") {
			sc.Frames = runFrames
		}
		scenarioName = sc.Name
		result, err = automation.RunScenario(ctx, sc, opts, base)
		if err != nil {
			return err
		}
	} else {
		sim, err := field.New(opts)
		if err != nil {
			return err
		}
		for _, m := range metrics.All() {
			sim.AddMetric(m)
		}
		logger.Info("running", "frames", runFrames, "seed", cfg.Seed, "builder", cfg.Builder)
		result, err = sim.Run(ctx, runFrames, field.Fixed(base))
		if err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("completed %d frames in %v\n", result.Frames, elapsed)
	if result.Dropped > 0 {
		fmt.Printf("dropped edges: %d\n", result.Dropped)
	}
	printMetrics(result.Metrics)

	if plot && len(result.EdgeCounts) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(result.EdgeCounts,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("edges per frame"),
		))
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Seed:      cfg.Seed,
			Builder:   cfg.Builder,
			Particles: cfg.MaxParticles,
			Controls:  base,
			Scenario:  scenarioName,
		}, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
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
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBUILDER\tSEED\tFRAMES\tPARTICLES\tMEAN EDGES\tDROPPED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Builder,
			run.Seed,
			run.Frames,
			run.Controls.ParticleCount,
			run.Metrics["mean_edges"],
			run.Dropped,
		)
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	var (
		edges  []float64
		degree []int
		label  string
		rate   = float64(config.DefaultFPS)
	)

	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		edges, err = st.LoadEdges(args[0])
		if err != nil {
			return err
		}
		label = meta.ID
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		sim, err := field.New(simOptions(cfg))
		if err != nil {
			return err
		}
		result, err := sim.Run(ctx, anaFrames, field.Fixed(cfg.ControlState()))
		if err != nil {
			return err
		}
		edges = result.EdgeCounts
		degree = analysis.DegreeHistogram(sim.Store())
		rate = float64(cfg.FPS)
		label = fmt.Sprintf("seed %d", cfg.Seed)
	}

	if len(edges) < 2 {
		return fmt.Errorf("not enough frames to analyze")
	}

	s := analysis.Summarize(edges)
	freq, mag := analysis.DominantFrequency(edges, rate)

	fmt.Printf("run: %s\n", label)
	fmt.Printf("frames: %d\n\n", len(edges))
	fmt.Printf("edges  mean %.2f  std %.2f  min %.0f  max %.0f\n", s.Mean, s.StdDev, s.Min, s.Max)
	fmt.Printf("dominant frequency: %.4f Hz (magnitude %.2f, %.0f fps)\n\n", freq, mag, rate)

	if spectrum := analysis.PowerSpectrum(edges); len(spectrum) > 2 {
		// Skip the DC bin; the mean is removed but leakage remains.
		fmt.Println(asciigraph.Plot(spectrum[1:],
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		))
		fmt.Println()
	}

	if degree != nil {
		fmt.Println("degree histogram (last frame):")
		for d, n := range degree {
			if n == 0 {
				continue
			}
			fmt.Printf("  %3d  %5d  %s\n", d, n, strings.Repeat("█", min(n, 60)))
		}
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Param:    sweepParam,
		ParamMin: sweepMin,
		ParamMax: sweepMax,
		NumSteps: sweepSteps,
		Frames:   sweepFrames,
		Seeds:    sweepSeeds,
		Base:     cfg.ControlState(),
		Options:  simOptions(cfg),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN EDGES\tMEAN ALPHA\tMAX DEGREE\n", strings.ToUpper(sweepParam))
	series := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.2f\t%.1f\t%.3f\t%.1f\n", r.ParamValue, r.MeanEdges, r.MeanAlpha, r.MaxDegree)
		series[i] = r.MeanEdges
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(8), asciigraph.Caption("mean edges")))
	}
	return nil
}

func benchBuilders(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	base := cfg.ControlState()
	fmt.Printf("benchmarking %d particles, %d frames, %d seeds\n\n", base.ParticleCount, benchFrames, benchSeeds)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUILDER\tFRAMES\tTIME\tFRAMES/SEC\tMEAN EDGES")

	for _, name := range field.NewRegistry().Names() {
		opts := simOptions(cfg)
		opts.Builder = name
		ens := field.NewEnsemble(opts, max(benchSeeds, 1), cfg.Seed, func() []field.Metric {
			return []field.Metric{metrics.NewMeanEdges()}
		})

		start := time.Now()
		results, err := ens.Run(ctx, benchFrames, field.Fixed(base))
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		total := benchFrames * len(results)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.1f\n",
			name, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds(), field.MeanMetric(results, "mean_edges"))
	}

	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := field.New(simOptions(cfg))
	if err != nil {
		return err
	}
	ctl := cfg.ControlState()
	var f *field.Frame
	for i := 0; i < max(snapFrames, 1); i++ {
		f = sim.AdvanceFrame(ctl)
	}

	th := viz.GetTheme(cfg.Theme)
	cam := viz.NewCamera(float64(sim.Store().HalfExtent()))
	var svg string
	if vector {
		svg = export.FrameToSVG(f, cam, svgWidth, svgHeight, sim.Store().HalfExtent(), th)
	} else {
		c := viz.NewCanvas(100, 50)
		viz.RenderFrame(c, cam, f, sim.Store().HalfExtent())
		svg = export.CanvasToSVG(c, 4, th)
	}

	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", outPath, "frame", f.Index, "edges", len(f.Edges))
	return nil
}
