package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/gui"
	"github.com/san-kum/plexus/internal/logging"
	"github.com/san-kum/plexus/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	particles  int
	maxPart    int
	minDist    float64
	maxConn    int
	noLimit    bool
	builder    string
	frameRate  int
	theme      string
	logLevel   string
	logFile    string
	gifPath    string

	logger    *log.Logger
	logCloser io.Closer
)

// main runs the root command and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers commands and flags. With no subcommand the live
// terminal view runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "plexus",
		Short:             "3d particle field with proximity lines",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data-dir", ".plexus", "data directory for saved runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&particles, "particles", config.DefaultParticleCount, "active particle count")
	pf.IntVar(&maxPart, "max-particles", config.DefaultMaxParticles, "particle capacity")
	pf.Float64Var(&minDist, "min-distance", config.DefaultMinDistance, "connection distance")
	pf.IntVar(&maxConn, "max-connections", config.DefaultMaxConnections, "connections per particle")
	pf.BoolVar(&noLimit, "no-limit", false, "disable the connection limit")
	pf.StringVar(&builder, "builder", config.DefaultBuilder, "graph builder (brute, grid)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", "plexus.gif", "where the g key saves recordings")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset, then run it in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(liveOptions(cfg))
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the field in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			opts.Logger = logger
			return gui.Run(gui.Options{Sim: opts, Controls: cfg.ControlState(), FPS: max(cfg.FPS, 60)})
		},
	}

	rootCmd.AddCommand(liveCmd, tuiCmd, guiCmd)
	addCommands(rootCmd)
	return rootCmd
}

func isInteractive(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "plexus", "live", "tui":
		return true
	}
	return false
}

// setupLogging builds the shared logger. The terminal views log to
// --log-file or nowhere so output does not tear the screen.
func setupLogging(cmd *cobra.Command, args []string) error {
	var err error
	switch {
	case logFile != "":
		logger, logCloser, err = logging.Open(logFile, logLevel)
	case isInteractive(cmd):
		logger, err = logging.New(io.Discard, logLevel)
	default:
		logger, err = logging.New(os.Stderr, logLevel)
	}
	if err != nil {
		return err
	}
	log.SetDefault(logger)
	return nil
}

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-particles") {
		cfg.MaxParticles = maxPart
	}
	if flags.Changed("builder") {
		cfg.Builder = builder
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("particles") {
		cfg.Controls.ParticleCount = particles
	}
	if flags.Changed("min-distance") {
		cfg.Controls.MinDistance = minDist
	}
	if flags.Changed("max-connections") {
		cfg.Controls.MaxConnections = maxConn
	}
	if flags.Changed("no-limit") {
		cfg.Controls.LimitConnections = !noLimit
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func liveOptions(cfg *config.Config) viz.Options {
	opts := cfg.Options()
	opts.Logger = logger
	return viz.Options{
		Sim:      opts,
		Controls: cfg.ControlState(),
		FPS:      cfg.FPS,
		Theme:    cfg.Theme,
		GIFPath:  gifPath,
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger.Info("starting live view", "seed", cfg.Seed, "builder", cfg.Builder, "particles", cfg.Controls.ParticleCount)
	return viz.Run(liveOptions(cfg))
}
