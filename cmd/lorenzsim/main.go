package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/lorenzsim/internal/config"
	"github.com/san-kum/lorenzsim/internal/export"
	"github.com/san-kum/lorenzsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	integrator string
	outPath    string
	themeName  string
	logLevel   string
	logFile    string
	points     int
	samples    int
	frameCount int
	stride     int
	workers    int
	fps        int
	bitrate    int
	width      int
	height     int
	t0         float64
	t1         float64
	seed       int64
	strict     bool
	loop       bool
	logJSON    bool
	plain      bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lorenzsim",
		Short:         "animated Lorenz attractor ensembles",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          animate,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&points, "points", config.DefaultNumPoints, "number of initial conditions")
	pf.Float64Var(&t0, "t0", config.DefaultT0, "start time")
	pf.Float64Var(&t1, "t1", config.DefaultT1, "end time")
	pf.IntVar(&samples, "samples", config.DefaultNumTimeSamples, "time samples per trajectory")
	pf.IntVar(&frameCount, "frames", config.DefaultFrameCount, "animation frames")
	pf.IntVar(&stride, "stride", 1, "samples revealed per frame")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4, rk45)")
	pf.BoolVar(&strict, "strict", false, "abort when a trajectory diverges")
	pf.IntVar(&workers, "workers", 0, "parallel integrations (0 = GOMAXPROCS)")
	pf.BoolVar(&loop, "loop", false, "restart the animation after the last frame")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "export frame rate")
	pf.IntVar(&bitrate, "bitrate", config.DefaultBitrate, "export bitrate (kbit/s)")
	pf.StringVar(&outPath, "out", "", "export output path")
	pf.StringVar(&themeName, "theme", "", fmt.Sprintf("colour theme %v", viz.ThemeNames()))
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON lines")
	pf.StringVar(&logFile, "log-file", "", "log file used while the terminal animation runs")

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "integrate and play the animation in the terminal",
		RunE:  animate,
	}
	animateCmd.Flags().BoolVar(&plain, "plain", false, "redraw frames on stdout instead of the full screen UI")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate, print a summary and save the run",
		RunE:  runSimulation,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:       "export [video|gif|svg]",
		Short:     "integrate and export the animation",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"video", "gif", "svg"},
		RunE:      exportAnimation,
	}
	exportCmd.Flags().IntVar(&width, "width", export.DefaultWidth, "image width in pixels")
	exportCmd.Flags().IntVar(&height, "height", export.DefaultHeight, "image height in pixels")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "envelope, Lyapunov exponent and return map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				fmt.Fprintf(out, "  %-8s %s\n", name, config.Presets[name].Description)
			}
			return nil
		},
	}

	rootCmd.AddCommand(animateCmd, runCmd, listCmd, plotCmd, exportCmd, analyzeCmd, presetsCmd)
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
