package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/lorenzsim/internal/analysis"
	"github.com/san-kum/lorenzsim/internal/config"
	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/export"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/integrators"
	"github.com/san-kum/lorenzsim/internal/logging"
	"github.com/san-kum/lorenzsim/internal/physics"
	"github.com/san-kum/lorenzsim/internal/sim"
	"github.com/san-kum/lorenzsim/internal/storage"
	"github.com/san-kum/lorenzsim/internal/viz"
)

const (
	lyapunovDt       = 0.01
	lyapunovDuration = 50.0
	lyapunovDelta    = 1e-8
	plotWidth        = 80
	plotHeight       = 12
)

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order, and validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		var err error
		if cfg, err = config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("points") {
		cfg.NumPoints = points
		cfg.Initial = nil
	}
	if f.Changed("t0") || f.Changed("t1") {
		span := []float64{config.DefaultT0, config.DefaultT1}
		if len(cfg.TSpan) == 2 {
			copy(span, cfg.TSpan)
		}
		if f.Changed("t0") {
			span[0] = t0
		}
		if f.Changed("t1") {
			span[1] = t1
		}
		cfg.TSpan = span
	}
	if f.Changed("samples") {
		cfg.NumTimeSamples = samples
	}
	if f.Changed("frames") {
		cfg.FrameCount = frameCount
	}
	if f.Changed("stride") {
		cfg.FrameStride = stride
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("strict") {
		cfg.Strict = strict
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("loop") {
		cfg.Loop = loop
	}
	if f.Changed("fps") {
		cfg.FPS = fps
	}
	if f.Changed("bitrate") {
		cfg.Bitrate = bitrate
	}
	if f.Changed("theme") {
		cfg.Theme = themeName
	}
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if f.Changed("log-json") {
		cfg.LogJSON = logJSON
	}
	if f.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(logging.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, Out: cmd.ErrOrStderr()})
}

type simulation struct {
	seed    int64
	trajs   []*dynamo.Trajectory
	elapsed time.Duration
}

func simulate(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*simulation, error) {
	s := &simulation{seed: cfg.EffectiveSeed()}
	starts := cfg.InitialStates(s.seed)
	grid := cfg.Grid()

	log.Info().
		Int("trajectories", len(starts)).
		Int("samples", grid.Len()).
		Str("integrator", cfg.Integrator).
		Int64("seed", s.seed).
		Msg("integrating")

	began := time.Now()
	trajs, err := sim.NewEnsemble(physics.NewLorenz(), cfg.SimOptions(), cfg.Workers, log).Run(ctx, starts, grid)
	if err != nil {
		return nil, err
	}
	s.trajs = trajs
	s.elapsed = time.Since(began)
	log.Info().Dur("elapsed", s.elapsed).Msg("integration finished")
	return s, nil
}

func (s *simulation) diverged() int {
	n := 0
	for _, t := range s.trajs {
		if !t.Finite() {
			n++
		}
	}
	return n
}

func sequence(cfg *config.Config, trajs []*dynamo.Trajectory) (*frames.Sequence, error) {
	return frames.New(trajs, cfg.FrameCount, cfg.FrameOptions()...)
}

// Cancellation from the terminal ends the program normally.
func interrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func animate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var log zerolog.Logger
	if plain {
		if log, err = newLogger(cmd, cfg); err != nil {
			return err
		}
	} else {
		var closeLog func() error
		if log, closeLog, err = logging.ForTUI(cfg.LogLevel, logFile); err != nil {
			return err
		}
		defer closeLog()
	}

	run, err := simulate(ctx, cfg, log)
	if err != nil {
		return err
	}
	seq, err := sequence(cfg, run.trajs)
	if err != nil {
		return err
	}
	theme := viz.GetTheme(cfg.Theme)

	if plain {
		r := &streamRenderer{TerminalRenderer: viz.NewTerminalRenderer(plotWidth, plotHeight*2, theme), out: cmd.OutOrStdout()}
		err = viz.NewPlayer(cfg.Interval(), log).Play(ctx, seq, r, cfg.Axes)
	} else {
		err = viz.Run(ctx, seq, cfg.Axes, theme, cfg.Interval())
	}
	if interrupted(err) {
		return nil
	}
	return err
}

// streamRenderer repaints each frame on a plain terminal.
type streamRenderer struct {
	*viz.TerminalRenderer
	out io.Writer
}

func (r *streamRenderer) Draw(f frames.FrameState) error {
	if err := r.TerminalRenderer.Draw(f); err != nil {
		return err
	}
	_, err := fmt.Fprintf(r.out, "\033[H\033[2J%s\nframe %d  t=%.2f\n", r.View(), f.Index, f.Time)
	return err
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	run, err := simulate(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	lambda, err := lyapunov(run.trajs[0], cfg)
	if err != nil {
		log.Warn().Err(err).Msg("lyapunov estimate failed")
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.Run{
		Seed:         run.seed,
		Integrator:   cfg.Integrator,
		Trajectories: run.trajs,
		Lyapunov:     lambda,
		Params:       physics.NewLorenz().Params(),
	})
	if err != nil {
		return err
	}
	log.Info().Str("run", runID).Str("dir", st.Dir(runID)).Msg("run saved")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "completed in %v\n\n", run.elapsed)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRAJ\tSTART\tEND\tFINITE")
	for i, t := range run.trajs {
		last, _ := t.Last()
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", i, t.Initial, last, t.Finite())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nenvelope: %s\n", analysis.Envelope(run.trajs))
	fmt.Fprintf(out, "lyapunov: %.4f\n\n", lambda)
	fmt.Fprintln(out, plotSeries(analysis.Component(run.trajs[0].Points, 'z'), "z(t), trajectory 0"))
	return nil
}

func lyapunov(t *dynamo.Trajectory, cfg *config.Config) (float64, error) {
	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return 0, err
	}
	x0, ok := t.Last()
	if !ok || !x0.IsFinite() {
		x0 = t.Initial
	}
	return analysis.LyapunovExponent(physics.NewLorenz(), stepper, x0, lyapunovDt, lyapunovDuration, lyapunovDelta)
}

// plotSeries downsamples finite values to the plot width.
func plotSeries(data []float64, caption string) string {
	step := len(data)/plotWidth + 1
	pts := make([]float64, 0, plotWidth+1)
	for i := 0; i < len(data); i += step {
		if v := data[i]; !math.IsNaN(v) && !math.IsInf(v, 0) {
			pts = append(pts, v)
		}
	}
	if len(pts) == 0 {
		return caption + ": no finite data"
	}
	return asciigraph.Plot(pts,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func listRuns(cmd *cobra.Command, _ []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSPAN\tSAMPLES\tTRAJ\tDIVERGED\tINTEG\tLYAPUNOV")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t[%g, %g]\t%d\t%d\t%d\t%s\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T0, run.T1,
			run.Samples,
			run.Trajectories,
			run.Diverged,
			run.Integrator,
			run.Lyapunov,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	if len(trajs) == 0 {
		return fmt.Errorf("run %s: no data to plot", args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "trajectories: %d, samples: %d\n\n", meta.Trajectories, meta.Samples)
	for _, axis := range []byte{'x', 'y', 'z'} {
		fmt.Fprintln(out, plotSeries(analysis.Component(trajs[0].Points, axis), fmt.Sprintf("%c(t), trajectory 0", axis)))
		fmt.Fprintln(out)
	}
	return nil
}

func exportAnimation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	kind := args[0]
	path := outPath
	if path == "" {
		switch kind {
		case "video":
			path = "lorenz_attractor.avi"
		case "gif":
			path = "lorenz_attractor.gif"
		default:
			path = "lorenz_frames"
		}
	}

	run, err := simulate(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	seq, err := sequence(cfg, run.trajs)
	if err != nil {
		return err
	}

	opts := export.VideoOptions{
		FPS:     cfg.FPS,
		Bitrate: cfg.Bitrate,
		Width:   width,
		Height:  height,
		Theme:   viz.GetTheme(cfg.Theme),
	}

	began := time.Now()
	var n int
	switch kind {
	case "video":
		n, err = export.ExportVideo(cmd.Context(), path, seq, cfg.Axes, opts)
	case "gif":
		n, err = export.ExportGIF(cmd.Context(), path, seq, cfg.Axes, opts)
	default:
		n, err = export.ExportSVG(cmd.Context(), path, seq, cfg.Axes, opts)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", kind, err)
	}

	abs, _ := filepath.Abs(path)
	log.Info().Str("format", kind).Int("frames", n).Dur("elapsed", time.Since(began)).Str("path", abs).Msg("export finished")
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	var trajs []*dynamo.Trajectory
	if len(args) == 1 {
		st := storage.New(cfg.DataDir)
		if trajs, err = st.LoadTrajectories(args[0]); err != nil {
			return err
		}
		if len(trajs) == 0 {
			return fmt.Errorf("run %s: no trajectories", args[0])
		}
	} else {
		run, err := simulate(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		trajs = run.trajs
	}

	out := cmd.OutOrStdout()
	env := analysis.Envelope(trajs)
	fmt.Fprintf(out, "envelope: %s\n", env)
	fmt.Fprintf(out, "within attractor box %s: %v\n", analysis.AttractorEnvelope(), env.Within(analysis.AttractorEnvelope()))

	if lambda, err := lyapunov(trajs[0], cfg); err != nil {
		fmt.Fprintf(out, "lyapunov: %v\n", err)
	} else {
		fmt.Fprintf(out, "lyapunov: %.4f\n", lambda)
	}

	first := trajs[0]
	if len(first.Times) > 1 {
		dt := first.Times[1] - first.Times[0]
		fmt.Fprintf(out, "dominant frequency of z: %.4f\n", analysis.DominantFrequency(analysis.Component(first.Points, 'z'), dt))
	}

	level := physics.Rho - 1
	fmt.Fprintf(out, "crossings of z = %g: %d\n", level, len(analysis.Section(first, level)))

	maxima := analysis.ZMaxima(first)
	fmt.Fprintf(out, "z maxima: %d\n\n", len(maxima))
	if len(maxima) > 1 {
		fmt.Fprintln(out, plotSeries(maxima, "successive z maxima, trajectory 0"))
	}
	return nil
}
