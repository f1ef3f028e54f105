package viz

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/lorenzsim/internal/frames"
)

const DefaultInterval = 20 * time.Millisecond

// Player drives a Renderer from a single goroutine. Frames are drawn in
// increasing index order with one tick between consecutive draws;
// cancelling the context is the only way to stop a looping sequence.
type Player struct {
	Interval time.Duration
	Log      zerolog.Logger
}

func NewPlayer(interval time.Duration, log zerolog.Logger) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{Interval: interval, Log: log}
}

// Play configures r and presents every frame of seq. It returns nil after
// the last frame of a non-looping sequence and ctx.Err() on cancellation.
// Renderer errors are returned as-is, wrapped with the frame index.
func (p *Player) Play(ctx context.Context, seq *frames.Sequence, r Renderer, axes Axes) error {
	if err := r.Configure(axes); err != nil {
		return fmt.Errorf("configure renderer: %w", err)
	}
	if seq.Len() == 0 {
		p.Log.Debug().Msg("empty frame sequence, nothing to draw")
		return nil
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	first := true
	for pass := 0; ; pass++ {
		for i, f := range seq.All() {
			if !first {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			first = false

			if err := r.Draw(f); err != nil {
				return fmt.Errorf("draw frame %d: %w", i, err)
			}
		}

		p.Log.Debug().Int("pass", pass).Int("frames", seq.Len()).Msg("animation pass complete")
		if !seq.Loop() {
			return nil
		}
	}
}
