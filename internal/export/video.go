package export

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/viz"
)

const (
	DefaultFPS     = 15
	DefaultBitrate = 1800
)

type VideoOptions struct {
	FPS int
	// Bitrate in kbit/s. MJPEG has no rate control, so it selects the
	// JPEG quality instead, see Quality.
	Bitrate int
	Width   int
	Height  int
	Theme   viz.Theme
}

func DefaultVideoOptions() VideoOptions {
	return VideoOptions{
		FPS:     DefaultFPS,
		Bitrate: DefaultBitrate,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Theme:   viz.ThemeTab10,
	}
}

func (o VideoOptions) validate() error {
	if o.FPS <= 0 {
		return dynamo.NewConfigError("fps", "must be positive, got %d", o.FPS)
	}
	if o.Bitrate <= 0 {
		return dynamo.NewConfigError("bitrate", "must be positive, got %d", o.Bitrate)
	}
	return nil
}

// Quality maps the bitrate onto a JPEG quality in [1, 100]; the default
// 1800 kbit/s gives 90.
func (o VideoOptions) Quality() int {
	q := o.Bitrate / 20
	switch {
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}

// ExportVideo writes seq as an MJPEG AVI file and returns the number of
// frames written.
func ExportVideo(ctx context.Context, path string, seq *frames.Sequence, axes viz.Axes, opts VideoOptions) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	r := NewRasterizer(opts.Width, opts.Height, opts.Theme)
	if err := r.Configure(axes); err != nil {
		return 0, err
	}

	w, err := mjpeg.New(path, int32(r.w), int32(r.h), int32(opts.FPS))
	if err != nil {
		return 0, fmt.Errorf("create video %s: %w", path, err)
	}

	var buf bytes.Buffer
	jpegOpts := &jpeg.Options{Quality: opts.Quality()}
	written := 0
	for i, f := range seq.All() {
		if err := ctx.Err(); err != nil {
			w.Close()
			return written, err
		}
		if err := r.Draw(f); err != nil {
			w.Close()
			return written, fmt.Errorf("draw frame %d: %w", i, err)
		}
		buf.Reset()
		if err := jpeg.Encode(&buf, r.Image(), jpegOpts); err != nil {
			w.Close()
			return written, fmt.Errorf("encode frame %d: %w", i, err)
		}
		if err := w.AddFrame(buf.Bytes()); err != nil {
			w.Close()
			return written, fmt.Errorf("write frame %d: %w", i, err)
		}
		written++
	}

	if err := w.Close(); err != nil {
		return written, fmt.Errorf("finalize video %s: %w", path, err)
	}
	return written, nil
}
