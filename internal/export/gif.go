package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/viz"
)

func themePalette(t viz.Theme) color.Palette {
	p := color.Palette{viz.RGBA(t.Background), viz.RGBA(t.Muted), viz.RGBA(t.Marker)}
	for _, c := range t.Trajectories {
		p = append(p, viz.RGBA(c))
	}
	return p
}

// ExportGIF writes seq as a looping animated GIF. The frame delay is
// derived from opts.FPS; Bitrate is ignored.
func ExportGIF(ctx context.Context, path string, seq *frames.Sequence, axes viz.Axes, opts VideoOptions) (int, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	r := NewRasterizer(opts.Width, opts.Height, opts.Theme)
	if err := r.Configure(axes); err != nil {
		return 0, err
	}

	palette := themePalette(opts.Theme)
	delay := 100 / opts.FPS
	if delay < 1 {
		delay = 1
	}

	anim := gif.GIF{LoopCount: 0}
	for i, f := range seq.All() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := r.Draw(f); err != nil {
			return 0, fmt.Errorf("draw frame %d: %w", i, err)
		}
		src := r.Image()
		frame := image.NewPaletted(src.Bounds(), palette)
		draw.Draw(frame, frame.Bounds(), src, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return 0, fmt.Errorf("gif %s: no frames to write", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return 0, fmt.Errorf("encode gif %s: %w", path, err)
	}
	return len(anim.Image), f.Close()
}
