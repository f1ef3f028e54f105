package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/viz"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 512
)

// Rasterizer draws frame states into RGBA images. It implements
// viz.Renderer, so it can also be driven by a viz.Player.
type Rasterizer struct {
	w, h  int
	theme viz.Theme
	proj  *viz.Projector
	axes  viz.Axes
	img   *image.RGBA
}

var _ viz.Renderer = (*Rasterizer)(nil)

func NewRasterizer(w, h int, theme viz.Theme) *Rasterizer {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Rasterizer{w: w, h: h, theme: theme, img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (r *Rasterizer) Configure(axes viz.Axes) error {
	if err := axes.Validate(); err != nil {
		return err
	}
	r.axes = axes
	r.proj = viz.NewProjector(axes, r.w, r.h)
	return nil
}

// Draw replaces the image with frame f.
func (r *Rasterizer) Draw(f frames.FrameState) error {
	if r.proj == nil {
		return viz.ErrNotConfigured
	}
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: viz.RGBA(r.theme.Background)}, image.Point{}, draw.Src)
	r.proj.SetCamera(f.Camera)

	muted := viz.RGBA(r.theme.Muted)
	corners := r.axes.Corners()
	for _, e := range viz.BoxEdges {
		x0, y0 := r.proj.ProjectUnclipped(corners[e[0]])
		x1, y1 := r.proj.ProjectUnclipped(corners[e[1]])
		r.line(x0, y0, x1, y1, muted)
	}

	text := viz.RGBA(r.theme.Text)
	for _, l := range axisLabels(r.proj, r.axes) {
		drawCentred(r.img, l.X, l.Y, l.Text, text)
	}
	if r.axes.Title != "" {
		drawCentred(r.img, r.w/2, 10, r.axes.Title, viz.RGBA(r.theme.Title))
	}
	drawText(r.img, 4, r.h-4, fmt.Sprintf("t = %.2f", f.Time), text)

	for i, prefix := range f.Prefixes {
		r.polyline(prefix, viz.RGBA(r.theme.TrajectoryColor(i)))
	}

	if f.HasCurrent {
		for i, p := range f.Current {
			if x, y, _, ok := r.proj.Project(p); ok {
				r.disc(x, y, 3, viz.RGBA(r.theme.TrajectoryColor(i)))
			}
		}
	}
	return nil
}

// Image returns the current frame. It is overwritten by the next Draw.
func (r *Rasterizer) Image() *image.RGBA { return r.img }

func (r *Rasterizer) polyline(pts []dynamo.Point, c color.RGBA) {
	px, py, prev := 0, 0, false
	for _, p := range pts {
		x, y, _, ok := r.proj.Project(p)
		if !ok {
			prev = false
			continue
		}
		if prev {
			r.line(px, py, x, y, c)
		} else {
			r.img.SetRGBA(x, y, c)
		}
		px, py, prev = x, y, true
	}
}

func (r *Rasterizer) line(x0, y0, x1, y1 int, c color.RGBA) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		r.img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Rasterizer) disc(cx, cy, rad int, c color.RGBA) {
	for y := -rad; y <= rad; y++ {
		for x := -rad; x <= rad; x++ {
			if x*x+y*y <= rad*rad {
				r.img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
