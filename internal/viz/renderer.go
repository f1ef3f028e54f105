package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
)

// Renderer is the drawing collaborator of the frame sequencer. Configure
// is called once before the first frame; every Draw fully replaces what
// the previous Draw produced.
type Renderer interface {
	Configure(axes Axes) error
	Draw(f frames.FrameState) error
}

var ErrNotConfigured = errors.New("viz: renderer used before Configure")

// TerminalRenderer draws frames onto a Braille canvas.
type TerminalRenderer struct {
	canvas *Canvas
	proj   *Projector
	axes   Axes
	theme  Theme
	styles styles
	last   frames.FrameState
	drawn  int
}

// NewTerminalRenderer returns a renderer for a canvas of w x h cells.
func NewTerminalRenderer(w, h int, theme Theme) *TerminalRenderer {
	return &TerminalRenderer{canvas: NewCanvas(w, h), theme: theme, styles: newStyles(theme, 0)}
}

func (r *TerminalRenderer) Configure(axes Axes) error {
	if err := axes.Validate(); err != nil {
		return err
	}
	pw, ph := r.canvas.PixelSize()
	r.axes = axes
	r.proj = NewProjector(axes, pw, ph)
	r.styles = newStyles(r.theme, 0)
	return nil
}

func (r *TerminalRenderer) Draw(f frames.FrameState) error {
	if r.proj == nil {
		return ErrNotConfigured
	}
	if len(r.styles.pens) != PenTrajectory+len(f.Prefixes) {
		r.styles = newStyles(r.theme, len(f.Prefixes))
	}

	r.canvas.Clear()
	r.proj.SetCamera(f.Camera)
	r.drawBox()

	for i, prefix := range f.Prefixes {
		r.canvas.SetPen(PenTrajectory + i)
		drawPolyline(r.canvas, r.proj, prefix)
	}

	if f.HasCurrent {
		r.canvas.SetPen(PenMarker)
		for _, p := range f.Current {
			if x, y, _, ok := r.proj.Project(p); ok {
				r.canvas.DrawMarker(x, y)
			}
		}
	}

	r.last = f
	r.drawn++
	return nil
}

// SetTheme switches colours from the next Draw on.
func (r *TerminalRenderer) SetTheme(t Theme) {
	r.theme = t
	r.styles = newStyles(t, len(r.last.Prefixes))
}

func (r *TerminalRenderer) Theme() Theme            { return r.theme }
func (r *TerminalRenderer) Canvas() *Canvas         { return r.canvas }
func (r *TerminalRenderer) Frames() int             { return r.drawn }
func (r *TerminalRenderer) Last() frames.FrameState { return r.last }

func (r *TerminalRenderer) drawBox() {
	r.canvas.SetPen(PenAxis)
	corners := r.axes.Corners()
	for _, e := range BoxEdges {
		x0, y0 := r.proj.ProjectUnclipped(corners[e[0]])
		x1, y1 := r.proj.ProjectUnclipped(corners[e[1]])
		r.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// View renders the title, the canvas and the axis legend of the last
// drawn frame.
func (r *TerminalRenderer) View() string {
	var b strings.Builder
	b.WriteString(r.styles.title.Render(r.axes.Title))
	b.WriteString("\n")
	b.WriteString(r.canvas.Render(r.styles.pens))
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("%s %s  %s %s  %s %s",
		r.axes.XLabel, rangeLabel(r.axes.X),
		r.axes.YLabel, rangeLabel(r.axes.Y),
		r.axes.ZLabel, rangeLabel(r.axes.Z))))
	return b.String()
}

func rangeLabel(r Range) string { return fmt.Sprintf("[%g, %g]", r.Min, r.Max) }

// drawPolyline connects consecutive visible points. A hidden point breaks
// the line.
func drawPolyline(c *Canvas, proj *Projector, pts []dynamo.Point) {
	px, py, prev := 0, 0, false
	for _, p := range pts {
		x, y, _, ok := proj.Project(p)
		switch {
		case !ok:
			prev = false
			continue
		case prev:
			c.DrawLine(px, py, x, y)
		default:
			c.Set(x, y)
		}
		px, py, prev = x, y, true
	}
}
