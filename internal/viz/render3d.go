package viz

import (
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
)

// Projector maps world points into pixel coordinates of a w x h surface.
// The axis box is normalised to [-1, 1]^3 and viewed orthographically
// from the camera azimuth (about z, from +x) and elevation (above the xy
// plane), the convention of matplotlib's view_init.
type Projector struct {
	axes  Axes
	w, h  int
	scale float64

	right, up, eye [3]float64
}

func NewProjector(axes Axes, w, h int) *Projector {
	p := &Projector{axes: axes, w: w, h: h}
	// The normalised box has a circumradius of sqrt(3).
	p.scale = math.Min(float64(w), float64(h)) / (2 * math.Sqrt(3))
	p.SetCamera(frames.Camera{Elevation: frames.DefaultElevation})
	return p
}

func (p *Projector) Size() (int, int) { return p.w, p.h }

func (p *Projector) SetCamera(c frames.Camera) {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	sa, ca := math.Sincos(az)
	se, ce := math.Sincos(el)
	p.eye = [3]float64{ce * ca, ce * sa, se}
	p.right = [3]float64{-sa, ca, 0}
	p.up = [3]float64{-se * ca, -se * sa, ce}
}

// Project returns pixel coordinates and depth (larger is closer to the
// eye). ok is false for non-finite points and points outside the axes.
func (p *Projector) Project(pt dynamo.Point) (x, y int, depth float64, ok bool) {
	if !pt.IsFinite() || !p.axes.Contains(pt) {
		return 0, 0, 0, false
	}
	x, y, depth = p.project(pt)
	return x, y, depth, true
}

// ProjectUnclipped projects without the axis check, for decorations such
// as the box itself and labels.
func (p *Projector) ProjectUnclipped(pt dynamo.Point) (x, y int) {
	x, y, _ = p.project(pt)
	return x, y
}

func (p *Projector) project(pt dynamo.Point) (int, int, float64) {
	n := [3]float64{p.axes.X.Normalize(pt.X), p.axes.Y.Normalize(pt.Y), p.axes.Z.Normalize(pt.Z)}
	sx := dot(n, p.right)
	sy := dot(n, p.up)
	depth := dot(n, p.eye)
	px := int(math.Round(float64(p.w)/2 + sx*p.scale))
	py := int(math.Round(float64(p.h)/2 - sy*p.scale))
	return px, py, depth
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
