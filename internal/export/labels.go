package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/lorenzsim/internal/viz"
)

const labelOffset = 14

// label is a caption centred on (X, Y).
type label struct {
	X, Y int
	Text string
}

// One box edge per axis, each running along that axis from corner 0.
var labelEdges = [3][2]int{{0, 1}, {0, 2}, {0, 4}}

// axisLabels places each axis label next to the middle of its box edge,
// pushed away from the centre of the projected box. Empty labels are
// left out.
func axisLabels(proj *viz.Projector, axes viz.Axes) []label {
	w, h := proj.Size()
	cx, cy := float64(w)/2, float64(h)/2
	corners := axes.Corners()
	texts := [3]string{axes.XLabel, axes.YLabel, axes.ZLabel}

	var out []label
	for i, e := range labelEdges {
		if texts[i] == "" {
			continue
		}
		x0, y0 := proj.ProjectUnclipped(corners[e[0]])
		x1, y1 := proj.ProjectUnclipped(corners[e[1]])
		mx, my := float64(x0+x1)/2, float64(y0+y1)/2
		dx, dy := mx-cx, my-cy
		if n := math.Hypot(dx, dy); n > 0 {
			mx += dx / n * labelOffset
			my += dy / n * labelOffset
		}
		out = append(out, label{X: int(math.Round(mx)), Y: int(math.Round(my)), Text: texts[i]})
	}
	return out
}

// drawText writes s with its left end at x and baseline at y.
func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// drawCentred writes s centred horizontally on x, vertically on y.
func drawCentred(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{Face: basicfont.Face7x13}
	width := d.MeasureString(s).Round()
	drawText(img, x-width/2, y+basicfont.Face7x13.Ascent/2, s, c)
}
