package export

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/viz"
)

// FrameSVG renders a single frame as an SVG document using the same
// projection as the raster exporters.
func FrameSVG(f frames.FrameState, axes viz.Axes, theme viz.Theme, width, height int) (string, error) {
	if err := axes.Validate(); err != nil {
		return "", err
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	proj := viz.NewProjector(axes, width, height)
	proj.SetCamera(f.Camera)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, theme.Background))

	sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-width="0.8">
`, theme.Muted))
	corners := axes.Corners()
	for _, e := range viz.BoxEdges {
		x0, y0 := proj.ProjectUnclipped(corners[e[0]])
		x1, y1 := proj.ProjectUnclipped(corners[e[1]])
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>
`, x0, y0, x1, y1))
	}
	sb.WriteString("</g>\n")

	for i, prefix := range f.Prefixes {
		for _, d := range svgPaths(proj, prefix) {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.2" d="%s"/>
`, theme.TrajectoryColor(i), d))
		}
	}

	if f.HasCurrent {
		for i, p := range f.Current {
			if x, y, _, ok := proj.Project(p); ok {
				sb.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="3" fill="%s"/>
`, x, y, theme.TrajectoryColor(i)))
			}
		}
	}

	for _, l := range axisLabels(proj, axes) {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>
`, l.X, l.Y, theme.Text, escapeText(l.Text)))
	}
	if axes.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" text-anchor="middle" font-family="sans-serif" font-size="14" fill="%s">%s</text>
`, width/2, theme.Title, escapeText(axes.Title)))
	}
	sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" font-family="sans-serif" font-size="10" fill="%s">t = %.2f</text>
`, height-8, theme.Text, f.Time))
	sb.WriteString("</svg>")
	return sb.String(), nil
}

func escapeText(s string) string {
	var b strings.Builder
	// strings.Builder never fails a write.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// svgPaths splits a polyline into path data strings at hidden points.
func svgPaths(proj *viz.Projector, pts []dynamo.Point) []string {
	var (
		paths []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		if n > 1 {
			paths = append(paths, cur.String())
		}
		cur.Reset()
		n = 0
	}
	for _, p := range pts {
		x, y, _, ok := proj.Project(p)
		if !ok {
			flush()
			continue
		}
		if n == 0 {
			cur.WriteString(fmt.Sprintf("M%d,%d", x, y))
		} else {
			cur.WriteString(fmt.Sprintf(" L%d,%d", x, y))
		}
		n++
	}
	flush()
	return paths
}

// ExportSVG writes one SVG file per frame into dir as frame_0000.svg,
// frame_0001.svg and so on.
func ExportSVG(ctx context.Context, dir string, seq *frames.Sequence, axes viz.Axes, opts VideoOptions) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	written := 0
	for i, f := range seq.All() {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		doc, err := FrameSVG(f, axes, opts.Theme, opts.Width, opts.Height)
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.svg", i))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}
