// Package export writes frame sequences to files: MJPEG video, animated
// GIF and per-frame SVG. Every exporter consumes frames in index order
// through the same [Rasterizer] projection the terminal renderer uses.
package export
