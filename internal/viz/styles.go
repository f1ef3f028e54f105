package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pen indices on the canvas. Trajectory i draws with PenTrajectory+i.
const (
	PenAxis = iota
	PenMarker
	PenTrajectory
)

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	panel  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	graph  lipgloss.Style
	pens   []lipgloss.Style
}

func newStyles(t Theme, trajectories int) styles {
	s := styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Title),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		muted:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Muted).Padding(0, 1),
		status: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		paused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00")),
		graph:  lipgloss.NewStyle().Foreground(t.TrajectoryColor(0)),
	}
	s.pens = make([]lipgloss.Style, PenTrajectory+trajectories)
	s.pens[PenAxis] = lipgloss.NewStyle().Foreground(t.Muted)
	s.pens[PenMarker] = lipgloss.NewStyle().Foreground(t.Marker).Bold(true)
	for i := 0; i < trajectories; i++ {
		s.pens[PenTrajectory+i] = lipgloss.NewStyle().Foreground(t.TrajectoryColor(i))
	}
	return s
}

// ProgressBar renders completion of the animation.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}
