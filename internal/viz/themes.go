package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour scheme shared by the terminal renderer and the
// image exporters.
type Theme struct {
	Name         string
	Title        lipgloss.Color
	Text         lipgloss.Color
	Muted        lipgloss.Color
	Background   lipgloss.Color
	Marker       lipgloss.Color
	Trajectories []lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Title:      lipgloss.Color("#00ffff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#444466"),
		Background: lipgloss.Color("#0a0a0a"),
		Marker:     lipgloss.Color("#ffff00"),
		Trajectories: []lipgloss.Color{
			"#ff00ff", "#00ffff", "#00ff88", "#ff8800", "#8888ff",
			"#ff4444", "#ccff00", "#ff88cc", "#44ccff", "#ffffff",
		},
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Title:      lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Background: lipgloss.Color("#001100"),
		Marker:     lipgloss.Color("#ffff00"),
		Trajectories: []lipgloss.Color{
			"#00ff00", "#00cc00", "#88ff88", "#44aa44", "#ccffcc",
		},
	}

	// Matches matplotlib's default colour cycle.
	ThemeTab10 = Theme{
		Name:       "tab10",
		Title:      lipgloss.Color("#111111"),
		Text:       lipgloss.Color("#333333"),
		Muted:      lipgloss.Color("#777777"),
		Background: lipgloss.Color("#ffffff"),
		Marker:     lipgloss.Color("#222222"),
		Trajectories: []lipgloss.Color{
			"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
			"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		},
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeTab10,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// TrajectoryColor returns the colour of trajectory i, cycling the palette.
func (t Theme) TrajectoryColor(i int) lipgloss.Color {
	if len(t.Trajectories) == 0 {
		return t.Text
	}
	return t.Trajectories[i%len(t.Trajectories)]
}

// RGBA converts a hex theme colour for image output.
func RGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
}
