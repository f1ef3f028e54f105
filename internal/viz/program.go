package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lorenzsim/internal/frames"
)

const (
	width       = 80
	height      = 24
	graphPoints = 60
)

type TickMsg time.Time

// Model is the Bubble Tea front end: it advances one frame per tick and
// stays on the last frame once a non-looping sequence is exhausted.
type Model struct {
	seq      *frames.Sequence
	renderer *TerminalRenderer
	axes     Axes
	interval time.Duration
	frame    int
	running  bool
	done     bool
	showHelp bool
	err      error
}

// NewModel configures a terminal renderer for seq.
func NewModel(seq *frames.Sequence, axes Axes, theme Theme, interval time.Duration) (Model, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := NewTerminalRenderer(width, height, theme)
	if err := r.Configure(axes); err != nil {
		return Model{}, err
	}
	return Model{
		seq:      seq,
		renderer: r,
		axes:     axes,
		interval: interval,
		running:  true,
		done:     seq.Len() == 0,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.frame = 0
			m.done = m.seq.Len() == 0
		case "t":
			m.renderer.SetTheme(NextTheme(m.renderer.Theme()))
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			if err := m.renderer.Draw(m.seq.At(m.frame)); err != nil {
				m.err = fmt.Errorf("draw frame %d: %w", m.frame, err)
				return m, tea.Quit
			}
			m.frame++
			if m.frame >= m.seq.Len() {
				if m.seq.Loop() {
					m.frame = 0
				} else {
					m.done = true
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	s := m.renderer.styles
	last := m.renderer.Last()

	status := s.status.Render("▶ PLAYING")
	switch {
	case m.done:
		status = s.muted.Render("■ DONE")
	case !m.running:
		status = s.paused.Render("⏸ PAUSED")
	}

	shown := 0
	if m.renderer.Frames() > 0 {
		shown = last.Index + 1
	}
	progress := 0.0
	if m.seq.Len() > 0 {
		progress = float64(shown) / float64(m.seq.Len())
	}

	var stats strings.Builder
	stats.WriteString(status + "\n\n")
	row := func(label, value string) {
		stats.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	row("frame", fmt.Sprintf("%d/%d", shown, m.seq.Len()))
	row("t", fmt.Sprintf("%.2f", last.Time))
	row("samples", fmt.Sprintf("%d/%d", last.TimeIndex, m.seq.Samples()))
	row("curves", fmt.Sprintf("%d", m.seq.Trajectories()))
	row("azimuth", fmt.Sprintf("%.1f°", math.Mod(last.Camera.Azimuth, 360)))
	row("elev", fmt.Sprintf("%.1f°", last.Camera.Elevation))
	if last.HasCurrent {
		row("x0", last.Current[0].String())
	}
	stats.WriteString("\n" + ProgressBar(progress, 24) + "\n")

	if z := zHistory(last); len(z) >= 2 {
		chart := asciigraph.Plot(z, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("z(t), curve 0"))
		stats.WriteString(s.graph.Render(chart) + "\n")
	}

	if m.showHelp {
		stats.WriteString("\n" + s.muted.Render("space pause · r restart · t theme · q quit"))
	} else {
		stats.WriteString("\n" + s.muted.Render("? help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderer.View(), s.panel.Render(stats.String()))
}

// zHistory samples the finite z values of the first prefix down to at
// most graphPoints values.
func zHistory(f frames.FrameState) []float64 {
	if len(f.Prefixes) == 0 || len(f.Prefixes[0]) == 0 {
		return nil
	}
	pts := f.Prefixes[0]
	step := len(pts)/graphPoints + 1
	out := make([]float64, 0, graphPoints+1)
	for i := 0; i < len(pts); i += step {
		if pts[i].IsFinite() {
			out = append(out, pts[i].Z)
		}
	}
	return out
}

// Run shows the animation until the user quits or ctx is cancelled.
func Run(ctx context.Context, seq *frames.Sequence, axes Axes, theme Theme, interval time.Duration) error {
	m, err := NewModel(seq, axes, theme, interval)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("terminal display: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
