package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/tripend/internal/sim"
)

const (
	// FrameRate matches the trajectory sample rate, so one tick shows one
	// sample.
	FrameRate   = 50
	TraceLength = 120

	canvasWidth  = 48
	canvasHeight = 24
	chartWidth   = 40
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(chartWidth + 16)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type point struct{ x, y int }

// Player is a Bubble Tea model that replays a finished trajectory. The
// trajectory is only read; the player owns nothing but its cursor.
type Player struct {
	tr       *sim.Trajectory
	frame    int
	running  bool
	canvas   *Canvas
	view     Viewport
	trace    []point
	theme    Theme
	showHelp bool
	warning  string
}

func NewPlayer(tr *sim.Trajectory) Player {
	c := NewCanvas(canvasWidth, canvasHeight)
	p := tr.Params
	m := Player{
		tr:      tr,
		running: tr.Len() > 1,
		canvas:  c,
		view:    NewViewport(c, p.L1+p.L2+p.L3),
		trace:   make([]point, 0, TraceLength),
		theme:   Themes[0],
	}
	if tr.Len() > 0 {
		m.pushTrace(0)
	}
	return m
}

// WithWarning shows msg in the status panel, e.g. for a partial trajectory.
func (m Player) WithWarning(msg string) Player {
	m.warning = msg
	return m
}

func (m Player) WithTheme(t Theme) Player {
	m.theme = t
	return m
}

func (m Player) Frame() int    { return m.frame }
func (m Player) Running() bool { return m.running }

func (m Player) Init() tea.Cmd {
	return tick()
}

// Update handles input events and advances the playback cursor.
func (m Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.frame >= m.tr.Len()-1 {
				m.reset()
			} else {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "[":
			m.running = false
			m.seek(m.frame - 1)
		case "]":
			m.running = false
			m.seek(m.frame + 1)
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.seek(m.frame + 1)
			if m.frame >= m.tr.Len()-1 {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Player) reset() {
	m.frame = 0
	m.trace = m.trace[:0]
	m.running = m.tr.Len() > 1
	if m.tr.Len() > 0 {
		m.pushTrace(0)
	}
}

// seek moves the cursor and keeps the trace consistent with it: moving
// forward extends the trace, moving back rebuilds it.
func (m *Player) seek(frame int) {
	if m.tr.Len() == 0 {
		return
	}
	frame = max(0, min(frame, m.tr.Len()-1))
	if frame == m.frame+1 {
		m.frame = frame
		m.pushTrace(frame)
		return
	}

	m.frame = frame
	m.trace = m.trace[:0]
	for i := max(0, frame-TraceLength+1); i <= frame; i++ {
		m.pushTrace(i)
	}
}

func (m *Player) pushTrace(i int) {
	f := m.tr.Frame(i)
	x, y := m.view.Project(f.X3, f.Y3)
	m.trace = append(m.trace, point{x, y})
	if len(m.trace) > TraceLength {
		m.trace = m.trace[1:]
	}
}

// omegaHistory returns the angular velocity of joint j from frame from up
// to the cursor.
func (m Player) omegaHistory(j, from int) []float64 {
	out := make([]float64, 0, m.frame-from+1)
	for _, x := range m.tr.States[from : m.frame+1] {
		out = append(out, x[2*j+1])
	}
	return out
}

func (m *Player) draw() string {
	m.canvas.Clear()
	if m.tr.Len() == 0 {
		return m.canvas.String()
	}

	for _, pt := range m.trace {
		m.canvas.Set(pt.x, pt.y)
	}
	trace := m.canvas.String()

	m.canvas.Clear()
	f := m.tr.Frame(m.frame)
	px, py := m.view.Project(0, 0)
	x1, y1 := m.view.Project(f.X1, f.Y1)
	x2, y2 := m.view.Project(f.X2, f.Y2)
	x3, y3 := m.view.Project(f.X3, f.Y3)
	m.canvas.DrawLine(px, py, x1, y1)
	m.canvas.DrawLine(x1, y1, x2, y2)
	m.canvas.DrawLine(x2, y2, x3, y3)
	m.canvas.DrawDisc(x1, y1, 1)
	m.canvas.DrawDisc(x2, y2, 1)
	m.canvas.DrawDisc(x3, y3, 2)
	links := m.canvas.String()

	return overlay(links, trace, m.theme)
}

// overlay merges two braille layers cell by cell, coloring cells that only
// carry trace dots with the trace color.
func overlay(links, trace string, theme Theme) string {
	linkStyle := lipgloss.NewStyle().Foreground(theme.Links)
	traceStyle := lipgloss.NewStyle().Foreground(theme.Trace)

	linkRows := strings.Split(links, "\n")
	traceRows := strings.Split(trace, "\n")

	var b strings.Builder
	for i := range linkRows {
		if linkRows[i] == "" {
			continue
		}
		lr := []rune(linkRows[i])
		tt := []rune(traceRows[i])
		for j := range lr {
			switch {
			case lr[j] != 0x2800:
				b.WriteString(linkStyle.Render(string(lr[j] | tt[j])))
			case tt[j] != 0x2800:
				b.WriteString(traceStyle.Render(string(tt[j])))
			default:
				b.WriteRune(lr[j])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// View renders the TUI interface.
func (m Player) View() string {
	canvasView := canvasStyle.Render(m.draw())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("TRIPLE PENDULUM") + "\n\n")

	switch {
	case m.warning != "":
		s.WriteString(StatusFailed.Render(m.warning) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("PLAYING") + "\n\n")
	case m.tr.Len() > 0 && m.frame >= m.tr.Len()-1:
		s.WriteString(StatusPaused.Render("FINISHED") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if m.tr.Len() > 0 {
		f := m.tr.Frame(m.frame)
		progress := 0.0
		if m.tr.Len() > 1 {
			progress = float64(m.frame) / float64(m.tr.Len()-1)
		}

		s.WriteString(Row("time", fmt.Sprintf("%.2f / %.2f s", f.Time, m.tr.Params.SimTime)) + "\n")
		s.WriteString(ProgressBar(progress, chartWidth) + "\n\n")
		s.WriteString(Row("kinetic", fmt.Sprintf("%.4f J", f.Kinetic)) + "\n")
		s.WriteString(Row("potential", fmt.Sprintf("%.4f J", f.Potential)) + "\n")
		s.WriteString(Row("total", fmt.Sprintf("%.4f J", f.Total)) + "\n")

		if chart := EnergyChart(m.tr, m.frame, chartWidth, 6); chart != "" {
			s.WriteString("\n" + chart + "\n")
		}
		if chart := VelocityChart(m.tr, m.frame, chartWidth, 6); chart != "" {
			s.WriteString("\n" + chart + "\n")
		}

		s.WriteString("\n")
		from := max(0, m.frame-TraceLength+1)
		for j := 0; j < 3; j++ {
			s.WriteString(Row(fmt.Sprintf("ω%d", j+1), SparklineChart(m.omegaHistory(j, from), chartWidth)) + "\n")
		}
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("space pause/resume · r restart · [ ] step · t theme · q quit"))
	} else {
		s.WriteString(KeyHint.Render("\n? help · theme " + m.theme.Name))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
}
