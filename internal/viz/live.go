package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/scenario"
)

const (
	width         = 72
	height        = 22
	frameRate     = 60
	trailCapacity = 48
	recentEvents  = 8
	// boundsSamples is how many instants are used to frame the world.
	boundsSamples = 16
)

var speeds = []float32{0.25, 0.5, 1, 2, 4}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model plays a scenario in real time, scaled by the selected speed.
type Model struct {
	cfg      *config.Config
	opts     []scenario.Option
	scenario *scenario.Scenario
	canvas   *Canvas
	world    geom.AABB
	trails   [][]struct{ x, y int }
	theme    Theme
	speed    int
	running  bool
	showHelp bool
	err      error
}

// NewModel builds cfg and returns a model ready to play it.
func NewModel(cfg *config.Config, opts ...scenario.Option) (Model, error) {
	m := Model{
		cfg:     cfg,
		opts:    opts,
		canvas:  NewCanvas(width, height),
		theme:   CurrentTheme,
		speed:   2,
		running: true,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	s, err := scenario.Build(m.cfg, m.opts...)
	if err != nil {
		return err
	}
	m.scenario = s
	m.trails = make([][]struct{ x, y int }, len(s.Bodies))
	m.err = nil

	// frame the whole run up front so the view does not jump around
	m.world = s.Bounds(0)
	for i := 1; i <= boundsSamples; i++ {
		m.world = m.world.Union(s.Bounds(m.cfg.Duration * float32(i) / boundsSamples))
	}
	return nil
}

func (m Model) Scenario() *scenario.Scenario { return m.scenario }

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "+", "=":
			m.speed = min(m.speed+1, len(speeds)-1)
		case "-", "_":
			m.speed = max(m.speed-1, 0)
		case "t":
			m.theme = NextTheme(m.theme)
			CurrentTheme = m.theme
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil && !m.scenario.Done() {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	dt := speeds[m.speed] / frameRate
	if err := m.scenario.Advance(context.Background(), m.scenario.Now()+dt); err != nil {
		m.err = err
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	s := m.scenario
	t := s.Now()
	m.world = m.world.Union(s.Bounds(t))
	vp := NewViewport(m.canvas, m.world, 0.5)

	for i, b := range s.Bodies {
		vp.Shape(b.Kin.InstantShape(t))

		x, y := vp.Project(b.Center(t))
		tr := append(m.trails[i], struct{ x, y int }{x, y})
		if len(tr) > trailCapacity {
			tr = tr[len(tr)-trailCapacity:]
		}
		m.trails[i] = tr
		for _, p := range tr {
			m.canvas.Set(p.x, p.y)
		}
	}
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return "ERROR: " + m.err.Error()
	case m.scenario.Done():
		return "FINISHED"
	case !m.running:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the canvas next to a panel of clock, recent crossings and a
// distance graph.
func (m Model) View() string {
	m.draw()
	res := m.scenario.Result()
	t := m.theme

	var s strings.Builder
	s.WriteString(headerStyle(t).Render(strings.ToUpper(m.cfg.Name)) + "\n")
	s.WriteString(m.status() + "\n\n")

	fraction := float64(m.scenario.Now() / m.cfg.Duration)
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f", m.scenario.Now(), m.cfg.Duration)) + "\n")
	s.WriteString(ProgressBar(t, fraction, 30) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%gx", speeds[m.speed])) + "\n")
	s.WriteString(labelStyle.Render("Crossings") + valueStyle.Render(fmt.Sprintf("%d", len(res.Crossings))) + "\n")
	s.WriteString(labelStyle.Render("Actions") + valueStyle.Render(fmt.Sprintf("%d", len(res.Actions))) + "\n\n")

	recent := res.Crossings[max(0, len(res.Crossings)-recentEvents):]
	for _, r := range recent {
		s.WriteString(fmt.Sprintf("%7.3f %s %s|%s\n", r.Time, KindStyle(t, r.Kind).Render(fmt.Sprintf("%-12s", r.Kind)), r.A, r.B))
	}

	if len(res.Samples) > 1 && len(res.Pairs) > 0 {
		first := make([]float64, len(res.Samples))
		for i, sm := range res.Samples {
			first[i] = float64(sm.Distances[0])
		}
		chart := asciigraph.Plot(first, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(res.Pairs[0]))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(t, 30) + "\nSP:Pause R:Restart Q:Quit\nT:Theme  +/-:Speed  ?:Help"))

	canvasView := canvasStyle.Foreground(t.Accent).Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart scenario         ║
║  +/-      - Playback speed           ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view in the terminal.
func Run(cfg *config.Config, opts ...scenario.Option) error {
	m, err := NewModel(cfg, opts...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
