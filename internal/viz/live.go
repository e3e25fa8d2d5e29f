package viz

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	panelWidth      = 48
	historyCapacity = 300
	frameRate       = 60
)

type TickMsg time.Time

// Model drives a Simulator from the bubbletea loop: one integration step per
// tick while running, plus camera and HUD state.
type Model struct {
	sim    *sim.Simulator
	name   string
	canvas *Canvas
	camera *Camera
	theme  Theme
	styles styles

	width, height int
	showOrbits    bool
	showHelp      bool
	// selected is an index into the bodies, -1 for none.
	selected int

	dragging     bool
	dragX, dragY int
	accuracyHist []float64
	stats        sim.Stats
	units        physics.Units
	err          error
}

// NewModel wraps s for the live view. name is shown in the header.
func NewModel(s *sim.Simulator, name string) Model {
	units := physics.UnitsFor(s.G())
	m := Model{
		sim:          s,
		name:         name,
		canvas:       NewCanvas(width, height),
		camera:       NewCamera(200 / units.Length),
		units:        units,
		theme:        Themes[0],
		styles:       newStyles(Themes[0]),
		width:        width,
		height:       height,
		showOrbits:   true,
		selected:     -1,
		accuracyHist: make([]float64, 0, historyCapacity),
	}
	m.refresh()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.sim.Clock().Toggle()
		m.refresh()
	case "+", "=":
		m.sim.Clock().ScaleTime(2)
		m.refresh()
	case "-", "_":
		m.sim.Clock().ScaleTime(0.5)
		m.refresh()
	case "z":
		m.camera.ZoomBy(ZoomInFactor)
	case "x":
		m.camera.ZoomBy(ZoomOutFactor)
	case "left":
		m.camera.Pan(PanStep, 0)
	case "right":
		m.camera.Pan(-PanStep, 0)
	case "up":
		m.camera.Pan(0, PanStep)
	case "down":
		m.camera.Pan(0, -PanStep)
	case "o":
		m.showOrbits = !m.showOrbits
	case "c":
		m.camera.Reset()
	case "r":
		m.reset()
	case "tab":
		m.cycleSelected()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = newStyles(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse zooms on the wheel and pans while the left button is dragged.
// Drag deltas are in cells; one cell is 2x4 sub-pixels.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.camera.ZoomBy(ZoomInFactor)
	case msg.Button == tea.MouseButtonWheelDown:
		m.camera.ZoomBy(ZoomOutFactor)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dragging = true
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.camera.Pan(float64(msg.X-m.dragX)*2, float64(msg.Y-m.dragY)*4)
		m.dragX, m.dragY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) resize(w, h int) {
	cw := w - panelWidth - 4
	ch := h - 2
	if cw < 20 || ch < 8 {
		return
	}
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

func (m *Model) cycleSelected() {
	bodies := m.sim.Bodies()
	for range bodies {
		m.selected++
		if m.selected >= len(bodies) {
			m.selected = -1
			return
		}
		if !bodies[m.selected].Primary {
			return
		}
	}
	m.selected = -1
}

// step runs one tick. A failed step pauses the clock and keeps the error for
// the HUD.
func (m *Model) step() {
	stepped, err := m.sim.Tick()
	if err != nil {
		m.err = err
		m.sim.Clock().Pause()
		log.Printf("live: step failed: %v", err)
	}
	if stepped {
		m.refresh()
		m.accuracyHist = append(m.accuracyHist, m.stats.Accuracy)
		if len(m.accuracyHist) > historyCapacity {
			m.accuracyHist = m.accuracyHist[1:]
		}
	}
}

func (m *Model) refresh() {
	st, err := m.sim.Stats()
	if err != nil {
		log.Printf("live: stats: %v", err)
		return
	}
	m.stats = st
}

func (m *Model) reset() {
	if err := m.sim.Reset(); err != nil {
		m.err = err
		log.Printf("live: reset failed: %v", err)
		return
	}
	m.err = nil
	m.selected = -1
	m.accuracyHist = m.accuracyHist[:0]
	m.refresh()
}

// visible reports whether a projected point is close enough to the canvas to
// be worth rasterising.
func (m *Model) visible(x, y int) bool {
	w, h := m.canvas.SubWidth(), m.canvas.SubHeight()
	return x > -w && x < 2*w && y > -h && y < 2*h
}

func displayRadius(radius, zoom float64) int {
	return int(math.Round(radius / 10 * math.Min(zoom, 4)))
}

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.SubWidth(), m.canvas.SubHeight()
	bodies := m.sim.Bodies()

	if m.showOrbits {
		for _, b := range bodies {
			if b.Trail == nil || b.Trail.Len() < 2 {
				continue
			}
			px, py, first := 0, 0, true
			b.Trail.Each(func(p r2.Vec) {
				x, y := m.camera.Project(p, w, h)
				if !first && m.visible(px, py) && m.visible(x, y) {
					m.canvas.DrawLine(px, py, x, y, b.Color)
				}
				px, py, first = x, y, false
			})
		}
	}

	for _, b := range bodies {
		x, y := m.camera.Project(b.Pos, w, h)
		if !m.visible(x, y) {
			continue
		}
		m.canvas.FillCircle(x, y, displayRadius(b.Radius, m.camera.Zoom), b.Color)
	}
}

// View renders the canvas next to the HUD panel.
func (m Model) View() string {
	m.draw()
	st := m.stats
	s := m.styles

	var b strings.Builder
	b.WriteString(s.header.Render(strings.ToUpper(m.name)) + "\n")

	status := s.running.Render("RUNNING")
	switch {
	case m.err != nil:
		status = s.failed.Render("HALTED")
	case st.Paused:
		status = s.paused.Render("PAUSED")
	}
	b.WriteString(status + "\n\n")

	u := m.units
	if u.SI {
		b.WriteString(s.row("Days", fmt.Sprintf("%.1f", st.Elapsed/physics.Day)))
		b.WriteString(s.row("Energy", fmt.Sprintf("%.6e J", st.Energy)))
	} else {
		b.WriteString(s.row("Time", fmt.Sprintf("%.3f", st.Elapsed)))
		b.WriteString(s.row("Energy", fmt.Sprintf("%.6g", st.Energy)))
	}
	b.WriteString(s.row("Bodies", fmt.Sprintf("%d", st.Bodies)))
	b.WriteString(s.row("Avg speed", speed(u, st.AverageSpeed)))
	b.WriteString(s.row("Accuracy", fmt.Sprintf("%.6f%%", st.Accuracy)))
	b.WriteString(s.label.Render("") + s.ProgressBar(st.Accuracy/100, 20) + "\n")
	b.WriteString(s.row("Time scale", fmt.Sprintf("x%g", st.TimeScale)))
	b.WriteString(s.row("Zoom", fmt.Sprintf("x%.2f", m.camera.Zoom)))

	if m.selected >= 0 && m.selected < len(m.sim.Bodies()) {
		sel := m.sim.Bodies()[m.selected]
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(sel.Color)).Render(sel.Name) + "\n")
		if u.SI {
			b.WriteString(s.row("Distance", fmt.Sprintf("%.1f km", sel.DistanceToPrimary/1000)))
		} else {
			b.WriteString(s.row("Distance", fmt.Sprintf("%.4f", sel.DistanceToPrimary)))
		}
		b.WriteString(s.row("Speed", speed(u, sel.Speed())))
	}

	if len(m.accuracyHist) > 1 {
		chart := asciigraph.Plot(m.accuracyHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Precision(4),
			asciigraph.Caption("Accuracy %"))
		b.WriteString(s.graph.Render(chart) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + s.failed.Render(wrap(m.err.Error(), panelWidth-6)) + "\n")
	}

	b.WriteString(s.hint.Render("SP:Pause +/-:Speed Z/X:Zoom\nArrows:Pan O:Orbits C:View\nR:Reset Tab:Body T:Theme\n?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), s.panel.Render(b.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space     pause / resume
  + / -     time scale x2 / x0.5
  Z / X     zoom in / out
  Arrows    pan (or drag with the mouse)
  Wheel     zoom
  O         toggle orbits
  C         reset view
  R         reset simulation
  Tab       cycle selected body
  T         cycle theme
  Q         quit
`

func speed(u physics.Units, v float64) string {
	if u.SI {
		return fmt.Sprintf("%.1f m/s", v)
	}
	return fmt.Sprintf("%.4f", v)
}

func wrap(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	var b strings.Builder
	for len(s) > n {
		b.WriteString(s[:n] + "\n")
		s = s[n:]
	}
	b.WriteString(s)
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulator, name string) error {
	p := tea.NewProgram(NewModel(s, name), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
