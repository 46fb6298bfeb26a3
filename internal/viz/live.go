// Package viz renders the running lamp in the terminal: a braille canvas
// for the chamber and blobs, an asciigraph strip for the temperature
// profile, and a stats pane with per-blob readouts.
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lavasim/internal/sim"
)

const (
	canvasWidth  = 60
	canvasHeight = 26
	frameRate    = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(46)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the live lamp view. Reset rebuilds the lamp from scratch so
// the field and blobs return to their spawn state.
type Model struct {
	lamp    *sim.Lamp
	rebuild func() *sim.Lamp

	canvas  *Canvas
	running bool

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	ticksPerFrame int
	showHelp      bool
}

func NewModel(build func() *sim.Lamp, ticksPerFrame int) Model {
	lamp := build()

	params := lamp.Fluid.GetParams()
	keys := make([]string, 0, len(params))
	initial := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initial[k] = v
	}
	sort.Strings(keys)

	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}

	return Model{
		lamp:          lamp,
		rebuild:       build,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		params:        params,
		initialParams: initial,
		paramKeys:     keys,
		ticksPerFrame: ticksPerFrame,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.ticksPerFrame; i++ {
				m.lamp.Step()
			}
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	m.params[key] = newVal
	m.lamp.Fluid.SetParam(key, newVal)
}

func (m *Model) reset() {
	m.lamp = m.rebuild()
	for k, v := range m.initialParams {
		m.params[k] = v
		m.lamp.Fluid.SetParam(k, v)
	}
}

// draw projects the chamber and blobs into canvas sub-pixel space.
func (m *Model) draw() {
	m.canvas.Clear()
	c := m.lamp.Container

	subW := float64(canvasWidth * 2)
	subH := float64(canvasHeight * 4)
	scale := (subH - 8) / c.Height
	offX := subW/2 - c.CenterX*scale
	offY := 4 - c.TopY*scale

	px := func(x float64) int { return int(x*scale + offX) }
	py := func(y float64) int { return int(y*scale + offY) }

	tl, tr := c.TopLeft(), c.TopRight()
	bl, br := c.BottomLeft(), c.BottomRight()
	m.canvas.DrawLine(px(tl.X), py(tl.Y), px(bl.X), py(bl.Y))
	m.canvas.DrawLine(px(tr.X), py(tr.Y), px(br.X), py(br.Y))
	m.canvas.DrawLine(px(tl.X), py(tl.Y), px(tr.X), py(tr.Y))
	m.canvas.DrawLine(px(bl.X), py(bl.Y), px(br.X), py(br.Y))

	for _, b := range m.lamp.Blobs {
		r := int(b.Radius * scale)
		if r < 1 {
			r = 1
		}
		m.canvas.FillCircle(px(b.X), py(b.Y), r)
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("LAVA LAMP") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	profile := m.lamp.Field.Profile()
	if len(profile) > 1 {
		chart := asciigraph.Plot(downsample(profile, 36),
			asciigraph.Height(4),
			asciigraph.Width(36),
			asciigraph.Caption("temperature, top to bottom"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.lamp.Time())) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.lamp.Ticks())) + "\n\n")

	s.WriteString("BLOBS\n")
	for i, b := range m.lamp.Blobs {
		wall := " "
		if b.CollidedLeft {
			wall = "L"
		} else if b.CollidedRight {
			wall = "R"
		}
		heat := strings.Repeat("▰", 1+int(m.lamp.Field.Normalized(b.Temperature)*4))
		line := fmt.Sprintf("#%d  T=%5.1f°C  ρ=%6.1f  %-5s %s", i, b.Temperature, b.Density, heat, wall)
		s.WriteString("  " + valueStyle.Render(line) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-14s %.4f", k, m.params[k])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `  Space  pause/resume    Tab    cycle parameter
  R      reset lamp      Up/K   +5% parameter
  Q      quit            Down/J -5% parameter`

// downsample thins a profile to at most n points for plotting.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = data[i*len(data)/n]
	}
	return out
}
