package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/episim/internal/epi"
)

const (
	graphWidth      = 80
	graphHeight     = 14
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives the live terminal view: the simulation advances on a timer
// while compartment curves scroll across an asciigraph panel. Rates can be
// adjusted mid-run to watch the epidemic respond.
type Model struct {
	sys          epi.System
	integ        epi.Integrator
	state        epi.State
	initialState epi.State
	t, dt        float64
	running      bool
	modelName    string

	history [][]float64 // one slice per compartment

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	showHelp bool
	err      error
}

func NewModel(sys epi.System, integ epi.Integrator, initState []float64, dt float64, modelName string) Model {
	params := make(map[string]float64)
	if c, ok := sys.(epi.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64)
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	history := make([][]float64, sys.Dim())
	for i := range history {
		history[i] = make([]float64, 0, historyCapacity)
	}

	return Model{
		sys:           sys,
		integ:         integ,
		state:         epi.State(initState).Clone(),
		initialState:  epi.State(initState).Clone(),
		t:             0,
		dt:            dt,
		running:       true,
		modelName:     modelName,
		history:       history,
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
		if m.running && m.err == nil {
			m.step()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	next, err := m.integ.Step(m.sys, m.state, m.t, m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.state = next
	m.t += m.dt

	for i := range m.history {
		m.history[i] = append(m.history[i], m.state[i])
		if len(m.history[i]) > historyCapacity {
			m.history[i] = m.history[i][1:]
		}
	}
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
	// A zero rate cannot be scaled; seed it so the nudge takes hold.
	if m.params[key] == 0 && factor > 1 {
		newVal = 1e-6
	}
	if c, ok := m.sys.(epi.Configurable); ok {
		if err := c.SetParam(key, newVal); err != nil {
			return
		}
		m.params[key] = newVal
	}
}

func (m *Model) reset() {
	m.t = 0
	m.err = nil
	m.state = m.initialState.Clone()
	for i := range m.history {
		m.history[i] = m.history[i][:0]
	}
	for k, v := range m.initialParams {
		m.params[k] = v
		if c, ok := m.sys.(epi.Configurable); ok {
			c.SetParam(k, v)
		}
	}
	m.running = true
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = fmt.Sprintf("FAILED: %v", m.err)
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.history) > 0 && len(m.history[0]) > 1 {
		labels := m.sys.Labels()
		colors := make([]asciigraph.AnsiColor, len(m.history))
		for i := range colors {
			colors[i] = seriesPalette[i%len(seriesPalette)]
		}
		graph := asciigraph.PlotMany(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.SeriesColors(colors...),
			asciigraph.SeriesLegends(labels...),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	var stats strings.Builder
	stats.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	for i, label := range m.sys.Labels() {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf("%.6f", m.state[i])) + "\n")
	}
	stats.WriteString(labelStyle.Render("sum") + valueStyle.Render(fmt.Sprintf("%.6f", m.state.Sum())) + "\n")
	for i, key := range m.paramKeys {
		line := labelStyle.Render(key) + valueStyle.Render(fmt.Sprintf("%.4f", m.params[key]))
		if i == m.selected {
			line = activeParamStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		stats.WriteString(line + "\n")
	}
	s.WriteString(statsStyle.Render(stats.String()))

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nspace pause · tab select param · up/down adjust · r reset · q quit"))
	} else {
		s.WriteString(helpStyle.Render("\n? help · q quit"))
	}

	return s.String()
}
