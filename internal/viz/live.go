// Package viz renders a live terminal view of the vibrating bond.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vibelab/internal/dynamo"
	"github.com/san-kum/vibelab/internal/molecule"
	"github.com/san-kum/vibelab/internal/physics"
)

const (
	bondWidth       = 64
	historyCapacity = 240
)

type TickMsg time.Time

// Model is the bubbletea model for a live trajectory.
type Model struct {
	bond  *physics.Bond
	integ dynamo.Integrator
	state dynamo.State
	init  dynamo.State
	t, dt float64

	stepsPerFrame int
	running       bool
	method        string

	history []float64 // recent bond lengths
}

// NewModel starts a live view of the bond system advanced by integ.
func NewModel(bond *physics.Bond, integ dynamo.Integrator, initState dynamo.State, dt float64, method string) Model {
	return Model{
		bond:          bond,
		integ:         integ,
		state:         initState.Clone(),
		init:          initState.Clone(),
		dt:            dt,
		stepsPerFrame: 4,
		running:       true,
		method:        method,
		history:       make([]float64, 0, historyCapacity),
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
			m.state = m.init.Clone()
			m.t = 0
			m.history = m.history[:0]
		case "+", "=":
			if m.stepsPerFrame < 64 {
				m.stepsPerFrame *= 2
			}
		case "-":
			if m.stepsPerFrame > 1 {
				m.stepsPerFrame /= 2
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerFrame; i++ {
				next := m.integ.Step(m.bond, m.state, m.t, m.dt)
				if !next.IsValid() {
					m.running = false
					break
				}
				m.state = next
				m.t += m.dt
			}
			m.history = append(m.history, m.state[0])
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}

	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	mol := m.bond.Mol
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s  ·  %s  ·  dt=%.3f fs", strings.ToUpper(mol.Name), m.method, m.dt)))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderBond())
	sb.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(bondWidth),
			asciigraph.Caption("bond length (angstrom)"),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderStats())
	sb.WriteString(helpStyle.Render("space pause · r reset · +/- speed · q quit"))
	sb.WriteString("\n")

	return sb.String()
}

// renderBond draws the two atoms on a line, positioned by the current bond
// length within the sampled domain.
func (m Model) renderBond() string {
	lo, hi := m.bond.Surface.Domain()
	r := m.state[0]

	frac := (r - lo) / (hi - lo)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	span := int(frac * float64(bondWidth-6))
	if span < 1 {
		span = 1
	}

	line := make([]rune, bondWidth)
	for i := range line {
		line[i] = ' '
	}
	center := bondWidth / 2
	left := center - span/2 - 1
	right := center + (span+1)/2
	if left < 0 {
		left = 0
	}
	if right > bondWidth-1 {
		right = bondWidth - 1
	}
	for i := left + 1; i < right; i++ {
		line[i] = '─'
	}
	line[left] = '●'
	line[right] = '●'

	atoms := fmt.Sprintf("%s %s %s", m.bond.Mol.Atoms[0], strings.Repeat(" ", bondWidth-4), m.bond.Mol.Atoms[1])
	return canvasStyle.Render(atoms + "\n" + string(line))
}

func (m Model) renderStats() string {
	r, v := m.state[0], m.state[1]
	energy := m.bond.Energy(m.state)
	kinetic := 0.5 * m.bond.Mol.Mu() * v * v * molecule.KineticToEV

	status := statusRunning.Render("running")
	if !m.running {
		status = statusPaused.Render("paused")
	}

	rows := []string{
		fmt.Sprintf("%s %s", labelStyle.Render("status"), status),
		fmt.Sprintf("%s %s", labelStyle.Render("t"), valueStyle.Render(fmt.Sprintf("%.1f fs", m.t))),
		fmt.Sprintf("%s %s", labelStyle.Render("r"), valueStyle.Render(fmt.Sprintf("%.4f angstrom", r))),
		fmt.Sprintf("%s %s", labelStyle.Render("v"), valueStyle.Render(fmt.Sprintf("%.5f angstrom/fs", v))),
		fmt.Sprintf("%s %s", labelStyle.Render("E"), valueStyle.Render(fmt.Sprintf("%.4f eV", energy))),
		fmt.Sprintf("%s %s", labelStyle.Render("KE"), valueStyle.Render(fmt.Sprintf("%.4f eV", kinetic))),
		fmt.Sprintf("%s %s", labelStyle.Render("steps/frame"), valueStyle.Render(fmt.Sprintf("%d", m.stepsPerFrame))),
	}
	return statsStyle.Render(strings.Join(rows, "\n")) + "\n"
}
