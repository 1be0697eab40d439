// Package tui renders a running simulation in the terminal with bubbletea.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ckopec-dev/Computational-Astronomy/internal/metrics"
	"github.com/ckopec-dev/Computational-Astronomy/internal/sim"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
	energyEvery  = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

// Model steps the simulation on frame ticks and draws the particle field on a
// Braille canvas.
type Model struct {
	stepper      *sim.Stepper
	cfg          sim.Config
	g            float64
	viewExtent   float64
	canvas       *Canvas
	step         int
	stepsPerTick int
	running      bool
	energy       float64
	drift        *metrics.EnergyDrift
}

// NewModel prepares a live view over an already validated configuration.
// viewExtent is the half-width of the world window shown on screen.
func NewModel(stepper *sim.Stepper, cfg sim.Config, viewExtent float64) Model {
	return Model{
		stepper:      stepper,
		cfg:          cfg,
		g:            cfg.G,
		viewExtent:   viewExtent,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		stepsPerTick: 1,
		running:      true,
		drift:        metrics.NewEnergyDrift(cfg.G),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			if m.stepsPerTick < 64 {
				m.stepsPerTick *= 2
			}
		case "-":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "[":
			m.viewExtent *= 1.25
		case "]":
			m.viewExtent /= 1.25
		}
		return m, nil

	case tickMsg:
		if m.running && m.step < m.cfg.Steps {
			for i := 0; i < m.stepsPerTick && m.step < m.cfg.Steps; i++ {
				m.stepper.Step()
				m.step++
			}
			if m.step%energyEvery < m.stepsPerTick {
				m.drift.Observe(m.stepper.Particles(), m.step)
				m.energy = metrics.TotalEnergy(m.stepper.Particles(), m.g)
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	subW := float64(canvasWidth * 2)
	subH := float64(canvasHeight * 4)
	for _, p := range m.stepper.Particles() {
		x := int((p.Pos.X/m.viewExtent + 1) / 2 * subW)
		y := int((1 - p.Pos.Y/m.viewExtent) / 2 * subH)
		m.canvas.Set(x, y)
	}

	status := ""
	if !m.running {
		status = pausedStyle.Render("  paused")
	} else if m.step >= m.cfg.Steps {
		status = pausedStyle.Render("  done")
	}

	stats := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		labelStyle.Render("step"), valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.cfg.Steps)),
		labelStyle.Render("bodies"), valueStyle.Render(fmt.Sprintf("%d", len(m.stepper.Particles()))),
		labelStyle.Render("energy"), valueStyle.Render(fmt.Sprintf("%.3g", m.energy)),
		labelStyle.Render("drift"), valueStyle.Render(fmt.Sprintf("%.2e", m.drift.Value())),
	)

	return headerStyle.Render("galaxsim") + status + "\n" +
		canvasStyle.Render(m.canvas.String()) + "\n" +
		stats + "\n" +
		helpStyle.Render("space pause  +/- speed  [/] zoom  q quit") + "\n"
}
