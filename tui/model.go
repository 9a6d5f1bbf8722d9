package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-ccfollower/follower"
	"go-ccfollower/theme"
)

const meterWidth = 40

// Model is the bubbletea monitor for a running follower conductor.
type Model struct {
	Conductor *follower.Conductor
	Theme     *theme.Theme
	PortName  string

	snap     follower.Snapshot
	quitting bool
}

type SnapshotMsg follower.Snapshot

func NewModel(c *follower.Conductor, th *theme.Theme, portName string) Model {
	return Model{
		Conductor: c,
		Theme:     th,
		PortName:  portName,
	}
}

// ListenForUpdates blocks on the conductor's update channel and delivers
// the next snapshot as a message.
func ListenForUpdates(c *follower.Conductor) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg(<-c.Updates)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForUpdates(m.Conductor)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Conductor.Stop()
			return m, tea.Quit

		case " ", "space":
			m.Conductor.ToggleActive()

		case "s":
			if m.snap.Running {
				m.Conductor.Stop()
			} else {
				m.Conductor.Start()
			}

		case "t":
			m.Conductor.AdjustThreshold(-0.01)
		case "T":
			m.Conductor.AdjustThreshold(0.01)

		case "g":
			m.Conductor.AdjustGain(-0.1)
		case "G":
			m.Conductor.AdjustGain(0.1)

		case "m":
			m.Conductor.AdjustSmoothing(-0.01)
		case "M":
			m.Conductor.AdjustSmoothing(0.01)
		}

	case SnapshotMsg:
		m.snap = follower.Snapshot(msg)
		return m, ListenForUpdates(m.Conductor)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := m.Theme
	var b strings.Builder

	b.WriteString(th.Title.Render("go-ccfollower"))
	if m.PortName != "" {
		b.WriteString(th.Hint.Render("  →  " + m.PortName))
	} else {
		b.WriteString(th.Hint.Render("  (no midi output)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderMeter())
	b.WriteString("\n\n")

	b.WriteString(th.Label.Render("cc value  "))
	b.WriteString(th.Value.Render(fmt.Sprintf("%3d", m.snap.CCValue)))
	b.WriteString(th.Label.Render(fmt.Sprintf("   (cc %d, ch %d)", m.snap.CCNumber, m.snap.Channel)))
	b.WriteString("   ")
	b.WriteString(m.renderState())
	b.WriteString("\n\n")

	b.WriteString(th.Label.Render("threshold "))
	b.WriteString(th.Value.Render(fmt.Sprintf("%.2f", m.snap.Threshold)))
	b.WriteString(th.Label.Render("   gain "))
	b.WriteString(th.Value.Render(fmt.Sprintf("%.1f", m.snap.Gain)))
	b.WriteString(th.Label.Render("   smoothing "))
	b.WriteString(th.Value.Render(fmt.Sprintf("%.2f", m.snap.Smoothing)))
	b.WriteString("\n\n")

	b.WriteString(th.Hint.Render("space toggle · s start/stop · t/T threshold · g/G gain · m/M smoothing · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderMeter() string {
	level := float64(m.snap.Level)
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	filled := int(level * meterWidth)
	var b strings.Builder
	for i := 0; i < meterWidth; i++ {
		pos := float64(i) / meterWidth
		if i < filled {
			style := lipgloss.NewStyle().Foreground(theme.MeterColor(pos))
			b.WriteString(style.Render(string(m.Theme.MeterFill)))
		} else {
			b.WriteString(m.Theme.Hint.Render(string(m.Theme.MeterEmpty)))
		}
	}
	b.WriteString(m.Theme.Label.Render(fmt.Sprintf("  %.3f", m.snap.Level)))
	return b.String()
}

func (m Model) renderState() string {
	switch {
	case !m.snap.Running:
		return m.Theme.Stopped.Render("stopped")
	case m.snap.Active:
		return m.Theme.Active.Render("sending")
	default:
		return m.Theme.Inactive.Render("muted")
	}
}
