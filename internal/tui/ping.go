// Package tui holds the interactive wait state for the ping command: a
// spinner that runs the probe off the main goroutine and delivers the result
// as a message.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"modelmgr/config"
	"modelmgr/internal/probe"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

// probeDoneMsg is sent when the probe completes.
type probeDoneMsg struct {
	result *probe.Result
}

// PingModel drives the spinner shown while a probe is in flight.
type PingModel struct {
	spinner spinner.Model
	profile config.Profile
	prober  *probe.Prober
	result  *probe.Result
	aborted bool
}

// NewPing creates the wait-state model for probing the given profile.
func NewPing(p config.Profile, prober *probe.Prober) PingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return PingModel{spinner: sp, profile: p, prober: prober}
}

func (m PingModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runProbe)
}

// runProbe executes the blocking probe inside a tea command, keeping the
// event loop responsive.
func (m PingModel) runProbe() tea.Msg {
	return probeDoneMsg{result: m.prober.Test(m.profile)}
}

func (m PingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeDoneMsg:
		m.result = msg.result
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			// The probe request itself runs to completion or timeout;
			// aborting only stops waiting for it.
			m.aborted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m PingModel) View() string {
	if m.result != nil || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s Testing %s...", m.spinner.View(), m.profile.Name)
}

// Result returns the probe outcome, or nil when the wait was aborted.
func (m PingModel) Result() *probe.Result {
	return m.result
}
