package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = time.Second / 30

var (
	titleStyle  = lipgloss.NewStyle().MarginLeft(2).Bold(true).Foreground(lipgloss.Color("170"))
	stateStyle  = lipgloss.NewStyle().PaddingLeft(4).Bold(true)
	dimStyle    = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("241"))
	lockedStyle = lipgloss.NewStyle().PaddingLeft(4).Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().PaddingLeft(4).PaddingTop(1).Foreground(lipgloss.Color("241"))
)

type tickMsg time.Time

type model struct {
	char     *character
	health   progress.Model
	lastTick time.Time
}

func newModel() *model {
	return &model{
		char:   newCharacter(),
		health: progress.New(progress.WithDefaultGradient()),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	m.char.machine.Start()
	m.lastTick = time.Now()
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		delta := now.Sub(m.lastTick).Seconds()
		m.lastTick = now
		m.char.machine.Update(delta)
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.char.moving = !m.char.moving
		case "h":
			m.char.damaged = true
		case "l":
			mach := m.char.machine
			mach.SetLocked(!mach.Locked())
		}
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	mach := m.char.machine

	b.WriteString(titleStyle.Render("framefsm demo"))
	b.WriteString("\n\n")

	b.WriteString(stateStyle.Render(fmt.Sprintf("state: %s (%.2fs)", mach.CurrentState(), mach.StateTime())))
	b.WriteString("\n")

	if prev, ok := mach.PreviousState(); ok {
		b.WriteString(dimStyle.Render("previous: " + string(prev)))
		b.WriteString("\n")
	}

	if mach.Locked() {
		b.WriteString(lockedStyle.Render("transitions locked"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("health"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().PaddingLeft(4).Render(m.health.ViewAs(m.char.health / maxHealth)))
	b.WriteString("\n\n")

	for _, line := range m.char.log {
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space: run/stop • h: take a hit • l: toggle lock • q: quit"))
	b.WriteString("\n")

	return b.String()
}
