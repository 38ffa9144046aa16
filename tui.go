package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TUI message types
type ReadingMsg struct {
	Percent int
	State   string
}
type StatusMsg struct{ Text string }
type tickMsg time.Time

type tuiModel struct {
	percent       int
	state         string
	hasReading    bool
	statusLine    string
	lastUpdate    time.Time
	width, height int
}

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	stateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	barFill    = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	barFillLow = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	barFillMid = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	barTrack   = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
)

func NewTUIProgram() *tea.Program {
	return tea.NewProgram(tuiModel{}, tea.WithAltScreen())
}

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func tuiTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tickMsg:
		return m, tuiTick()

	case ReadingMsg:
		m.percent = msg.Percent
		m.state = msg.State
		m.hasReading = true
		m.statusLine = ""
		m.lastUpdate = time.Now()

	case StatusMsg:
		m.statusLine = msg.Text
	}
	return m, nil
}

func (m tuiModel) percentStyle() lipgloss.Style {
	switch {
	case m.percent < 20:
		return barFillLow
	case m.percent < 50:
		return barFillMid
	}
	return barFill
}

func (m tuiModel) gaugeBar(width int) string {
	filled := m.percent * width / 100
	var b strings.Builder
	b.WriteString(m.percentStyle().Render(strings.Repeat("█", filled)))
	b.WriteString(barTrack.Render(strings.Repeat("░", width-filled)))
	return b.String()
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var lines []string
	lines = append(lines, titleStyle.Render("battray "+version))
	lines = append(lines, "")

	if !m.hasReading {
		lines = append(lines, stateStyle.Render("waiting for battery reading..."))
	} else {
		pct := m.percentStyle().Bold(true).Render(fmt.Sprintf("%3d%%", m.percent))
		lines = append(lines, pct+"  "+m.gaugeBar(30))
		lines = append(lines, stateStyle.Render(m.state))
		age := time.Since(m.lastUpdate).Round(time.Second)
		lines = append(lines, stateStyle.Render(fmt.Sprintf("last change %s ago", age)))
	}

	if m.statusLine != "" {
		lines = append(lines, "")
		lines = append(lines, errStyle.Render("⚠ "+m.statusLine))
	}

	lines = append(lines, "")
	lines = append(lines, helpStyle.Render("q to quit"))

	body := strings.Join(lines, "\n")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
