package spinner

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

// StageDoneMsg tells the spinner a detection stage finished
type StageDoneMsg struct {
	Name string
}

// DoneMsg stops the spinner
type DoneMsg struct{}

var stageLabels = map[string]string{
	"detectPackageManager": "package manager",
	"detectWorkspaces":     "workspace",
	"detectBuildSystems":   "build systems",
	"detectFrameworks":     "frameworks",
	"detectSettings":       "build settings",
}

// nextStage maps a finished stage to the one that runs after it
var nextStage = map[string]string{
	"detectPackageManager": "detectWorkspaces",
	"detectWorkspaces":     "detectBuildSystems",
	"detectBuildSystems":   "detectFrameworks",
	"detectFrameworks":     "detectSettings",
}

type model struct {
	spinner  spinner.Model
	quitting bool
	message  string
	done     []string
}

func InitialModel(message string) model {
	s := spinner.New()
	s.Spinner = spinner.Line
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6"))
	return model{
		spinner: s,
		message: message,
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			return m, nil
		}

	case StageDoneMsg:
		label, ok := stageLabels[msg.Name]
		if !ok {
			return m, nil
		}
		m.done = append(m.done, label)
		if next, ok := nextStage[msg.Name]; ok {
			m.message = fmt.Sprintf("Detecting %s...", stageLabels[next])
		}
		return m, nil

	case DoneMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	var str string
	for _, label := range m.done {
		str += doneStyle.Render("✓ ") + label + "\n"
	}
	if m.quitting {
		return str
	}
	return str + fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}
