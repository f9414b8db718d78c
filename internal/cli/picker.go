package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/valter-silva-au/ztask/internal/integration"
	"github.com/valter-silva-au/ztask/pkg/models"
)

var (
	pickerTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	pickerCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	pickerHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type pickerModel struct {
	tasks    []models.Task
	r        *renderer
	cursor   int
	chosen   string
	quitting bool
}

func newPickerModel(tasks []models.Task, r *renderer) pickerModel {
	return pickerModel{tasks: tasks, r: r}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.tasks) - 1
	case "enter":
		m.chosen = m.tasks[m.cursor].ID
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting || m.chosen != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.r.paint(pickerTitleStyle, "Pick a task to start"))
	b.WriteString("\n\n")
	for i, t := range m.tasks {
		marker := " "
		if i == m.cursor {
			marker = m.r.paint(pickerCursorStyle, ">")
		}
		b.WriteString(marker)
		b.WriteString(m.r.oneLine(t, true))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.r.paint(pickerHelpStyle, "up/down: move | enter: start | q: cancel"))
	b.WriteString("\n")
	return b.String()
}

// pickTask lets the user choose one of tasks. It returns "" when the user
// cancels.
func pickTask(tasks []models.Task, r *renderer) (string, error) {
	if len(tasks) == 0 {
		return "", fmt.Errorf("no tasks to pick from")
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", integration.ErrNotInteractive
	}

	final, err := tea.NewProgram(newPickerModel(tasks, r), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("running task picker: %w", err)
	}
	return final.(pickerModel).chosen, nil
}
