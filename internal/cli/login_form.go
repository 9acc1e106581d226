package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errLoginCancelled is returned when the user aborts the interactive form.
var errLoginCancelled = errors.New("login cancelled")

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// loginFormModel is the Bubble Tea model for the interactive login prompt.
// It collects an email and a masked password; enter on the password field
// submits, esc cancels.
type loginFormModel struct {
	fields    [fieldCount]string
	focus     int
	submitted bool
	cancelled bool
}

// runLoginForm prompts for credentials interactively. A non-empty email
// pre-fills the first field so '--email' alone still skips typing it.
func runLoginForm(email string) (string, string, error) {
	model := loginFormModel{}
	model.fields[fieldEmail] = email
	if email != "" {
		model.focus = fieldPassword
	}

	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return "", "", fmt.Errorf("login prompt failed: %w", err)
	}

	result := final.(loginFormModel)
	if result.cancelled || !result.submitted {
		return "", "", errLoginCancelled
	}
	return result.fields[fieldEmail], result.fields[fieldPassword], nil
}

// Init implements the Bubble Tea init method
func (m loginFormModel) Init() tea.Cmd {
	return nil
}

// Update implements the Bubble Tea update method
func (m loginFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "enter":
		if m.focus < fieldCount-1 {
			m.focus++
			return m, nil
		}
		if m.fields[fieldEmail] == "" || m.fields[fieldPassword] == "" {
			return m, nil
		}
		m.submitted = true
		return m, tea.Quit

	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m, nil

	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil

	case "backspace":
		current := m.fields[m.focus]
		if current != "" {
			m.fields[m.focus] = current[:len(current)-1]
		}
		return m, nil
	}

	if keyMsg.Type == tea.KeyRunes {
		m.fields[m.focus] += string(keyMsg.Runes)
	}
	return m, nil
}

// View implements the Bubble Tea view method
func (m loginFormModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86")).
		Render("🔐 Geoffray Login")

	rows := []string{
		title,
		"",
		m.renderField("Email", m.fields[fieldEmail], m.focus == fieldEmail),
		m.renderField("Password", strings.Repeat("•", len(m.fields[fieldPassword])), m.focus == fieldPassword),
		"",
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Render("Controls: [Tab] Switch field | [Enter] Submit | [Esc] Cancel"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

// renderField renders a labelled input line with a cursor on the focused field.
func (m loginFormModel) renderField(label, value string, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if focused {
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
		value += lipgloss.NewStyle().Blink(true).Render("▌")
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-9s", label+":")), value)
}
