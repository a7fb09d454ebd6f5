package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmYesKey = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "confirm"),
	)
	confirmNoKey = key.NewBinding(
		key.WithKeys("n", "N", "esc", "ctrl+c"),
		key.WithHelp("n", "cancel"),
	)
	confirmSwitchKey = key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
	)
	confirmEnterKey = key.NewBinding(
		key.WithKeys("enter"),
	)
)

type confirmModel struct {
	message  string
	focusYes bool // defaults to No, the safe choice for destructive actions
	answered bool
	answer   bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmYesKey):
		m.answered, m.answer = true, true
		return m, tea.Quit
	case key.Matches(keyMsg, confirmNoKey):
		m.answered, m.answer = true, false
		return m, tea.Quit
	case key.Matches(keyMsg, confirmEnterKey):
		m.answered, m.answer = true, m.focusYes
		return m, tea.Quit
	case key.Matches(keyMsg, confirmSwitchKey):
		m.focusYes = !m.focusYes
	}
	return m, nil
}

func (m confirmModel) View() string {
	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	return m.message + "\n\n" + buttons + "\n"
}

// Confirm asks a yes/no question. The No button has focus initially, and
// cancelling counts as No.
func Confirm(message string) (bool, error) {
	final, err := tea.NewProgram(confirmModel{message: message}).Run()
	if err != nil {
		return false, fmt.Errorf("running confirm dialog: %w", err)
	}
	m := final.(confirmModel)
	return m.answered && m.answer, nil
}
