// Package tui holds the interactive terminal prompts used by the CLI:
// a multi-select skill picker and a yes/no confirmation dialog.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/matoous/skil/internal/core"
)

// ErrPickerCancelled is returned when the user backs out of the picker.
var ErrPickerCancelled = fmt.Errorf("selection cancelled")

type pickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

var pickerKeys = pickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle all"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "install"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

type pickerModel struct {
	skills    []core.Skill
	cursor    int
	selected  map[int]bool
	confirmed bool
	width     int
}

func newPickerModel(skills []core.Skill) pickerModel {
	return pickerModel{
		skills:   skills,
		selected: make(map[int]bool),
		width:    80,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, pickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, pickerKeys.Down):
			if m.cursor < len(m.skills)-1 {
				m.cursor++
			}
		case key.Matches(msg, pickerKeys.Toggle):
			m.selected[m.cursor] = !m.selected[m.cursor]
		case key.Matches(msg, pickerKeys.All):
			all := len(m.selected) == len(m.skills)
			for i := range m.skills {
				m.selected[i] = !all
			}
			if all {
				m.selected = make(map[int]bool)
			}
		case key.Matches(msg, pickerKeys.Confirm):
			m.confirmed = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Quit):
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := titleStyle.Render("skil") + "  " +
		mutedStyle.Render("select skills to install") + "\n\n"

	for i, skill := range m.skills {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := mutedStyle.Render("[ ]")
		if m.selected[i] {
			mark = selectedMarkStyle.Render("[x]")
		}
		name := itemStyle.Render(skill.Name)
		if i == m.cursor {
			name = focusedItemStyle.Render(skill.Name)
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, name)
		if skill.Description != "" {
			line += "  " + mutedStyle.Render(ansi.Truncate(skill.Description, max(10, m.width-len(skill.Name)-10), "…"))
		}
		s += line + "\n"
	}

	s += "\n" + helpStyle.Render("space toggle • a all • enter install • esc cancel")
	return s
}

// PickSkills runs the interactive multi-select picker and returns the chosen
// skills. Cancelling returns ErrPickerCancelled; confirming with nothing
// toggled selects the skill under the cursor.
func PickSkills(skills []core.Skill) ([]core.Skill, error) {
	final, err := tea.NewProgram(newPickerModel(skills)).Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}

	m := final.(pickerModel)
	if !m.confirmed {
		return nil, ErrPickerCancelled
	}

	var picked []core.Skill
	for i, skill := range skills {
		if m.selected[i] {
			picked = append(picked, skill)
		}
	}
	if len(picked) == 0 {
		picked = append(picked, skills[m.cursor])
	}
	return picked, nil
}
