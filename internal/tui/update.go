package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bdtax/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if err := m.saver.Flush(); err != nil {
			m.logger.Errorf("failed to save state: %v", err)
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.saver.Trigger(m.input.Clone())
		if err := m.saver.Flush(); err != nil {
			m.status, m.warn = "Save failed: "+err.Error(), true
		} else {
			m.status, m.warn = "Saved", false
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.fields[m.focus].blur()
		m.input = domain.DefaultTaxInput()
		m.fields = buildFields(m.input)
		m.focus = 0
		m.fields[0].focus()
		m.recalculate()
		m.saver.Trigger(m.input.Clone())
		m.status, m.warn = "Reset to defaults", false
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	f := &m.fields[m.focus]
	if f.kind == choiceField {
		switch {
		case key.Matches(msg, m.keys.Left):
			f.cycle(-1)
			m.changed()
		case key.Matches(msg, m.keys.Right):
			f.cycle(1)
			m.changed()
		}
		return m, nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		m.changed()
	}
	return m, cmd
}
