package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// updateDeck handles key events in the deck view.
func (m model) updateDeck(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc", "escape":
		m.stopBackground()
		return m, tea.Quit
	case "j", "down":
		if m.cursor < m.bound-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "G":
		if m.bound > 0 {
			m.cursor = m.bound - 1
		}
	case "g":
		m.cursor = 0
	case "r":
		return m, scanCmd(m.source)
	case "i":
		if task := m.selectedTask(); task != nil {
			m.view = viewInspect
			m.inspect = task
		}
	case "enter":
		if m.cursor < m.bound {
			m.binder.Activate(m.slots[m.cursor])
		}
		if cmd := m.launcher.take(); cmd != nil {
			return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
				return execFinishedMsg{err: err}
			})
		}
	}
	return m, nil
}

// updateInspect handles key events in the inspect view.
func (m model) updateInspect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "escape", "i", "backspace":
		m.view = viewDeck
		m.inspect = nil
	case "ctrl+c":
		m.stopBackground()
		return m, tea.Quit
	case "enter":
		if m.inspect != nil {
			// Launch through the slot still showing this session, if any.
			if slot := m.binder.Attached(m.inspect.Key()); slot != nil {
				m.binder.Activate(slot)
			}
		}
		if cmd := m.launcher.take(); cmd != nil {
			m.view = viewDeck
			m.inspect = nil
			return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
				return execFinishedMsg{err: err}
			})
		}
	}
	return m, nil
}
