// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// startGotoForm opens the "jump to cell" prompt: two numeric fields bound
// to m.gotoRow/m.gotoCol as a single-purpose huh.Form.
func (m *Model) startGotoForm() {
	m.goingTo = true
	m.gotoRow = "0"
	m.gotoCol = "0"
	m.gotoForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Row").Value(&m.gotoRow),
			huh.NewInput().Title("Column").Value(&m.gotoCol),
		),
	).WithShowHelp(false).WithShowErrors(false)
}

// updateGotoForm forwards a key message to the active huh.Form, and on
// completion scrolls the viewport to the requested cell. Esc closes the
// form without scrolling.
func (m *Model) updateGotoForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.goingTo = false
		return m, nil
	}

	form, cmd := m.gotoForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.gotoForm = f
	}

	if m.gotoForm.State == huh.StateCompleted {
		m.goingTo = false
		row, errRow := strconv.ParseInt(m.gotoRow, 10, 64)
		col, errCol := strconv.ParseInt(m.gotoCol, 10, 64)
		if errRow != nil || errCol != nil || row < 0 || col < 0 {
			m.statusText = "goto: row/col must be non-negative integers"
			return m, nil
		}
		m.scrollY = float64(row) * 20
		m.scrollX = float64(col) * 80
		m.statusText = ""
		return m, nil
	}
	return m, cmd
}
