// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Styles bundles the lipgloss styles the inspector paints with. Colors use
// lipgloss.AdaptiveColor so the grid reads correctly on light and dark
// terminal backgrounds.
type Styles struct {
	Header      lipgloss.Style
	StatusBar   lipgloss.Style
	ColHeader   lipgloss.Style
	RowHeader   lipgloss.Style
	Cell        lipgloss.Style
	CellBold    lipgloss.Style
	FrozenCell  lipgloss.Style
	MergedCell  lipgloss.Style
	DataBar     lipgloss.Style
	ErrorCell   lipgloss.Style
	HelpOverlay lipgloss.Style
}

// DefaultStyles builds the inspector's style set.
func DefaultStyles() Styles {
	border := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"}
	accent := lipgloss.AdaptiveColor{Light: "#0072B2", Dark: "#56B4E9"}
	danger := lipgloss.AdaptiveColor{Light: "#CC3311", Dark: "#D55E00"}

	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		StatusBar:  lipgloss.NewStyle().Faint(true),
		ColHeader:  lipgloss.NewStyle().Bold(true).Foreground(accent).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(border),
		RowHeader:  lipgloss.NewStyle().Faint(true).Align(lipgloss.Right),
		Cell:       lipgloss.NewStyle().Padding(0, 1),
		CellBold:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		FrozenCell: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}),
		MergedCell: lipgloss.NewStyle().Padding(0, 1).Underline(true),
		DataBar:    lipgloss.NewStyle().Foreground(accent),
		ErrorCell:  lipgloss.NewStyle().Padding(0, 1).Foreground(danger),
		HelpOverlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
	}
}
