// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package tui

import (
	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# sheetview

A minimal render-frame inspector: it drives the render-frame adapter and
paints what the view layer would receive, with zero additional formatting.

- **arrows / hjkl** — scroll
- **+ / -** — zoom in / out
- **g** — jump to a cell (row, column)
- **?** — toggle this help
- **q** — quit

Cells with a bold format are rendered bold, except error and frozen
cells, which keep their own style. Conditional-formatting data
bars print an inline percentage. Merge anchors span their full column
width; merge children are already elided by the adapter.
`

// helpView renders helpMarkdown through glamour at the current viewport
// width, building a fresh renderer each call: simple over cached, since
// this is a development tool, not a hot path.
func (m *Model) helpView() string {
	width := m.width - 8
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return m.styles.HelpOverlay.Render(out)
}
