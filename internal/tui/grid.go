// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/render"
)

const (
	colCharWidth = 12
	rowHeaderW   = 6
)

// renderGrid builds the current RenderFrame and paints it as a fixed-width
// character grid: one lipgloss-styled cell per RenderCell, row-headers on
// the left, column-headers on top. Merge-spanning cells print once at
// their anchor column, colSpan cell-widths wide, and the columns they
// cover are skipped, mirroring how the cells were already elided by the
// adapter.
func (m *Model) renderGrid() string {
	frame := m.buildFrame()
	if len(frame.Cells) == 0 {
		return m.styles.StatusBar.Render(fmt.Sprintf("(no occupied cells in visible range %s)", rangeString(frame.VisibleRange)))
	}

	byRow := map[int64][]render.RenderCell{}
	for _, c := range frame.Cells {
		byRow[c.Row] = append(byRow[c.Row], c)
	}
	rows := make([]int64, 0, len(byRow))
	for r := range byRow {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })

	cols := make([]int64, 0, len(frame.Columns))
	for _, c := range frame.Columns {
		cols = append(cols, c.Col)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowHeaderW))
	for _, c := range cols {
		b.WriteString(m.styles.ColHeader.Width(colCharWidth).Render(colLetters(c)))
	}
	b.WriteString("\n")

	for _, r := range rows {
		b.WriteString(m.styles.RowHeader.Width(rowHeaderW).Render(humanize.Comma(r)))
		cellByCol := map[int64]render.RenderCell{}
		for _, c := range byRow[r] {
			cellByCol[c.Col] = c
		}
		skip := map[int64]bool{}
		for _, c := range cols {
			if skip[c] {
				continue
			}
			rc, ok := cellByCol[c]
			if !ok {
				b.WriteString(strings.Repeat(" ", colCharWidth))
				continue
			}
			if rc.ColSpan > 1 {
				for k := int64(1); k < int64(rc.ColSpan); k++ {
					skip[c+k] = true
				}
			}
			b.WriteString(m.renderCellText(rc))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderCellText styles one RenderCell's display value according to its
// resolved format and conditional-format overlay.
func (m *Model) renderCellText(rc render.RenderCell) string {
	style := m.styles.Cell
	switch {
	case rc.ValueType == model.ValueError:
		style = m.styles.ErrorCell
	case rc.FrozenRow || rc.FrozenCol:
		style = m.styles.FrozenCell
	case rc.Format != nil && rc.Format.Bold:
		style = m.styles.CellBold
	case rc.ColSpan > 1 || rc.RowSpan > 1:
		style = m.styles.MergedCell
	}

	text := rc.DisplayValue
	if rc.ConditionalFormat != nil && rc.ConditionalFormat.DataBar != nil {
		text = fmt.Sprintf("%s %.0f%%", text, rc.ConditionalFormat.DataBar.Percent)
		style = m.styles.DataBar
	}
	width := colCharWidth
	if rc.ColSpan > 1 {
		width = colCharWidth * rc.ColSpan
	}
	text = ansi.Truncate(text, width-1, "…")
	return style.Width(width).MaxWidth(width).Render(text)
}

func rangeString(r model.Range) string {
	return fmt.Sprintf("%s%d:%s%d", colLetters(r.StartCol), r.StartRow, colLetters(r.EndCol), r.EndRow)
}

// colLetters is the base-26 A=0 column codec the formula adjuster also
// uses for relative references, reused here purely for display.
func colLetters(col int64) string {
	if col < 0 {
		return ""
	}
	var b []byte
	col++
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}
