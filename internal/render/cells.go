// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package render

import (
	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/model"
)

// buildRowPositions lays out frozen rows first (top always measured from
// row 0 past the column header, independent of scroll) then scrollable rows
// (top measured from the bottom of the frozen region, minus the scroll
// offset).
func buildRowPositions(frozen, scrollable []int64, sizer AxisSizer, hidden func(int64) bool, headerHeight, frozenHeight, scrollY float64) []RowPosition {
	out := make([]RowPosition, 0, len(frozen)+len(scrollable))
	for _, r := range frozen {
		out = append(out, RowPosition{
			Row: r, Top: headerHeight + offsetOf(sizer, 0, r), Height: sizer(r),
			Frozen: true, Hidden: hidden(r),
		})
	}
	freezeCount := int64(len(frozen))
	for _, r := range scrollable {
		top := headerHeight + frozenHeight + offsetOf(sizer, freezeCount, r) - scrollY
		out = append(out, RowPosition{
			Row: r, Top: top, Height: sizer(r),
			Frozen: false, Hidden: hidden(r),
		})
	}
	return out
}

func buildColPositions(frozen, scrollable []int64, sizer AxisSizer, hidden func(int64) bool, headerWidth, frozenWidth, scrollX float64) []ColPosition {
	out := make([]ColPosition, 0, len(frozen)+len(scrollable))
	for _, c := range frozen {
		out = append(out, ColPosition{
			Col: c, Left: headerWidth + offsetOf(sizer, 0, c), Width: sizer(c),
			Frozen: true, Hidden: hidden(c),
		})
	}
	freezeCount := int64(len(frozen))
	for _, c := range scrollable {
		left := headerWidth + frozenWidth + offsetOf(sizer, freezeCount, c) - scrollX
		out = append(out, ColPosition{
			Col: c, Left: left, Width: sizer(c),
			Frozen: false, Hidden: hidden(c),
		})
	}
	return out
}

func computeFreezeLines(freeze Freeze, headers HeaderSizes, frozenHeight, frozenWidth float64) FreezeLines {
	var lines FreezeLines
	if freeze.Rows > 0 {
		h := headers.Height + frozenHeight
		lines.Horizontal = &h
	}
	if freeze.Cols > 0 {
		w := headers.Width + frozenWidth
		lines.Vertical = &w
	}
	return lines
}

// positionRowIndex and positionColIndex key row/col metadata slices by index for O(1) lookup while
// emitting cells.
func positionRowIndex(rows []RowPosition) map[int64]RowPosition {
	out := make(map[int64]RowPosition, len(rows))
	for _, r := range rows {
		out[r.Row] = r
	}
	return out
}

func positionColIndex(cols []ColPosition) map[int64]ColPosition {
	out := make(map[int64]ColPosition, len(cols))
	for _, c := range cols {
		out[c.Col] = c
	}
	return out
}

// cellBuilder shares lookups across the four frozen/scrollable emission
// blocks of BuildFrame.
type cellBuilder struct {
	opts     BuildFrameOptions
	rowSizer AxisSizer
	colSizer AxisSizer
	rowPos   map[int64]RowPosition
	colPos   map[int64]ColPosition
	clock    condfmt.Clock
}

// buildBlock emits a RenderCell for every (row, col) pair in rows x cols,
// skipping hidden lines and merge-children, steps 2-4.
func (b *cellBuilder) buildBlock(rows, cols []int64, frozenRow, frozenCol bool) []RenderCell {
	var out []RenderCell
	for _, row := range rows {
		rp, ok := b.rowPos[row]
		if !ok || rp.Hidden {
			continue
		}
		for _, col := range cols {
			cp, ok := b.colPos[col]
			if !ok || cp.Hidden {
				continue
			}
			if cell, ok := b.buildCell(row, col, rp, cp, frozenRow, frozenCol); ok {
				out = append(out, cell)
			}
		}
	}
	return out
}

func (b *cellBuilder) buildCell(row, col int64, rp RowPosition, cp ColPosition, frozenRow, frozenCol bool) (RenderCell, bool) {
	if b.opts.Merges != nil && b.opts.Merges.IsMergedChild(row, col) {
		return RenderCell{}, false
	}

	cell := model.Cell{}
	if b.opts.Store != nil {
		if c, ok, _ := b.opts.Store.Get(row, col); ok {
			cell = c
		}
	}

	width, height := cp.Width, rp.Height
	rowSpan, colSpan := 1, 1
	if b.opts.Merges != nil {
		if info, ok := b.opts.Merges.GetMergeInfo(row, col); ok && info.Anchor.Row == row && info.Anchor.Col == col {
			rowSpan, colSpan = info.RowSpan, info.ColSpan
			height = offsetOf(b.rowSizer, row, row+int64(rowSpan))
			width = offsetOf(b.colSizer, col, col+int64(colSpan))
		}
	}

	format := cell.Format.Clone()
	var overlay *ConditionalOverlay
	if b.opts.CondFmt != nil {
		var stats *condfmt.RangeStatistics
		if b.opts.StatsFor != nil {
			stats = b.opts.StatsFor(row, col)
		}
		computed := b.opts.CondFmt.EvaluateCell(row, col, cell.Value, stats, b.clock)
		if len(computed.MatchedRules) > 0 {
			if format == nil {
				format = &model.CellFormat{}
			}
			if computed.Format != nil {
				format = format.MergeInto(computed.Format)
			}
			if computed.ColorScaleBackground != "" {
				format.Background = computed.ColorScaleBackground
			}
			overlay = &ConditionalOverlay{
				FormatOverrides: computed.Format,
				DataBar:         computed.DataBar,
				Icon:            computed.Icon,
				ColorScale:      computed.ColorScaleBackground,
			}
		}
	}

	nf := model.NumberFormat{}
	if format != nil {
		nf = format.NumberFormat
	}
	rc := RenderCell{
		Row: row, Col: col,
		X: cp.Left, Y: rp.Top, Width: width, Height: height,
		DisplayValue:      model.FormatDisplayValue(cell.Value, nf),
		ValueType:         cell.Value.Kind,
		Format:            format,
		ConditionalFormat: overlay,
		Validation:        cell.Validation,
		RowSpan:           rowSpan,
		ColSpan:           colSpan,
		FrozenRow:         frozenRow,
		FrozenCol:         frozenCol,
	}
	if cell.Value.Kind == model.ValueFormattedText {
		rc.RichText = model.CloneRuns(cell.Value.Runs)
	}
	return rc, true
}
