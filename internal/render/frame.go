// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package render

import (
	"time"

	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/merge"
	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

// BuildFrameOptions bundles every input BuildFrame needs: the viewport
// description plus the side indices the adapter reads through.
type BuildFrameOptions struct {
	Viewport Viewport
	Scroll   Scroll
	Zoom     float64
	Headers  HeaderSizes
	Freeze   Freeze
	Overscan Overscan

	RowSizer AxisSizer
	ColSizer AxisSizer

	Store   *store.CellStore
	Merges  *merge.Manager
	CondFmt *condfmt.Manager

	// StatsFor supplies the RangeStatistics a topBottom/colorScale/dataBar/
	// iconSet rule needs to evaluate (row, col); nil means those rule kinds
	// never match. The caller owns how statistics are scoped (per column,
	// per named range) since the adapter has no opinion on it.
	StatsFor func(row, col int64) *condfmt.RangeStatistics

	// HiddenRow/HiddenCol report rows/columns a filter or explicit hide
	// removed from view; both default to "nothing is hidden" when nil.
	HiddenRow func(row int64) bool
	HiddenCol func(col int64) bool

	Clock condfmt.Clock
}

func boolFalse(int64) bool { return false }

// BuildFrame implements the seven-step algorithm end to end,
// reading the store, merge manager, and conditional-formatting engine
// without mutating any of them, and returns a single immutable RenderFrame.
func BuildFrame(opts BuildFrameOptions) RenderFrame {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = 1
	}
	rowSizer, colSizer := opts.RowSizer, opts.ColSizer
	if rowSizer == nil {
		rowSizer = UniformSizer(DefaultRowHeight)
	}
	if colSizer == nil {
		colSizer = UniformSizer(DefaultColWidth)
	}
	hiddenRow, hiddenCol := opts.HiddenRow, opts.HiddenCol
	if hiddenRow == nil {
		hiddenRow = boolFalse
	}
	if hiddenCol == nil {
		hiddenCol = boolFalse
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	maxRow, maxCol := int64(-1), int64(-1)
	if opts.Store != nil {
		if used, ok := opts.Store.GetUsedRange(); ok {
			maxRow, maxCol = used.EndRow, used.EndCol
		}
	}

	viewW := (opts.Viewport.Width - opts.Headers.Width) / zoom
	viewH := (opts.Viewport.Height - opts.Headers.Height) / zoom
	if viewW < 0 {
		viewW = 0
	}
	if viewH < 0 {
		viewH = 0
	}

	// Step (1): visible range from cumulative tables, widened by overscan.
	rowStart, rowEnd := computeAxisRange(rowSizer, opts.Scroll.Y, viewH, opts.Overscan.Rows, opts.Freeze.Rows, maxRow)
	colStart, colEnd := computeAxisRange(colSizer, opts.Scroll.X, viewW, opts.Overscan.Cols, opts.Freeze.Cols, maxCol)

	frozenRows := axisRange(0, min64(opts.Freeze.Rows-1, maxRow))
	frozenCols := axisRange(0, min64(opts.Freeze.Cols-1, maxCol))
	scrollRows := axisRange(rowStart, rowEnd)
	scrollCols := axisRange(colStart, colEnd)

	frozenHeight := offsetOf(rowSizer, 0, opts.Freeze.Rows)
	frozenWidth := offsetOf(colSizer, 0, opts.Freeze.Cols)

	frame := RenderFrame{
		Scroll: opts.Scroll,
		Zoom:   zoom,
		VisibleRange: model.NewRange(
			min64OrZero(frozenRows, rowStart), min64OrZero(frozenCols, colStart),
			maxOf(rowEnd, lastOf(frozenRows)), maxOf(colEnd, lastOf(frozenCols)),
		),
		Timestamp: clock(),
	}

	// Step (6): row/column metadata and freeze-line positions.
	frame.Rows = buildRowPositions(frozenRows, scrollRows, rowSizer, hiddenRow, opts.Headers.Height, frozenHeight, opts.Scroll.Y)
	frame.Columns = buildColPositions(frozenCols, scrollCols, colSizer, hiddenCol, opts.Headers.Width, frozenWidth, opts.Scroll.X)
	frame.FreezeLines = computeFreezeLines(opts.Freeze, opts.Headers, frozenHeight, frozenWidth)
	frame.ContentBounds = Bounds{
		Width:  offsetOf(colSizer, 0, maxCol+1),
		Height: offsetOf(rowSizer, 0, maxRow+1),
	}

	rowPos := positionRowIndex(frame.Rows)
	colPos := positionColIndex(frame.Columns)

	b := &cellBuilder{
		opts:     opts,
		rowSizer: rowSizer,
		colSizer: colSizer,
		rowPos:   rowPos,
		colPos:   colPos,
		clock:    clock,
	}

	// Step (5): frozen-first, then scrollable, emission order, giving the
	// view an implicit z-order: frozen corner > frozen edge > scrollable.
	frame.Cells = append(frame.Cells, b.buildBlock(frozenRows, frozenCols, true, true)...)
	frame.Cells = append(frame.Cells, b.buildBlock(frozenRows, scrollCols, true, false)...)
	frame.Cells = append(frame.Cells, b.buildBlock(scrollRows, frozenCols, false, true)...)
	frame.Cells = append(frame.Cells, b.buildBlock(scrollRows, scrollCols, false, false)...)

	return frame
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func lastOf(indices []int64) int64 {
	if len(indices) == 0 {
		return -1
	}
	return indices[len(indices)-1]
}

func min64OrZero(frozen []int64, scrollStart int64) int64 {
	if len(frozen) > 0 {
		return 0
	}
	return scrollStart
}
