// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package render implements the render-frame adapter: it
// reads the cell store, merge manager, and conditional-formatting engine
// through a single viewport description and emits one stateless RenderFrame
// per call. It holds no state of its own between calls.
package render

import (
	"time"

	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/model"
)

// Viewport is the visible pixel area, independent of zoom.
type Viewport struct {
	Width  float64
	Height float64
}

// Scroll is the current scroll offset in unzoomed pixels.
type Scroll struct {
	X float64
	Y float64
}

// Freeze is the frozen row/column counts, measured from (0, 0).
type Freeze struct {
	Rows int64
	Cols int64
}

// Overscan is the extra row/column count rendered beyond the strict viewport
// on each side, to absorb fast scrolling without a visible pop-in.
type Overscan struct {
	Rows int64
	Cols int64
}

// HeaderSizes is the pixel size of the row-number gutter (Width) and the
// column-letter header strip (Height). Cell and freeze-line coordinates are
// offset past them so the view paints the frame without any translation.
type HeaderSizes struct {
	Width  float64
	Height float64
}

// Bounds is a width/height pair in pixels.
type Bounds struct {
	Width  float64
	Height float64
}

// FreezeLines gives the pixel position of the frozen-row/frozen-column
// boundary, or nil when there is no freeze on that axis.
type FreezeLines struct {
	Horizontal *float64
	Vertical   *float64
}

// RowPosition is one row's vertical placement and metadata.
type RowPosition struct {
	Row    int64
	Top    float64
	Height float64
	Frozen bool
	Hidden bool
}

// ColPosition is one column's horizontal placement and metadata.
type ColPosition struct {
	Col    int64
	Left   float64
	Width  float64
	Frozen bool
	Hidden bool
}

// ConditionalOverlay carries the non-format conditional-formatting outputs
// that a view renders outside the cell's CellFormat: a data bar, an icon, or
// the raw scale color (duplicated here for views that want to animate it
// separately from the merged format).
type ConditionalOverlay struct {
	FormatOverrides *model.CellFormat
	DataBar         *condfmt.DataBarOutput
	Icon            *condfmt.IconOutput
	ColorScale      string
}

// RenderCell is a derived, stateless record: an absolutely-positioned,
// fully-formatted, merge-resolved cell ready to paint with zero further
// computation by the view.
type RenderCell struct {
	Row    int64
	Col    int64
	X      float64
	Y      float64
	Width  float64
	Height float64

	DisplayValue string
	ValueType    model.ValueKind
	RichText     []model.FormatRun

	Format            *model.CellFormat
	ConditionalFormat *ConditionalOverlay
	Validation        any

	RowSpan int
	ColSpan int

	FrozenRow bool
	FrozenCol bool
}

// RenderFrame is the adapter's sole output, matching the wire
// contract.
type RenderFrame struct {
	Cells         []RenderCell
	Rows          []RowPosition
	Columns       []ColPosition
	Scroll        Scroll
	ContentBounds Bounds
	VisibleRange  model.Range
	FreezeLines   FreezeLines
	Timestamp     time.Time
	Zoom          float64
}
