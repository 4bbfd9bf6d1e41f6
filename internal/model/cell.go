// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package model

// CellRef addresses a single (row, col) cell.
type CellRef struct {
	Row int64
	Col int64
}

// MergeSpan records the dimensions of a merge as stored on its anchor cell.
type MergeSpan struct {
	RowSpan int
	ColSpan int
}

// Cell is the full record held by the sparse store. A cell is
// a merge anchor iff Merge != nil and a merge child iff MergeParent != nil;
// the two are kept mutually exclusive by the merge manager, not by this
// struct, so callers assembling a Cell by hand must preserve the invariant
// themselves.
type Cell struct {
	Value       CellValue
	Formula     string
	Format      *CellFormat
	Borders     *CellBorders
	Merge       *MergeSpan
	MergeParent *CellRef
	Validation  any
}

// IsEmptyCell reports whether a cell has no value, formula, format, borders,
// or merge metadata -- the condition under which the sparse store deletes
// the entry on write.
func (c Cell) IsEmptyCell() bool {
	return c.Value.IsEmpty() && c.Formula == "" && c.Format == nil &&
		c.Borders == nil && c.Merge == nil && c.MergeParent == nil
}

// Clone deep-copies a cell, including its value's rich-text runs, its
// format, and its borders. Required before handing a cell to a caller that
// might mutate it (fill generation, format painting).
func (c Cell) Clone() Cell {
	cp := c
	cp.Value = c.Value.Clone()
	cp.Format = c.Format.Clone()
	cp.Borders = c.Borders.Clone()
	if c.Merge != nil {
		m := *c.Merge
		cp.Merge = &m
	}
	if c.MergeParent != nil {
		r := *c.MergeParent
		cp.MergeParent = &r
	}
	return cp
}
