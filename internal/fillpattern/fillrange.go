// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fillpattern

import "github.com/arborgrid/sheetcore/internal/model"

// ColumnFill is one column's (or row's, for horizontal fills) generated
// sequence, identified by its index within the target range.
type ColumnFill struct {
	Index int
	Cells []GeneratedCell
}

// FillRange implements the "Range fill": vertical directions
// (down/up) analyze and generate each column of sourceByLine independently;
// horizontal directions (right/left) do the same per row. sourceByLine is
// keyed by column index for vertical fills, by row index for horizontal.
func FillRange(sourceByLine map[int][]model.Cell, targetLen int, direction Direction, lists *ListRegistry) []ColumnFill {
	out := make([]ColumnFill, 0, len(sourceByLine))
	for idx, cells := range sourceByLine {
		pattern := Analyze(cells, lists)
		generated := Generate(pattern, cells, targetLen, direction, lists)
		out = append(out, ColumnFill{Index: idx, Cells: generated})
	}
	return out
}
