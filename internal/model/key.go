// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package model

// CellKeyBase (K in the glossary) must exceed the maximum supported
// column index (16384) so that row*K+col never collides at the column
// boundary. It is a package-level variable rather than a constant so
// internal/config can widen it for sheets with more than 16384 columns
// without touching call sites; the default matches the
// "K >= 16385" requirement exactly.
var CellKeyBase int64 = 16385

// CellKey returns the canonical scalar key for a (row, col) address.
func CellKey(row, col int64) int64 {
	return row*CellKeyBase + col
}

// SplitKey is the inverse of CellKey.
func SplitKey(key int64) (row, col int64) {
	row = key / CellKeyBase
	col = key % CellKeyBase
	return
}
