// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborgrid/sheetcore/internal/fixtures"
)

func benchManager(b *testing.B, rows int64) *Manager {
	b.Helper()
	s, err := fixtures.NewFilledStore(rows, 42)
	require.NoError(b, err)
	return NewManager(StoreDataSource{Store: s})
}

func BenchmarkGetFilteredRowsOneMillionRowsNoPredicate(b *testing.B) {
	m := benchManager(b, 1_000_000)
	b.ResetTimer()
	for b.Loop() {
		m.InvalidateCache()
		_ = m.GetFilteredRows()
	}
}

func BenchmarkGetFilteredRowsOneMillionRowsTextPredicate(b *testing.B) {
	m := benchManager(b, 1_000_000)
	require.NoError(b, m.ApplyFilter(1, NewTextEquals("Engineering")))
	b.ResetTimer()
	for b.Loop() {
		m.InvalidateCache()
		_ = m.GetFilteredRows()
	}
}

func BenchmarkGetFilteredRowsOneMillionRowsNumberPredicate(b *testing.B) {
	m := benchManager(b, 1_000_000)
	require.NoError(b, m.ApplyFilter(2, NewNumberGT(50000)))
	b.ResetTimer()
	for b.Loop() {
		m.InvalidateCache()
		_ = m.GetFilteredRows()
	}
}
