// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRowIsDeterministicForASeed(t *testing.T) {
	a := New(42).NextRow()
	b := New(42).NextRow()
	assert.Equal(t, a, b, "same seed must reproduce the same row")
}

func TestFillStorePopulatesFiveColumnsPerRow(t *testing.T) {
	s, err := NewFilledStore(10, 7)
	require.NoError(t, err)

	for r := int64(0); r < 10; r++ {
		for c := int64(0); c < 5; c++ {
			_, ok, _ := s.Get(r, c)
			assert.True(t, ok, "row %d col %d should be populated", r, c)
		}
	}
	used, ok := s.GetUsedRange()
	require.True(t, ok)
	assert.Equal(t, int64(9), used.EndRow)
	assert.Equal(t, int64(4), used.EndCol)
}

func TestColumnNamesMatchesRowShape(t *testing.T) {
	assert.Len(t, ColumnNames(), 5)
}

func TestMergeGridProducesOneBlockPerTwoByTwoRegion(t *testing.T) {
	s, blocks, err := MergeGrid(4, 4, 1)
	require.NoError(t, err)
	assert.Len(t, blocks, 4) // a 4x4 grid has four 2x2 blocks

	for _, b := range blocks {
		_, ok, _ := s.Get(b.StartRow, b.StartCol)
		assert.True(t, ok, "merge-grid anchor should hold a value")
	}
}
