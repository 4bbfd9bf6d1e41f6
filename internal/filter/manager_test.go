// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

// buildSheet is a small three-row sheet: column 0 holds a category string,
// column 1 holds a number.
//
//	row 0: "A", 5
//	row 1: "B", 15
//	row 2: "A", 25
func buildSheet(t *testing.T) *store.CellStore {
	t.Helper()
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.StringValue("A")}))
	require.NoError(t, s.Set(0, 1, model.Cell{Value: model.NumberValue(5)}))
	require.NoError(t, s.Set(1, 0, model.Cell{Value: model.StringValue("B")}))
	require.NoError(t, s.Set(1, 1, model.Cell{Value: model.NumberValue(15)}))
	require.NoError(t, s.Set(2, 0, model.Cell{Value: model.StringValue("A")}))
	require.NoError(t, s.Set(2, 1, model.Cell{Value: model.NumberValue(25)}))
	return s
}

func TestS1FilterANDAcrossColumns(t *testing.T) {
	s := store.New()
	fruit := []string{"apple", "banana", "apricot"}
	amount := []float64{15, 25, 5}
	for i := range fruit {
		require.NoError(t, s.Set(int64(i), 0, model.Cell{Value: model.StringValue(fruit[i])}))
		require.NoError(t, s.Set(int64(i), 1, model.Cell{Value: model.NumberValue(amount[i])}))
	}
	m := NewManager(StoreDataSource{Store: s})

	require.NoError(t, m.ApplyFilter(0, NewTextContains("ap")))
	require.NoError(t, m.ApplyFilter(1, NewNumberGT(10)))

	assert.Equal(t, []int64{0}, m.GetFilteredRows())
}

func TestGetFilteredRowsNoFiltersReturnsWholeUsedRange(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	assert.Equal(t, []int64{0, 1, 2}, m.GetFilteredRows())
}

func TestClearFilterRestoresWiderResult(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	assert.Equal(t, []int64{0, 2}, m.GetFilteredRows())

	m.ClearFilter(0)
	assert.Equal(t, []int64{0, 1, 2}, m.GetFilteredRows())
}

func TestClearAllFiltersResets(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	require.NoError(t, m.ApplyFilter(1, NewNumberGT(100)))
	assert.Empty(t, m.GetFilteredRows())

	m.ClearAllFilters()
	assert.Equal(t, []int64{0, 1, 2}, m.GetFilteredRows())
}

// TestFilterCacheVersionMonotonic is testable property 6: the cache is
// invalidated and the version counter strictly increases on every mutation,
// and repeated reads without mutation don't bump it.
func TestFilterCacheVersionMonotonic(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	v0 := m.GetSnapshot()
	_ = m.GetFilteredRows()
	_ = m.GetFilteredRows()
	assert.Equal(t, v0, m.GetSnapshot(), "reads alone must not bump the version")

	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	v1 := m.GetSnapshot()
	assert.Greater(t, v1, v0)

	m.ClearAllFilters()
	v2 := m.GetSnapshot()
	assert.Greater(t, v2, v1)

	m.InvalidateCache()
	assert.Greater(t, m.GetSnapshot(), v2)
}

// TestFilterCacheReturnsSameSliceUntilInvalidated is testable property 6's
// other half: GetFilteredRows is cached by reference between mutations.
func TestFilterCacheReturnsSameSliceUntilInvalidated(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	first := m.GetFilteredRows()
	second := m.GetFilteredRows()
	require.Len(t, first, 3)
	first[0] = 99 // mutate the cached backing array directly
	assert.Equal(t, int64(99), second[0], "second call must observe the same backing array")

	require.NoError(t, m.ApplyFilter(1, NewNumberGT(0)))
	third := m.GetFilteredRows()
	assert.Equal(t, []int64{0, 1, 2}, third)
}

// TestSubscribeNotifiesOnMutationOnly is testable property 5: subscribers
// fire synchronously after every mutation, and an unsubscribe mid-notify
// only takes effect on the next round.
func TestSubscribeNotifiesOnMutationOnly(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	var aCalls, bCalls int
	var unsubB func()
	m.Subscribe(func() { aCalls++ })
	unsubB = m.Subscribe(func() { bCalls++ })

	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	assert.Equal(t, 1, aCalls)
	assert.Equal(t, 1, bCalls)

	unsubB()
	require.NoError(t, m.ApplyFilter(1, NewNumberGT(0)))
	assert.Equal(t, 2, aCalls)
	assert.Equal(t, 1, bCalls, "unsubscribed listener must not fire on a later notification")
}

func TestSubscribeUnsubscribeDuringNotificationAffectsNextRoundOnly(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})

	var laterCalls int
	var unsubLater func()
	m.Subscribe(func() { unsubLater() })
	unsubLater = nil
	// Register "earlier" after, so its unsubscribe closure is assigned
	// before "later" fires in the same pass.
	earlierUnsub := m.Subscribe(func() {})
	unsubLater = m.Subscribe(func() { laterCalls++ })
	_ = earlierUnsub

	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	assert.Equal(t, 1, laterCalls, "the listener fires in the round that triggers its own unsubscribe")

	require.NoError(t, m.ApplyFilter(1, NewNumberGT(0)))
	assert.Equal(t, 1, laterCalls, "unsubscribe takes effect starting the next round")
}

func TestIsRowVisible(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})
	require.NoError(t, m.ApplyFilter(1, NewNumberGTE(15)))

	assert.False(t, m.IsRowVisible(0))
	assert.True(t, m.IsRowVisible(1))
	assert.True(t, m.IsRowVisible(2))
}

func TestGetRowsIncludeHiddenIgnoresFilters(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})
	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))

	assert.Equal(t, []int64{0, 2}, m.GetRows(false))
	assert.Equal(t, []int64{0, 1, 2}, m.GetRows(true))
	assert.Equal(t, []int64{0, 1, 2}, m.GetAllRows())
}

// An unfiltered store over-counts empty rows inside the used-range
// bounding box unless occupiedOnly is requested and the source supports it.
func TestGetFilteredRowCountOccupiedOnly(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.NumberValue(1)}))
	// Row 5 is occupied; rows 1-4 sit inside the bounding box but are empty.
	require.NoError(t, s.Set(5, 0, model.Cell{Value: model.NumberValue(1)}))
	m := NewManager(StoreDataSource{Store: s})

	assert.Equal(t, int64(6), m.GetFilteredRowCount(false))
	assert.Equal(t, int64(2), m.GetFilteredRowCount(true))
}

func TestGetFilteredRowCountWithActiveFilterIgnoresOccupiedOnlyFlag(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})
	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))

	assert.Equal(t, int64(2), m.GetFilteredRowCount(false))
	assert.Equal(t, int64(2), m.GetFilteredRowCount(true))
}

// TestPredicateSerializeDeserializeRoundTrip is testable property 7.
func TestPredicateSerializeDeserializeRoundTrip(t *testing.T) {
	s := buildSheet(t)
	m := NewManager(StoreDataSource{Store: s})
	require.NoError(t, m.ApplyFilter(0, NewTextEquals("A")))
	require.NoError(t, m.ApplyFilter(1, NewNumberBetween(0, 20)))

	wire := m.Serialize()

	restored := NewManager(StoreDataSource{Store: s})
	require.NoError(t, restored.Deserialize(wire))

	assert.Equal(t, m.GetFilteredRows(), restored.GetFilteredRows())
}

func TestDeserializeUnknownTagErrors(t *testing.T) {
	_, err := Deserialize(SerializedPredicate{Type: "text.frobnicate"})
	require.Error(t, err)
	var engErr *model.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, model.KindUnknownPredicateType, engErr.Kind)
}

func TestNormalizeTagAcceptsLooseCasing(t *testing.T) {
	assert.Equal(t, "text.contains", NormalizeTag("TextContains"))
	assert.Equal(t, "text.contains", NormalizeTag("text_contains"))
}

func BenchmarkGetFilteredRowsOneMillionRows(b *testing.B) {
	s := store.New()
	for i := int64(0); i < 1_000_000; i++ {
		_ = s.Set(i, 0, model.Cell{Value: model.NumberValue(float64(i))})
	}
	m := NewManager(StoreDataSource{Store: s})
	require.NoError(b, m.ApplyFilter(0, NewNumberLT(500_000)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.InvalidateCache()
		m.GetFilteredRows()
	}
}
