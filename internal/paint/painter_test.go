// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborgrid/sheetcore/internal/model"
)

type fakeStore struct {
	formats map[[2]int64]*model.CellFormat
	borders map[[2]int64]*model.CellBorders
	runs    map[[2]int64][]model.FormatRun
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		formats: map[[2]int64]*model.CellFormat{},
		borders: map[[2]int64]*model.CellBorders{},
		runs:    map[[2]int64][]model.FormatRun{},
	}
}

func (s *fakeStore) GetFormat(row, col int64) (*model.CellFormat, bool) {
	f, ok := s.formats[[2]int64{row, col}]
	return f, ok
}

func (s *fakeStore) GetBorders(row, col int64) (*model.CellBorders, bool) {
	b, ok := s.borders[[2]int64{row, col}]
	return b, ok
}

func (s *fakeStore) GetCharacterFormats(row, col int64) ([]model.FormatRun, bool) {
	r, ok := s.runs[[2]int64{row, col}]
	return r, ok
}

func (s *fakeStore) SetFormat(row, col int64, format *model.CellFormat) error {
	s.formats[[2]int64{row, col}] = format
	return nil
}

func (s *fakeStore) SetBorders(row, col int64, borders *model.CellBorders) error {
	s.borders[[2]int64{row, col}] = borders
	return nil
}

func (s *fakeStore) SetCharacterFormats(row, col int64, runs []model.FormatRun) error {
	s.runs[[2]int64{row, col}] = runs
	return nil
}

// TestS6FormatPainterPersistent is the S6 scenario.
func TestS6FormatPainterPersistent(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{CharFormat: model.CharFormat{Bold: true}}

	p := New()
	p.Pick(store, model.SingleCell(0, 0), AllProperties(), true)
	assert.Equal(t, ModePersistent, p.Mode())

	require.NoError(t, p.Apply(store, model.SingleCell(1, 0)))
	require.NoError(t, p.Apply(store, model.SingleCell(2, 0)))

	f1, _ := store.GetFormat(1, 0)
	f2, _ := store.GetFormat(2, 0)
	require.NotNil(t, f1)
	require.NotNil(t, f2)
	assert.True(t, f1.Bold)
	assert.True(t, f2.Bold)
	assert.Equal(t, ModePersistent, p.Mode(), "painter remains active in persistent mode")

	p.Clear()
	assert.Equal(t, ModeInactive, p.Mode())
}

// TestFormatPainterTilingProperty is testable property 13: picking a 2x1
// source [F, G] and applying to a 1x4 target yields [F, G, F, G], each a
// fresh deep clone.
func TestFormatPainterTilingProperty(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{Background: "F"}
	store.formats[[2]int64{1, 0}] = &model.CellFormat{Background: "G"}

	p := New()
	p.Pick(store, model.NewRange(0, 0, 1, 0), AllProperties(), true)

	require.NoError(t, p.Apply(store, model.NewRange(0, 1, 3, 1)))

	want := []string{"F", "G", "F", "G"}
	for i, w := range want {
		f, ok := store.GetFormat(int64(i), 1)
		require.True(t, ok)
		assert.Equal(t, w, f.Background)
	}

	f0, _ := store.GetFormat(0, 1)
	f0.Background = "mutated"
	f2, _ := store.GetFormat(2, 1)
	assert.Equal(t, "F", f2.Background, "each applied cell must be an independent clone")
}

// TestFormatPainterSingleVsPersistent is testable property 14.
func TestFormatPainterSingleVsPersistent(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{CharFormat: model.CharFormat{Bold: true}}

	single := New()
	single.Pick(store, model.SingleCell(0, 0), AllProperties(), false)
	assert.Equal(t, ModeSingle, single.Mode())
	require.NoError(t, single.Apply(store, model.SingleCell(5, 5)))
	assert.Equal(t, ModeInactive, single.Mode(), "single mode deactivates after exactly one apply")

	persistent := New()
	persistent.Pick(store, model.SingleCell(0, 0), AllProperties(), true)
	for i := 0; i < 5; i++ {
		require.NoError(t, persistent.Apply(store, model.SingleCell(int64(10+i), 0)))
	}
	assert.Equal(t, ModePersistent, persistent.Mode(), "persistent mode survives arbitrary applies")
	persistent.Clear()
	assert.Equal(t, ModeInactive, persistent.Mode())
}

func TestApplyWithNoPickReturnsPainterInactiveError(t *testing.T) {
	store := newFakeStore()
	p := New()
	err := p.Apply(store, model.SingleCell(0, 0))
	require.Error(t, err)
	var engErr *model.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, model.KindPainterInactive, engErr.Kind)
}

func TestPropertyFilterExcludesUnselectedGroups(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{
		CharFormat: model.CharFormat{Bold: true},
		Background: "red",
	}

	p := New()
	p.Pick(store, model.SingleCell(0, 0), PropertyFilter{Fill: true}, false)
	require.NoError(t, p.Apply(store, model.SingleCell(1, 1)))

	f, _ := store.GetFormat(1, 1)
	require.NotNil(t, f)
	assert.Equal(t, "red", f.Background)
	assert.False(t, f.Bold, "font property was excluded from the pick filter")
}

func TestPickCopiesCellBorders(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{}
	store.borders[[2]int64{0, 0}] = &model.CellBorders{
		Top: model.Border{Style: model.BorderThick, Color: "#000000"},
	}

	p := New()
	p.Pick(store, model.SingleCell(0, 0), AllProperties(), false)
	require.NoError(t, p.Apply(store, model.SingleCell(3, 3)))

	b, ok := store.GetBorders(3, 3)
	require.True(t, ok)
	assert.Equal(t, model.BorderThick, b.Top.Style)

	b.Top.Color = "mutated"
	src, _ := store.GetBorders(0, 0)
	assert.Equal(t, "#000000", src.Top.Color, "applied borders must not alias the source")
}

func TestLockAndUnlockTransitionModes(t *testing.T) {
	store := newFakeStore()
	store.formats[[2]int64{0, 0}] = &model.CellFormat{}

	p := New()
	p.Pick(store, model.SingleCell(0, 0), AllProperties(), false)
	assert.Equal(t, ModeSingle, p.Mode())
	p.Lock()
	assert.Equal(t, ModePersistent, p.Mode())
	p.Unlock()
	assert.Equal(t, ModeSingle, p.Mode())
}
