// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"sync"
	"sync/atomic"

	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

// DataSource is the minimal surface the filter manager needs: read a
// cell's value, and find the used range.
type DataSource interface {
	GetCellValue(row, col int64) (model.CellValue, error)
	GetUsedRange() (model.Range, bool)
}

// RowOccupancyChecker is an optional DataSource extension used to resolve
// the "occupied-only" row counting variant's open
// questions. A DataSource that doesn't implement it falls back to
// reporting every row in the used-range bounding box.
type RowOccupancyChecker interface {
	RowHasAnyCell(row int64) bool
}

// StoreDataSource adapts a *store.CellStore to DataSource and
// RowOccupancyChecker.
type StoreDataSource struct{ Store *store.CellStore }

func (d StoreDataSource) GetCellValue(row, col int64) (model.CellValue, error) {
	cell, ok, err := d.Store.Get(row, col)
	if err != nil {
		return model.CellValue{}, err
	}
	if !ok {
		return model.EmptyValue(), nil
	}
	return cell.Value, nil
}

func (d StoreDataSource) GetUsedRange() (model.Range, bool) { return d.Store.GetUsedRange() }

func (d StoreDataSource) RowHasAnyCell(row int64) bool {
	return len(d.Store.RowCells(row)) > 0
}

// Manager is the per-column filter engine: one predicate
// per column, AND semantics across columns, an invalidation-driven cache,
// a monotonic version counter, and a subscribe/getSnapshot surface.
type Manager struct {
	mu         sync.RWMutex
	source     DataSource
	predicates map[int64]Predicate

	cachedRows []int64
	cacheValid bool

	version   atomic.Uint64
	listeners []func()
}

func NewManager(source DataSource) *Manager {
	return &Manager{source: source, predicates: make(map[int64]Predicate)}
}

// Subscribe registers a listener invoked synchronously after every cache
// invalidation. Listeners enumerate in insertion order; unsubscribing
// during notification removes the listener starting with the next
// notification, not the one in progress.
func (m *Manager) Subscribe(listener func()) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, listener)
	idx := len(m.listeners) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.listeners) {
			m.listeners[idx] = nil
		}
	}
}

// GetSnapshot returns the current version counter, for use with Subscribe
// in a React-style external-store pattern.
func (m *Manager) GetSnapshot() uint64 { return m.version.Load() }

func (m *Manager) invalidate() {
	m.cacheValid = false
	m.cachedRows = nil
	m.version.Add(1)
}

func (m *Manager) notify() {
	m.mu.RLock()
	snapshot := make([]func(), len(m.listeners))
	copy(snapshot, m.listeners)
	m.mu.RUnlock()
	for _, l := range snapshot {
		if l != nil {
			l()
		}
	}
}

// ApplyFilter sets column's predicate, replacing any prior one.
func (m *Manager) ApplyFilter(column int64, p Predicate) error {
	if column < 0 {
		return model.OutOfRangeError(0, column)
	}
	m.mu.Lock()
	m.predicates[column] = p
	m.invalidate()
	m.mu.Unlock()
	m.notify()
	return nil
}

// ClearFilter removes column's predicate, if any.
func (m *Manager) ClearFilter(column int64) {
	m.mu.Lock()
	_, had := m.predicates[column]
	if had {
		delete(m.predicates, column)
		m.invalidate()
	}
	m.mu.Unlock()
	if had {
		m.notify()
	}
}

// ClearAllFilters removes every active predicate.
func (m *Manager) ClearAllFilters() {
	m.mu.Lock()
	m.predicates = make(map[int64]Predicate)
	m.invalidate()
	m.mu.Unlock()
	m.notify()
}

// InvalidateCache is an explicit escape hatch for callers that mutated the
// underlying data source directly (bypassing a notifying writer).
func (m *Manager) InvalidateCache() {
	m.mu.Lock()
	m.invalidate()
	m.mu.Unlock()
	m.notify()
}

// IsRowVisible short-circuits across columns and performs no allocation.
func (m *Manager) IsRowVisible(row int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for col, p := range m.predicates {
		v, err := m.source.GetCellValue(row, col)
		if err != nil {
			return false
		}
		if !p.Test(v) {
			return false
		}
	}
	return true
}

// GetFilteredRows returns every row passing all active predicates, or every
// row in the used range if no filters are active. The result is cached by
// reference; repeated calls without an intervening mutation return the
// same slice.
func (m *Manager) GetFilteredRows() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cacheValid {
		return m.cachedRows
	}

	used, ok := m.source.GetUsedRange()
	if !ok {
		m.cachedRows = nil
		m.cacheValid = true
		return nil
	}

	if len(m.predicates) == 0 {
		rows := make([]int64, 0, used.Rows())
		for r := used.StartRow; r <= used.EndRow; r++ {
			rows = append(rows, r)
		}
		m.cachedRows = rows
		m.cacheValid = true
		return m.cachedRows
	}

	var rows []int64
	for r := used.StartRow; r <= used.EndRow; r++ {
		if m.rowVisibleLocked(r) {
			rows = append(rows, r)
		}
	}
	m.cachedRows = rows
	m.cacheValid = true
	return m.cachedRows
}

// rowVisibleLocked is IsRowVisible's body, reentered while mu is already
// held (to avoid recursive RLock during GetFilteredRows).
func (m *Manager) rowVisibleLocked(row int64) bool {
	for col, p := range m.predicates {
		v, err := m.source.GetCellValue(row, col)
		if err != nil {
			return false
		}
		if !p.Test(v) {
			return false
		}
	}
	return true
}

// GetAllRows ignores filters entirely -- the escape hatch 
// reserves for charts/exports.
func (m *Manager) GetAllRows() []int64 {
	used, ok := m.source.GetUsedRange()
	if !ok {
		return nil
	}
	rows := make([]int64, 0, used.Rows())
	for r := used.StartRow; r <= used.EndRow; r++ {
		rows = append(rows, r)
	}
	return rows
}

// GetRows dispatches to GetAllRows or GetFilteredRows.
func (m *Manager) GetRows(includeHidden bool) []int64 {
	if includeHidden {
		return m.GetAllRows()
	}
	return m.GetFilteredRows()
}

// GetFilteredRowCount resolves the open question in : with no
// active filters it returns EndRow-StartRow+1 (over-counting empty rows in
// the used range) unless occupiedOnly is true and the data source can
// report per-row occupancy, in which case only rows with at least one
// occupied cell are counted.
func (m *Manager) GetFilteredRowCount(occupiedOnly bool) int64 {
	m.mu.RLock()
	filtered := len(m.predicates) > 0
	m.mu.RUnlock()
	if filtered {
		return int64(len(m.GetFilteredRows()))
	}

	used, ok := m.source.GetUsedRange()
	if !ok {
		return 0
	}
	if !occupiedOnly {
		return used.Rows()
	}
	checker, ok := m.source.(RowOccupancyChecker)
	if !ok {
		return used.Rows()
	}
	var count int64
	for r := used.StartRow; r <= used.EndRow; r++ {
		if checker.RowHasAnyCell(r) {
			count++
		}
	}
	return count
}

// SerializedFilterSet is the round-trippable snapshot of every active
// predicate, keyed by column.
type SerializedFilterSet struct {
	Columns map[int64]SerializedPredicate
}

func (m *Manager) Serialize() SerializedFilterSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := SerializedFilterSet{Columns: make(map[int64]SerializedPredicate, len(m.predicates))}
	for col, p := range m.predicates {
		out.Columns[col] = p.Serialize()
	}
	return out
}

// Deserialize clears the prior state before restoring every predicate via
// its own serializer.
func (m *Manager) Deserialize(s SerializedFilterSet) error {
	restored := make(map[int64]Predicate, len(s.Columns))
	for col, sp := range s.Columns {
		p, err := Deserialize(sp)
		if err != nil {
			return err
		}
		restored[col] = p
	}
	m.mu.Lock()
	m.predicates = restored
	m.invalidate()
	m.mu.Unlock()
	m.notify()
	return nil
}
