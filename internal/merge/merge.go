// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package merge implements the merge manager: structural
// invariants over merged cell ranges, anchor/child indexing, and the range
// expansion that lets cut/delete/fill treat merges atomically.
package merge

import (
	"sync"

	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

// Info is a single merge's anchor position and row/column spans.
type Info struct {
	Anchor  model.CellRef
	RowSpan int
	ColSpan int
}

// Range returns the rectangle covered by this merge.
func (i Info) Range() model.Range {
	return model.NewRange(
		i.Anchor.Row, i.Anchor.Col,
		i.Anchor.Row+int64(i.RowSpan)-1, i.Anchor.Col+int64(i.ColSpan)-1,
	)
}

// MergeResult is the structured, non-throwing outcome of Manager.Merge.
type MergeResult struct {
	Success  bool
	Error    string
	Conflict *model.CellRef
	Info     *Info
}

// UnmergeResult is the structured outcome of Manager.Unmerge.
type UnmergeResult struct {
	Success bool
	Error   string
	Removed []Info
}

// Listener receives a merge/unmerge event.
type Listener func(Info)

// Manager owns the anchorKey->Info and anyCellKey->anchorKey indices and
// writes merge metadata through to the backing cell store as it mutates
// them.
type Manager struct {
	mu           sync.RWMutex
	cells        *store.CellStore
	anchors      map[int64]Info
	cellToAnchor map[int64]int64

	onMerge   []Listener
	onUnmerge []Listener
}

// New constructs a Manager over an existing cell store. The store must
// already exist; the manager never creates cells beyond writing merge
// metadata onto ones covered by a merge.
func New(cells *store.CellStore) *Manager {
	return &Manager{
		cells:        cells,
		anchors:      make(map[int64]Info),
		cellToAnchor: make(map[int64]int64),
	}
}

// OnMerge registers a listener invoked synchronously after a successful
// merge. The returned func unsubscribes; an unsubscribe during notification
// removes the listener for the next notification, not the current one.
func (m *Manager) OnMerge(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMerge = append(m.onMerge, fn)
	idx := len(m.onMerge) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.onMerge) {
			m.onMerge[idx] = nil
		}
	}
}

// OnUnmerge registers a listener invoked synchronously after every removed
// merge during an unmerge call.
func (m *Manager) OnUnmerge(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUnmerge = append(m.onUnmerge, fn)
	idx := len(m.onUnmerge) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.onUnmerge) {
			m.onUnmerge[idx] = nil
		}
	}
}

func (m *Manager) notifyMerge(info Info) {
	for _, fn := range m.onMerge {
		if fn != nil {
			fn(info)
		}
	}
}

func (m *Manager) notifyUnmerge(info Info) {
	for _, fn := range m.onUnmerge {
		if fn != nil {
			fn(info)
		}
	}
}

// Merge validates then applies a merge over r. Validation and mutation are
// separated so a rejected merge never partially applies.
func (m *Manager) Merge(r model.Range) MergeResult {
	norm := model.NewRange(r.StartRow, r.StartCol, r.EndRow, r.EndCol)
	if norm.CellCount() == 1 {
		return MergeResult{Success: false, Error: "cannot merge a single cell"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for row := norm.StartRow; row <= norm.EndRow; row++ {
		for col := norm.StartCol; col <= norm.EndCol; col++ {
			if anchorKey, ok := m.cellToAnchor[model.CellKey(row, col)]; ok {
				conflict := m.anchors[anchorKey].Anchor
				return MergeResult{
					Success:  false,
					Error:    model.InvalidMergeError("range overlaps an existing merge", &conflict).Error(),
					Conflict: &conflict,
				}
			}
		}
	}

	info := Info{
		Anchor:  model.CellRef{Row: norm.StartRow, Col: norm.StartCol},
		RowSpan: int(norm.Rows()),
		ColSpan: int(norm.Cols()),
	}
	anchorKey := model.CellKey(info.Anchor.Row, info.Anchor.Col)
	m.anchors[anchorKey] = info
	for row := norm.StartRow; row <= norm.EndRow; row++ {
		for col := norm.StartCol; col <= norm.EndCol; col++ {
			m.cellToAnchor[model.CellKey(row, col)] = anchorKey
		}
	}

	m.writeMergeMetadata(info)
	m.notifyMerge(info)
	return MergeResult{Success: true, Info: &info}
}

// writeMergeMetadata sets Merge on the anchor and MergeParent+cleared value
// on every child, Must be called with mu held.
func (m *Manager) writeMergeMetadata(info Info) {
	if m.cells == nil {
		return
	}
	anchorCell, _, _ := m.cells.Get(info.Anchor.Row, info.Anchor.Col)
	anchorCell.Merge = &model.MergeSpan{RowSpan: info.RowSpan, ColSpan: info.ColSpan}
	anchorCell.MergeParent = nil
	_ = m.cells.Set(info.Anchor.Row, info.Anchor.Col, anchorCell)

	for row := info.Anchor.Row; row < info.Anchor.Row+int64(info.RowSpan); row++ {
		for col := info.Anchor.Col; col < info.Anchor.Col+int64(info.ColSpan); col++ {
			if row == info.Anchor.Row && col == info.Anchor.Col {
				continue
			}
			childCell, _, _ := m.cells.Get(row, col)
			childCell.Value = model.EmptyValue()
			childCell.Merge = nil
			anchor := info.Anchor
			childCell.MergeParent = &anchor
			_ = m.cells.Set(row, col, childCell)
		}
	}
}

func (m *Manager) clearMergeMetadata(info Info) {
	if m.cells == nil {
		return
	}
	for row := info.Anchor.Row; row < info.Anchor.Row+int64(info.RowSpan); row++ {
		for col := info.Anchor.Col; col < info.Anchor.Col+int64(info.ColSpan); col++ {
			cell, ok, _ := m.cells.Get(row, col)
			if !ok {
				continue
			}
			cell.Merge = nil
			cell.MergeParent = nil
			_ = m.cells.Set(row, col, cell)
		}
	}
}

// Unmerge removes every merge intersecting the normalized range. Fails only
// if no merge intersects it.
func (m *Manager) Unmerge(r model.Range) UnmergeResult {
	norm := model.NewRange(r.StartRow, r.StartCol, r.EndRow, r.EndCol)

	m.mu.Lock()
	defer m.mu.Unlock()

	var toRemove []Info
	seen := make(map[int64]bool)
	for row := norm.StartRow; row <= norm.EndRow; row++ {
		for col := norm.StartCol; col <= norm.EndCol; col++ {
			anchorKey, ok := m.cellToAnchor[model.CellKey(row, col)]
			if !ok || seen[anchorKey] {
				continue
			}
			seen[anchorKey] = true
			toRemove = append(toRemove, m.anchors[anchorKey])
		}
	}
	// A merge only partially inside the query range still counts as
	// "intersecting"; cellToAnchor already covers every cell of every
	// merge, so the scan above is exhaustive for intersection purposes.

	if len(toRemove) == 0 {
		return UnmergeResult{Success: false, Error: model.NoMergeInRangeError().Error()}
	}

	for _, info := range toRemove {
		m.removeMerge(info)
	}
	return UnmergeResult{Success: true, Removed: toRemove}
}

// removeMerge deletes a merge's index entries and clears store metadata.
// Must be called with mu held.
func (m *Manager) removeMerge(info Info) {
	anchorKey := model.CellKey(info.Anchor.Row, info.Anchor.Col)
	delete(m.anchors, anchorKey)
	for row := info.Anchor.Row; row < info.Anchor.Row+int64(info.RowSpan); row++ {
		for col := info.Anchor.Col; col < info.Anchor.Col+int64(info.ColSpan); col++ {
			delete(m.cellToAnchor, model.CellKey(row, col))
		}
	}
	m.clearMergeMetadata(info)
	m.notifyUnmerge(info)
}

func (m *Manager) IsMerged(row, col int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.cellToAnchor[model.CellKey(row, col)]
	return ok
}

func (m *Manager) IsMergeAnchor(row, col int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.anchors[model.CellKey(row, col)]
	return ok
}

func (m *Manager) IsMergedChild(row, col int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	anchorKey, ok := m.cellToAnchor[model.CellKey(row, col)]
	if !ok {
		return false
	}
	return anchorKey != model.CellKey(row, col)
}

func (m *Manager) GetMergeInfo(row, col int64) (Info, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	anchorKey, ok := m.cellToAnchor[model.CellKey(row, col)]
	if !ok {
		return Info{}, false
	}
	info, ok := m.anchors[anchorKey]
	return info, ok
}

func (m *Manager) GetMergeAnchor(row, col int64) (model.CellRef, bool) {
	info, ok := m.GetMergeInfo(row, col)
	if !ok {
		return model.CellRef{}, false
	}
	return info.Anchor, true
}

func (m *Manager) GetAllMerges() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Info, 0, len(m.anchors))
	for _, info := range m.anchors {
		out = append(out, info)
	}
	return out
}

func (m *Manager) GetMergeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.anchors)
}

func (m *Manager) GetMergesInRange(r model.Range) []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Info
	for _, info := range m.anchors {
		if info.Range().Overlaps(r) {
			out = append(out, info)
		}
	}
	return out
}

// GetDisplayRange returns the rectangle to paint for (row, col): the merge
// range if merged, a 1x1 range otherwise.
func (m *Manager) GetDisplayRange(row, col int64) model.Range {
	if info, ok := m.GetMergeInfo(row, col); ok {
		return info.Range()
	}
	return model.SingleCell(row, col)
}

// GetEditTarget redirects writes on a merge-child to its anchor.
func (m *Manager) GetEditTarget(row, col int64) model.CellRef {
	if anchor, ok := m.GetMergeAnchor(row, col); ok {
		return anchor
	}
	return model.CellRef{Row: row, Col: col}
}

// ExpandRangeToIncludeMerges unions r with every partially-overlapping
// merge until a fixed point is reached, so callers can treat merges
// atomically for cut/delete/fill.
func (m *Manager) ExpandRangeToIncludeMerges(r model.Range) model.Range {
	current := r
	for {
		expanded := current
		for _, info := range m.GetMergesInRange(current) {
			expanded = expanded.Union(info.Range())
		}
		if expanded.Equal(current) {
			return current
		}
		current = expanded
	}
}

// ToggleResult reports which branch Manager.ToggleMerge took.
type ToggleResult struct {
	Merged  bool
	Merge   *MergeResult
	Unmerge *UnmergeResult
}

// ToggleMerge unmerges an exact-match range, otherwise merges it.
func (m *Manager) ToggleMerge(r model.Range) ToggleResult {
	norm := model.NewRange(r.StartRow, r.StartCol, r.EndRow, r.EndCol)
	for _, info := range m.GetMergesInRange(norm) {
		if info.Range().Equal(norm) {
			res := m.Unmerge(norm)
			return ToggleResult{Merged: false, Unmerge: &res}
		}
	}
	res := m.Merge(norm)
	return ToggleResult{Merged: true, Merge: &res}
}

// SyncFromStore rebuilds the indices from persisted Cell.Merge metadata
// within bounds, e.g. after a reload. It discards any existing indices.
func (m *Manager) SyncFromStore(bounds model.Range) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchors = make(map[int64]Info)
	m.cellToAnchor = make(map[int64]int64)

	for row := bounds.StartRow; row <= bounds.EndRow; row++ {
		for col := bounds.StartCol; col <= bounds.EndCol; col++ {
			cell, ok, _ := m.cells.Get(row, col)
			if !ok || cell.Merge == nil {
				continue
			}
			info := Info{Anchor: model.CellRef{Row: row, Col: col}, RowSpan: cell.Merge.RowSpan, ColSpan: cell.Merge.ColSpan}
			anchorKey := model.CellKey(row, col)
			m.anchors[anchorKey] = info
			for r := info.Anchor.Row; r < info.Anchor.Row+int64(info.RowSpan); r++ {
				for c := info.Anchor.Col; c < info.Anchor.Col+int64(info.ColSpan); c++ {
					m.cellToAnchor[model.CellKey(r, c)] = anchorKey
				}
			}
		}
	}
}
