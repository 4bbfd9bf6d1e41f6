// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package engine

import (
	"fmt"

	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/fillpattern"
	"github.com/arborgrid/sheetcore/internal/filter"
	"github.com/arborgrid/sheetcore/internal/journal"
	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/paint"
)

// SetCellValueIntent sets one cell's value.
type SetCellValueIntent struct {
	Row, Col int64
	Value    model.CellValue
}

// DeleteContentsIntent clears every cell in a range, keeping formats.
type DeleteContentsIntent struct {
	Range model.Range
}

// ShiftIntent covers InsertRows/InsertColumns/DeleteRows/DeleteColumns: the
// shift is expressed as "count lines at index", direction implied by Kind.
type ShiftIntent struct {
	Index int64
	Count int64
}

// MergeCellsIntent and UnmergeCellsIntent both carry a target range.
type MergeCellsIntent struct{ Range model.Range }
type UnmergeCellsIntent struct{ Range model.Range }

// ApplyFormatIntent applies a format to every cell in a range.
type ApplyFormatIntent struct {
	Range  model.Range
	Format model.CellFormat
}

// ClipboardActionIntent covers cut/copy/paste over two ranges.
type ClipboardActionIntent struct {
	Action string // "cut" | "copy" | "paste"
	Source model.Range
	Dest   model.Range // used by paste only
}

// FillDragIntent covers BeginFillDrag/UpdateFillDrag/EndFillDrag: source is
// the dragged-from range, target its current (possibly growing) extent.
type FillDragIntent struct {
	Source    model.Range
	Target    model.Range
	Direction fillpattern.Direction
}

// ApplyFilterIntent and ClearFilterIntent operate on one column.
type ApplyFilterIntent struct {
	Column    int64
	Predicate filter.SerializedPredicate
}
type ClearFilterIntent struct{ Column int64 }

// ConditionalRuleIntent covers AddConditionalRule/RemoveConditionalRule.
type ConditionalRuleIntent struct {
	Rule condfmt.Rule
	ID   condfmt.RuleID // used by RemoveConditionalRule only
}

// PickFormatIntent and ApplyPaintedFormatIntent drive the format painter.
type PickFormatIntent struct {
	Source     model.Range
	Filter     paint.PropertyFilter
	Persistent bool
}
type ApplyPaintedFormatIntent struct{ Target model.Range }

// ApplyIntent dispatches one tagged intent by kind, mutating engine state
// and appending the intent to the journal (when enabled). payload must be
// the concrete Intent struct matching kind; a mismatch panics, since it is
// a programmer error at this boundary rather than a user-triggerable one.
func (e *Engine) ApplyIntent(kind journal.Kind, payload any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.dispatch(kind, payload); err != nil {
		return err
	}
	if mutatesCellValues(kind) {
		e.Filters.InvalidateCache()
	}
	return e.logIntent(kind, payload)
}

// mutatesCellValues reports whether kind writes cell values directly through
// the store, bypassing the filter manager's own notifying mutators. Those
// kinds must drop the cached visible-row set or GetFilteredRows would keep
// serving rows computed against the old values.
func mutatesCellValues(kind journal.Kind) bool {
	switch kind {
	case journal.KindSetCellValue, journal.KindDeleteContents,
		journal.KindClipboardAction, journal.KindEndFillDrag:
		return true
	}
	return false
}

func (e *Engine) dispatch(kind journal.Kind, payload any) error {
	switch kind {
	case journal.KindSetCellValue:
		p := payload.(SetCellValueIntent)
		cell, _, err := e.Store.Get(p.Row, p.Col)
		if err != nil {
			return err
		}
		cell.Value = p.Value
		return e.Store.Set(p.Row, p.Col, cell)

	case journal.KindDeleteContents:
		p := payload.(DeleteContentsIntent)
		for r := p.Range.StartRow; r <= p.Range.EndRow; r++ {
			for c := p.Range.StartCol; c <= p.Range.EndCol; c++ {
				cell, ok, err := e.Store.Get(r, c)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				cell.Value = model.EmptyValue()
				cell.Formula = ""
				if err := e.Store.Set(r, c, cell); err != nil {
					return err
				}
			}
		}
		return nil

	case journal.KindMergeCells:
		p := payload.(MergeCellsIntent)
		res := e.Merges.Merge(p.Range)
		if !res.Success {
			return fmt.Errorf("merge cells: %s", res.Error)
		}
		return nil

	case journal.KindUnmergeCells:
		p := payload.(UnmergeCellsIntent)
		res := e.Merges.Unmerge(p.Range)
		if !res.Success {
			return fmt.Errorf("unmerge cells: %s", res.Error)
		}
		return nil

	case journal.KindApplyFormat:
		p := payload.(ApplyFormatIntent)
		for r := p.Range.StartRow; r <= p.Range.EndRow; r++ {
			for c := p.Range.StartCol; c <= p.Range.EndCol; c++ {
				cell, _, err := e.Store.Get(r, c)
				if err != nil {
					return err
				}
				f := p.Format
				cell.Format = &f
				if err := e.Store.Set(r, c, cell); err != nil {
					return err
				}
			}
		}
		return nil

	case journal.KindClipboardAction:
		return e.applyClipboard(payload.(ClipboardActionIntent))

	case journal.KindApplyFilter:
		p := payload.(ApplyFilterIntent)
		pred, err := filter.Deserialize(p.Predicate)
		if err != nil {
			return fmt.Errorf("apply filter: %w", err)
		}
		return e.Filters.ApplyFilter(p.Column, pred)

	case journal.KindClearFilter:
		e.Filters.ClearFilter(payload.(ClearFilterIntent).Column)
		return nil

	case journal.KindAddConditionalRule:
		e.Rules.AddRule(payload.(ConditionalRuleIntent).Rule)
		return nil

	case journal.KindRemoveConditional:
		e.Rules.RemoveRule(payload.(ConditionalRuleIntent).ID)
		return nil

	case journal.KindPickFormat:
		p := payload.(PickFormatIntent)
		e.Painter.Pick(storeFormatAdapter{e.Store}, p.Source, p.Filter, p.Persistent)
		return nil

	case journal.KindApplyPaintedFormat:
		p := payload.(ApplyPaintedFormatIntent)
		return e.Painter.Apply(storeFormatAdapter{e.Store}, p.Target)

	case journal.KindInsertRows:
		p := payload.(ShiftIntent)
		if err := e.Store.ShiftRows(p.Index, p.Count); err != nil {
			return err
		}
		return e.resyncAfterShift()

	case journal.KindDeleteRows:
		p := payload.(ShiftIntent)
		if err := e.Store.ShiftRows(p.Index, -p.Count); err != nil {
			return err
		}
		return e.resyncAfterShift()

	case journal.KindInsertColumns:
		p := payload.(ShiftIntent)
		if err := e.Store.ShiftCols(p.Index, p.Count); err != nil {
			return err
		}
		return e.resyncAfterShift()

	case journal.KindDeleteColumns:
		p := payload.(ShiftIntent)
		if err := e.Store.ShiftCols(p.Index, -p.Count); err != nil {
			return err
		}
		return e.resyncAfterShift()

	case journal.KindBeginFillDrag, journal.KindUpdateFillDrag:
		// Pure drag-state intents: the view tracks the growing target
		// range itself and only EndFillDrag commits generated values, so
		// there is nothing for the engine to mutate here beyond logging.
		return nil

	case journal.KindEndFillDrag:
		return e.applyFillDrag(payload.(FillDragIntent))

	default:
		return fmt.Errorf("unknown intent kind %q", kind)
	}
}

// resyncAfterShift rebuilds the merge manager's indices and drops the
// filter manager's cached visible-row set after a row/column insert or
// delete: cell addresses moved, but the merge metadata travels with the
// cells themselves (ShiftRows/ShiftCols move whole Cell values), so
// resyncing merges from the new used range is sufficient to restore the
// anchor/child indices.
func (e *Engine) resyncAfterShift() error {
	bounds, ok := e.Store.GetUsedRange()
	if ok {
		e.Merges.SyncFromStore(bounds)
	}
	e.Filters.InvalidateCache()
	return nil
}

// applyFillDrag commits the generated values for an EndFillDrag intent:
// the source range is analyzed and extrapolated column-wise (vertical
// directions) or row-wise (horizontal directions) out to the target
// range's extent.
func (e *Engine) applyFillDrag(p FillDragIntent) error {
	vertical := p.Direction == fillpattern.DirectionDown || p.Direction == fillpattern.DirectionUp
	sourceByLine, targetLen, place, err := e.collectFillLines(p, vertical)
	if err != nil {
		return err
	}
	columnFills := fillpattern.FillRange(sourceByLine, targetLen, p.Direction, e.Lists)
	for _, cf := range columnFills {
		for _, gc := range cf.Cells {
			row, col := place(cf.Index, gc)
			cell, _, err := e.Store.Get(row, col)
			if err != nil {
				return err
			}
			cell.Value = gc.Value
			cell.Formula = gc.Formula
			cell.Format = gc.Format
			if err := e.Store.Set(row, col, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectFillLines reads the source range into per-line cell slices (keyed
// by column for vertical fills, by row for horizontal fills), computes how
// many generated values each line needs to reach the target extent, and
// returns a placement function mapping a generated cell back to (row, col).
func (e *Engine) collectFillLines(p FillDragIntent, vertical bool) (map[int][]model.Cell, int, func(line int, gc fillpattern.GeneratedCell) (row, col int64), error) {
	src, tgt := p.Source, p.Target
	lines := make(map[int][]model.Cell)

	if vertical {
		targetLen := int(tgt.EndRow-tgt.StartRow+1) - int(src.Rows())
		for c := src.StartCol; c <= src.EndCol; c++ {
			var cells []model.Cell
			for r := src.StartRow; r <= src.EndRow; r++ {
				cell, _, err := e.Store.Get(r, c)
				if err != nil {
					return nil, 0, nil, err
				}
				cells = append(cells, cell)
			}
			lines[int(c)] = cells
		}
		// Generated row offsets extend away from the source block: past its
		// last row for a down fill, above its first row for an up fill.
		origin := src.EndRow
		if p.Direction == fillpattern.DirectionUp {
			origin = src.StartRow
		}
		place := func(line int, gc fillpattern.GeneratedCell) (int64, int64) {
			return origin + int64(gc.RowOffset), int64(line)
		}
		return lines, targetLen, place, nil
	}

	targetLen := int(tgt.EndCol-tgt.StartCol+1) - int(src.Cols())
	for r := src.StartRow; r <= src.EndRow; r++ {
		var cells []model.Cell
		for c := src.StartCol; c <= src.EndCol; c++ {
			cell, _, err := e.Store.Get(r, c)
			if err != nil {
				return nil, 0, nil, err
			}
			cells = append(cells, cell)
		}
		lines[int(r)] = cells
	}
	origin := src.EndCol
	if p.Direction == fillpattern.DirectionLeft {
		origin = src.StartCol
	}
	place := func(line int, gc fillpattern.GeneratedCell) (int64, int64) {
		return int64(line), origin + int64(gc.ColOffset)
	}
	return lines, targetLen, place, nil
}

// applyClipboard implements cut/copy/paste as a plain deep-copy of cell
// state between two ranges; cut additionally clears the source.
func (e *Engine) applyClipboard(p ClipboardActionIntent) error {
	switch p.Action {
	case "copy", "cut":
		// Copy mutates nothing; the source range is recorded by the
		// caller for the next paste. Cut also deletes the source cells.
		if p.Action == "cut" {
			for r := p.Source.StartRow; r <= p.Source.EndRow; r++ {
				for c := p.Source.StartCol; c <= p.Source.EndCol; c++ {
					if err := e.Store.Delete(r, c); err != nil {
						return err
					}
				}
			}
		}
		return nil
	case "paste":
		rows, cols := p.Source.Rows(), p.Source.Cols()
		for r := int64(0); r < rows; r++ {
			for c := int64(0); c < cols; c++ {
				src, ok, err := e.Store.Get(p.Source.StartRow+r, p.Source.StartCol+c)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				if err := e.Store.Set(p.Dest.StartRow+r, p.Dest.StartCol+c, src.Clone()); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("clipboard action %q: must be cut, copy, or paste", p.Action)
	}
}
