// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package engine wires the sparse cell store, merge manager, filter
// manager, conditional-formatting manager, fill-pattern registry, format
// painter, and render-frame adapter into a single composition root, and
// appends every applied intent to the intent journal. It is the boundary
// internal/api and internal/tui both sit behind.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/config"
	"github.com/arborgrid/sheetcore/internal/fillpattern"
	"github.com/arborgrid/sheetcore/internal/filter"
	"github.com/arborgrid/sheetcore/internal/journal"
	"github.com/arborgrid/sheetcore/internal/merge"
	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/paint"
	"github.com/arborgrid/sheetcore/internal/render"
	"github.com/arborgrid/sheetcore/internal/store"
)

// Engine bundles the core modules and the supporting intent journal.
type Engine struct {
	mu sync.Mutex

	Store   *store.CellStore
	Merges  *merge.Manager
	Filters *filter.Manager
	Rules   *condfmt.Manager
	Lists   *fillpattern.ListRegistry
	Painter *paint.Painter

	Journal *journal.Store // nil when journaling is disabled

	cfg config.Config
}

// New assembles an Engine from cfg. journalStore may be nil to disable
// intent logging entirely (cfg.Journal.Enabled = false).
func New(cfg config.Config, journalStore *journal.Store) *Engine {
	if cfg.Store.CellKeyBase > 0 {
		model.CellKeyBase = cfg.Store.CellKeyBase
	}
	s := store.New()
	e := &Engine{
		Store:   s,
		Merges:  merge.New(s),
		Rules:   condfmt.NewManager(),
		Lists:   fillpattern.NewListRegistry(),
		Painter: paint.New(),
		Journal: journalStore,
		cfg:     cfg,
	}
	e.Filters = filter.NewManager(filter.StoreDataSource{Store: s})
	return e
}

// LoadCustomLists registers each entry as a custom fill list,
// supplementing the built-in day/month/quarter sequences. The cmd layer
// parses cfg.Fill.CustomListsPath into this map before calling.
func (e *Engine) LoadCustomLists(lists map[string][]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for name, values := range lists {
		e.Lists.AddCustomList(name, values)
	}
}

// logIntent appends an intent record when journaling is enabled, swallowing
// no error: a journal write failure is surfaced to the caller since a gap
// in the replay log defeats its purpose.
func (e *Engine) logIntent(kind journal.Kind, payload any) error {
	if e.Journal == nil {
		return nil
	}
	_, err := e.Journal.Append(kind, time.Now(), payload)
	if err != nil {
		return fmt.Errorf("log intent %s: %w", kind, err)
	}
	return nil
}

// storeFormatAdapter adapts *store.CellStore to paint.FormatReader and
// paint.FormatWriter, the two collaborators the format painter needs.
type storeFormatAdapter struct{ s *store.CellStore }

func (a storeFormatAdapter) GetFormat(row, col int64) (*model.CellFormat, bool) {
	cell, ok, _ := a.s.Get(row, col)
	if !ok {
		return nil, false
	}
	return cell.Format, true
}

func (a storeFormatAdapter) GetBorders(row, col int64) (*model.CellBorders, bool) {
	cell, ok, _ := a.s.Get(row, col)
	if !ok {
		return nil, false
	}
	return cell.Borders, true
}

func (a storeFormatAdapter) GetCharacterFormats(row, col int64) ([]model.FormatRun, bool) {
	cell, ok, _ := a.s.Get(row, col)
	if !ok || cell.Value.Kind != model.ValueFormattedText {
		return nil, false
	}
	return cell.Value.Runs, true
}

func (a storeFormatAdapter) SetFormat(row, col int64, format *model.CellFormat) error {
	cell, _, err := a.s.Get(row, col)
	if err != nil {
		return err
	}
	cell.Format = format
	return a.s.Set(row, col, cell)
}

func (a storeFormatAdapter) SetBorders(row, col int64, borders *model.CellBorders) error {
	cell, _, err := a.s.Get(row, col)
	if err != nil {
		return err
	}
	cell.Borders = borders
	return a.s.Set(row, col, cell)
}

func (a storeFormatAdapter) SetCharacterFormats(row, col int64, runs []model.FormatRun) error {
	cell, _, err := a.s.Get(row, col)
	if err != nil {
		return err
	}
	cell.Value.Runs = runs
	return a.s.Set(row, col, cell)
}

// BuildFrame renders the current engine state through render.BuildFrame,
// wiring the store, merge manager, conditional-format manager, and the
// filter manager's visible-row set as a row-hiding function.
func (e *Engine) BuildFrame(opts render.BuildFrameOptions) render.RenderFrame {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts.Store = e.Store
	opts.Merges = e.Merges
	opts.CondFmt = e.Rules
	if opts.HiddenRow == nil {
		opts.HiddenRow = e.rowHiddenByFilter
	}
	return render.BuildFrame(opts)
}

// rowHiddenByFilter reports a row as hidden when it sits inside the used
// range and fails an active predicate. Rows outside the used range are
// never hidden; a filter only hides rows the data actually covers.
func (e *Engine) rowHiddenByFilter(row int64) bool {
	used, ok := e.Store.GetUsedRange()
	if !ok || row < used.StartRow || row > used.EndRow {
		return false
	}
	return !e.Filters.IsRowVisible(row)
}
