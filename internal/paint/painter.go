// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package paint implements the format painter: pick a
// source format pattern, then apply it across a tiled target with
// property-selective copying.
package paint

import (
	"sync"

	"github.com/arborgrid/sheetcore/internal/model"
)

// Mode is the painter's state machine position.
type Mode int

const (
	ModeInactive Mode = iota
	ModeSingle
	ModePersistent
)

// FormatReader is the pick-time collaborator.
type FormatReader interface {
	GetFormat(row, col int64) (*model.CellFormat, bool)
	GetBorders(row, col int64) (*model.CellBorders, bool)
	GetCharacterFormats(row, col int64) ([]model.FormatRun, bool)
}

// FormatWriter is the apply-time collaborator.
type FormatWriter interface {
	SetFormat(row, col int64, format *model.CellFormat) error
	SetBorders(row, col int64, borders *model.CellBorders) error
	SetCharacterFormats(row, col int64, runs []model.FormatRun) error
}

// PropertyFilter selects which CellFormat property groups Pick copies.
type PropertyFilter struct {
	Font         bool
	Fill         bool
	Borders      bool
	Alignment    bool
	NumberFormat bool
}

// AllProperties copies every property group.
func AllProperties() PropertyFilter {
	return PropertyFilter{Font: true, Fill: true, Borders: true, Alignment: true, NumberFormat: true}
}

type offsetKey struct{ RowOffset, ColOffset int }

// StoredFormat is one pick-time entry, keyed by its offset within the
// source range.
type StoredFormat struct {
	Format  *model.CellFormat
	Borders *model.CellBorders
	Runs    []model.FormatRun
}

// Painter is the single format-painter instance: a small state machine
// with inactive, single-use, and persistent (double-click) modes.
type Painter struct {
	mu     sync.Mutex
	mode   Mode
	rows   int64
	cols   int64
	stored map[offsetKey]StoredFormat
}

func New() *Painter { return &Painter{mode: ModeInactive} }

func (p *Painter) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// Pick reads every cell in source through reader, applies filter at pick
// time (so Apply can run many times without re-filtering), deep-clones,
// and stores the result keyed by offset. persistent selects the mode
// Pick transitions into.
func (p *Painter) Pick(reader FormatReader, source model.Range, filter PropertyFilter, persistent bool) {
	rows, cols := source.Rows(), source.Cols()
	stored := make(map[offsetKey]StoredFormat, rows*cols)

	for r := source.StartRow; r <= source.EndRow; r++ {
		for c := source.StartCol; c <= source.EndCol; c++ {
			format, _ := reader.GetFormat(r, c)
			runs, _ := reader.GetCharacterFormats(r, c)
			var borders *model.CellBorders
			if filter.Borders {
				b, _ := reader.GetBorders(r, c)
				borders = b.Clone()
			}
			key := offsetKey{int(r - source.StartRow), int(c - source.StartCol)}
			stored[key] = StoredFormat{
				Format:  filterFormat(format, filter).Clone(),
				Borders: borders,
				Runs:    model.CloneRuns(runs),
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows, p.cols = rows, cols
	p.stored = stored
	if persistent {
		p.mode = ModePersistent
	} else {
		p.mode = ModeSingle
	}
}

// filterFormat copies only the property groups filter selects. A nil src
// yields a nil result regardless of filter.
func filterFormat(src *model.CellFormat, filter PropertyFilter) *model.CellFormat {
	if src == nil {
		return nil
	}
	out := &model.CellFormat{}
	if filter.Font {
		out.CharFormat = src.CharFormat
	}
	if filter.Fill {
		out.Background = src.Background
	}
	if filter.Borders {
		out.Borders = src.Borders.Clone()
	}
	if filter.Alignment {
		out.Alignment = src.Alignment
	}
	if filter.NumberFormat {
		out.NumberFormat = src.NumberFormat
	}
	return out
}

// Apply writes the picked pattern across target, tiling via a modulo
// offset lookup. Each write is deep-cloned again to
// prevent caller mutation of the stored pattern. Mode then transitions:
// single -> inactive, persistent unchanged.
func (p *Painter) Apply(writer FormatWriter, target model.Range) error {
	p.mu.Lock()
	if p.mode == ModeInactive {
		p.mu.Unlock()
		return model.PainterInactiveError()
	}
	rows, cols, stored, mode := p.rows, p.cols, p.stored, p.mode
	p.mu.Unlock()

	for r := target.StartRow; r <= target.EndRow; r++ {
		for c := target.StartCol; c <= target.EndCol; c++ {
			srcRowOffset := int((r - target.StartRow) % rows)
			srcColOffset := int((c - target.StartCol) % cols)
			sf, ok := stored[offsetKey{srcRowOffset, srcColOffset}]
			if !ok {
				continue
			}
			if err := writer.SetFormat(r, c, sf.Format.Clone()); err != nil {
				return err
			}
			if sf.Borders != nil {
				if err := writer.SetBorders(r, c, sf.Borders.Clone()); err != nil {
					return err
				}
			}
			if sf.Runs != nil {
				if err := writer.SetCharacterFormats(r, c, model.CloneRuns(sf.Runs)); err != nil {
					return err
				}
			}
		}
	}

	p.mu.Lock()
	if mode == ModeSingle {
		p.mode = ModeInactive
	}
	p.mu.Unlock()
	return nil
}

// Lock switches an active single pick into persistent mode.
func (p *Painter) Lock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModeSingle {
		p.mode = ModePersistent
	}
}

// Unlock switches an active persistent pick back to single mode.
func (p *Painter) Unlock() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mode == ModePersistent {
		p.mode = ModeSingle
	}
}

// Clear deactivates the painter and discards the stored pattern.
func (p *Painter) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeInactive
	p.stored = nil
}

// Deactivate is an alias for Clear; both return the painter to
// ModeInactive.
func (p *Painter) Deactivate() { p.Clear() }
