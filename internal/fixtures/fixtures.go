// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package fixtures generates realistic, randomized sheet data for the
// large-scale property and performance tests the core engine needs
// (the 10^6-row filter benchmark and the 10^5-cell merge benchmark).
// All output flows through internal/model and internal/store so callers
// never need to know which faker produced it.
package fixtures

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

// Department names used to populate a categorical text column, the kind
// of value a filter predicate or a conditional rule commonly targets.
var departments = []string{
	"Engineering", "Sales", "Marketing", "Support", "Finance", "Legal", "Operations",
}

// SheetFaker wraps gofakeit with spreadsheet-domain generators.
type SheetFaker struct {
	f *gofakeit.Faker
}

// New creates a SheetFaker with the given seed. Pass 0 for a
// cryptographically random seed.
func New(seed uint64) *SheetFaker {
	return &SheetFaker{f: gofakeit.New(seed)}
}

// pick returns a random element from a string slice.
func (s *SheetFaker) pick(items []string) string {
	return items[s.f.IntN(len(items))]
}

// Row produces one fixture row: a name, a department, a numeric amount,
// a boolean flag, and an email, mirroring the column mix a real filter
// or conditional-formatting benchmark exercises (text equality/contains,
// numeric comparisons, boolean predicates).
type Row struct {
	Name       string
	Department string
	Amount     float64
	Active     bool
	Email      string
}

// NextRow generates one fixture row.
func (s *SheetFaker) NextRow() Row {
	return Row{
		Name:       s.f.Name(),
		Department: s.pick(departments),
		Amount:     s.f.Price(0, 100000),
		Active:     s.f.Bool(),
		Email:      s.f.Email(),
	}
}

// column order, matching Row's field order, used by FillStore and as the
// header row a consumer prints above the generated data.
var columnNames = []string{"Name", "Department", "Amount", "Active", "Email"}

// ColumnNames reports the header labels FillStore's columns correspond to.
func ColumnNames() []string {
	out := make([]string, len(columnNames))
	copy(out, columnNames)
	return out
}

// FillStore writes rows fixture rows into s starting at row 0, five
// columns wide (see ColumnNames), and returns the number of rows written.
// A freshly constructed store is expected; FillStore never clears existing
// cells first.
func FillStore(s *store.CellStore, rows int64, faker *SheetFaker) (int64, error) {
	for r := int64(0); r < rows; r++ {
		row := faker.NextRow()
		cells := []model.CellValue{
			model.StringValue(row.Name),
			model.StringValue(row.Department),
			model.NumberValue(row.Amount),
			model.BoolValue(row.Active),
			model.StringValue(row.Email),
		}
		for c, v := range cells {
			if err := s.Set(r, int64(c), model.Cell{Value: v}); err != nil {
				return r, fmt.Errorf("set fixture cell (%d,%d): %w", r, c, err)
			}
		}
	}
	return rows, nil
}

// NewFilledStore is a convenience wrapper that allocates a store and fills
// it with rows of generated data, the shape the filter benchmarks start
// from.
func NewFilledStore(rows int64, seed uint64) (*store.CellStore, error) {
	s := store.New()
	if _, err := FillStore(s, rows, New(seed)); err != nil {
		return nil, err
	}
	return s, nil
}

// FillMergeGrid writes a rows x cols grid of single-value anchor cells
// into s and returns every 2x2 block range, ready for a caller to merge in
// bulk -- the shape the 10^5-cell merge benchmark needs. Filling an
// existing store (rather than allocating one) lets a caller benchmark a
// merge manager already wired to that store.
func FillMergeGrid(s *store.CellStore, rows, cols int64, seed uint64) ([]model.Range, error) {
	faker := New(seed)
	var blocks []model.Range
	for r := int64(0); r < rows; r += 2 {
		for c := int64(0); c < cols; c += 2 {
			if err := s.Set(r, c, model.Cell{Value: model.StringValue(faker.f.Word())}); err != nil {
				return nil, fmt.Errorf("set merge-grid anchor (%d,%d): %w", r, c, err)
			}
			blocks = append(blocks, model.NewRange(r, c, r+1, c+1))
		}
	}
	return blocks, nil
}

// MergeGrid is FillMergeGrid over a freshly allocated store.
func MergeGrid(rows, cols int64, seed uint64) (*store.CellStore, []model.Range, error) {
	s := store.New()
	blocks, err := FillMergeGrid(s, rows, cols, seed)
	if err != nil {
		return nil, nil, err
	}
	return s, blocks, nil
}
