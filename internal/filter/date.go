// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"fmt"
	"time"

	"github.com/arborgrid/sheetcore/internal/model"
)

type dateOp string

const (
	dateBefore  dateOp = "date.before"
	dateAfter   dateOp = "date.after"
	dateBetween dateOp = "date.between"
	dateEquals  dateOp = "date.equals"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// coerceDate implements date coercion at the filter layer: numbers are
// treated as milliseconds-since-epoch. This boundary's coercion is
// independent of condfmt's, which resolves numbers as Excel serial days
// instead -- the two layers disagree on purpose, see DESIGN.md.
func coerceDate(v model.CellValue) (time.Time, bool) {
	switch v.Kind {
	case model.ValueNumber:
		return time.UnixMilli(int64(v.Number)).UTC(), true
	case model.ValueString, model.ValueFormattedText:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v.PlainText()); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type datePredicate struct {
	op       dateOp
	at       time.Time
	min, max time.Time
}

func NewDateBefore(at time.Time) Predicate { return &datePredicate{op: dateBefore, at: at} }
func NewDateAfter(at time.Time) Predicate  { return &datePredicate{op: dateAfter, at: at} }
func NewDateEquals(at time.Time) Predicate { return &datePredicate{op: dateEquals, at: at} }

// NewDateBetween is inclusive at both ends.
func NewDateBetween(min, max time.Time) Predicate {
	if min.After(max) {
		min, max = max, min
	}
	return &datePredicate{op: dateBetween, min: min, max: max}
}

func (p *datePredicate) Test(v model.CellValue) bool {
	d, ok := coerceDate(v)
	if !ok {
		return false
	}
	switch p.op {
	case dateBefore:
		return d.Before(p.at)
	case dateAfter:
		return d.After(p.at)
	case dateEquals:
		return truncateToDay(d).Equal(truncateToDay(p.at))
	case dateBetween:
		return !d.Before(p.min) && !d.After(p.max)
	default:
		return false
	}
}

func (p *datePredicate) Type() string { return string(p.op) }

func (p *datePredicate) Description() string {
	switch p.op {
	case dateBefore:
		return fmt.Sprintf("before %s", p.at.Format("2006-01-02"))
	case dateAfter:
		return fmt.Sprintf("after %s", p.at.Format("2006-01-02"))
	case dateEquals:
		return fmt.Sprintf("on %s", p.at.Format("2006-01-02"))
	case dateBetween:
		return fmt.Sprintf("between %s and %s", p.min.Format("2006-01-02"), p.max.Format("2006-01-02"))
	default:
		return "date predicate"
	}
}

func (p *datePredicate) Serialize() SerializedPredicate {
	if p.op == dateBetween {
		return SerializedPredicate{Type: string(p.op), Params: map[string]any{
			"min": p.min.Format(time.RFC3339), "max": p.max.Format(time.RFC3339),
		}}
	}
	return SerializedPredicate{Type: string(p.op), Params: map[string]any{"at": p.at.Format(time.RFC3339)}}
}
