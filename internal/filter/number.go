// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"fmt"
	"math"
	"strconv"

	"github.com/arborgrid/sheetcore/internal/model"
)

type numberOp string

const (
	numberGT      numberOp = "number.gt"
	numberGTE     numberOp = "number.gte"
	numberLT      numberOp = "number.lt"
	numberLTE     numberOp = "number.lte"
	numberBetween numberOp = "number.between"
	numberEquals  numberOp = "number.equals"
)

// coerceNumber implements the numeric coercion: number -> itself;
// numeric string -> parsed; bool -> 1/0; anything else -> NaN (no match).
func coerceNumber(v model.CellValue) float64 {
	switch v.Kind {
	case model.ValueNumber:
		return v.Number
	case model.ValueBool:
		if v.Bool {
			return 1
		}
		return 0
	case model.ValueString, model.ValueFormattedText:
		if n, err := strconv.ParseFloat(v.PlainText(), 64); err == nil {
			return n
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

type numberPredicate struct {
	op       numberOp
	value    float64
	min, max float64
}

func NewNumberGT(value float64) Predicate  { return &numberPredicate{op: numberGT, value: value} }
func NewNumberGTE(value float64) Predicate { return &numberPredicate{op: numberGTE, value: value} }
func NewNumberLT(value float64) Predicate  { return &numberPredicate{op: numberLT, value: value} }
func NewNumberLTE(value float64) Predicate { return &numberPredicate{op: numberLTE, value: value} }
func NewNumberEquals(value float64) Predicate {
	return &numberPredicate{op: numberEquals, value: value}
}

// NewNumberBetween is inclusive at both ends; min and max need not be
// pre-ordered.
func NewNumberBetween(min, max float64) Predicate {
	if min > max {
		min, max = max, min
	}
	return &numberPredicate{op: numberBetween, min: min, max: max}
}

func (p *numberPredicate) Test(v model.CellValue) bool {
	n := coerceNumber(v)
	if math.IsNaN(n) {
		return false
	}
	switch p.op {
	case numberGT:
		return n > p.value
	case numberGTE:
		return n >= p.value
	case numberLT:
		return n < p.value
	case numberLTE:
		return n <= p.value
	case numberEquals:
		return n == p.value
	case numberBetween:
		return n >= p.min && n <= p.max
	default:
		return false
	}
}

func (p *numberPredicate) Type() string { return string(p.op) }

func (p *numberPredicate) Description() string {
	switch p.op {
	case numberGT:
		return fmt.Sprintf("greater than %v", p.value)
	case numberGTE:
		return fmt.Sprintf("greater than or equal to %v", p.value)
	case numberLT:
		return fmt.Sprintf("less than %v", p.value)
	case numberLTE:
		return fmt.Sprintf("less than or equal to %v", p.value)
	case numberEquals:
		return fmt.Sprintf("equal to %v", p.value)
	case numberBetween:
		return fmt.Sprintf("between %v and %v", p.min, p.max)
	default:
		return "number predicate"
	}
}

func (p *numberPredicate) Serialize() SerializedPredicate {
	if p.op == numberBetween {
		return SerializedPredicate{Type: string(p.op), Params: map[string]any{"min": p.min, "max": p.max}}
	}
	return SerializedPredicate{Type: string(p.op), Params: map[string]any{"value": p.value}}
}
