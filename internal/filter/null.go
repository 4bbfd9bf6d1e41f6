// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"strings"

	"github.com/arborgrid/sheetcore/internal/model"
)

type nullOp string

const (
	nullIsEmpty    nullOp = "null.isEmpty"
	nullIsNotEmpty nullOp = "null.isNotEmpty"
)

// isBlank treats empty, undefined (model.ValueEmpty), and whitespace-only
// strings (including whitespace-only formatted text) as empty.
func isBlank(v model.CellValue) bool {
	switch v.Kind {
	case model.ValueEmpty:
		return true
	case model.ValueString, model.ValueFormattedText:
		return strings.TrimSpace(v.PlainText()) == ""
	default:
		return false
	}
}

type nullPredicate struct{ op nullOp }

func NewNullIsEmpty() Predicate    { return &nullPredicate{op: nullIsEmpty} }
func NewNullIsNotEmpty() Predicate { return &nullPredicate{op: nullIsNotEmpty} }

func (p *nullPredicate) Test(v model.CellValue) bool {
	blank := isBlank(v)
	if p.op == nullIsEmpty {
		return blank
	}
	return !blank
}

func (p *nullPredicate) Type() string { return string(p.op) }

func (p *nullPredicate) Description() string {
	if p.op == nullIsEmpty {
		return "is empty"
	}
	return "is not empty"
}

func (p *nullPredicate) Serialize() SerializedPredicate {
	return SerializedPredicate{Type: string(p.op), Params: map[string]any{}}
}
