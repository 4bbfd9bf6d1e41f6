// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package filter

import (
	"fmt"
	"strings"

	"github.com/arborgrid/sheetcore/internal/model"
)

type textOp string

const (
	textContains    textOp = "text.contains"
	textBeginsWith  textOp = "text.beginsWith"
	textEndsWith    textOp = "text.endsWith"
	textEquals      textOp = "text.equals"
	textNotEquals   textOp = "text.notEquals"
)

// textPredicate implements all five text.* variants. Comparison is always
// case-insensitive; the needle is lowercased once at construction.
type textPredicate struct {
	op     textOp
	raw    string
	needle string // lowercased raw
}

func newTextPredicate(op textOp, value string) Predicate {
	return &textPredicate{op: op, raw: value, needle: strings.ToLower(value)}
}

func NewTextContains(substr string) Predicate   { return newTextPredicate(textContains, substr) }
func NewTextBeginsWith(prefix string) Predicate { return newTextPredicate(textBeginsWith, prefix) }
func NewTextEndsWith(suffix string) Predicate   { return newTextPredicate(textEndsWith, suffix) }
func NewTextEquals(value string) Predicate      { return newTextPredicate(textEquals, value) }
func NewTextNotEquals(value string) Predicate   { return newTextPredicate(textNotEquals, value) }

func (p *textPredicate) Test(v model.CellValue) bool {
	haystack := strings.ToLower(v.PlainText())
	switch p.op {
	case textContains:
		return strings.Contains(haystack, p.needle)
	case textBeginsWith:
		return strings.HasPrefix(haystack, p.needle)
	case textEndsWith:
		return strings.HasSuffix(haystack, p.needle)
	case textEquals:
		return haystack == p.needle
	case textNotEquals:
		return haystack != p.needle
	default:
		return false
	}
}

func (p *textPredicate) Type() string { return string(p.op) }

func (p *textPredicate) Description() string {
	switch p.op {
	case textContains:
		return fmt.Sprintf("text contains %q", p.raw)
	case textBeginsWith:
		return fmt.Sprintf("text begins with %q", p.raw)
	case textEndsWith:
		return fmt.Sprintf("text ends with %q", p.raw)
	case textEquals:
		return fmt.Sprintf("text equals %q", p.raw)
	case textNotEquals:
		return fmt.Sprintf("text does not equal %q", p.raw)
	default:
		return "text predicate"
	}
}

func (p *textPredicate) Serialize() SerializedPredicate {
	return SerializedPredicate{Type: string(p.op), Params: map[string]any{"value": p.raw}}
}
