// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package filter implements the typed predicates and the per-column filter
// manager that composes them.
package filter

import "github.com/arborgrid/sheetcore/internal/model"

// Predicate is the interface every filter variant implements: test a cell
// value, describe itself for the UI, report a stable type tag, and
// serialize to a {type, params} pair that Deserialize can invert.
type Predicate interface {
	Test(v model.CellValue) bool
	Description() string
	Type() string
	Serialize() SerializedPredicate
}

// SerializedPredicate is the wire form: a stable string tag
// plus predicate-specific params.
type SerializedPredicate struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}
