// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package model

import "fmt"

// ErrorKind enumerates the structured error kinds. Every engine operation
// with fallible preconditions returns one of these (wrapped in
// *EngineError) instead of panicking.
type ErrorKind string

const (
	KindOutOfRange            ErrorKind = "out_of_range"
	KindInvalidMerge          ErrorKind = "invalid_merge"
	KindNoMergeInRange        ErrorKind = "no_merge_in_range"
	KindEmptyComposite        ErrorKind = "empty_composite"
	KindUnknownPredicateType  ErrorKind = "unknown_predicate_type"
	KindMalformedFormula      ErrorKind = "malformed_formula"
	KindPainterInactive       ErrorKind = "painter_inactive"
)

// EngineError is the structured error value every core package returns.
// It is never thrown as a panic, matching the propagation policy.
type EngineError struct {
	Kind    ErrorKind
	Message string
	// Anchor is populated for KindInvalidMerge: the anchor of the
	// conflicting merge, so the view can render "Conflicts with existing
	// merge at row X, col Y" verbatim.
	Anchor *CellRef
}

func (e *EngineError) Error() string { return e.Message }

func OutOfRangeError(row, col int64) *EngineError {
	return &EngineError{
		Kind:    KindOutOfRange,
		Message: fmt.Sprintf("out of range: row=%d col=%d", row, col),
	}
}

func InvalidMergeError(reason string, conflict *CellRef) *EngineError {
	msg := reason
	if conflict != nil {
		msg = fmt.Sprintf("%s (conflicts with existing merge at row %d, col %d)", reason, conflict.Row, conflict.Col)
	}
	return &EngineError{Kind: KindInvalidMerge, Message: msg, Anchor: conflict}
}

func NoMergeInRangeError() *EngineError {
	return &EngineError{Kind: KindNoMergeInRange, Message: "no merge intersects the given range"}
}

func EmptyCompositeError() *EngineError {
	return &EngineError{Kind: KindEmptyComposite, Message: "composite predicate requires at least one child"}
}

func UnknownPredicateTypeError(tag string) *EngineError {
	return &EngineError{Kind: KindUnknownPredicateType, Message: fmt.Sprintf("unknown predicate type %q", tag)}
}

func MalformedFormulaError(formula string) *EngineError {
	return &EngineError{Kind: KindMalformedFormula, Message: fmt.Sprintf("malformed formula %q, treated as copy", formula)}
}

func PainterInactiveError() *EngineError {
	return &EngineError{Kind: KindPainterInactive, Message: "format painter has no picked format to apply"}
}
