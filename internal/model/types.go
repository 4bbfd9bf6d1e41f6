// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package model holds the leaf types shared by every engine package:
// cell values, cell formats, ranges, and the cell-key addressing scheme.
// Nothing in this package depends on store, merge, filter, condfmt,
// fillpattern, paint, or render -- it sits at the bottom of the
// dependency order for the whole engine.
package model

// ValueKind tags the variant carried by a CellValue.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueBool
	ValueNumber
	ValueString
	ValueFormattedText
	ValueError
)

func (k ValueKind) String() string {
	switch k {
	case ValueEmpty:
		return "empty"
	case ValueBool:
		return "bool"
	case ValueNumber:
		return "number"
	case ValueString:
		return "string"
	case ValueFormattedText:
		return "formattedText"
	case ValueError:
		return "error"
	default:
		return "unknown"
	}
}

// UnderlineLevel distinguishes none/single/double underline for typography.
type UnderlineLevel int

const (
	UnderlineNone UnderlineLevel = iota
	UnderlineSingle
	UnderlineDouble
)

// FormatRun is a half-open [Start, End) run over character positions in a
// FormattedText value, with an optional per-run character format. Runs must
// stay non-overlapping and monotonically ordered; gaps inherit the
// cell-level format.
type FormatRun struct {
	Start  int
	End    int
	Format *CharFormat
}

// CharFormat is the per-run character typography override.
type CharFormat struct {
	FontFamily    string
	FontSize      float64
	Color         string
	Bold          bool
	Italic        bool
	Underline     UnderlineLevel
	Strikethrough bool
}

// Clone deep-copies the character format. Safe to call on a nil receiver.
func (c *CharFormat) Clone() *CharFormat {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CellValue is a tagged union: a cell holds exactly one kind of value at a
// time. Only the field(s) relevant to Kind are meaningful; callers should
// use the constructors below rather than building a CellValue by hand.
type CellValue struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	// Text holds the string payload for ValueString, the plain text for
	// ValueFormattedText, and the error code for ValueError.
	Text string
	// Runs is only populated for ValueFormattedText.
	Runs []FormatRun
}

func EmptyValue() CellValue { return CellValue{Kind: ValueEmpty} }

func BoolValue(b bool) CellValue { return CellValue{Kind: ValueBool, Bool: b} }

func NumberValue(n float64) CellValue { return CellValue{Kind: ValueNumber, Number: n} }

func StringValue(s string) CellValue { return CellValue{Kind: ValueString, Text: s} }

func ErrorValue(code string) CellValue { return CellValue{Kind: ValueError, Text: code} }

// FormattedTextValue builds a rich-text value. Runs are deep-cloned so the
// caller's slice can be mutated afterward without aliasing this value.
func FormattedTextValue(text string, runs []FormatRun) CellValue {
	return CellValue{Kind: ValueFormattedText, Text: text, Runs: CloneRuns(runs)}
}

// CloneRuns deep-clones a run slice, including each run's CharFormat.
func CloneRuns(runs []FormatRun) []FormatRun {
	if runs == nil {
		return nil
	}
	out := make([]FormatRun, len(runs))
	for i, r := range runs {
		out[i] = FormatRun{Start: r.Start, End: r.End, Format: r.Format.Clone()}
	}
	return out
}

func (v CellValue) IsEmpty() bool {
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueString:
		return v.Text == ""
	default:
		return false
	}
}

// Clone deep-copies a CellValue, including its rich-text runs.
func (v CellValue) Clone() CellValue {
	cp := v
	cp.Runs = CloneRuns(v.Runs)
	return cp
}

// PlainText projects a CellValue to the plain-text representation used by
// text predicates: string -> itself, number/bool -> string form,
// formatted-text -> its Text, empty -> "".
func (v CellValue) PlainText() string {
	switch v.Kind {
	case ValueString, ValueFormattedText, ValueError:
		return v.Text
	case ValueNumber:
		return formatNumber(v.Number)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
