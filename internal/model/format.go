// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package model

// HAlign is horizontal cell alignment.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical cell alignment.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// BorderStyle enumerates the line styles a cell border can take.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderThin
	BorderMedium
	BorderThick
	BorderDashed
	BorderDotted
	BorderDouble
)

// Border is a single edge's style and color.
type Border struct {
	Style BorderStyle
	Color string
}

// CellBorders bundles all four edges of a cell.
type CellBorders struct {
	Top    Border
	Right  Border
	Bottom Border
	Left   Border
}

// Clone deep-copies CellBorders. Safe on a nil receiver.
func (b *CellBorders) Clone() *CellBorders {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

// Alignment bundles horizontal/vertical alignment, wrap, rotation, and indent.
type Alignment struct {
	Horizontal HAlign
	Vertical   VAlign
	WrapText   bool
	// Rotation is clamped to [0, 360] degrees by SetRotation.
	Rotation int
	Indent   int
}

// SetRotation clamps degrees into [0, 360] before assigning.
func (a *Alignment) SetRotation(degrees int) {
	switch {
	case degrees < 0:
		a.Rotation = 0
	case degrees > 360:
		a.Rotation = 360
	default:
		a.Rotation = degrees
	}
}

// NumberFormat carries number-format metadata for display-value rendering.
type NumberFormat struct {
	FormatString   string
	IsPercentage   bool
	IsCurrency     bool
	CurrencySymbol string
}

// CellFormat bundles typography, alignment, background, borders, and
// number-format metadata. It is the unit the conditional
// formatting engine overlays and the format painter copies.
type CellFormat struct {
	CharFormat
	Alignment
	Background   string
	Borders      *CellBorders
	NumberFormat NumberFormat
}

// Clone deep-copies a CellFormat. Safe on a nil receiver.
func (f *CellFormat) Clone() *CellFormat {
	if f == nil {
		return nil
	}
	cp := *f
	cp.Borders = f.Borders.Clone()
	return &cp
}

// MergeInto returns a clone of f with every non-zero-valued field of other
// copied over it, so a later overlay wins property-wise over an earlier one.
// A field on other is considered set if it differs from its zero value;
// NumberFormat is copied as a whole when other's FormatString is set.
func (f *CellFormat) MergeInto(other *CellFormat) *CellFormat {
	if other == nil {
		return f
	}
	base := f.Clone()
	if base == nil {
		base = &CellFormat{}
	}
	if other.FontFamily != "" {
		base.FontFamily = other.FontFamily
	}
	if other.FontSize != 0 {
		base.FontSize = other.FontSize
	}
	if other.Color != "" {
		base.Color = other.Color
	}
	if other.Bold {
		base.Bold = true
	}
	if other.Italic {
		base.Italic = true
	}
	if other.Underline != UnderlineNone {
		base.Underline = other.Underline
	}
	if other.Strikethrough {
		base.Strikethrough = true
	}
	if other.Horizontal != AlignLeft {
		base.Horizontal = other.Horizontal
	}
	if other.Vertical != AlignTop {
		base.Vertical = other.Vertical
	}
	if other.WrapText {
		base.WrapText = true
	}
	if other.Rotation != 0 {
		base.Rotation = other.Rotation
	}
	if other.Indent != 0 {
		base.Indent = other.Indent
	}
	if other.Background != "" {
		base.Background = other.Background
	}
	if other.Borders != nil {
		base.Borders = other.Borders.Clone()
	}
	if other.NumberFormat.FormatString != "" {
		base.NumberFormat = other.NumberFormat
	}
	return base
}
