// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package fillpattern implements the fill-pattern engine:
// pattern detection over a source sequence, value generation with
// case-matched list cycling, and relative-reference formula adjustment.
package fillpattern

import "github.com/arborgrid/sheetcore/internal/model"

// PatternType names the semantic shape Analyze detected. "date" is kept
// in the type enumeration, but never produced directly:
// model.CellValue has no distinct date kind, so a date series arrives as
// PatternNumber at this layer (the condfmt and render layers are what
// carry the "this number is a date" intent via NumberFormat).
type PatternType string

const (
	PatternNumber         PatternType = "number"
	PatternDate           PatternType = "date"
	PatternText           PatternType = "text"
	PatternTextWithNumber PatternType = "textWithNumber"
	PatternDayName        PatternType = "dayName"
	PatternMonthName      PatternType = "monthName"
	PatternCustom         PatternType = "custom"
	PatternFormula        PatternType = "formula"
	PatternMixed          PatternType = "mixed"
	PatternCopy           PatternType = "copy"
)

// Direction is the fill direction relative to the source.
type Direction string

const (
	DirectionDown  Direction = "down"
	DirectionUp    Direction = "up"
	DirectionRight Direction = "right"
	DirectionLeft  Direction = "left"
)

// DetectedPattern is Analyze's result.
type DetectedPattern struct {
	Type PatternType

	Step        float64
	IsLinear    bool
	GrowthRatio float64
	IsGrowth    bool

	ListName       string
	ListStartIndex int

	Prefix     string
	Suffix     string
	StartNumber int64
	MinDigits   int

	HasFormulas  bool
	SourceLength int
	Confidence   float64
}

// GeneratedCell is one fill-generated output, carrying its offset from the
// fill origin.
type GeneratedCell struct {
	Value     model.CellValue
	Formula   string
	Format    *model.CellFormat
	RowOffset int
	ColOffset int
}
