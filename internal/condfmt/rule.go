// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package condfmt implements the conditional formatting engine: a
// priority-sorted, overlapping rule set evaluated against a cell value
// plus precomputed range statistics, producing merged format overlays,
// color scales, data bars, and icon indices.
package condfmt

import "github.com/arborgrid/sheetcore/internal/model"

// RuleID is an opaque, monotonically-increasing token scoped to one
// Manager instance.
type RuleID int64

// RuleType enumerates the rule kinds.
type RuleType string

const (
	RuleCellValue  RuleType = "cellValue"
	RuleText       RuleType = "text"
	RuleTopBottom  RuleType = "topBottom"
	RuleDate       RuleType = "date"
	RuleColorScale RuleType = "colorScale"
	RuleDataBar    RuleType = "dataBar"
	RuleIconSet    RuleType = "iconSet"
	RuleFormula    RuleType = "formula"
	RuleBlanks     RuleType = "blanks"
	RuleNoBlanks   RuleType = "noBlanks"
	RuleErrors     RuleType = "errors"
	RuleNoErrors   RuleType = "noErrors"
	RuleDuplicates RuleType = "duplicates"
	RuleUnique     RuleType = "unique"
)

// CompareOp enumerates cellValue's comparison operators.
type CompareOp string

const (
	OpGT         CompareOp = "gt"
	OpGTE        CompareOp = "gte"
	OpLT         CompareOp = "lt"
	OpLTE        CompareOp = "lte"
	OpEqual      CompareOp = "equal"
	OpNotEqual   CompareOp = "notEqual"
	OpBetween    CompareOp = "between"
	OpNotBetween CompareOp = "notBetween"
)

// CellValueConfig backs the cellValue rule type. Value/Min/Max hold the
// comparison threshold(s); mixed cell-value/threshold types fall back to
// numeric coercion.
type CellValueConfig struct {
	Op       CompareOp
	Value    model.CellValue
	Min, Max model.CellValue
}

// TextOp enumerates the text rule type's operators.
type TextOp string

const (
	TextContains    TextOp = "contains"
	TextNotContains TextOp = "notContains"
	TextBeginsWith  TextOp = "beginsWith"
	TextEndsWith    TextOp = "endsWith"
)

// TextConfig backs the text rule type. Matching defaults to
// case-insensitive.
type TextConfig struct {
	Op            TextOp
	Value         string
	CaseSensitive bool
}

// TopBottomUnit distinguishes "top/bottom N items" from "top/bottom N%".
type TopBottomUnit string

const (
	UnitItems   TopBottomUnit = "items"
	UnitPercent TopBottomUnit = "percent"
)

// TopBottomConfig backs the topBottom rule type. It requires RangeStatistics
// at evaluation time.
type TopBottomConfig struct {
	Unit     TopBottomUnit
	Count    int
	IsBottom bool
}

// DateBucket enumerates the date rule type's relative buckets.
type DateBucket string

const (
	BucketYesterday DateBucket = "yesterday"
	BucketToday     DateBucket = "today"
	BucketTomorrow  DateBucket = "tomorrow"
	BucketLast7Days DateBucket = "last7Days"
	BucketLastWeek  DateBucket = "lastWeek"
	BucketThisWeek  DateBucket = "thisWeek"
	BucketNextWeek  DateBucket = "nextWeek"
	BucketLastMonth DateBucket = "lastMonth"
	BucketThisMonth DateBucket = "thisMonth"
	BucketNextMonth DateBucket = "nextMonth"
)

// DateConfig backs the date rule type. Cell values are coerced as Excel
// serial day numbers, a deliberately different policy from the filter
// engine's milliseconds-since-epoch coercion; see DESIGN.md.
type DateConfig struct {
	Bucket DateBucket
}

// ScalePosition enumerates where a color-scale stop sits.
type ScalePosition string

const (
	PositionMin        ScalePosition = "min"
	PositionMax        ScalePosition = "max"
	PositionNumber     ScalePosition = "number"
	PositionPercent    ScalePosition = "percent"
	PositionPercentile ScalePosition = "percentile"
)

// ColorScaleStop is one stop of a 2- or 3-stop color scale.
type ColorScaleStop struct {
	Position ScalePosition
	Value    float64
	Color    string // "#rrggbb"
}

// ColorScaleConfig backs the colorScale rule type. Stops must be 2 or 3
// long; the midpoint of a 3-stop scale splits interpolation into two legs.
type ColorScaleConfig struct {
	Stops []ColorScaleStop
}

// DataBarConfig backs the dataBar rule type.
type DataBarConfig struct {
	MinValue, MaxValue *float64
	Color               string
	NegativeFillColor   string
	Gradient            bool
}

// IconThresholdType enumerates how an icon threshold's Value is measured.
type IconThresholdType string

const (
	IconThresholdNumber     IconThresholdType = "number"
	IconThresholdPercent    IconThresholdType = "percent"
	IconThresholdPercentile IconThresholdType = "percentile"
)

// IconThresholdOp enumerates an icon threshold's comparison.
type IconThresholdOp string

const (
	IconOpGT  IconThresholdOp = "gt"
	IconOpGTE IconThresholdOp = "gte"
)

// IconThreshold is one boundary in an ascending-sorted threshold walk.
type IconThreshold struct {
	Type     IconThresholdType
	Operator IconThresholdOp
	Value    float64
}

// IconSetConfig backs the iconSet rule type. Family names a 3/4/5-icon set
// (e.g. "3TrafficLights", "4Arrows", "5Ratings"); Thresholds must be sorted
// ascending by Value within a common Type.
type IconSetConfig struct {
	Family       string
	Thresholds   []IconThreshold
	ReverseOrder bool
}

// Rule is a single conditional-formatting rule, keyed by ID.
// Exactly one of the *Config fields is populated, matching Type; the
// simple kinds (blanks, noBlanks, errors, noErrors, duplicates, unique,
// formula) carry no config.
type Rule struct {
	ID         RuleID
	Type       RuleType
	Range      model.Range
	Priority   int
	StopIfTrue bool
	Format     *model.CellFormat

	CellValue  *CellValueConfig
	Text       *TextConfig
	TopBottom  *TopBottomConfig
	Date       *DateConfig
	ColorScale *ColorScaleConfig
	DataBar    *DataBarConfig
	IconSet    *IconSetConfig
}

// Clone deep-copies a rule so a caller holding a reference from
// ExportRules can't mutate the manager's internal state.
func (r Rule) Clone() Rule {
	cp := r
	cp.Format = r.Format.Clone()
	if r.CellValue != nil {
		v := *r.CellValue
		cp.CellValue = &v
	}
	if r.Text != nil {
		v := *r.Text
		cp.Text = &v
	}
	if r.TopBottom != nil {
		v := *r.TopBottom
		cp.TopBottom = &v
	}
	if r.Date != nil {
		v := *r.Date
		cp.Date = &v
	}
	if r.ColorScale != nil {
		v := *r.ColorScale
		v.Stops = append([]ColorScaleStop(nil), r.ColorScale.Stops...)
		cp.ColorScale = &v
	}
	if r.DataBar != nil {
		v := *r.DataBar
		cp.DataBar = &v
	}
	if r.IconSet != nil {
		v := *r.IconSet
		v.Thresholds = append([]IconThreshold(nil), r.IconSet.Thresholds...)
		cp.IconSet = &v
	}
	return cp
}

// RangeStatistics is the precomputed summary the topBottom, colorScale, and
// iconSet rule kinds need: the evaluated range's values sorted ascending,
// plus their min/max.
type RangeStatistics struct {
	SortedValues []float64
	Min, Max     float64
}

// DataBarOutput is a dataBar rule's render-ready output.
type DataBarOutput struct {
	Percent    float64
	Color      string
	Gradient   bool
	IsNegative bool
}

// IconOutput is an iconSet rule's render-ready output.
type IconOutput struct {
	Family string
	Index  int
}

// ComputedCellFormat is one cell's evaluation result: the merged format
// overlay plus any scale/bar/icon output, and the IDs of every rule that
// matched, in ascending-priority order. Callers treat a nil field as "no
// conditional output of this kind".
type ComputedCellFormat struct {
	Format               *model.CellFormat
	DataBar              *DataBarOutput
	Icon                 *IconOutput
	ColorScaleBackground string
	MatchedRules         []RuleID
}
