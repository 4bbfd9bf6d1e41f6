// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/arborgrid/sheetcore/internal/model"
)

// coerceNumber mirrors the filter engine's numeric coercion (number ->
// itself, bool -> 1/0, numeric string -> parsed, anything else -> NaN) so cellValue's
// "mixed-type falls back to numeric coercion" clause behaves the same way
// at both layers.
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

func isErrorValue(v model.CellValue) bool {
	if v.Kind == model.ValueError {
		return true
	}
	return strings.HasPrefix(v.PlainText(), "#")
}

// matchCellValue implements the cellValue rule: numeric comparison when the
// cell value coerces to a number, otherwise string comparison. With a
// numeric cell value, a threshold that does not coerce never matches.
func matchCellValue(cfg *CellValueConfig, v model.CellValue) bool {
	n := coerceNumber(v)
	useNumeric := !math.IsNaN(n)

	switch cfg.Op {
	case OpBetween, OpNotBetween:
		min, max := coerceNumber(cfg.Min), coerceNumber(cfg.Max)
		if min > max {
			min, max = max, min
		}
		var in bool
		if useNumeric {
			in = n >= min && n <= max
		} else {
			s, smin, smax := v.PlainText(), cfg.Min.PlainText(), cfg.Max.PlainText()
			if smin > smax {
				smin, smax = smax, smin
			}
			in = s >= smin && s <= smax
		}
		if cfg.Op == OpNotBetween {
			return !in
		}
		return in
	default:
		if useNumeric {
			t := coerceNumber(cfg.Value)
			if math.IsNaN(t) {
				return false
			}
			return compareNumeric(cfg.Op, n, t)
		}
		return compareString(cfg.Op, v.PlainText(), cfg.Value.PlainText())
	}
}

func compareNumeric(op CompareOp, a, b float64) bool {
	switch op {
	case OpGT:
		return a > b
	case OpGTE:
		return a >= b
	case OpLT:
		return a < b
	case OpLTE:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}

func compareString(op CompareOp, a, b string) bool {
	switch op {
	case OpGT:
		return a > b
	case OpGTE:
		return a >= b
	case OpLT:
		return a < b
	case OpLTE:
		return a <= b
	case OpEqual:
		return a == b
	case OpNotEqual:
		return a != b
	default:
		return false
	}
}

// matchText implements the text rule: non-string cell values
// are stringified first; null never matches.
func matchText(cfg *TextConfig, v model.CellValue) bool {
	if v.Kind == model.ValueEmpty {
		return false
	}
	haystack := v.PlainText()
	needle := cfg.Value
	if !cfg.CaseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	switch cfg.Op {
	case TextContains:
		return strings.Contains(haystack, needle)
	case TextNotContains:
		return !strings.Contains(haystack, needle)
	case TextBeginsWith:
		return strings.HasPrefix(haystack, needle)
	case TextEndsWith:
		return strings.HasSuffix(haystack, needle)
	default:
		return false
	}
}

// matchTopBottom implements the topBottom rule. Percent rounds
// up and is floored at 1 item.
func matchTopBottom(cfg *TopBottomConfig, v model.CellValue, stats *RangeStatistics) bool {
	if stats == nil || len(stats.SortedValues) == 0 {
		return false
	}
	n := coerceNumber(v)
	if math.IsNaN(n) {
		return false
	}
	count := cfg.Count
	if cfg.Unit == UnitPercent {
		count = int(math.Ceil(float64(cfg.Count) / 100 * float64(len(stats.SortedValues))))
	}
	if count < 1 {
		count = 1
	}
	if count > len(stats.SortedValues) {
		count = len(stats.SortedValues)
	}
	if cfg.IsBottom {
		threshold := stats.SortedValues[count-1]
		return n <= threshold
	}
	threshold := stats.SortedValues[len(stats.SortedValues)-count]
	return n >= threshold
}

// matchSimple implements the no-config rule kinds
// duplicates/unique are range-level placeholders that never match at the
// single-cell layer; formula always returns no match here.
func matchSimple(t RuleType, v model.CellValue) bool {
	switch t {
	case RuleBlanks:
		return isBlank(v)
	case RuleNoBlanks:
		return !isBlank(v)
	case RuleErrors:
		return isErrorValue(v)
	case RuleNoErrors:
		return !isErrorValue(v)
	case RuleDuplicates, RuleUnique, RuleFormula:
		return false
	default:
		return false
	}
}

// percentileOf returns v's fractional position within sorted (ascending):
// the index of the first element >= v divided by len-1, with no
// interpolation between ranks.
func percentileOf(sorted []float64, v float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return 0
	}
	idx := sort.SearchFloat64s(sorted, v)
	if idx >= n {
		return 1
	}
	return float64(idx) / float64(n-1)
}
