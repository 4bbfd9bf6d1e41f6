// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

import (
	"time"

	"github.com/arborgrid/sheetcore/internal/model"
)

// Clock supplies "now" for the date rule's relative buckets. Defaults to
// time.Now; tests substitute a fixed clock for determinism.
type Clock func() time.Time

// EvaluateCell implements the per-cell evaluation: gather every
// rule whose range contains (row, col), ascending by priority; merge each
// match's format into the accumulating overlay (later rules win); apply
// scale/bar/icon output; stop at the first matching rule with StopIfTrue.
func (m *Manager) EvaluateCell(row, col int64, value model.CellValue, stats *RangeStatistics, clock Clock) ComputedCellFormat {
	if clock == nil {
		clock = time.Now
	}
	var out ComputedCellFormat
	for _, rule := range m.GetRulesForCell(row, col) {
		matched, scaleColor, bar, icon := evaluateRule(rule, value, stats, clock())
		if !matched {
			continue
		}
		out.MatchedRules = append(out.MatchedRules, rule.ID)
		if rule.Format != nil {
			if out.Format == nil {
				out.Format = rule.Format.Clone()
			} else {
				out.Format = out.Format.MergeInto(rule.Format)
			}
		}
		if scaleColor != "" {
			out.ColorScaleBackground = scaleColor
		}
		if bar != nil {
			out.DataBar = bar
		}
		if icon != nil {
			out.Icon = icon
		}
		if rule.StopIfTrue {
			break
		}
	}
	return out
}

// evaluateRule dispatches to the rule-kind-specific matcher and, for the
// output-producing kinds, computes the scale/bar/icon payload.
func evaluateRule(rule *Rule, value model.CellValue, stats *RangeStatistics, now time.Time) (matched bool, scaleColor string, bar *DataBarOutput, icon *IconOutput) {
	switch rule.Type {
	case RuleCellValue:
		if rule.CellValue == nil {
			return false, "", nil, nil
		}
		return matchCellValue(rule.CellValue, value), "", nil, nil
	case RuleText:
		if rule.Text == nil {
			return false, "", nil, nil
		}
		return matchText(rule.Text, value), "", nil, nil
	case RuleTopBottom:
		if rule.TopBottom == nil {
			return false, "", nil, nil
		}
		return matchTopBottom(rule.TopBottom, value, stats), "", nil, nil
	case RuleDate:
		if rule.Date == nil {
			return false, "", nil, nil
		}
		return matchDateBucket(rule.Date, value, now), "", nil, nil
	case RuleColorScale:
		if rule.ColorScale == nil || stats == nil {
			return false, "", nil, nil
		}
		n := coerceNumber(value)
		if n != n { // NaN
			return false, "", nil, nil
		}
		return true, computeColorScale(rule.ColorScale, n, stats), nil, nil
	case RuleDataBar:
		if rule.DataBar == nil || stats == nil {
			return false, "", nil, nil
		}
		n := coerceNumber(value)
		if n != n {
			return false, "", nil, nil
		}
		return true, "", computeDataBar(rule.DataBar, n, stats), nil
	case RuleIconSet:
		if rule.IconSet == nil || stats == nil {
			return false, "", nil, nil
		}
		n := coerceNumber(value)
		if n != n {
			return false, "", nil, nil
		}
		return true, "", nil, computeIconSet(rule.IconSet, n, stats)
	default:
		return matchSimple(rule.Type, value), "", nil, nil
	}
}

// CellAddress keys BatchEvaluate's result map; a flat (row, col) pair is
// clearer at this boundary than reusing the store's packed cell key.
type CellAddress struct{ Row, Col int64 }

// BatchEvaluate evaluates every (address, value) pair against one shared
// RangeStatistics, returning a result populated only for cells with at
// least one match.
func (m *Manager) BatchEvaluate(values map[CellAddress]model.CellValue, stats *RangeStatistics, clock Clock) map[CellAddress]ComputedCellFormat {
	out := make(map[CellAddress]ComputedCellFormat)
	for addr, v := range values {
		computed := m.EvaluateCell(addr.Row, addr.Col, v, stats, clock)
		if len(computed.MatchedRules) > 0 {
			out[addr] = computed
		}
	}
	return out
}
