// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fillpattern

import (
	"fmt"
	"math"
	"strings"

	"github.com/arborgrid/sheetcore/internal/model"
)

// offsetFor computes a generated cell's (rowOffset, colOffset) from the
// fill origin.
func offsetFor(i int, direction Direction) (rowOffset, colOffset int) {
	switch direction {
	case DirectionDown:
		return i + 1, 0
	case DirectionUp:
		return -(i + 1), 0
	case DirectionRight:
		return 0, i + 1
	case DirectionLeft:
		return 0, -(i + 1)
	default:
		return i + 1, 0
	}
}

// Generate implements the generation algorithm: for each target
// index compute sourceIndex/cycle and dispatch on the detected pattern.
func Generate(pattern DetectedPattern, source []model.Cell, targetLen int, direction Direction, lists *ListRegistry) []GeneratedCell {
	if len(source) == 0 || targetLen <= 0 {
		return nil
	}
	sourceLen := len(source)
	out := make([]GeneratedCell, targetLen)

	for i := 0; i < targetLen; i++ {
		sourceIndex := i % sourceLen
		src := source[sourceIndex]
		rowOffset, colOffset := offsetFor(i, direction)
		gc := GeneratedCell{Format: src.Format.Clone(), RowOffset: rowOffset, ColOffset: colOffset}

		switch pattern.Type {
		case PatternNumber:
			if pattern.IsGrowth {
				gc.Value = model.NumberValue(source[0].Value.Number * math.Pow(pattern.GrowthRatio, float64(sourceLen+i)))
			} else {
				gc.Value = model.NumberValue(source[0].Value.Number + pattern.Step*float64(sourceLen+i))
			}
		case PatternTextWithNumber:
			n := pattern.StartNumber + int64(pattern.Step)*int64(sourceLen+i)
			gc.Value = model.StringValue(fmt.Sprintf("%s%s%s", pattern.Prefix, padNumber(n, pattern.MinDigits), pattern.Suffix))
		case PatternDayName, PatternMonthName, PatternCustom:
			gc.Value = generateListValue(pattern, src, sourceLen, i, lists)
		case PatternFormula:
			gc.Formula = adjustFormulaOrCopy(src.Formula, rowOffset, colOffset)
			gc.Value = src.Value.Clone()
		default: // PatternText, PatternMixed, PatternCopy, PatternDate
			gc.Value = src.Value.Clone()
			gc.Formula = src.Formula
		}
		out[i] = gc
	}
	return out
}

func padNumber(n int64, minDigits int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) >= minDigits {
		return s
	}
	return strings.Repeat("0", minDigits-len(s)) + s
}

func generateListValue(pattern DetectedPattern, src model.Cell, sourceLen, i int, lists *ListRegistry) model.CellValue {
	values := lists.listByName(pattern.ListName)
	if len(values) == 0 {
		return src.Value.Clone()
	}
	idx := (pattern.ListStartIndex + sourceLen + i) % len(values)
	style := detectCaseStyle(src.Value.PlainText())
	return model.StringValue(applyCaseStyle(style, values[idx]))
}

// adjustFormulaOrCopy adjusts formula's references, or returns it verbatim
// (downgraded to a copy) if it contains no recognizable reference tokens,
// matching the MalformedFormula error's "treated as copy and downgraded
// silently" propagation policy.
func adjustFormulaOrCopy(formula string, rowDelta, colDelta int) string {
	if formula == "" {
		return formula
	}
	return AdjustFormula(formula, rowDelta, colDelta)
}
