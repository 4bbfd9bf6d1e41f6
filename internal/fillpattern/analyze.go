// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fillpattern

import (
	"math"
	"regexp"
	"strconv"

	"github.com/arborgrid/sheetcore/internal/model"
)

var textWithNumberRe = regexp.MustCompile(`^(.*?)(\d+)(.*?)$`)

const linearEpsilon = 1e-10

// Analyze implements the ordered decision list.
func Analyze(source []model.Cell, lists *ListRegistry) DetectedPattern {
	n := len(source)
	if n == 0 {
		return DetectedPattern{Type: PatternCopy, SourceLength: 0, Confidence: 1}
	}

	allFormula := true
	for _, c := range source {
		if c.Formula == "" {
			allFormula = false
			break
		}
	}
	if allFormula {
		return DetectedPattern{Type: PatternFormula, HasFormulas: true, SourceLength: n, Confidence: 1}
	}

	if n == 1 {
		return analyzeSingle(source[0], lists, n)
	}

	if nums, ok := asNumbers(source); ok {
		return analyzeNumericSeries(nums, n)
	}

	if strs, ok := asStrings(source); ok {
		return analyzeStringSeries(strs, lists, n)
	}

	return DetectedPattern{Type: PatternCopy, SourceLength: n, Confidence: 1}
}

func analyzeSingle(cell model.Cell, lists *ListRegistry, n int) DetectedPattern {
	if cell.Formula != "" {
		return DetectedPattern{Type: PatternFormula, HasFormulas: true, SourceLength: n, Confidence: 1}
	}
	if cell.Value.IsEmpty() {
		return DetectedPattern{Type: PatternCopy, SourceLength: n, Confidence: 1}
	}
	if cell.Value.Kind == model.ValueNumber {
		return DetectedPattern{Type: PatternNumber, IsLinear: true, Step: 1, SourceLength: n, Confidence: 0.5}
	}

	text := cell.Value.PlainText()
	if name, _, idx, ok := lists.findList(text); ok {
		return DetectedPattern{
			Type: patternTypeForList(name), ListName: name, ListStartIndex: idx,
			SourceLength: n, Confidence: 1,
		}
	}
	if m := textWithNumberRe.FindStringSubmatch(text); m != nil && m[2] != "" {
		num, _ := strconv.ParseInt(m[2], 10, 64)
		return DetectedPattern{
			Type: PatternTextWithNumber, Prefix: m[1], Suffix: m[3],
			StartNumber: num, MinDigits: len(m[2]), Step: 1,
			SourceLength: n, Confidence: 1,
		}
	}
	return DetectedPattern{Type: PatternText, SourceLength: n, Confidence: 1}
}

func asNumbers(source []model.Cell) ([]float64, bool) {
	out := make([]float64, len(source))
	for i, c := range source {
		if c.Value.Kind != model.ValueNumber {
			return nil, false
		}
		out[i] = c.Value.Number
	}
	return out, true
}

func asStrings(source []model.Cell) ([]string, bool) {
	out := make([]string, len(source))
	for i, c := range source {
		if c.Value.Kind != model.ValueString && c.Value.Kind != model.ValueFormattedText {
			return nil, false
		}
		out[i] = c.Value.PlainText()
	}
	return out, true
}

func analyzeNumericSeries(nums []float64, n int) DetectedPattern {
	step := nums[1] - nums[0]
	isLinear := true
	for i := 2; i < len(nums); i++ {
		if math.Abs((nums[i]-nums[i-1])-step) > linearEpsilon {
			isLinear = false
			break
		}
	}
	if isLinear {
		return DetectedPattern{Type: PatternNumber, IsLinear: true, Step: step, SourceLength: n, Confidence: 1}
	}

	hasZero := false
	for _, v := range nums {
		if v == 0 {
			hasZero = true
			break
		}
	}
	if !hasZero && nums[0] != 0 {
		ratio := nums[1] / nums[0]
		if ratio != 0 && ratio != 1 {
			isGrowth := true
			for i := 2; i < len(nums); i++ {
				if nums[i-1] == 0 || math.Abs(nums[i]/nums[i-1]-ratio) > linearEpsilon {
					isGrowth = false
					break
				}
			}
			if isGrowth {
				return DetectedPattern{Type: PatternNumber, IsGrowth: true, GrowthRatio: ratio, SourceLength: n, Confidence: 1}
			}
		}
	}

	return DetectedPattern{Type: PatternCopy, SourceLength: n, Confidence: 1}
}

func analyzeStringSeries(strs []string, lists *ListRegistry, n int) DetectedPattern {
	if name, startIdx, ok := detectCustomListSeries(strs, lists); ok {
		return DetectedPattern{
			Type: patternTypeForList(name), ListName: name, ListStartIndex: startIdx,
			SourceLength: n, Confidence: 1,
		}
	}
	if prefix, suffix, startNum, step, minDigits, ok := detectTextWithNumberSeries(strs); ok {
		return DetectedPattern{
			Type: PatternTextWithNumber, Prefix: prefix, Suffix: suffix,
			StartNumber: startNum, Step: step, MinDigits: minDigits,
			SourceLength: n, Confidence: 1,
		}
	}
	return DetectedPattern{Type: PatternCopy, SourceLength: n, Confidence: 1}
}

// detectCustomListSeries requires every value to belong to the same list,
// with a constant per-step index delta (wrapping around the list length).
func detectCustomListSeries(strs []string, lists *ListRegistry) (name string, startIdx int, ok bool) {
	firstName, values, firstIdx, found := lists.findList(strs[0])
	if !found {
		return "", 0, false
	}
	indices := make([]int, len(strs))
	indices[0] = firstIdx
	for i := 1; i < len(strs); i++ {
		_, v, idx, ok := lists.findList(strs[i])
		if !ok || !sameList(v, values) {
			return "", 0, false
		}
		indices[i] = idx
	}
	if len(strs) < 2 {
		return firstName, firstIdx, true
	}
	delta := wrapDelta(indices[0], indices[1], len(values))
	for i := 2; i < len(indices); i++ {
		if wrapDelta(indices[i-1], indices[i], len(values)) != delta {
			return "", 0, false
		}
	}
	return firstName, firstIdx, true
}

func sameList(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func wrapDelta(from, to, length int) int {
	d := (to - from) % length
	if d < 0 {
		d += length
	}
	return d
}

// detectTextWithNumberSeries requires every value to share the same prefix
// and suffix with a consistent linear numeric step.
func detectTextWithNumberSeries(strs []string) (prefix, suffix string, startNum int64, step float64, minDigits int, ok bool) {
	matches := make([][]string, len(strs))
	for i, s := range strs {
		m := textWithNumberRe.FindStringSubmatch(s)
		if m == nil || m[2] == "" {
			return "", "", 0, 0, 0, false
		}
		matches[i] = m
	}
	prefix, suffix = matches[0][1], matches[0][3]
	nums := make([]int64, len(strs))
	for i, m := range matches {
		if m[1] != prefix || m[3] != suffix {
			return "", "", 0, 0, 0, false
		}
		v, _ := strconv.ParseInt(m[2], 10, 64)
		nums[i] = v
	}
	step64 := nums[1] - nums[0]
	for i := 2; i < len(nums); i++ {
		if nums[i]-nums[i-1] != step64 {
			return "", "", 0, 0, 0, false
		}
	}
	return prefix, suffix, nums[0], float64(step64), len(matches[0][2]), true
}
