// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package fillpattern

import (
	"regexp"
	"strconv"
	"strings"
)

var refTokenRe = regexp.MustCompile(`(\$?)([A-Za-z]+)(\$?)(\d+)`)

// columnToIndex converts a base-26 column letter string (A=0) to its
// 0-based index.
func columnToIndex(letters string) int {
	letters = strings.ToUpper(letters)
	idx := 0
	for _, r := range letters {
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1
}

// indexToColumn is columnToIndex's inverse.
func indexToColumn(index int) string {
	index++
	var out []byte
	for index > 0 {
		index--
		out = append([]byte{byte('A' + index%26)}, out...)
		index /= 26
	}
	return string(out)
}

// AdjustFormula rewrites a copied formula's relative references: scan for
// cell-reference tokens,
// shifting the column when its sigil is absent (clamped to >= 0) and the
// row when its sigil is absent (clamped to >= 1). Absolute-marked parts
// are preserved verbatim.
func AdjustFormula(formula string, rowDelta, colDelta int) string {
	return refTokenRe.ReplaceAllStringFunc(formula, func(token string) string {
		m := refTokenRe.FindStringSubmatch(token)
		colSigil, col, rowSigil, rowStr := m[1], m[2], m[3], m[4]

		newCol := col
		if colSigil == "" {
			idx := columnToIndex(col) + colDelta
			if idx < 0 {
				idx = 0
			}
			newCol = indexToColumn(idx)
		}

		newRowStr := rowStr
		if rowSigil == "" {
			row, _ := strconv.Atoi(rowStr)
			row += rowDelta
			if row < 1 {
				row = 1
			}
			newRowStr = strconv.Itoa(row)
		}

		return colSigil + newCol + rowSigil + newRowStr
	})
}
