// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package model

import (
	"strconv"
	"strings"
)

// formatNumber renders a float64 the way a bare numeric CellValue should
// stringify for text-predicate projection: integral values drop the
// trailing ".0", everything else uses the shortest round-trippable form.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatDisplayValue renders v as the string the render-frame adapter
// writes into RenderCell.DisplayValue, honoring NumberFormat metadata for
// percentage and currency cells. Non-numeric values render via PlainText.
func FormatDisplayValue(v CellValue, nf NumberFormat) string {
	if v.Kind != ValueNumber {
		return v.PlainText()
	}
	switch {
	case nf.IsPercentage:
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(v.Number*100, 'f', 2, 64), "0"), ".") + "%"
	case nf.IsCurrency:
		symbol := nf.CurrencySymbol
		if symbol == "" {
			symbol = "$"
		}
		return symbol + strconv.FormatFloat(v.Number, 'f', 2, 64)
	default:
		return formatNumber(v.Number)
	}
}
