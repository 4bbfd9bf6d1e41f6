// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

// computeDataBar implements the dataBar rule: a percent ∈
// [0,100] scaled against the (possibly rule-overridden) min/max, using
// negativeFillColor for negative values when provided.
func computeDataBar(cfg *DataBarConfig, value float64, stats *RangeStatistics) *DataBarOutput {
	min, max := stats.Min, stats.Max
	if cfg.MinValue != nil {
		min = *cfg.MinValue
	}
	if cfg.MaxValue != nil {
		max = *cfg.MaxValue
	}

	isNegative := value < 0
	color := cfg.Color
	if isNegative && cfg.NegativeFillColor != "" {
		color = cfg.NegativeFillColor
	}

	var percent float64
	switch {
	case max == min:
		percent = 0
	case isNegative && min < 0:
		// Negative values scale against the span below zero.
		span := min
		if span == 0 {
			percent = 0
		} else {
			percent = (value / span) * 100
		}
	default:
		percent = (value - min) / (max - min) * 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return &DataBarOutput{Percent: percent, Color: color, Gradient: cfg.Gradient, IsNegative: isNegative}
}
