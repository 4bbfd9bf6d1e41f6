// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

// measureFor projects value into the unit a threshold is expressed in:
// raw number, percent of the min/max span, or percentile rank among the
// sorted range values.
func measureFor(t IconThresholdType, value float64, stats *RangeStatistics) float64 {
	switch t {
	case IconThresholdPercent:
		if stats.Max == stats.Min {
			return 0
		}
		return (value - stats.Min) / (stats.Max - stats.Min) * 100
	case IconThresholdPercentile:
		return percentileOf(stats.SortedValues, value) * 100
	default: // IconThresholdNumber
		return value
	}
}

// computeIconSet implements the iconSet rule: walk the
// ascending-sorted thresholds, bumping the icon index each time value
// clears one, then invert if reverseOrder is set.
func computeIconSet(cfg *IconSetConfig, value float64, stats *RangeStatistics) *IconOutput {
	index := 0
	for _, th := range cfg.Thresholds {
		measured := measureFor(th.Type, value, stats)
		var pass bool
		if th.Operator == IconOpGTE {
			pass = measured >= th.Value
		} else {
			pass = measured > th.Value
		}
		if !pass {
			break
		}
		index++
	}
	if cfg.ReverseOrder {
		index = len(cfg.Thresholds) - index
	}
	return &IconOutput{Family: cfg.Family, Index: index}
}
