// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// parseHexColor parses "#rrggbb" (the '#' is optional) into 0-255 channels.
func parseHexColor(s string) (r, g, b int) {
	s = strings.TrimPrefix(s, "#")
	if len(s) < 6 {
		return 0, 0, 0
	}
	rv, _ := strconv.ParseInt(s[0:2], 16, 32)
	gv, _ := strconv.ParseInt(s[2:4], 16, 32)
	bv, _ := strconv.ParseInt(s[4:6], 16, 32)
	return int(rv), int(gv), int(bv)
}

func formatHexColor(r, g, b int) string {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return v
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

// lerpColor interpolates linearly in RGB space between from and to at
// fraction t ∈ [0,1].
func lerpColor(from, to string, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	r1, g1, b1 := parseHexColor(from)
	r2, g2, b2 := parseHexColor(to)
	lerp := func(a, b int) int { return a + int(float64(b-a)*t) }
	return formatHexColor(lerp(r1, r2), lerp(g1, g2), lerp(b1, b2))
}

// resolveScalePosition converts a stop's declared position into an actual
// value on the data's scale.
func resolveScalePosition(stop ColorScaleStop, stats *RangeStatistics) float64 {
	switch stop.Position {
	case PositionMin:
		return stats.Min
	case PositionMax:
		return stats.Max
	case PositionPercent:
		return stats.Min + stop.Value/100*(stats.Max-stats.Min)
	case PositionPercentile:
		if len(stats.SortedValues) == 0 {
			return stats.Min
		}
		idx := int(stop.Value / 100 * float64(len(stats.SortedValues)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(stats.SortedValues) {
			idx = len(stats.SortedValues) - 1
		}
		return stats.SortedValues[idx]
	default: // PositionNumber
		return stop.Value
	}
}

// computeColorScale implements the colorScale rule and the
// monotonicity property: at stats.Min the result equals the first stop's
// color, at stats.Max the last stop's color, and is componentwise between
// for any value in range. A zero-range stats degenerates to the min color.
func computeColorScale(cfg *ColorScaleConfig, value float64, stats *RangeStatistics) string {
	if len(cfg.Stops) < 2 {
		if len(cfg.Stops) == 1 {
			return cfg.Stops[0].Color
		}
		return ""
	}
	if stats.Max == stats.Min {
		return cfg.Stops[0].Color
	}

	if len(cfg.Stops) == 2 {
		low := resolveScalePosition(cfg.Stops[0], stats)
		high := resolveScalePosition(cfg.Stops[1], stats)
		if high == low {
			return cfg.Stops[0].Color
		}
		t := (value - low) / (high - low)
		return lerpColor(cfg.Stops[0].Color, cfg.Stops[1].Color, t)
	}

	low := resolveScalePosition(cfg.Stops[0], stats)
	mid := resolveScalePosition(cfg.Stops[1], stats)
	high := resolveScalePosition(cfg.Stops[2], stats)
	if value <= mid {
		if mid == low {
			return cfg.Stops[0].Color
		}
		t := (value - low) / (mid - low)
		return lerpColor(cfg.Stops[0].Color, cfg.Stops[1].Color, t)
	}
	if high == mid {
		return cfg.Stops[1].Color
	}
	t := (value - mid) / (high - mid)
	return lerpColor(cfg.Stops[1].Color, cfg.Stops[2].Color, t)
}
