// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package render

// computeAxisRange walks the cumulative size table from the end of the
// frozen region until the scroll offset is exhausted, then keeps walking
// until the viewport is filled, widening both ends by overscan and clamping
// to [frozenCount, maxIndex].
//
// An empty scrollable region (maxIndex < frozenCount) reports an empty
// range at frozenCount with end = frozenCount-1, a valid "zero rows" result
// callers must check via end < start before ranging over it.
func computeAxisRange(sizer AxisSizer, scrollOffset, viewportSize float64, overscan, frozenCount, maxIndex int64) (start, end int64) {
	if maxIndex < frozenCount {
		return frozenCount, frozenCount - 1
	}

	// Tight start: the first index whose span crosses the scroll offset.
	idx, cum := frozenCount, 0.0
	for idx <= maxIndex && cum+sizer(idx) <= scrollOffset {
		cum += sizer(idx)
		idx++
	}
	tightStart := idx

	// Tight end: keep accumulating from tightStart until the viewport is full.
	end, cum = tightStart, 0.0
	for end <= maxIndex && cum < viewportSize {
		cum += sizer(end)
		end++
	}
	tightEnd := end - 1

	start = tightStart - overscan
	if start < frozenCount {
		start = frozenCount
	}
	end = tightEnd + overscan
	if end > maxIndex {
		end = maxIndex
	}
	if end < start {
		end = start
	}
	return start, end
}

// axisRange lists every index in [start, end], inclusive; a helper for the
// frozen region, which has no scroll-driven bound of its own.
func axisRange(start, end int64) []int64 {
	if end < start {
		return nil
	}
	out := make([]int64, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
