// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborgrid/sheetcore/internal/condfmt"
	"github.com/arborgrid/sheetcore/internal/merge"
	"github.com/arborgrid/sheetcore/internal/model"
	"github.com/arborgrid/sheetcore/internal/store"
)

func fixedClock(t time.Time) condfmt.Clock {
	return func() time.Time { return t }
}

func TestBuildFrameBasicGridPositionsCellsByCumulativeOffset(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.NumberValue(1)}))
	require.NoError(t, s.Set(0, 1, model.Cell{Value: model.NumberValue(2)}))
	require.NoError(t, s.Set(1, 0, model.Cell{Value: model.NumberValue(3)}))

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Store:    s,
	})

	require.Len(t, frame.Cells, 4) // 2x2 used range, no freeze
	byAddr := map[[2]int64]RenderCell{}
	for _, c := range frame.Cells {
		byAddr[[2]int64{c.Row, c.Col}] = c
	}

	c00 := byAddr[[2]int64{0, 0}]
	assert.Equal(t, 0.0, c00.X)
	assert.Equal(t, 0.0, c00.Y)
	assert.Equal(t, "1", c00.DisplayValue)

	c10 := byAddr[[2]int64{1, 0}]
	assert.Equal(t, DefaultRowHeight, c10.Y, "second row starts after the first row's height")
}

// TestBuildFrameFrozenFirstOrdering checks the implicit z-order: frozen
// corner, then frozen row edge, then frozen column edge, then scrollable.
func TestBuildFrameFrozenFirstOrdering(t *testing.T) {
	s := store.New()
	for r := int64(0); r < 3; r++ {
		for c := int64(0); c < 3; c++ {
			require.NoError(t, s.Set(r, c, model.Cell{Value: model.NumberValue(float64(r*10 + c))}))
		}
	}

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Store:    s,
		Freeze:   Freeze{Rows: 1, Cols: 1},
	})

	require.Len(t, frame.Cells, 9)
	assert.Equal(t, int64(0), frame.Cells[0].Row)
	assert.Equal(t, int64(0), frame.Cells[0].Col)
	assert.True(t, frame.Cells[0].FrozenRow && frame.Cells[0].FrozenCol, "first cell emitted is the frozen corner")

	// The last cell in the frozen-row block (frozen row x scrollable cols)
	// comes before any scrollable-row cell.
	lastFrozenRowBlockIdx := -1
	firstScrollRowBlockIdx := -1
	for i, c := range frame.Cells {
		if c.FrozenRow && !c.FrozenCol {
			lastFrozenRowBlockIdx = i
		}
		if !c.FrozenRow && firstScrollRowBlockIdx == -1 {
			firstScrollRowBlockIdx = i
		}
	}
	require.NotEqual(t, -1, lastFrozenRowBlockIdx)
	require.NotEqual(t, -1, firstScrollRowBlockIdx)
	assert.Less(t, lastFrozenRowBlockIdx, firstScrollRowBlockIdx)
}

func TestBuildFrameMergeAnchorSpansAndElidesChildren(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.StringValue("header")}))
	mgr := merge.New(s)
	res := mgr.Merge(model.NewRange(0, 0, 0, 1))
	require.True(t, res.Success)

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Store:    s,
		Merges:   mgr,
	})

	require.Len(t, frame.Cells, 1, "the merge child is elided, leaving only the anchor")
	anchor := frame.Cells[0]
	assert.Equal(t, int64(0), anchor.Row)
	assert.Equal(t, int64(0), anchor.Col)
	assert.Equal(t, 2, anchor.ColSpan)
	assert.Equal(t, DefaultColWidth*2, anchor.Width)
}

func TestBuildFrameConditionalFormatOverlayMergesIntoFormat(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.NumberValue(42)}))

	rules := condfmt.NewManager()
	rules.AddRule(condfmt.Rule{
		Type:     condfmt.RuleCellValue,
		Range:    model.NewRange(0, 0, 10, 10),
		Priority: 1,
		Format:   &model.CellFormat{Background: "red"},
		CellValue: &condfmt.CellValueConfig{
			Op:    condfmt.OpGT,
			Value: model.NumberValue(10),
		},
	})

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Store:    s,
		CondFmt:  rules,
		Clock:    fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
	})

	require.Len(t, frame.Cells, 1)
	cell := frame.Cells[0]
	require.NotNil(t, cell.Format)
	assert.Equal(t, "red", cell.Format.Background)
	require.NotNil(t, cell.ConditionalFormat)
	assert.Equal(t, "red", cell.ConditionalFormat.FormatOverrides.Background)
}

func TestBuildFrameHiddenRowExcludedFromCellsButKeptInMetadata(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.NumberValue(1)}))
	require.NoError(t, s.Set(1, 0, model.Cell{Value: model.NumberValue(2)}))

	frame := BuildFrame(BuildFrameOptions{
		Viewport:  Viewport{Width: 800, Height: 600},
		Store:     s,
		HiddenRow: func(row int64) bool { return row == 1 },
	})

	for _, c := range frame.Cells {
		assert.NotEqual(t, int64(1), c.Row, "hidden row must not emit cells")
	}
	var sawHiddenMeta bool
	for _, r := range frame.Rows {
		if r.Row == 1 {
			sawHiddenMeta = true
			assert.True(t, r.Hidden)
		}
	}
	assert.True(t, sawHiddenMeta, "hidden row still appears in row metadata")
}

func TestBuildFrameFreezeLinesReflectFrozenExtent(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(2, 2, model.Cell{Value: model.NumberValue(1)}))

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Store:    s,
		Freeze:   Freeze{Rows: 1, Cols: 1},
	})

	require.NotNil(t, frame.FreezeLines.Horizontal)
	require.NotNil(t, frame.FreezeLines.Vertical)
	assert.Equal(t, DefaultRowHeight, *frame.FreezeLines.Horizontal)
	assert.Equal(t, DefaultColWidth, *frame.FreezeLines.Vertical)
}

func TestBuildFrameHeaderSizesOffsetEveryPosition(t *testing.T) {
	s := store.New()
	require.NoError(t, s.Set(0, 0, model.Cell{Value: model.NumberValue(1)}))

	frame := BuildFrame(BuildFrameOptions{
		Viewport: Viewport{Width: 800, Height: 600},
		Headers:  HeaderSizes{Width: 48, Height: 24},
		Store:    s,
		Freeze:   Freeze{Rows: 1, Cols: 1},
	})

	require.NotEmpty(t, frame.Cells)
	assert.Equal(t, 48.0, frame.Cells[0].X)
	assert.Equal(t, 24.0, frame.Cells[0].Y)
	require.NotNil(t, frame.FreezeLines.Horizontal)
	assert.Equal(t, 24.0+DefaultRowHeight, *frame.FreezeLines.Horizontal)
	require.NotNil(t, frame.FreezeLines.Vertical)
	assert.Equal(t, 48.0+DefaultColWidth, *frame.FreezeLines.Vertical)
}

func TestComputeAxisRangeHonorsOverscanAndClampsToBounds(t *testing.T) {
	sizer := UniformSizer(10)
	start, end := computeAxisRange(sizer, 50, 30, 2, 0, 100)
	// scrollOffset 50 lands at row 5 (50/10); viewport fits rows 5-7 (30/10);
	// overscan widens the tight [5,7] window by 2 on each side.
	assert.Equal(t, int64(3), start)
	assert.Equal(t, int64(9), end)

	start, end = computeAxisRange(sizer, 0, 1000, 5, 0, 3)
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(3), end, "clamped to the sheet's max index")
}
