// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

import (
	"time"

	"github.com/arborgrid/sheetcore/internal/model"
)

// excelEpochOffsetDays is the day count between Excel's serial-date epoch
// (1899-12-30, chosen to reproduce Lotus 1-2-3's leap-year bug) and the
// Unix epoch.
const excelEpochOffsetDays = 25569

func excelSerialToTime(serial float64) time.Time {
	secs := (serial - excelEpochOffsetDays) * 86400
	return time.Unix(int64(secs), 0).UTC()
}

// coerceExcelDate implements condfmt's date coercion policy: numbers are
// Excel serial days, a deliberately different boundary policy than the
// filter engine's milliseconds-since-epoch; see DESIGN.md.
func coerceExcelDate(v model.CellValue) (time.Time, bool) {
	switch v.Kind {
	case model.ValueNumber:
		return excelSerialToTime(v.Number), true
	case model.ValueString, model.ValueFormattedText:
		for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006"} {
			if t, err := time.Parse(layout, v.PlainText()); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday (midnight) of t's week.
func weekStart(t time.Time) time.Time {
	t = midnight(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// matchDateBucket implements the date rule: buckets are
// relative to now, a midnight-normalized "local today" supplied by the
// caller (Manager.Clock).
func matchDateBucket(cfg *DateConfig, v model.CellValue, now time.Time) bool {
	d, ok := coerceExcelDate(v)
	if !ok {
		return false
	}
	d = midnight(d)
	today := midnight(now)

	switch cfg.Bucket {
	case BucketYesterday:
		return d.Equal(today.AddDate(0, 0, -1))
	case BucketToday:
		return d.Equal(today)
	case BucketTomorrow:
		return d.Equal(today.AddDate(0, 0, 1))
	case BucketLast7Days:
		start := today.AddDate(0, 0, -7)
		return !d.Before(start) && d.Before(today)
	case BucketLastWeek:
		start := weekStart(today).AddDate(0, 0, -7)
		end := start.AddDate(0, 0, 7)
		return !d.Before(start) && d.Before(end)
	case BucketThisWeek:
		start := weekStart(today)
		end := start.AddDate(0, 0, 7)
		return !d.Before(start) && d.Before(end)
	case BucketNextWeek:
		start := weekStart(today).AddDate(0, 0, 7)
		end := start.AddDate(0, 0, 7)
		return !d.Before(start) && d.Before(end)
	case BucketLastMonth:
		y, m, _ := today.AddDate(0, -1, 0).Date()
		return d.Year() == y && d.Month() == m
	case BucketThisMonth:
		return d.Year() == today.Year() && d.Month() == today.Month()
	case BucketNextMonth:
		y, m, _ := today.AddDate(0, 1, 0).Date()
		return d.Year() == y && d.Month() == m
	default:
		return false
	}
}
