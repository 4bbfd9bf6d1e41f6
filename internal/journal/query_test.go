// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedIntents(t *testing.T, s *Store, base time.Time) {
	t.Helper()
	_, err := s.Append(KindSetCellValue, base, nil)
	require.NoError(t, err)
	_, err = s.Append(KindApplyFormat, base.Add(time.Minute), nil)
	require.NoError(t, err)
	_, err = s.Append(KindSetCellValue, base.Add(2*time.Minute), nil)
	require.NoError(t, err)
}

func TestSinceReturnsRecordsAtOrAfterTime(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedIntents(t, s, base)

	recs, err := s.Since(base.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(2), recs[0].Version)
	assert.Equal(t, int64(3), recs[1].Version)
}

func TestRangeIsInclusiveOnBothEnds(t *testing.T) {
	s := newTestStore(t)
	seedIntents(t, s, time.Now())

	recs, err := s.Range(1, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(1), recs[0].Version)
	assert.Equal(t, int64(2), recs[1].Version)
}

func TestByKindFiltersToMatchingRecords(t *testing.T) {
	s := newTestStore(t)
	seedIntents(t, s, time.Now())

	recs, err := s.ByKind(KindApplyFormat)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, KindApplyFormat, recs[0].Kind)
}

func TestLatestReportsNotOkWhenEmpty(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.Latest()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestReturnsHighestVersion(t *testing.T) {
	s := newTestStore(t)
	seedIntents(t, s, time.Now())

	rec, ok, err := s.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(3), rec.Version)
}
