// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMemoryStoreMigratesSchema(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAppendAssignsMonotonicVersions(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rec1, err := s.Append(KindSetCellValue, now, map[string]any{"row": 0, "col": 0, "value": 1})
	require.NoError(t, err)
	rec2, err := s.Append(KindApplyFormat, now.Add(time.Second), map[string]any{"range": "A1:B2"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec1.Version)
	assert.Equal(t, int64(2), rec2.Version)
	assert.Equal(t, `{"col":0,"row":0,"value":1}`, rec1.Payload)
}

func TestAppendPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Append(KindMergeCells, time.Now(), map[string]any{"anchor": "A1"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	n, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// The version counter continues from where it left off rather than
	// restarting at 1, since a reopen must never reuse a version number.
	rec, err := reopened.Append(KindUnmergeCells, time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Version)
}
