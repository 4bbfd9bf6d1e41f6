// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupCreatesValidCopy(t *testing.T) {
	s := newTestStore(t)
	seedIntents(t, s, time.Now())

	destPath := filepath.Join(t.TempDir(), "backup.db")
	require.NoError(t, s.Backup(context.Background(), destPath))

	backup, err := Open(destPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backup.Close() })

	srcCount, err := s.Count()
	require.NoError(t, err)
	dstCount, err := backup.Count()
	require.NoError(t, err)
	assert.Equal(t, srcCount, dstCount)
}

func TestBackupDestAlreadyExists(t *testing.T) {
	s := newTestStore(t)

	destPath := filepath.Join(t.TempDir(), "existing.db")
	require.NoError(t, os.WriteFile(destPath, []byte("placeholder"), 0o600))

	err := s.Backup(context.Background(), destPath)
	require.Error(t, err)
}

func TestBackupMemoryJournal(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	seedIntents(t, s, time.Now())

	destPath := filepath.Join(t.TempDir(), "mem-backup.db")
	require.NoError(t, s.Backup(context.Background(), destPath))

	backup, err := Open(destPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backup.Close() })

	n, err := backup.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
