// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package journal logs every tagged intent the engine accepts to a small
// gorm-backed SQLite database, for replay and debugging. It never feeds
// back into store, merge, filter, or condfmt state.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sqlite "github.com/arborgrid/sheetcore/internal/journal/sqlitedialect"
)

// Store wraps a gorm connection dedicated to the intent log.
type Store struct {
	db      *gorm.DB
	version int64
}

// Open opens (creating if necessary) the SQLite database at path and runs
// the journal's migration. An empty path opens an in-memory database,
// useful for tests and for running with journaling disabled in spirit
// while keeping the same code path.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	} else if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory %s: %w", dir, err)
		}
	}
	db, err := gorm.Open(
		sqlite.Open(dsn, "PRAGMA foreign_keys = ON", "PRAGMA journal_mode = WAL"),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if dsn == ":memory:" {
		// Each pooled connection to :memory: would get its own empty
		// database; pin the pool to one connection so every query sees the
		// same in-memory store.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get underlying db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	if err := s.loadVersion(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&IntentRecord{})
}

func (s *Store) loadVersion() error {
	var last IntentRecord
	err := s.db.Order("version DESC").Limit(1).Find(&last).Error
	if err != nil {
		return fmt.Errorf("load journal version: %w", err)
	}
	s.version = last.Version
	return nil
}

// Append marshals payload as JSON and appends one record of the given
// kind, stamped with the next monotonic version and appliedAt. It never
// rewrites or deletes an existing row.
func (s *Store) Append(kind Kind, appliedAt time.Time, payload any) (IntentRecord, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return IntentRecord{}, fmt.Errorf("marshal intent payload: %w", err)
	}
	s.version++
	rec := IntentRecord{
		Kind:      kind,
		Payload:   string(body),
		AppliedAt: appliedAt,
		Version:   s.version,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		s.version--
		return IntentRecord{}, fmt.Errorf("append intent record: %w", err)
	}
	return rec, nil
}
