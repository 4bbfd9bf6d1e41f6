// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package journal

import (
	"fmt"
	"time"
)

// Since returns every record with AppliedAt at or after t, ordered by
// version ascending (replay order).
func (s *Store) Since(t time.Time) ([]IntentRecord, error) {
	var out []IntentRecord
	err := s.db.Where("applied_at >= ?", t).Order("version ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query intents since %s: %w", t, err)
	}
	return out, nil
}

// Range returns every record whose version lies in [fromVersion, toVersion],
// inclusive, ordered for replay.
func (s *Store) Range(fromVersion, toVersion int64) ([]IntentRecord, error) {
	var out []IntentRecord
	err := s.db.
		Where("version >= ? AND version <= ?", fromVersion, toVersion).
		Order("version ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query intents in range [%d,%d]: %w", fromVersion, toVersion, err)
	}
	return out, nil
}

// ByKind returns every record of the given kind, in replay order.
func (s *Store) ByKind(kind Kind) ([]IntentRecord, error) {
	var out []IntentRecord
	err := s.db.Where("kind = ?", kind).Order("version ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query intents of kind %s: %w", kind, err)
	}
	return out, nil
}

// Count reports how many intents have been logged.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&IntentRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count intents: %w", err)
	}
	return n, nil
}

// Latest returns the most recently appended record, or ok=false if the
// log is empty.
func (s *Store) Latest() (rec IntentRecord, ok bool, err error) {
	result := s.db.Order("version DESC").Limit(1).Find(&rec)
	if result.Error != nil {
		return IntentRecord{}, false, fmt.Errorf("load latest intent: %w", result.Error)
	}
	return rec, result.RowsAffected > 0, nil
}
