// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package condfmt

import (
	"sort"
	"sync"

	"github.com/arborgrid/sheetcore/internal/model"
)

// Manager is the ID-keyed rule store: a priority-sorted
// snapshot is memoized and invalidated on any mutation; range queries read
// through the sorted snapshot rather than the backing map directly.
type Manager struct {
	mu      sync.RWMutex
	rules   map[RuleID]*Rule
	nextID  RuleID
	sorted  []*Rule
	isValid bool
}

func NewManager() *Manager {
	return &Manager{rules: make(map[RuleID]*Rule)}
}

// AddRule assigns the next ID and stores rule, returning the assigned ID.
func (m *Manager) AddRule(rule Rule) RuleID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rule.ID = m.nextID
	m.rules[rule.ID] = &rule
	m.isValid = false
	return rule.ID
}

// UpdateRule replaces the stored rule matching rule.ID. Returns false if no
// such rule exists.
func (m *Manager) UpdateRule(rule Rule) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[rule.ID]; !ok {
		return false
	}
	m.rules[rule.ID] = &rule
	m.isValid = false
	return true
}

// RemoveRule deletes the rule with id, if present.
func (m *Manager) RemoveRule(id RuleID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[id]; ok {
		delete(m.rules, id)
		m.isValid = false
	}
}

// GetRule returns the rule stored under id.
func (m *Manager) GetRule(id RuleID) (Rule, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rules[id]
	if !ok {
		return Rule{}, false
	}
	return *r, true
}

// snapshot returns the priority-ascending, ID-tiebroken rule list,
// rebuilding it only when a mutation has invalidated the memoized copy.
func (m *Manager) snapshot() []*Rule {
	m.mu.RLock()
	if m.isValid {
		s := m.sorted
		m.mu.RUnlock()
		return s
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isValid {
		return m.sorted
	}
	sorted := make([]*Rule, 0, len(m.rules))
	for _, r := range m.rules {
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})
	m.sorted = sorted
	m.isValid = true
	return sorted
}

// GetRulesForCell returns every rule whose range contains (row, col),
// ascending by priority.
func (m *Manager) GetRulesForCell(row, col int64) []*Rule {
	var out []*Rule
	for _, r := range m.snapshot() {
		if r.Range.Contains(row, col) {
			out = append(out, r)
		}
	}
	return out
}

// GetRulesForRange returns every rule overlapping rng, ascending by
// priority.
func (m *Manager) GetRulesForRange(rng model.Range) []*Rule {
	var out []*Rule
	for _, r := range m.snapshot() {
		if r.Range.Overlaps(rng) {
			out = append(out, r)
		}
	}
	return out
}

// ExportRules returns a deep-copied snapshot of every rule, ascending by
// priority.
func (m *Manager) ExportRules() []Rule {
	snap := m.snapshot()
	out := make([]Rule, len(snap))
	for i, r := range snap {
		out[i] = r.Clone()
	}
	return out
}

// ImportRules restores rules, preserving their IDs and advancing the
// internal counter past the highest imported ID. When clearExisting is
// true the prior rule set is discarded first.
func (m *Manager) ImportRules(rules []Rule, clearExisting bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if clearExisting {
		m.rules = make(map[RuleID]*Rule, len(rules))
	}
	for _, r := range rules {
		cp := r.Clone()
		m.rules[cp.ID] = &cp
		if cp.ID > m.nextID {
			m.nextID = cp.ID
		}
	}
	m.isValid = false
}
