// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config is the top-level engine configuration, loaded from a TOML file.
type Config struct {
	Store   Store   `toml:"store"`
	Render  Render  `toml:"render"`
	Fill    Fill    `toml:"fill"`
	Journal Journal `toml:"journal"`
}

// Store holds sparse cell store settings.
type Store struct {
	// CellKeyBase (K) is the row/col packing base; must exceed the
	// largest supported column index. Default: 16385.
	CellKeyBase int64 `toml:"cell_key_base"`

	// MemoryBudget is an advisory cap on store memory. It is parsed and
	// checked to be positive; nothing reads or enforces it. Default: 256 MiB.
	MemoryBudget ByteSize `toml:"memory_budget"`
}

// Render holds render-frame adapter settings.
type Render struct {
	OverscanRows int64   `toml:"overscan_rows"`
	OverscanCols int64   `toml:"overscan_cols"`
	DefaultZoom  float64 `toml:"default_zoom"`
}

// Fill holds fill-pattern engine settings.
type Fill struct {
	// CustomListsPath is an optional TOML file of extra custom
	// lists, loaded in addition to the built-in day/month/quarter
	// lists. Empty disables custom-list loading.
	CustomListsPath string `toml:"custom_lists_path"`

	// RecalcDebounce is parsed and checked to be non-negative; nothing
	// reads it, so fill-drag updates are not rate-limited by it.
	RecalcDebounce Duration `toml:"recalc_debounce"`
}

// Journal holds intent-journal settings.
type Journal struct {
	Enabled bool `toml:"enabled"`

	// Path is the journal database file. Empty resolves to
	// xdg.DataHome/sheetcore/journal.db.
	Path string `toml:"path"`
}

const (
	DefaultCellKeyBase    = 16385
	DefaultMemoryBudget   = ByteSize(256 << 20)
	DefaultOverscanRows   = 5
	DefaultOverscanCols   = 3
	DefaultZoom           = 1.0
	DefaultRecalcDebounce = 50 * time.Millisecond
	configRelPath         = "sheetcore/config.toml"
	journalRelPath        = "sheetcore/journal.db"
)

// defaults returns a Config with all default values populated.
func defaults() Config {
	return Config{
		Store: Store{
			CellKeyBase:  DefaultCellKeyBase,
			MemoryBudget: DefaultMemoryBudget,
		},
		Render: Render{
			OverscanRows: DefaultOverscanRows,
			OverscanCols: DefaultOverscanCols,
			DefaultZoom:  DefaultZoom,
		},
		Fill: Fill{
			RecalcDebounce: Duration{DefaultRecalcDebounce},
		},
		Journal: Journal{
			Enabled: true,
		},
	}
}

// Path returns the expected config file path (XDG_CONFIG_HOME/sheetcore/config.toml).
func Path() string {
	return filepath.Join(xdg.ConfigHome, configRelPath)
}

// JournalPath resolves cfg.Journal.Path, falling back to
// XDG_DATA_HOME/sheetcore/journal.db when unset.
func (c Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(xdg.DataHome, journalRelPath)
}

// Load reads the TOML config file from the default path if it exists, falls
// back to defaults for any unset fields.
func Load() (Config, error) {
	return LoadFromPath(Path())
}

// LoadFromPath reads the TOML config file at the given path if it exists,
// falling back to defaults for any unset fields.
func LoadFromPath(path string) (Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if cfg.Store.CellKeyBase <= 0 {
		return cfg, fmt.Errorf("store.cell_key_base must be positive, got %d", cfg.Store.CellKeyBase)
	}
	if cfg.Store.MemoryBudget <= 0 {
		return cfg, fmt.Errorf("store.memory_budget must be positive, got %s", cfg.Store.MemoryBudget)
	}
	if cfg.Render.OverscanRows < 0 || cfg.Render.OverscanCols < 0 {
		return cfg, fmt.Errorf("render.overscan_rows/overscan_cols must be non-negative")
	}
	if cfg.Render.DefaultZoom <= 0 {
		return cfg, fmt.Errorf("render.default_zoom must be positive, got %g", cfg.Render.DefaultZoom)
	}
	if cfg.Fill.RecalcDebounce.Duration < 0 {
		return cfg, fmt.Errorf("fill.recalc_debounce must be non-negative, got %s", cfg.Fill.RecalcDebounce.Duration)
	}

	return cfg, nil
}

// ExampleTOML returns a commented config file suitable for writing as a
// starter config. Not written automatically -- offered to the user on demand.
func ExampleTOML() string {
	return `# sheetcore configuration
# Place this file at: ` + Path() + `

[store]
cell_key_base = ` + fmt.Sprintf("%d", DefaultCellKeyBase) + `   # must exceed the largest supported column index
memory_budget = "256 MiB"   # advisory; validated, not enforced

[render]
overscan_rows = 5
overscan_cols = 3
default_zoom = 1.0

[fill]
# custom_lists_path = "/path/to/custom-lists.toml"
recalc_debounce = "50ms"

[journal]
enabled = true
# path = "/path/to/journal.db"   # default: XDG_DATA_HOME/sheetcore/journal.db
`
}
