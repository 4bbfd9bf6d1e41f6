// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// sheetview is a minimal, standalone launcher for the render-frame
// inspector (internal/tui): a development tool for watching the render
// frame adapter work against a live engine, not the production view.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arborgrid/sheetcore/internal/config"
	"github.com/arborgrid/sheetcore/internal/engine"
	"github.com/arborgrid/sheetcore/internal/fixtures"
	"github.com/arborgrid/sheetcore/internal/tui"
)

func main() {
	demoRows := flag.Int64("demo-rows", 200, "number of fixture rows to seed before launching")
	seed := flag.Uint64("seed", 1, "fixture data seed")
	flag.Parse()

	cfg := config.Config{}
	eng := engine.New(cfg, nil)

	if *demoRows > 0 {
		if _, err := fixtures.FillStore(eng.Store, *demoRows, fixtures.New(*seed)); err != nil {
			fail("seed demo data", err)
		}
	}

	if _, err := tea.NewProgram(tui.New(eng), tea.WithAltScreen()).Run(); err != nil {
		fail("run inspector", err)
	}
}

func fail(context string, err error) {
	fmt.Fprintf(os.Stderr, "sheetview: %s: %v\n", context, err)
	os.Exit(1)
}
