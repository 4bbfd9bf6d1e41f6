// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// sheetcore is the engine's command-line entry point: seed fixture data,
// benchmark the filter/merge engines, serve the render-frame contract over
// HTTP, or launch the bundled terminal inspector.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/arborgrid/sheetcore/internal/api"
	"github.com/arborgrid/sheetcore/internal/config"
	"github.com/arborgrid/sheetcore/internal/engine"
	"github.com/arborgrid/sheetcore/internal/fixtures"
	"github.com/arborgrid/sheetcore/internal/journal"
	"github.com/arborgrid/sheetcore/internal/tui"
)

const appName = "sheetcore"

type cli struct {
	Seed    seedCmd    `cmd:"" help:"Seed an engine's journal database with fixture rows."`
	Bench   benchCmd   `cmd:"" help:"Benchmark the filter and merge engines."`
	Serve   serveCmd   `cmd:"" help:"Serve the render-frame contract over HTTP."`
	Inspect inspectCmd `cmd:"" help:"Launch the terminal render-frame inspector."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name(appName),
		kong.Description("A sparse-sheet engine: store, merges, filters, conditional formatting, fill patterns, format painting, and render frames."),
		kong.UsageOnError(),
	)
	if err := kctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

type seedCmd struct {
	DBPath string `help:"Journal database path (default: XDG_DATA_HOME/sheetcore/journal.db)." env:"SHEETCORE_DB_PATH"`
	Rows   int64  `help:"Number of fixture rows to generate." default:"1000"`
	Seed   uint64 `help:"Fixture data seed." default:"1"`
}

func (cmd *seedCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := cmd.DBPath
	if path == "" {
		path = cfg.JournalPath()
	}
	j, err := journal.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	eng := engine.New(cfg, j)
	n, err := fixtures.FillStore(eng.Store, cmd.Rows, fixtures.New(cmd.Seed))
	if err != nil {
		return fmt.Errorf("seed fixture rows: %w", err)
	}
	for r := int64(0); r < n; r++ {
		cell, ok, err := eng.Store.Get(r, 0)
		if err != nil || !ok {
			continue
		}
		if err := eng.ApplyIntent(journal.KindSetCellValue, engine.SetCellValueIntent{Row: r, Col: 0, Value: cell.Value}); err != nil {
			return fmt.Errorf("journal seeded row %d: %w", r, err)
		}
	}
	fmt.Fprintf(os.Stderr, "%s: seeded %s rows into %s\n", appName, humanize.Comma(n), path)
	return nil
}

type benchCmd struct {
	Rows   int64 `help:"Rows for the filter benchmark." default:"1000000"`
	Merges int64 `help:"Cells for the merge benchmark." default:"100000"`
}

func (cmd *benchCmd) Run() error {
	if err := cmd.runFilterBench(); err != nil {
		return err
	}
	return cmd.runMergeBench()
}

func (cmd *benchCmd) runFilterBench() error {
	eng := engine.New(config.Config{}, nil)
	if _, err := fixtures.FillStore(eng.Store, cmd.Rows, fixtures.New(1)); err != nil {
		return fmt.Errorf("build filter fixture: %w", err)
	}
	start := time.Now()
	rows := eng.Filters.GetAllRows()
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "%s: filter scan over %s rows took %s (%d visible)\n",
		appName, humanize.Comma(cmd.Rows), elapsed.Round(time.Millisecond), len(rows))
	return nil
}

func (cmd *benchCmd) runMergeBench() error {
	rowsCols := int64(1)
	for rowsCols*rowsCols < cmd.Merges {
		rowsCols++
	}
	eng := engine.New(config.Config{}, nil)
	blocks, err := fixtures.FillMergeGrid(eng.Store, rowsCols, rowsCols, 1)
	if err != nil {
		return fmt.Errorf("build merge fixture: %w", err)
	}
	start := time.Now()
	for _, rng := range blocks {
		eng.Merges.Merge(rng)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "%s: %s merges over a %dx%d grid took %s\n",
		appName, humanize.Comma(int64(len(blocks))), rowsCols, rowsCols, elapsed.Round(time.Millisecond))
	return nil
}

type serveCmd struct {
	Addr     string `help:"Listen address." default:":8080"`
	DBPath   string `help:"Journal database path (default: XDG_DATA_HOME/sheetcore/journal.db)." env:"SHEETCORE_DB_PATH"`
	DemoRows int64  `help:"Seed N fixture rows on startup." default:"0"`
}

func (cmd *serveCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	path := cmd.DBPath
	if path == "" {
		path = cfg.JournalPath()
	}
	j, err := journal.Open(path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	eng := engine.New(cfg, j)
	if err := loadCustomLists(eng, cfg.Fill.CustomListsPath); err != nil {
		return err
	}
	if cmd.DemoRows > 0 {
		if _, err := fixtures.FillStore(eng.Store, cmd.DemoRows, fixtures.New(1)); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         cmd.Addr,
		Handler:      api.NewServer(eng),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Fprintf(os.Stderr, "%s: listening on %s (journal at %s)\n", appName, cmd.Addr, path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "%s: listen: %v\n", appName, err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	fmt.Fprintf(os.Stderr, "\n%s: shutting down...\n", appName)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type inspectCmd struct {
	DemoRows int64  `help:"Seed N fixture rows before launching." default:"200"`
	Seed     uint64 `help:"Fixture data seed." default:"1"`
}

func (cmd *inspectCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	eng := engine.New(cfg, nil)
	if err := loadCustomLists(eng, cfg.Fill.CustomListsPath); err != nil {
		return err
	}
	if cmd.DemoRows > 0 {
		if _, err := fixtures.FillStore(eng.Store, cmd.DemoRows, fixtures.New(cmd.Seed)); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	_, err = tea.NewProgram(tui.New(eng), tea.WithAltScreen()).Run()
	return err
}

// loadCustomLists reads a TOML file mapping list names to value arrays
// (e.g. sizes = ["S", "M", "L"]) and registers each entry as a custom fill
// list. An empty path is a no-op.
func loadCustomLists(eng *engine.Engine, path string) error {
	if path == "" {
		return nil
	}
	var lists map[string][]string
	if _, err := toml.DecodeFile(path, &lists); err != nil {
		return fmt.Errorf("parse custom lists %s: %w", path, err)
	}
	eng.LoadCustomLists(lists)
	return nil
}
