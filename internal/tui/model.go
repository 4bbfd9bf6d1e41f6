// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package tui is a bundled, minimal consumer of the render-frame contract
// for manual verification during development: it drives
// engine.Engine.BuildFrame with a scroll/zoom state controlled by the
// keyboard and paints the resulting RenderCells with lipgloss. It is a
// development tool, not a production view layer.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/arborgrid/sheetcore/internal/engine"
	"github.com/arborgrid/sheetcore/internal/render"
)

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyLeft   = key.NewBinding(key.WithKeys("left", "h"))
	keyRight  = key.NewBinding(key.WithKeys("right", "l"))
	keyZoomIn = key.NewBinding(key.WithKeys("+", "="))
	keyZoomOt = key.NewBinding(key.WithKeys("-", "_"))
	keyGoto   = key.NewBinding(key.WithKeys("g"))
	keyHelp   = key.NewBinding(key.WithKeys("?"))
	keyQuit   = key.NewBinding(key.WithKeys("q", "ctrl+c"))
)

const scrollStep = 40.0

// Model is the inspector's bubbletea model.
type Model struct {
	eng    *engine.Engine
	styles Styles

	width  int
	height int

	scrollX, scrollY float64
	zoom             float64
	freezeRows       int64
	freezeCols       int64

	showHelp   bool
	goingTo    bool
	gotoForm   *huh.Form
	gotoRow    string
	gotoCol    string
	statusText string
}

// New builds an inspector Model over eng. Initial zoom is 1.0; scroll and
// freeze start at the origin.
func New(eng *engine.Engine) *Model {
	return &Model{
		eng:    eng,
		styles: DefaultStyles(),
		zoom:   1.0,
		width:  100,
		height: 30,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.goingTo {
			return m.updateGotoForm(msg)
		}
		switch {
		case key.Matches(msg, keyQuit):
			return m, tea.Quit
		case key.Matches(msg, keyHelp):
			m.showHelp = !m.showHelp
			return m, nil
		case m.showHelp:
			// Any other key dismisses the help overlay.
			m.showHelp = false
			return m, nil
		case key.Matches(msg, keyUp):
			m.scrollY = maxFloat(0, m.scrollY-scrollStep)
		case key.Matches(msg, keyDown):
			m.scrollY += scrollStep
		case key.Matches(msg, keyLeft):
			m.scrollX = maxFloat(0, m.scrollX-scrollStep)
		case key.Matches(msg, keyRight):
			m.scrollX += scrollStep
		case key.Matches(msg, keyZoomIn):
			m.zoom = minFloat(3.0, m.zoom+0.1)
		case key.Matches(msg, keyZoomOt):
			m.zoom = maxFloat(0.3, m.zoom-0.1)
		case key.Matches(msg, keyGoto):
			m.startGotoForm()
			return m, m.gotoForm.Init()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	grid := m.renderGrid()
	header := m.styles.Header.Render(fmt.Sprintf("sheetview  zoom %.1fx  scroll (%.0f,%.0f)", m.zoom, m.scrollX, m.scrollY))
	status := m.styles.StatusBar.Render(m.statusLine())
	body := header + "\n" + grid + "\n" + status

	if m.goingTo {
		return overlay.New(
			stringModel(m.gotoForm.View()),
			stringModel(body),
			overlay.Center,
			overlay.Center,
			0, 0,
		).View()
	}
	if m.showHelp {
		return overlay.New(
			stringModel(m.helpView()),
			stringModel(body),
			overlay.Center,
			overlay.Center,
			0, 0,
		).View()
	}
	return body
}

// stringModel adapts a pre-rendered string to tea.Model so it can be
// layered by bubbletea-overlay, which composites two live models rather
// than two plain strings.
type stringModel string

func (s stringModel) Init() tea.Cmd                       { return nil }
func (s stringModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return s, nil }
func (s stringModel) View() string                        { return string(s) }

func (m *Model) statusLine() string {
	if m.statusText != "" {
		return m.statusText
	}
	return "arrows/hjkl scroll · +/- zoom · g goto cell · ? help · q quit"
}

// buildFrame renders the current engine state at this model's viewport.
func (m *Model) buildFrame() render.RenderFrame {
	return m.eng.BuildFrame(render.BuildFrameOptions{
		Viewport: render.Viewport{Width: float64(m.width), Height: float64(m.height-3) * 20},
		Scroll:   render.Scroll{X: m.scrollX, Y: m.scrollY},
		Zoom:     m.zoom,
		Freeze:   render.Freeze{Rows: m.freezeRows, Cols: m.freezeCols},
		Overscan: render.Overscan{Rows: 5, Cols: 3},
	})
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
