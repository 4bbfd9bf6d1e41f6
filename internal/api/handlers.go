// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

// Package api serves the render-frame contract over HTTP:
// POST /intents accepts a tagged intent, GET /frame returns the engine's
// current RenderFrame as JSON.
package api

import (
	"net/http"

	"github.com/arborgrid/sheetcore/internal/engine"
	"github.com/arborgrid/sheetcore/internal/journal"
	"github.com/arborgrid/sheetcore/internal/render"
)

// API wraps an *engine.Engine with the HTTP handler methods.
type API struct {
	engine *engine.Engine
}

// intentEnvelope is the wire shape POST /intents accepts: a kind tag plus
// a kind-specific body, matching the "tagged variants, each with
// a timestamp" description. The timestamp itself is assigned by the
// journal at apply time, not accepted from the client.
type intentEnvelope struct {
	Kind journal.Kind   `json:"kind"`
	Body map[string]any `json:"body"`
}

// PostIntents applies one tagged intent to the engine.
func (a *API) PostIntents(w http.ResponseWriter, r *http.Request) {
	env, err := decodeBody[intentEnvelope](r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := decodeIntentBody(env.Kind, env.Body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.engine.ApplyIntent(env.Kind, payload); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	jsonCreated(w, map[string]string{"status": "applied"})
}

// GetFrame builds and returns the current RenderFrame as JSON, reading
// viewport/scroll/zoom/freeze from query parameters.
func (a *API) GetFrame(w http.ResponseWriter, r *http.Request) {
	opts := render.BuildFrameOptions{
		Viewport: render.Viewport{
			Width:  floatQuery(r, "width", 800),
			Height: floatQuery(r, "height", 600),
		},
		Scroll: render.Scroll{
			X: floatQuery(r, "scrollX", 0),
			Y: floatQuery(r, "scrollY", 0),
		},
		Zoom: floatQuery(r, "zoom", 1.0),
		Freeze: render.Freeze{
			Rows: int64Query(r, "freezeRows", 0),
			Cols: int64Query(r, "freezeCols", 0),
		},
		Overscan: render.Overscan{
			Rows: int64Query(r, "overscanRows", 5),
			Cols: int64Query(r, "overscanCols", 3),
		},
	}
	jsonOK(w, a.engine.BuildFrame(opts))
}

// GetJournal returns every intent logged since the given version (?since=N),
// defaulting to the full log, for a debugging/replay client.
func (a *API) GetJournal(w http.ResponseWriter, r *http.Request) {
	if a.engine.Journal == nil {
		jsonOK(w, []journal.IntentRecord{})
		return
	}
	from := int64Query(r, "since", 0)
	latest, ok, err := a.engine.Journal.Latest()
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		jsonOK(w, []journal.IntentRecord{})
		return
	}
	recs, err := a.engine.Journal.Range(from+1, latest.Version)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	jsonOK(w, recs)
}

// decodeIntentBody converts the envelope's loosely-typed body into the
// concrete struct engine.ApplyIntent expects for kind, via a JSON
// round-trip (map[string]any -> typed struct).
func decodeIntentBody(kind journal.Kind, body map[string]any) (any, error) {
	switch kind {
	case journal.KindSetCellValue:
		return remarshal[engine.SetCellValueIntent](body)
	case journal.KindDeleteContents:
		return remarshal[engine.DeleteContentsIntent](body)
	case journal.KindInsertRows, journal.KindInsertColumns,
		journal.KindDeleteRows, journal.KindDeleteColumns:
		return remarshal[engine.ShiftIntent](body)
	case journal.KindMergeCells:
		return remarshal[engine.MergeCellsIntent](body)
	case journal.KindUnmergeCells:
		return remarshal[engine.UnmergeCellsIntent](body)
	case journal.KindApplyFormat:
		return remarshal[engine.ApplyFormatIntent](body)
	case journal.KindClipboardAction:
		return remarshal[engine.ClipboardActionIntent](body)
	case journal.KindBeginFillDrag, journal.KindUpdateFillDrag, journal.KindEndFillDrag:
		return remarshal[engine.FillDragIntent](body)
	case journal.KindApplyFilter:
		return remarshal[engine.ApplyFilterIntent](body)
	case journal.KindClearFilter:
		return remarshal[engine.ClearFilterIntent](body)
	case journal.KindAddConditionalRule, journal.KindRemoveConditional:
		return remarshal[engine.ConditionalRuleIntent](body)
	case journal.KindPickFormat:
		return remarshal[engine.PickFormatIntent](body)
	case journal.KindApplyPaintedFormat:
		return remarshal[engine.ApplyPaintedFormatIntent](body)
	default:
		return nil, errUnknownIntentKind(kind)
	}
}

type errUnknownIntentKind journal.Kind

func (e errUnknownIntentKind) Error() string {
	return "unknown intent kind " + string(e)
}
