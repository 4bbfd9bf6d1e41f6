// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arborgrid/sheetcore/internal/config"
	"github.com/arborgrid/sheetcore/internal/engine"
)

func newTestServer(t *testing.T) (*Server, *engine.Engine) {
	t.Helper()
	eng := engine.New(config.Config{}, nil)
	return NewServer(eng), eng
}

func TestPostIntentThenGetFrameRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"kind":"set_cell_value","body":{"Row":0,"Col":0,"Value":{"Kind":2,"Number":42}}}`
	req := httptest.NewRequest(http.MethodPost, "/intents", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/frame?width=800&height=600", nil)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"DisplayValue":"42"`)
}

func TestPostIntentUnknownKindRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/intents", strings.NewReader(`{"kind":"frobnicate","body":{}}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown intent kind")
}

func TestPostIntentMergeConflictSurfacesEngineError(t *testing.T) {
	srv, _ := newTestServer(t)

	merge := `{"kind":"merge_cells","body":{"Range":{"StartRow":0,"EndRow":1,"StartCol":0,"EndCol":1}}}`
	req := httptest.NewRequest(http.MethodPost, "/intents", strings.NewReader(merge))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/intents", strings.NewReader(merge))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "existing merge")
}

func TestGetJournalEmptyWhenJournalDisabled(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/journal", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/frame", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetFrameQueryParametersFlowThrough(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/frame?width=400&height=300&zoom=2", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Zoom":2`)
}
