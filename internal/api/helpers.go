// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const maxBodySize = 1 << 20 // 1 MiB

func jsonOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func jsonCreated(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Fprintf(w, `{"error":"encode: %s"}`, err)
	}
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg}) //nolint:errcheck
}

func decodeBody[T any](r *http.Request) (T, error) {
	var v T
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode request body: %w", err)
	}
	return v, nil
}

// remarshal converts a loosely-typed JSON object (as decoded into
// map[string]any) into a concrete struct, the same trick PostIntents uses
// to turn an intentEnvelope's body into the engine.*Intent type its kind
// names.
func remarshal[T any](body map[string]any) (T, error) {
	var v T
	raw, err := json.Marshal(body)
	if err != nil {
		return v, fmt.Errorf("remarshal intent body: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode intent body: %w", err)
	}
	return v, nil
}

func floatQuery(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	var v float64
	if _, err := fmt.Sscanf(raw, "%g", &v); err != nil {
		return fallback
	}
	return v
}

func int64Query(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	var v int64
	if _, err := fmt.Sscanf(raw, "%d", &v); err != nil {
		return fallback
	}
	return v
}
