// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"runtime"
	"time"
)

// handleHealth handles health check requests
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleRoot handles GET /
func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Product Decoder search gateway",
		"info":    "/info",
	})
}

// handleStatus handles GET /status
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"goroutines":     runtime.NumGoroutine(),
		"memory": map[string]uint64{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
		},
	})
}

// handleVersion handles GET /version
func (h *Handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// handleInfo handles GET /info
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"name":        "search-gw",
		"description": "Aggregation gateway for reverse-image, news, web and video search",
		"version":     h.version,
		"endpoints": []string{
			"POST /api/v1/google/reverse-image",
			"GET /api/v1/gnews/search",
			"GET /api/v1/gnews/top-headlines",
			"GET /api/v1/google/cse",
			"GET /api/v1/google/youtube/search",
		},
	})
}
