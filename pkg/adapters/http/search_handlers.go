// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/productdecoder/search-gw/pkg/search"
)

// handleNewsSearch handles GET /api/v1/gnews/search
func (h *Handler) handleNewsSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "Query parameter 'q' is required", "")
		return
	}

	start := time.Now()
	resp, err := h.news.Search(r.Context(), search.NewsSearchParams{
		Query:    query,
		Lang:     q.Get("lang"),
		Country:  q.Get("country"),
		Max:      q.Get("max"),
		In:       q.Get("in"),
		Nullable: q.Get("nullable"),
		From:     q.Get("from"),
		To:       q.Get("to"),
		SortBy:   q.Get("sortby"),
	})
	h.recordUpstream("gnews", time.Since(start), err)
	if err != nil {
		h.handleSearchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleTopHeadlines handles GET /api/v1/gnews/top-headlines
func (h *Handler) handleTopHeadlines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start := time.Now()
	resp, err := h.news.TopHeadlines(r.Context(), search.TopHeadlinesParams{
		Lang:     q.Get("lang"),
		Country:  q.Get("country"),
		Max:      q.Get("max"),
		Nullable: q.Get("nullable"),
		Category: q.Get("category"),
	})
	h.recordUpstream("gnews", time.Since(start), err)
	if err != nil {
		h.handleSearchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleWebSearch handles GET /api/v1/google/cse
func (h *Handler) handleWebSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "Query parameter 'q' is required", "")
		return
	}

	start := time.Now()
	resp, err := h.web.Search(r.Context(), search.CSESearchParams{
		Query:      query,
		Num:        q.Get("num"),
		Start:      q.Get("start"),
		Safe:       q.Get("safe"),
		LR:         q.Get("lr"),
		SiteSearch: q.Get("siteSearch"),
		Fields:     q.Get("fields"),
	})
	h.recordUpstream("cse", time.Since(start), err)
	if err != nil {
		h.handleSearchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// handleVideoSearch handles GET /api/v1/google/youtube/search
func (h *Handler) handleVideoSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("q"))
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "Query parameter 'q' is required", "")
		return
	}

	start := time.Now()
	resp, err := h.video.Search(r.Context(), search.YouTubeSearchParams{
		Query:      query,
		MaxResults: q.Get("maxResults"),
		PageToken:  q.Get("pageToken"),
	})
	h.recordUpstream("youtube", time.Since(start), err)
	if err != nil {
		h.handleSearchError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
