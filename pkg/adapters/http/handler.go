// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

// Package http implements the gateway router: route registration,
// per-IP admission control, error-to-status mapping and the uniform
// response envelopes.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/productdecoder/search-gw/pkg/core/schema"
	"github.com/productdecoder/search-gw/pkg/observability/logging"
	"github.com/productdecoder/search-gw/pkg/observability/metrics"
	"github.com/productdecoder/search-gw/pkg/ratelimit"
	"github.com/productdecoder/search-gw/pkg/search"
)

// NewsProvider is the slice of the GNews adapter the router consumes.
type NewsProvider interface {
	Search(ctx context.Context, p search.NewsSearchParams) (*schema.NewsResponse, error)
	TopHeadlines(ctx context.Context, p search.TopHeadlinesParams) (*schema.NewsResponse, error)
}

// WebSearchProvider is the slice of the CSE adapter the router consumes.
type WebSearchProvider interface {
	Search(ctx context.Context, p search.CSESearchParams) (*schema.SearchRecommendation, error)
}

// VideoSearchProvider is the slice of the YouTube adapter the router consumes.
type VideoSearchProvider interface {
	Search(ctx context.Context, p search.YouTubeSearchParams) (*schema.YouTubeSearchResponse, error)
}

// ImageSearchProvider is the slice of the Vision adapter the router consumes.
type ImageSearchProvider interface {
	ReverseImage(ctx context.Context, content []byte, mimeType string) (*schema.WebDetectionResult, error)
}

// Handler implements the HTTP adapter
type Handler struct {
	logger  *logging.Logger
	metrics *metrics.Metrics
	limiter *ratelimit.Limiter
	mux     *http.ServeMux

	news  NewsProvider
	web   WebSearchProvider
	video VideoSearchProvider
	image ImageSearchProvider

	version string
	started time.Time
}

// New creates a new HTTP handler
func New(logger *logging.Logger, mt *metrics.Metrics, limiter *ratelimit.Limiter, news NewsProvider, web WebSearchProvider, video VideoSearchProvider, image ImageSearchProvider, version string) *Handler {
	h := &Handler{
		logger:  logger,
		metrics: mt,
		limiter: limiter,
		mux:     http.NewServeMux(),
		news:    news,
		web:     web,
		video:   video,
		image:   image,
		version: version,
		started: time.Now(),
	}

	// Health is observed but never metered; metrics serves the registry
	// scrape and stays out of its own series.
	h.mux.HandleFunc("GET /health", h.observed("health", h.handleHealth))
	h.mux.Handle("GET /metrics", metrics.Handler())

	// Utility routes
	h.mux.HandleFunc("GET /{$}", h.limited("root", h.handleRoot))
	h.mux.HandleFunc("GET /status", h.limited("status", h.handleStatus))
	h.mux.HandleFunc("GET /version", h.limited("version", h.handleVersion))
	h.mux.HandleFunc("GET /info", h.limited("info", h.handleInfo))

	// Search API
	h.mux.HandleFunc("POST /api/v1/google/reverse-image", h.limited("reverse_image", h.handleReverseImage))
	h.mux.HandleFunc("GET /api/v1/gnews/search", h.limited("gnews_search", h.handleNewsSearch))
	h.mux.HandleFunc("GET /api/v1/gnews/top-headlines", h.limited("gnews_top_headlines", h.handleTopHeadlines))
	h.mux.HandleFunc("GET /api/v1/google/cse", h.limited("cse_search", h.handleWebSearch))
	h.mux.HandleFunc("GET /api/v1/google/youtube/search", h.limited("youtube_search", h.handleVideoSearch))

	return h
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.metrics.IncRequestsInFlight()
	defer h.metrics.DecRequestsInFlight()

	h.mux.ServeHTTP(rec, r)

	h.logger.Info("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"status", rec.status,
		"duration_ms", time.Since(start).Milliseconds())
}

// observed records request count and duration under a fixed route name.
// Only registered routes carry the label; scans of unmatched paths
// cannot mint new series.
func (h *Handler) observed(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		h.metrics.RecordRequest(route, strconv.Itoa(rec.status), time.Since(start))
	}
}

// limited wraps a route handler with the admission check. It runs before
// any parameter validation so every request counts against the caller's
// window, including ones that later fail.
func (h *Handler) limited(route string, next http.HandlerFunc) http.HandlerFunc {
	return h.observed(route, func(w http.ResponseWriter, r *http.Request) {
		res, err := h.limiter.Allow(r.Context(), callerIP(r))
		if err != nil {
			h.logger.Error("Rate limit store failure", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Internal server error", "")
			return
		}

		w.Header().Set("X-Ratelimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-Ratelimit-Remaining", strconv.Itoa(res.Remaining))
		w.Header().Set("X-Ratelimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

		if !res.Allowed {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			h.metrics.RecordRateLimitRejection(route)
			rejection := search.RateLimited("Too many requests")
			h.writeJSON(w, rejection.HTTPStatus(), schema.ErrorResponse{
				Error:      rejection.Message,
				RetryAfter: retryAfter,
			})
			return
		}

		next(w, r)
	})
}

// recordUpstream accounts one provider call. Caller-input rejections
// happen before any upstream traffic and are skipped.
func (h *Handler) recordUpstream(provider string, duration time.Duration, err error) {
	if err != nil {
		var serr *search.Error
		if errors.As(err, &serr) && (serr.Kind == search.KindBadRequest || serr.Kind == search.KindUnsupportedMedia) {
			return
		}
		h.metrics.RecordUpstream(provider, "error", duration)
		return
	}
	h.metrics.RecordUpstream(provider, "success", duration)
}

// handleSearchError maps an adapter failure to the response envelope.
func (h *Handler) handleSearchError(w http.ResponseWriter, err error) {
	var serr *search.Error
	if !errors.As(err, &serr) {
		serr = search.Internal("", err)
	}

	switch serr.Kind {
	case search.KindUpstreamInvalid:
		// contract drift means an integration bug, not caller error
		h.logger.Error("Upstream response failed validation",
			"provider", serr.Provider, "error", serr.Unwrap())
		h.metrics.RecordUpstreamFailure(serr.Provider, serr.Kind.String())
	case search.KindUpstreamUnavailable:
		h.logger.Warn("Upstream unavailable",
			"provider", serr.Provider, "upstream_status", serr.UpstreamStatus)
		h.metrics.RecordUpstreamFailure(serr.Provider, serr.Kind.String())
	case search.KindInternal:
		h.logger.Error("Internal error", "provider", serr.Provider, "error", serr.Unwrap())
	}

	h.writeError(w, serr.HTTPStatus(), serr.Message, "")
}

// writeJSON writes a success or structured response body
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError writes the error envelope
func (h *Handler) writeError(w http.ResponseWriter, status int, message, details string) {
	h.writeJSON(w, status, schema.ErrorResponse{Error: message, Details: details})
}

// callerIP resolves the rate-limit key for a request. Proxy headers win
// over the socket address; callers with no resolvable address share the
// "unknown" bucket rather than bypassing the limiter.
func callerIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-Ip")); ip != "" {
		return ip
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
