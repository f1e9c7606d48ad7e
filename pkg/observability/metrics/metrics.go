// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes Prometheus instrumentation for the gateway.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamFailuresTotal   *prometheus.CounterVec

	RateLimitRejectionsTotal *prometheus.CounterVec
}

// New registers the gateway's collectors with reg. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh
// prometheus.NewRegistry to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gw_requests_total",
				Help: "Total number of gateway requests processed",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_gw_request_duration_seconds",
				Help:    "Gateway request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "search_gw_requests_in_flight",
				Help: "Number of gateway requests currently being processed",
			},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gw_upstream_requests_total",
				Help: "Total number of upstream provider requests",
			},
			[]string{"provider", "status"},
		),
		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_gw_upstream_request_duration_seconds",
				Help:    "Upstream provider request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15},
			},
			[]string{"provider"},
		),
		UpstreamFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gw_upstream_failures_total",
				Help: "Total number of failed upstream provider requests by failure kind",
			},
			[]string{"provider", "kind"},
		),

		RateLimitRejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_gw_rate_limit_rejections_total",
				Help: "Total number of requests rejected by the rate limiter",
			},
			[]string{"route"},
		),
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordRequest(route, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(route, status).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpstream(provider, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(provider, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordUpstreamFailure(provider, kind string) {
	m.UpstreamFailuresTotal.WithLabelValues(provider, kind).Inc()
}

func (m *Metrics) RecordRateLimitRejection(route string) {
	m.RateLimitRejectionsTotal.WithLabelValues(route).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}
