// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themeforge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "themeforge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// StylesheetServed counts /theme.css responses by where the body came
	// from: cache, render or fallback.
	StylesheetServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themeforge_stylesheet_served_total",
			Help: "Theme stylesheets served by source",
		},
		[]string{"source"},
	)

	Publishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themeforge_publishes_total",
			Help: "Theme publish attempts by result",
		},
		[]string{"result"},
	)

	// RemoteErrors counts remote store failures by notice kind.
	RemoteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themeforge_remote_errors_total",
			Help: "Remote store errors by classification",
		},
		[]string{"kind"},
	)

	DraftWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "themeforge_draft_write_errors_total",
			Help: "Draft writes that failed and were dropped",
		},
	)

	FontUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "themeforge_font_uploads_total",
			Help: "Font uploads by result",
		},
		[]string{"result"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "themeforge_editor_sessions",
			Help: "Number of open editor sessions",
		},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
