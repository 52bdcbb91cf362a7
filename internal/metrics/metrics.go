// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes mirror activity as prometheus collectors.
//
// Every Metrics value owns its registry, so several instances (one per test,
// for example) never collide on registration. Components depend on the
// Recorder interface; NewNop returns a Recorder that drops everything.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "table_mirror"

// Mirror run outcomes.
const (
	StatusOK          = "ok"
	StatusRejected    = "rejected"
	StatusRemoteError = "remote_error"
	StatusCacheError  = "cache_error"
)

// Write operations.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// Recorder receives mirror events.
type Recorder interface {
	// CacheChecked counts one validity decision with the check that decided it.
	CacheChecked(table, reason string)
	// CacheRebuilt counts a full re-read of a table.
	CacheRebuilt(table string)
	// RowsWritten counts rows sent to the remote by op.
	RowsWritten(table, op string, n int)
	// SchemaIssues counts validation findings by kind.
	SchemaIssues(table, kind string, n int)
	// RunFinished observes a mirror or refresh run.
	RunFinished(table, status string, elapsed time.Duration)
}

// Metrics holds all prometheus collectors of the mirror.
type Metrics struct {
	registry *prometheus.Registry

	CacheChecks   *prometheus.CounterVec
	CacheRebuilds *prometheus.CounterVec
	RowsTotal     *prometheus.CounterVec
	IssuesTotal   *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
	RunsTotal     *prometheus.CounterVec
}

// New builds the collectors on a fresh registry that also carries the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CacheChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_checks_total",
				Help:      "Cache validity decisions by deciding check",
			},
			[]string{"table", "reason"},
		),
		CacheRebuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_rebuilds_total",
				Help:      "Full table re-reads after an invalid cache",
			},
			[]string{"table"},
		),
		RowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_written_total",
				Help:      "Rows sent to the remote table",
			},
			[]string{"table", "op"},
		),
		IssuesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_issues_total",
				Help:      "Validation findings that blocked a write",
			},
			[]string{"table", "kind"},
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Mirror and refresh run latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"table"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Mirror and refresh runs by outcome",
			},
			[]string{"table", "status"},
		),
	}
}

func (m *Metrics) CacheChecked(table, reason string) {
	m.CacheChecks.WithLabelValues(table, reason).Inc()
}

func (m *Metrics) CacheRebuilt(table string) {
	m.CacheRebuilds.WithLabelValues(table).Inc()
}

func (m *Metrics) RowsWritten(table, op string, n int) {
	if n <= 0 {
		return
	}
	m.RowsTotal.WithLabelValues(table, op).Add(float64(n))
}

func (m *Metrics) SchemaIssues(table, kind string, n int) {
	if n <= 0 {
		return
	}
	m.IssuesTotal.WithLabelValues(table, kind).Add(float64(n))
}

func (m *Metrics) RunFinished(table, status string, elapsed time.Duration) {
	m.RunDuration.WithLabelValues(table).Observe(elapsed.Seconds())
	m.RunsTotal.WithLabelValues(table, status).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

type nop struct{}

// NewNop returns a Recorder that discards every event.
func NewNop() Recorder {
	return nop{}
}

func (nop) CacheChecked(string, string) {}
func (nop) CacheRebuilt(string) {}
func (nop) RowsWritten(string, string, int) {}
func (nop) SchemaIssues(string, string, int) {}
func (nop) RunFinished(string, string, time.Duration) {}
