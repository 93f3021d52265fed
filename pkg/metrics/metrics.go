// Package metrics exposes Prometheus collectors for connection tests and queries.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// ConnectionTests counts connection tests by backend kind and result.
	ConnectionTests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbconnector",
		Name:      "connection_tests_total",
		Help:      "Connection tests by backend kind and result.",
	}, []string{"kind", "result"})

	// Queries counts query executions by backend kind and result.
	Queries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dbconnector",
		Name:      "queries_total",
		Help:      "Query executions by backend kind and result.",
	}, []string{"kind", "result"})

	// QueryDuration observes successful query latency.
	QueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dbconnector",
		Name:      "query_duration_seconds",
		Help:      "Latency of successful queries, including connect and close.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"kind"})

	// HistoryAppendFailures counts query history entries that could not be stored.
	HistoryAppendFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dbconnector",
		Name:      "history_append_failures_total",
		Help:      "Query history entries that could not be stored.",
	})

	// RateLimited counts queries refused by the per-session limiter.
	RateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dbconnector",
		Name:      "queries_rate_limited_total",
		Help:      "Queries refused by the per-session rate limiter.",
	})
)

var registerOnce sync.Once

// Register adds every collector to reg once per process.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(ConnectionTests, Queries, QueryDuration, HistoryAppendFailures, RateLimited)
	})
}

// Result maps an error to its result label.
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveQuery records one query attempt.
func ObserveQuery(kind string, d time.Duration, err error) {
	Queries.WithLabelValues(kind, Result(err)).Inc()
	if err == nil {
		QueryDuration.WithLabelValues(kind).Observe(d.Seconds())
	}
}
