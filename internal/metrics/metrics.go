// Package metrics exposes the engine's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by endpoint and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oddsmash_requests_total",
		Help: "HTTP requests served, by endpoint and status.",
	}, []string{"endpoint", "status"})

	// ProviderFailures counts per-book fetches that errored or timed
	// out and were excluded from their request's computation.
	ProviderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oddsmash_provider_failures_total",
		Help: "Per-book quote fetches excluded due to errors or timeouts.",
	}, []string{"book"})

	// ArbOpportunities counts detected arbitrage opportunities.
	ArbOpportunities = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oddsmash_arbitrage_opportunities_total",
		Help: "Arbitrage opportunities detected by the scanner.",
	})

	// HitRateSource counts hit-rate loads by the strategy that served
	// them, making the fallback chain's behavior observable.
	HitRateSource = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oddsmash_hit_rate_loads_total",
		Help: "Hit-rate profile loads, by serving strategy.",
	}, []string{"source"})

	// LadderBuildSeconds tracks end-to-end ladder assembly latency,
	// including provider fan-out.
	LadderBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oddsmash_ladder_build_seconds",
		Help:    "Ladder assembly latency including quote fetching.",
		Buckets: prometheus.DefBuckets,
	})
)
