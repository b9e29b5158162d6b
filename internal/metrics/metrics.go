// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

// Package metrics provides Prometheus instrumentation for the client:
// gateway request latency and outcomes, token refresh attempts, and circuit
// breaker state. Metrics register on the default registry; embedders that
// expose an exporter get them for free, everyone else pays near-zero cost.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GatewayRequestDuration observes outbound API call latency.
	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinelog_gateway_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// GatewayRequests counts outbound API calls by endpoint and outcome.
	// Outcome is one of: success, server_error, network_error, client_error,
	// auth_error.
	GatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_gateway_requests_total",
			Help: "Total backend API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// TokenRefreshes counts transparent token refresh exchanges by result.
	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_token_refreshes_total",
			Help: "Total token refresh attempts by result",
		},
		[]string{"result"}, // "success" or "failure"
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinelog_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitions counts breaker state changes.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// CircuitBreakerRequests counts requests through the breaker by result.
	// Result is one of: success, failure, rejected.
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinelog_circuit_breaker_requests_total",
			Help: "Total requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)
)
