package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "positivipy"

var (
	GenerationAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generation_attempts_total",
		Help:      "Sentences sampled from the Markov model, including rejected ones.",
	})

	QuotesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_served_total",
		Help:      "Quotes rendered, by outcome (generated, fallback, redisplay).",
	}, []string{"outcome"})

	ExternalCallFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_call_failures_total",
		Help:      "Failed calls to grammar, translation and corpus providers.",
	}, []string{"provider"})

	VotesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Votes received, by direction.",
	}, []string{"direction"})

	SinkWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_writes_total",
		Help:      "Writes to persistence sinks, by sink, record kind and result.",
	}, []string{"sink", "kind", "result"})

	ProviderHealthy = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "provider_healthy",
		Help:      "1 when the last health check of a provider passed.",
	}, []string{"provider"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"route", "status"})
)
