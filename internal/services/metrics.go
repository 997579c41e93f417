package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service level Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	SettlementsTotal   *prometheus.CounterVec
	SettlementDuration *prometheus.HistogramVec
	RequestsTotal      *prometheus.CounterVec
	MarketFetches      *prometheus.CounterVec
	PublishFailures    prometheus.Counter
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SettlementsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_settlements_total",
				Help: "Total buy and sell settlements.",
			},
			[]string{"side", "status"},
		),
		SettlementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exchange_settlement_duration_seconds",
				Help:    "Settlement processing duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"side"},
		),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_requests_total",
				Help: "Deposit and withdraw request operations.",
			},
			[]string{"kind", "action", "status"},
		),
		MarketFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exchange_market_fetches_total",
				Help: "Market data lookups by source.",
			},
			[]string{"source", "status"},
		),
		PublishFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "exchange_publish_failures_total",
				Help: "Transactions that could not be published to Kafka.",
			},
		),
	}

	registry.MustRegister(
		m.SettlementsTotal,
		m.SettlementDuration,
		m.RequestsTotal,
		m.MarketFetches,
		m.PublishFailures,
	)
	return m
}

func (m *Metrics) ObserveSettlement(side string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	m.SettlementsTotal.WithLabelValues(side, errorLabel(err)).Inc()
	m.SettlementDuration.WithLabelValues(side).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRequest(kind, action string, err error) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(kind, action, errorLabel(err)).Inc()
}

func (m *Metrics) IncMarketFetch(source, status string) {
	if m == nil {
		return
	}
	m.MarketFetches.WithLabelValues(source, status).Inc()
}

func (m *Metrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}
