package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels ...string) float64 {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	want := map[string]string{}
	for i := 0; i+1 < len(labels); i += 2 {
		want[labels[i]] = labels[i+1]
	}

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, m := range family.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	wrapped := fmt.Errorf("%w: BTC", ErrCoinNotFound)
	assert.Same(t, wrapped, classify(wrapped))

	err := classify(errors.New("deadlock detected"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorContains(t, err, "deadlock detected")
}

func TestErrorLabel(t *testing.T) {
	assert.Equal(t, "success", errorLabel(nil))
	assert.Equal(t, "insufficient_funds", errorLabel(fmt.Errorf("x: %w", ErrInsufficientFunds)))
	assert.Equal(t, "already_processed", errorLabel(ErrAlreadyProcessed))
	assert.Equal(t, "error", errorLabel(ErrPersistence))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, validateAmount("amount", dec("0.000000000000000001")))
	assert.ErrorIs(t, validateAmount("amount", dec("0")), ErrValidation)
	assert.ErrorIs(t, validateAmount("amount", dec("-0.5")), ErrValidation)
	assert.ErrorIs(t, validateAmount("amount", dec("1.0000000000000000001")), ErrValidation)
}

func TestMetrics_SettlementOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	m := newMemStore()
	m.setBalance("alice", "USDT", "100")
	svc := NewSettlementService(m, m, memBalances{m}, memTxns{m}, nopPublisher{}, metrics)

	_, err := svc.Buy(context.Background(), "alice", "ETH", dec("0.01"))
	require.NoError(t, err)
	_, err = svc.Buy(context.Background(), "alice", "BTC", dec("1"))
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, registry, "exchange_settlements_total", "side", "buy", "status", "success"))
	assert.Equal(t, 1.0, counterValue(t, registry, "exchange_settlements_total", "side", "buy", "status", "insufficient_funds"))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSettlement("buy", nil, time.Millisecond)
		m.ObserveRequest("deposit", "approve", nil)
		m.IncMarketFetch("api", "success")
		m.IncPublishFailure()
	})
}
