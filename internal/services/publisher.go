package services

//go:generate mockgen -source=publisher.go -destination=mock_publisher.go -package=services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// TransactionPublisher publishes committed ledger transactions.
type TransactionPublisher interface {
	Publish(ctx context.Context, txn models.Transaction)
}

// KafkaPublisher publishes transactions as JSON keyed by username.
// Publishing is best-effort; the ledger is the source of truth.
type KafkaPublisher struct {
	writer  KafkaWriter
	metrics *Metrics
}

// NewKafkaPublisher creates a publisher. A nil writer disables publishing.
func NewKafkaPublisher(writer KafkaWriter, metrics *Metrics) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, metrics: metrics}
}

// Publish publishes a transaction to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, txn models.Transaction) {
	txnID := strconv.FormatInt(txn.ID, 10)

	if p == nil || p.writer == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", txnID)
		return
	}

	data, err := json.Marshal(txn)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", txnID, "error", err)
		p.metrics.IncPublishFailure()
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.Username),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(txn.Type)},
			{Key: "transaction_id", Value: []byte(txnID)},
		},
	}

	// The ledger change is committed, so a cancelled caller must not drop the event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", txnID, "error", err)
		p.metrics.IncPublishFailure()
		return
	}
	logger.Log.Infow("Transaction published to Kafka", "transaction_id", txnID, "type", txn.Type, "total", txn.Total)
}
