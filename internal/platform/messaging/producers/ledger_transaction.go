package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/debtdesk-ledger/internal/config"
)

// LedgerTransactionProducer publishes drained outbox transactions onto the
// bridge topic for the store writer to consume.
type LedgerTransactionProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewLedgerTransactionProducer creates the bridge topic producer and ensures the topic exists.
// Writes are synchronous: the outbox poller only marks a row processed once
// the broker has acknowledged the message.
func NewLedgerTransactionProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*LedgerTransactionProducer, error) {
	if cfg.TransactionsTopic == "" {
		return nil, fmt.Errorf("kafka transactions topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ledger transaction producer: %w", err)
	}
	defer conn.Close()

	err = ensureTopic(conn, cfg.TransactionsTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure transactions topic %s exists: %w", cfg.TransactionsTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.TransactionsTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages", "topic", cfg.TransactionsTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages", "topic", cfg.TransactionsTopic, "count", len(messages))
			}
		},
	}

	return &LedgerTransactionProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.TransactionsTopic,
	}, nil
}

func (p *LedgerTransactionProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for ledger transaction producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message via ledger transaction producer",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via ledger transaction producer: %w", p.topic, err)
	}

	p.logger.Debug("Published message via ledger transaction producer",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *LedgerTransactionProducer) Close() error {
	p.logger.Info("Closing ledger transaction Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
