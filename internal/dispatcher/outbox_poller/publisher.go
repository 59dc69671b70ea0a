package outbox_poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/debtdesk-ledger/internal/domain/outbox"
	"github.com/debtdesk-ledger/internal/platform/messaging/producers"
)

// ErrUnreadablePayload marks an outbox row whose payload does not
// decode. The publisher has already moved such a row to
// FAILED_TO_PUBLISH; retry bookkeeping does not apply.
var ErrUnreadablePayload = errors.New("outbox payload is unreadable")

// TransactionPublisher publishes outbox messages onto the bridge topic
type TransactionPublisher interface {
	PublishTransaction(ctx context.Context, message *outbox.Message) error
}

// TransactionPublisherImpl implements TransactionPublisher
type TransactionPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewTransactionPublisher creates a new publisher
func NewTransactionPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) TransactionPublisher {
	return &TransactionPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishTransaction pushes one outbox message onto the bridge topic and
// marks it processed. A payload that does not decode is dead on arrival
// and goes straight to FAILED_TO_PUBLISH.
func (p *TransactionPublisherImpl) PublishTransaction(ctx context.Context, message *outbox.Message) error {
	txn, err := message.GetTransaction()
	if err != nil {
		p.logger.Error("Failed to unmarshal transaction from outbox payload",
			"outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("%w: outbox %d: %v", ErrUnreadablePayload, message.ID, err)
	}

	// Add correlation ID to logger
	logger := p.logger
	if txn.CorrelationID != "" {
		logger = p.logger.With("correlation_id", txn.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message to bridge topic", "outbox_id", message.ID, "transaction_id", message.TransactionID)

	// Keyed by agreement so all installments of one plan stay ordered
	if err := p.producer.Publish(ctx, txn.AgreementID.String(), txn); err != nil {
		logger.Error("Failed to publish transaction to bridge topic", "transaction_id", txn.ID, "error", err)
		return fmt.Errorf("failed to publish transaction %s: %w", txn.ID, err)
	}

	// Mark outbox message as processed
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "transaction_id", message.TransactionID, "error", err,
		)
		return fmt.Errorf("publish for %s OK, but failed to mark outbox %d as PROCESSED: %w", message.TransactionID, message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED", "outbox_id", message.ID, "transaction_id", message.TransactionID)
	return nil
}
