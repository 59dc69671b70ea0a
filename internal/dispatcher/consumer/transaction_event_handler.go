package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/debtdesk-ledger/internal/dispatcher/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
	"github.com/debtdesk-ledger/internal/platform/messaging/producers"
)

// TransactionEventHandler handles incoming bridge transaction messages from Kafka
type TransactionEventHandler struct {
	processingService service.ProcessingService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewTransactionEventHandler creates a new handler
func NewTransactionEventHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	producer producers.DeadLetterPublisher,
) *TransactionEventHandler {
	return &TransactionEventHandler{
		processingService: processingService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *TransactionEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var txn transaction.Transaction
	if err := json.Unmarshal(value, &txn); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal transaction from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
				// Return original error if DLQ fails
			} else {
				h.logger.Info("Successfully published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	// Add correlation ID to logger
	logger := h.logger
	if txn.CorrelationID != "" {
		logger = h.logger.With("correlation_id", txn.CorrelationID)
	}

	logger.Info("Received transaction for dispatch",
		"transaction_id", txn.ID.String(),
		"agreement_id", txn.AgreementID.String(),
		"value", txn.Value,
	)

	if err := h.processingService.ProcessTransaction(ctx, &txn); err != nil {
		logger.Error("Failed to dispatch transaction",
			"transaction_id", txn.ID.String(),
			"agreement_id", txn.AgreementID.String(),
			"error", err,
		)
		return fmt.Errorf("dispatching transaction %s failed: %w", txn.ID.String(), err)
	}

	logger.Info("Successfully dispatched transaction", "transaction_id", txn.ID.String())
	return nil // Success, commit offset
}
