package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/dispatcher/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// Validation errors
var (
	ErrMissingTransactionID = errors.New("transaction id is required")
	ErrMissingOwnerID       = errors.New("owner id is required")
	ErrUnknownCategory      = errors.New("unknown transaction category")
	ErrUnknownDirection     = errors.New("unknown transaction direction")
)

type TransactionValidatorImpl struct {
	logger *slog.Logger
}

func NewTransactionValidator(logger *slog.Logger) service.TransactionValidator {
	return &TransactionValidatorImpl{
		logger: logger,
	}
}

// Validate checks bridge transaction validity before it lands in the
// financial-transactions store
func (v *TransactionValidatorImpl) Validate(ctx context.Context, txn *transaction.Transaction) error {
	logger := v.logger
	if txn.CorrelationID != "" {
		logger = v.logger.With("correlation_id", txn.CorrelationID)
	}

	if txn.ID == uuid.Nil {
		logger.Error("Missing transaction ID")
		return ErrMissingTransactionID
	}

	if txn.OwnerID == uuid.Nil {
		logger.Error("Missing owner ID", "transaction_id", txn.ID.String())
		return ErrMissingOwnerID
	}

	if txn.Category != transaction.CategoryBillsPayable {
		logger.Error("Unknown category", "transaction_id", txn.ID.String(), "category", txn.Category)
		return ErrUnknownCategory
	}

	if txn.Direction != transaction.DirectionOutflow {
		logger.Error("Unknown direction", "transaction_id", txn.ID.String(), "direction", txn.Direction)
		return ErrUnknownDirection
	}

	if txn.Value < 0 {
		logger.Error("Negative value", "transaction_id", txn.ID.String(), "value", txn.Value)
		return fmt.Errorf("value cannot be negative: %f", txn.Value)
	}

	return nil
}
