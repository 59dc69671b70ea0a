package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

type ProcessingServiceImpl struct {
	validator   TransactionValidator
	dupChecker  DuplicateChecker
	storeWriter StoreWriter
	logger      *slog.Logger
}

func NewProcessingService(
	validator TransactionValidator,
	dupChecker DuplicateChecker,
	storeWriter StoreWriter,
	logger *slog.Logger,
) ProcessingService {
	return &ProcessingServiceImpl{
		validator:   validator,
		dupChecker:  dupChecker,
		storeWriter: storeWriter,
		logger:      logger,
	}
}

// ProcessTransaction handles the core logic of dispatching one bridge
// transaction: validate, skip recent duplicates, write to the store,
// then record the dispatch in the dedupe cache.
func (s *ProcessingServiceImpl) ProcessTransaction(ctx context.Context, txn *transaction.Transaction) error {
	logger := s.logger
	if txn.CorrelationID != "" {
		logger = s.logger.With("correlation_id", txn.CorrelationID)
	}

	logger.Info("Dispatching transaction",
		"transaction_id", txn.ID.String(),
		"agreement_id", txn.AgreementID.String(),
	)

	// 1. Validate the transaction
	if err := s.validator.Validate(ctx, txn); err != nil {
		logger.Error("Transaction validation failed", "transaction_id", txn.ID.String(), "error", err)
		return nil // Acknowledge: a malformed transaction never becomes valid on retry
	}

	// 2. Skip transactions dispatched recently
	seen, err := s.dupChecker.SeenRecently(ctx, txn)
	if err != nil {
		logger.Warn("Dedupe cache check failed, dispatching anyway",
			"transaction_id", txn.ID.String(),
			"error", err,
		)
	} else if seen {
		logger.Info("Transaction already dispatched recently, skipping", "transaction_id", txn.ID.String())
		return nil
	}

	// 3. Land the transaction in the store
	if err := s.storeWriter.Write(ctx, txn); err != nil {
		return fmt.Errorf("failed to write transaction %s to store: %w", txn.ID.String(), err)
	}

	// 4. Record the dispatch, best effort
	if err := s.dupChecker.MarkSeen(ctx, txn); err != nil {
		logger.Warn("Failed to record transaction in dedupe cache",
			"transaction_id", txn.ID.String(),
			"error", err,
		)
	}

	logger.Info("Transaction dispatched", "transaction_id", txn.ID.String())
	return nil
}
