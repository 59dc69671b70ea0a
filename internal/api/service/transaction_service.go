package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// TransactionServiceImpl implements the TransactionService interface
type TransactionServiceImpl struct {
	transactionRepo transaction.Repository
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(logger *slog.Logger, transactionRepo transaction.Repository) TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// GetTransactionByID retrieves a bridged transaction by its ID. Returns nil if not found
func (s *TransactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*transaction.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		var errNotFound transaction.ErrTransactionNotFound
		if errors.As(err, &errNotFound) {
			s.logger.Info("Transaction not found", "transaction_id", transactionID.String())
			return nil, nil
		}
		s.logger.Error("Failed to get transaction by ID", "transaction_id", transactionID.String(), "error", err)
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a paginated list of bridged transactions for
// an owner. Returns transactions, total count, and any error.
func (s *TransactionServiceImpl) ListTransactions(ctx context.Context, ownerID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int64, error) {
	offset := (page - 1) * perPage

	txns, err := s.transactionRepo.ListByOwner(ctx, ownerID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.transactionRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}

	return txns, total, nil
}
