package components

import (
	"context"
	"log/slog"

	"github.com/debtdesk-ledger/internal/dispatcher/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// StoreWriterImpl lands bridge transactions in the
// financial-transactions store
type StoreWriterImpl struct {
	transactionRepo transaction.Repository
	logger          *slog.Logger
}

func NewStoreWriter(transactionRepo transaction.Repository, logger *slog.Logger) service.StoreWriter {
	return &StoreWriterImpl{
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// Write upserts the transaction, so replayed messages overwrite their
// own earlier write instead of duplicating it
func (w *StoreWriterImpl) Write(ctx context.Context, txn *transaction.Transaction) error {
	return w.transactionRepo.Save(ctx, txn)
}
