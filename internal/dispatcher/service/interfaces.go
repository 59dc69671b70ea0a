package service

import (
	"context"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// ProcessingService defines the interface for dispatching bridge
// transactions into the financial-transactions store.
type ProcessingService interface {
	ProcessTransaction(ctx context.Context, txn *transaction.Transaction) error
}

// TransactionValidator validates bridge transactions before dispatch
type TransactionValidator interface {
	Validate(ctx context.Context, txn *transaction.Transaction) error
}

// DuplicateChecker short-circuits transactions already dispatched
// recently. A cache miss is never an error; the store write is
// idempotent on its own.
type DuplicateChecker interface {
	SeenRecently(ctx context.Context, txn *transaction.Transaction) (bool, error)
	MarkSeen(ctx context.Context, txn *transaction.Transaction) error
}

// StoreWriter lands a validated transaction in the
// financial-transactions store
type StoreWriter interface {
	Write(ctx context.Context, txn *transaction.Transaction) error
}
