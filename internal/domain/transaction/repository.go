package transaction

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages synthetic transaction persistence in the external
// financial-transactions store. Save is an upsert keyed by id, making
// bridge delivery idempotent.
type Repository interface {
	Save(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Transaction, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// ErrTransactionNotFound indicates missing transaction
type ErrTransactionNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrTransactionNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrTransactionNotFound
func (e ErrTransactionNotFound) Is(target error) bool {
	t, ok := target.(ErrTransactionNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
