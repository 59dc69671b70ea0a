package debt

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines debt persistence operations, scoped to an owner
type Repository interface {
	Create(ctx context.Context, d *Debt) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Debt, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Debt, error)
	Update(ctx context.Context, d *Debt) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	WithTx(tx pgx.Tx) Repository
}

// ErrDebtNotFound indicates missing debt
type ErrDebtNotFound struct {
	DebtID uuid.UUID
}

func (e ErrDebtNotFound) Error() string {
	return "debt not found: " + e.DebtID.String()
}

// Is implements the errors.Is interface for ErrDebtNotFound
func (e ErrDebtNotFound) Is(target error) bool {
	t, ok := target.(ErrDebtNotFound)
	if !ok {
		return false
	}
	// An empty target DebtID matches any ErrDebtNotFound
	if t.DebtID == uuid.Nil {
		return true
	}
	return e.DebtID == t.DebtID
}
