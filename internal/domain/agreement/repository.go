package agreement

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages agreement persistence. Create and GetByID always
// carry the full installment sequence.
type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*Agreement, error)
	GetByDebtID(ctx context.Context, debtID uuid.UUID) (*Agreement, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Agreement, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// UpdateInstallment persists the paid flag and payment timestamp only;
	// value, due date and sequence are immutable.
	UpdateInstallment(ctx context.Context, inst *Installment) error

	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteByDebtID(ctx context.Context, debtID uuid.UUID) error
	WithTx(tx pgx.Tx) Repository
}

// ErrAgreementNotFound indicates missing agreement
type ErrAgreementNotFound struct {
	AgreementID uuid.UUID
}

func (e ErrAgreementNotFound) Error() string {
	return "agreement not found: " + e.AgreementID.String()
}

// Is implements the errors.Is interface for ErrAgreementNotFound
func (e ErrAgreementNotFound) Is(target error) bool {
	t, ok := target.(ErrAgreementNotFound)
	if !ok {
		return false
	}
	if t.AgreementID == uuid.Nil {
		return true
	}
	return e.AgreementID == t.AgreementID
}

// ErrInstallmentNotFound indicates missing installment
type ErrInstallmentNotFound struct {
	InstallmentID uuid.UUID
}

func (e ErrInstallmentNotFound) Error() string {
	return "installment not found: " + e.InstallmentID.String()
}

// Is implements the errors.Is interface for ErrInstallmentNotFound
func (e ErrInstallmentNotFound) Is(target error) bool {
	t, ok := target.(ErrInstallmentNotFound)
	if !ok {
		return false
	}
	if t.InstallmentID == uuid.Nil {
		return true
	}
	return e.InstallmentID == t.InstallmentID
}
