package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
	"github.com/debtdesk-ledger/internal/domain/report"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// TxRunner executes a function inside a database transaction. Satisfied
// by persistence.PostgresDB; mocked in tests.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(pgx.Tx) error) error
}

// CreateDebtInput carries the fields for registering a new debt
type CreateDebtInput struct {
	Description   string
	Creditor      string
	OriginalValue float64
	CurrentValue  float64
	DueDate       time.Time
	DebtType      debt.Type
	Notes         string
}

// UpdateDebtInput carries a partial update of a debt's mutable fields.
// Nil fields are left unchanged.
type UpdateDebtInput struct {
	Description  *string
	Creditor     *string
	CurrentValue *float64
	DueDate      *time.Time
	Notes        *string
}

// CreateAgreementInput carries the fields for negotiating a new
// installment plan against an active debt
type CreateAgreementInput struct {
	DebtID           uuid.UUID
	Description      string
	TotalValue       float64
	InstallmentCount int
	InterestRate     *float64
	DiscountRate     *float64
	StartDate        time.Time
	EndDate          *time.Time
	Notes            string
}

// DebtService defines the interface for debt ledger operations
type DebtService interface {
	// CreateDebt registers a new active debt for the owner
	CreateDebt(ctx context.Context, ownerID uuid.UUID, input CreateDebtInput) (*debt.Debt, error)

	// GetDebtByID retrieves a debt scoped to its owner
	// Returns ErrDebtNotFound if the debt doesn't exist
	GetDebtByID(ctx context.Context, id, ownerID uuid.UUID) (*debt.Debt, error)

	// ListDebts retrieves all debts of an owner, newest first
	ListDebts(ctx context.Context, ownerID uuid.UUID) ([]*debt.Debt, error)

	// UpdateDebt merges the provided fields into an existing debt
	UpdateDebt(ctx context.Context, id, ownerID uuid.UUID, input UpdateDebtInput) (*debt.Debt, error)

	// DeleteDebt removes a debt together with any agreement negotiated
	// against it, atomically
	DeleteDebt(ctx context.Context, id, ownerID uuid.UUID) error
}

// AgreementService defines the interface for agreement ledger operations
type AgreementService interface {
	// CreateAgreement negotiates an installment plan against an active
	// debt. The debt transition, agreement insert, schedule insert and
	// outbox rows for the ledger bridge all commit in one transaction.
	// Returns debt.ErrNotActive if the debt was already renegotiated.
	CreateAgreement(ctx context.Context, ownerID uuid.UUID, input CreateAgreementInput, correlationID string) (*agreement.Agreement, error)

	// GetAgreementByID retrieves an agreement with its installments
	GetAgreementByID(ctx context.Context, id, ownerID uuid.UUID) (*agreement.Agreement, error)

	// ListAgreements retrieves all agreements of an owner with their
	// installments, newest first
	ListAgreements(ctx context.Context, ownerID uuid.UUID) ([]*agreement.Agreement, error)

	// DeleteAgreement removes an agreement and restores its debt to the
	// active state, atomically
	DeleteAgreement(ctx context.Context, id, ownerID uuid.UUID) error

	// ToggleInstallmentPaid flips the paid flag of one installment. When
	// the toggle pays the last open installment the agreement completes
	// and the debt settles in the same transaction. Unpaying never
	// reverts those states.
	ToggleInstallmentPaid(ctx context.Context, agreementID, installmentID, ownerID uuid.UUID) (*agreement.Agreement, error)
}

// ReportService defines the interface for the aggregate dashboard figures
type ReportService interface {
	// GetSummary recomputes the owner's derived totals from the current
	// state of both ledgers
	GetSummary(ctx context.Context, ownerID uuid.UUID) (*report.Summary, error)
}

// TransactionService defines the read surface over the bridged
// financial-transactions store
type TransactionService interface {
	// GetTransactionByID retrieves a bridged transaction by its ID
	// Returns nil if the transaction is not found
	GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*transaction.Transaction, error)

	// ListTransactions retrieves a paginated list of bridged transactions
	// for an owner. Returns transactions, total count, and any error.
	ListTransactions(ctx context.Context, ownerID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int64, error)
}
