package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
)

// DebtServiceImpl implements the DebtService interface
type DebtServiceImpl struct {
	debtRepo      debt.Repository
	agreementRepo agreement.Repository
	txRunner      TxRunner
	logger        *slog.Logger
}

// NewDebtService creates a new debt service
func NewDebtService(logger *slog.Logger, debtRepo debt.Repository, agreementRepo agreement.Repository, txRunner TxRunner) DebtService {
	return &DebtServiceImpl{
		debtRepo:      debtRepo,
		agreementRepo: agreementRepo,
		txRunner:      txRunner,
		logger:        logger,
	}
}

// CreateDebt registers a new active debt for the owner
func (s *DebtServiceImpl) CreateDebt(ctx context.Context, ownerID uuid.UUID, input CreateDebtInput) (*debt.Debt, error) {
	d, err := debt.New(ownerID, input.Description, input.Creditor, input.OriginalValue, input.CurrentValue, input.DueDate, input.DebtType, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.debtRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Debt created",
		"debt_id", d.ID,
		"owner_id", ownerID,
		"current_value", d.CurrentValue,
	)

	return d, nil
}

// GetDebtByID retrieves a debt scoped to its owner
func (s *DebtServiceImpl) GetDebtByID(ctx context.Context, id, ownerID uuid.UUID) (*debt.Debt, error) {
	return s.debtRepo.GetByID(ctx, id, ownerID)
}

// ListDebts retrieves all debts of an owner, newest first
func (s *DebtServiceImpl) ListDebts(ctx context.Context, ownerID uuid.UUID) ([]*debt.Debt, error) {
	return s.debtRepo.ListByOwner(ctx, ownerID)
}

// UpdateDebt merges the provided fields into a debt; absent fields are
// left untouched. The current value may exceed the original value here,
// accrued interest makes that a legitimate state. Status, original value
// and ownership never change through this path.
func (s *DebtServiceImpl) UpdateDebt(ctx context.Context, id, ownerID uuid.UUID, input UpdateDebtInput) (*debt.Debt, error) {
	d, err := s.debtRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Description != nil {
		if *input.Description == "" {
			return nil, debt.ErrEmptyDescription
		}
		d.Description = *input.Description
	}
	if input.Creditor != nil {
		d.Creditor = *input.Creditor
	}
	if input.CurrentValue != nil {
		if *input.CurrentValue < 0 {
			return nil, debt.ErrNegativeValue
		}
		d.CurrentValue = *input.CurrentValue
	}
	if input.DueDate != nil {
		d.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		d.Notes = *input.Notes
	}

	if err := s.debtRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// DeleteDebt removes a debt and any agreement negotiated against it in a
// single transaction, so no orphan installment plan can survive its debt
func (s *DebtServiceImpl) DeleteDebt(ctx context.Context, id, ownerID uuid.UUID) error {
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		debtRepo := s.debtRepo.WithTx(tx)
		agreementRepo := s.agreementRepo.WithTx(tx)

		if _, err := debtRepo.GetByID(ctx, id, ownerID); err != nil {
			return err
		}

		if err := agreementRepo.DeleteByDebtID(ctx, id); err != nil {
			return err
		}

		return debtRepo.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Debt deleted", "debt_id", id, "owner_id", ownerID)
	return nil
}
