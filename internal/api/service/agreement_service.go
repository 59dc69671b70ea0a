package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
	"github.com/debtdesk-ledger/internal/domain/outbox"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// AgreementServiceImpl implements the AgreementService interface
type AgreementServiceImpl struct {
	debtRepo      debt.Repository
	agreementRepo agreement.Repository
	outboxRepo    outbox.Repository
	txRunner      TxRunner
	logger        *slog.Logger
}

// NewAgreementService creates a new agreement service
func NewAgreementService(logger *slog.Logger, debtRepo debt.Repository, agreementRepo agreement.Repository, outboxRepo outbox.Repository, txRunner TxRunner) AgreementService {
	return &AgreementServiceImpl{
		debtRepo:      debtRepo,
		agreementRepo: agreementRepo,
		outboxRepo:    outboxRepo,
		txRunner:      txRunner,
		logger:        logger,
	}
}

// CreateAgreement negotiates an installment plan against an active debt.
// The debt transition, the agreement with its schedule, and one outbox
// message per installment commit atomically. Either the whole cascade
// lands or none of it does.
func (s *AgreementServiceImpl) CreateAgreement(ctx context.Context, ownerID uuid.UUID, input CreateAgreementInput, correlationID string) (*agreement.Agreement, error) {
	var created *agreement.Agreement

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		debtRepo := s.debtRepo.WithTx(tx)
		agreementRepo := s.agreementRepo.WithTx(tx)
		outboxRepo := s.outboxRepo.WithTx(tx)

		d, err := debtRepo.GetByID(ctx, input.DebtID, ownerID)
		if err != nil {
			return err
		}
		if d.Status != debt.StatusActive {
			return debt.ErrNotActive
		}

		// One agreement per debt, enforced against the agreements table
		// itself rather than inferred from the debt status
		existing, err := agreementRepo.GetByDebtID(ctx, d.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return agreement.ErrDebtAlreadyNegotiated
		}

		a, err := agreement.New(ownerID, d.ID, input.Description, input.TotalValue, d.CurrentValue, input.InstallmentCount, input.InterestRate, input.DiscountRate, input.StartDate, input.EndDate, input.Notes)
		if err != nil {
			return err
		}

		if err := d.Renegotiate(input.TotalValue); err != nil {
			return err
		}
		if err := debtRepo.Update(ctx, d); err != nil {
			return err
		}

		if err := agreementRepo.Create(ctx, a); err != nil {
			return err
		}

		for _, inst := range a.Installments {
			txn := transaction.NewFromInstallment(ownerID, d.Description, inst, a.InstallmentCount, correlationID)
			message, err := outbox.NewMessage(txn)
			if err != nil {
				return err
			}
			if err := outboxRepo.Create(ctx, message); err != nil {
				return err
			}
		}

		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Agreement created",
		"agreement_id", created.ID,
		"debt_id", created.DebtID,
		"owner_id", ownerID,
		"installment_count", created.InstallmentCount,
		"total_value", created.TotalValue,
	)

	return created, nil
}

// GetAgreementByID retrieves an agreement with its installments
func (s *AgreementServiceImpl) GetAgreementByID(ctx context.Context, id, ownerID uuid.UUID) (*agreement.Agreement, error) {
	return s.agreementRepo.GetByID(ctx, id, ownerID)
}

// ListAgreements retrieves all agreements of an owner, newest first
func (s *AgreementServiceImpl) ListAgreements(ctx context.Context, ownerID uuid.UUID) ([]*agreement.Agreement, error) {
	return s.agreementRepo.ListByOwner(ctx, ownerID)
}

// DeleteAgreement removes an agreement and restores its debt to the
// active state at the value recorded when the plan was negotiated.
// A completed agreement is not deletable: its debt is settled, and a
// settled debt never goes back to active.
func (s *AgreementServiceImpl) DeleteAgreement(ctx context.Context, id, ownerID uuid.UUID) error {
	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		debtRepo := s.debtRepo.WithTx(tx)
		agreementRepo := s.agreementRepo.WithTx(tx)

		a, err := agreementRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if a.Status == agreement.StatusCompleted {
			return agreement.ErrCompleted
		}

		d, err := debtRepo.GetByID(ctx, a.DebtID, ownerID)
		if err != nil {
			return err
		}

		if err := d.RevertToActive(a.OriginalValue); err != nil {
			return err
		}
		if err := debtRepo.Update(ctx, d); err != nil {
			return err
		}

		return agreementRepo.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Agreement deleted", "agreement_id", id, "owner_id", ownerID)
	return nil
}

// ToggleInstallmentPaid flips the paid flag of one installment. Paying
// the last open installment completes the agreement and settles the debt
// in the same transaction. Unpaying only reopens the installment; the
// completion cascade runs forward only.
func (s *AgreementServiceImpl) ToggleInstallmentPaid(ctx context.Context, agreementID, installmentID, ownerID uuid.UUID) (*agreement.Agreement, error) {
	var toggled *agreement.Agreement

	err := s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		debtRepo := s.debtRepo.WithTx(tx)
		agreementRepo := s.agreementRepo.WithTx(tx)

		a, err := agreementRepo.GetByID(ctx, agreementID, ownerID)
		if err != nil {
			return err
		}

		inst, err := a.Installment(installmentID)
		if err != nil {
			return err
		}

		if inst.Paid {
			inst.MarkUnpaid()
			if err := agreementRepo.UpdateInstallment(ctx, inst); err != nil {
				return err
			}
			toggled = a
			return nil
		}

		now := time.Now()
		inst.MarkPaid(now)
		if err := agreementRepo.UpdateInstallment(ctx, inst); err != nil {
			return err
		}

		if a.AllPaid() && a.Status == agreement.StatusActive {
			a.Complete()
			if err := agreementRepo.UpdateStatus(ctx, a.ID, a.Status); err != nil {
				return err
			}

			d, err := debtRepo.GetByID(ctx, a.DebtID, ownerID)
			if err != nil {
				return err
			}
			if d.Status == debt.StatusRenegotiated {
				if err := d.Settle(now); err != nil {
					return err
				}
				if err := debtRepo.Update(ctx, d); err != nil {
					return err
				}
				s.logger.Info("Debt settled through payment cascade",
					"debt_id", d.ID,
					"agreement_id", a.ID,
				)
			}
		}

		toggled = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toggled, nil
}
