package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
	"github.com/debtdesk-ledger/internal/domain/report"
)

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	debtRepo      debt.Repository
	agreementRepo agreement.Repository
}

// NewReportService creates a new report service
func NewReportService(debtRepo debt.Repository, agreementRepo agreement.Repository) ReportService {
	return &ReportServiceImpl{
		debtRepo:      debtRepo,
		agreementRepo: agreementRepo,
	}
}

// GetSummary recomputes the owner's dashboard totals from the current
// state of both ledgers. Nothing is cached between calls.
func (s *ReportServiceImpl) GetSummary(ctx context.Context, ownerID uuid.UUID) (*report.Summary, error) {
	debts, err := s.debtRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	agreements, err := s.agreementRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	return &report.Summary{
		TotalOutstandingDebt:  report.Outstanding(debts),
		TotalCommittedToPlans: report.Committed(agreements),
		TotalSaved:            report.Saved(agreements),
		NextDueInstallment:    report.NextDue(agreements, today),
	}, nil
}
