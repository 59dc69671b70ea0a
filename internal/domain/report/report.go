// Package report holds the aggregate reporters: pure derived-value
// functions recomputed on every read by scanning the loaded ledgers.
// Nothing here is cached or persisted.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
)

// UpcomingInstallment points at the next installment coming due
type UpcomingInstallment struct {
	AgreementID uuid.UUID              `json:"agreement_id"`
	Installment *agreement.Installment `json:"installment"`
}

// Summary bundles the derived dashboard figures for one owner
type Summary struct {
	TotalOutstandingDebt  float64              `json:"total_outstanding_debt"`
	TotalCommittedToPlans float64              `json:"total_committed_to_plans"`
	TotalSaved            float64              `json:"total_saved"`
	NextDueInstallment    *UpcomingInstallment `json:"next_due_installment,omitempty"`
}

// Outstanding sums the current value of active debts. Renegotiated and
// settled debts are excluded; their exposure lives in the agreements.
func Outstanding(debts []*debt.Debt) float64 {
	var total float64
	for _, d := range debts {
		if d.Status == debt.StatusActive {
			total += d.CurrentValue
		}
	}
	return total
}

// Committed sums the unpaid installment values of active agreements
func Committed(agreements []*agreement.Agreement) float64 {
	var total float64
	for _, a := range agreements {
		if a.Status == agreement.StatusActive {
			total += a.UnpaidTotal()
		}
	}
	return total
}

// Saved sums the negotiated discount across all agreements. An agreement
// negotiated above its original value contributes zero, never a negative
// amount.
func Saved(agreements []*agreement.Agreement) float64 {
	var total float64
	for _, a := range agreements {
		if saved := a.OriginalValue - a.TotalValue; saved > 0 {
			total += saved
		}
	}
	return total
}

// NextDue returns the earliest unpaid installment of an active agreement
// due on or after today, or nil when none exists. Ties break by due
// date, then agreement id, then sequence, so the result is deterministic
// regardless of input order.
func NextDue(agreements []*agreement.Agreement, today time.Time) *UpcomingInstallment {
	var best *UpcomingInstallment
	for _, a := range agreements {
		if a.Status != agreement.StatusActive {
			continue
		}
		for _, inst := range a.Installments {
			if inst.Paid || inst.DueDate.Before(today) {
				continue
			}
			if best == nil || earlier(a.ID, inst, best) {
				best = &UpcomingInstallment{AgreementID: a.ID, Installment: inst}
			}
		}
	}
	return best
}

func earlier(agreementID uuid.UUID, inst *agreement.Installment, than *UpcomingInstallment) bool {
	if !inst.DueDate.Equal(than.Installment.DueDate) {
		return inst.DueDate.Before(than.Installment.DueDate)
	}
	if agreementID != than.AgreementID {
		return agreementID.String() < than.AgreementID.String()
	}
	return inst.Sequence < than.Installment.Sequence
}
