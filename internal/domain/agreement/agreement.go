package agreement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyDescription        = errors.New("agreement description cannot be empty")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	ErrNegativeTotalValue      = errors.New("total value cannot be negative")
	ErrDebtAlreadyNegotiated   = errors.New("debt already has an agreement")
	ErrCompleted               = errors.New("agreement is already completed")
)

// Status defines the agreement lifecycle states
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Agreement represents a debt renegotiation that spreads a negotiated
// total over a monthly installment plan
type Agreement struct {
	ID               uuid.UUID      `json:"id"`
	OwnerID          uuid.UUID      `json:"owner_id"`
	DebtID           uuid.UUID      `json:"debt_id"`
	Description      string         `json:"description"`
	TotalValue       float64        `json:"total_value"`
	OriginalValue    float64        `json:"original_value"` // Debt's current value at negotiation time
	InstallmentCount int            `json:"installment_count"`
	InterestRate     *float64       `json:"interest_rate,omitempty"`
	DiscountRate     *float64       `json:"discount_rate,omitempty"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          *time.Time     `json:"end_date,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Savings          float64        `json:"savings"`
	Status           Status         `json:"status"`
	Installments     []*Installment `json:"installments"`
	CreatedAt        time.Time      `json:"created_at"`
}

// New creates an active agreement together with its full installment
// schedule. originalValue is the owning debt's current value at the moment
// of negotiation, captured for savings reporting.
func New(ownerID, debtID uuid.UUID, description string, totalValue, originalValue float64, count int, interestRate, discountRate *float64, startDate time.Time, endDate *time.Time, notes string) (*Agreement, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}

	id := uuid.New()
	installments, err := BuildSchedule(id, totalValue, count, startDate)
	if err != nil {
		return nil, err
	}

	savings := originalValue - totalValue
	if savings < 0 {
		savings = 0
	}

	return &Agreement{
		ID:               id,
		OwnerID:          ownerID,
		DebtID:           debtID,
		Description:      description,
		TotalValue:       totalValue,
		OriginalValue:    originalValue,
		InstallmentCount: count,
		InterestRate:     interestRate,
		DiscountRate:     discountRate,
		StartDate:        startDate,
		EndDate:          endDate,
		Notes:            notes,
		Savings:          savings,
		Status:           StatusActive,
		Installments:     installments,
		CreatedAt:        time.Now(),
	}, nil
}

// Installment returns the owned installment with the given id
func (a *Agreement) Installment(id uuid.UUID) (*Installment, error) {
	for _, inst := range a.Installments {
		if inst.ID == id {
			return inst, nil
		}
	}
	return nil, ErrInstallmentNotFound{InstallmentID: id}
}

// AllPaid reports whether every installment of the agreement is paid
func (a *Agreement) AllPaid() bool {
	for _, inst := range a.Installments {
		if !inst.Paid {
			return false
		}
	}
	return true
}

// Complete marks the agreement as completed
func (a *Agreement) Complete() {
	a.Status = StatusCompleted
}

// UnpaidTotal sums the values of the agreement's unpaid installments
func (a *Agreement) UnpaidTotal() float64 {
	var total float64
	for _, inst := range a.Installments {
		if !inst.Paid {
			total += inst.Value
		}
	}
	return total
}
