package debt

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyDescription = errors.New("debt description cannot be empty")
	ErrNegativeValue    = errors.New("debt value cannot be negative")
	ErrInvalidType      = errors.New("invalid debt type")
	ErrNotActive        = errors.New("debt is not active")
	ErrNotRenegotiated  = errors.New("debt is not renegotiated")
)

// Status defines the debt lifecycle states
type Status string

const (
	StatusActive       Status = "ACTIVE"
	StatusRenegotiated Status = "RENEGOTIATED"
	StatusSettled      Status = "SETTLED"
)

// Type categorizes the origin of a debt
type Type string

const (
	TypeCreditCard Type = "CREDIT_CARD"
	TypeLoan       Type = "LOAN"
	TypeFinancing  Type = "FINANCING"
	TypeOther      Type = "OTHER"
)

// ValidType reports whether t is one of the known debt types
func ValidType(t Type) bool {
	switch t {
	case TypeCreditCard, TypeLoan, TypeFinancing, TypeOther:
		return true
	}
	return false
}

// Debt represents an owed amount tracked by an owner
type Debt struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Description   string     `json:"description"`
	Creditor      string     `json:"creditor"`
	OriginalValue float64    `json:"original_value"`
	CurrentValue  float64    `json:"current_value"` // May exceed OriginalValue (accrued interest)
	DueDate       time.Time  `json:"due_date"`
	DebtType      Type       `json:"debt_type"`
	Notes         string     `json:"notes,omitempty"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

// New creates an active debt. A non-positive currentValue defaults to
// originalValue.
func New(ownerID uuid.UUID, description, creditor string, originalValue, currentValue float64, dueDate time.Time, debtType Type, notes string) (*Debt, error) {
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if originalValue < 0 || currentValue < 0 {
		return nil, ErrNegativeValue
	}
	if !ValidType(debtType) {
		return nil, ErrInvalidType
	}
	if currentValue == 0 {
		currentValue = originalValue
	}

	return &Debt{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Description:   description,
		Creditor:      creditor,
		OriginalValue: originalValue,
		CurrentValue:  currentValue,
		DueDate:       dueDate,
		DebtType:      debtType,
		Notes:         notes,
		Status:        StatusActive,
		CreatedAt:     time.Now(),
	}, nil
}

// Renegotiate moves an active debt into the renegotiated state, replacing
// its current value with the negotiated total.
func (d *Debt) Renegotiate(totalValue float64) error {
	if d.Status != StatusActive {
		return ErrNotActive
	}
	if totalValue < 0 {
		return ErrNegativeValue
	}

	d.Status = StatusRenegotiated
	d.CurrentValue = totalValue
	return nil
}

// Settle marks a renegotiated debt as settled. A debt never goes directly
// from active to settled; the payment cascade is the only caller.
func (d *Debt) Settle(now time.Time) error {
	if d.Status != StatusRenegotiated {
		return ErrNotRenegotiated
	}

	d.Status = StatusSettled
	d.SettledAt = &now
	return nil
}

// RevertToActive restores a renegotiated debt to the active state after
// its agreement is deleted. originalValue is the value the agreement
// recorded at negotiation time. A settled debt never reverts; settlement
// is a terminal state on this path.
func (d *Debt) RevertToActive(originalValue float64) error {
	if d.Status != StatusRenegotiated {
		return ErrNotRenegotiated
	}

	d.Status = StatusActive
	d.CurrentValue = originalValue
	d.SettledAt = nil
	return nil
}
