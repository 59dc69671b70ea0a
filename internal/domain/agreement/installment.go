package agreement

import (
	"time"

	"github.com/google/uuid"
)

// Installment is a single slice of an agreement's payment plan. Value,
// due date and sequence are immutable after creation; only the paid flag
// and its timestamp mutate.
type Installment struct {
	ID          uuid.UUID  `json:"id"`
	AgreementID uuid.UUID  `json:"agreement_id"`
	Sequence    int        `json:"sequence"` // 1-based, contiguous within an agreement
	Value       float64    `json:"value"`
	DueDate     time.Time  `json:"due_date"`
	Paid        bool       `json:"paid"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	Interest    float64    `json:"interest,omitempty"`
	Penalty     float64    `json:"penalty,omitempty"`
}

// MarkPaid sets the paid flag and records the payment time
func (i *Installment) MarkPaid(now time.Time) {
	i.Paid = true
	i.PaidAt = &now
}

// MarkUnpaid clears the paid flag and its timestamp
func (i *Installment) MarkUnpaid() {
	i.Paid = false
	i.PaidAt = nil
}
