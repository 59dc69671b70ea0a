package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/domain/agreement"
)

// Fixed classification of bridge transactions. Every installment of an
// agreement lands in the financial-transactions store as an outgoing
// bill, write-once: nothing synchronizes back afterwards.
const (
	CategoryBillsPayable = "BILLS_PAYABLE"
	DirectionOutflow     = "OUTFLOW"
)

// Transaction is a synthetic expense entry emitted into the external
// financial-transactions store, one per generated installment
type Transaction struct {
	ID            uuid.UUID `json:"id" bson:"id"`
	OwnerID       uuid.UUID `json:"owner_id" bson:"owner_id"`
	AgreementID   uuid.UUID `json:"agreement_id" bson:"agreement_id"`
	InstallmentID uuid.UUID `json:"installment_id" bson:"installment_id"`
	Description   string    `json:"description" bson:"description"`
	Value         float64   `json:"value" bson:"value"`
	Category      string    `json:"category" bson:"category"`
	Date          time.Time `json:"date" bson:"date"` // Installment due date
	Direction     string    `json:"direction" bson:"direction"`
	CorrelationID string    `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// NewFromInstallment builds the bridge transaction for one installment.
// The description embeds the installment position and the debt it pays
// down, e.g. "Installment 2/3 - Credit card balance".
func NewFromInstallment(ownerID uuid.UUID, debtDescription string, inst *agreement.Installment, installmentCount int, correlationID string) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AgreementID:   inst.AgreementID,
		InstallmentID: inst.ID,
		Description:   fmt.Sprintf("Installment %d/%d - %s", inst.Sequence, installmentCount, debtDescription),
		Value:         inst.Value,
		Category:      CategoryBillsPayable,
		Date:          inst.DueDate,
		Direction:     DirectionOutflow,
		CorrelationID: correlationID,
		CreatedAt:     time.Now(),
	}
}
