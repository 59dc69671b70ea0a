package handler

// DateLayout is the wire format for date-only fields. Dates carry no
// time or zone component; due dates are whole days.
const DateLayout = "2006-01-02"

// CreateDebtRequest represents a request to register a new debt
type CreateDebtRequest struct {
	Description   string  `json:"description" binding:"required"`
	Creditor      string  `json:"creditor"`
	OriginalValue float64 `json:"original_value" binding:"min=0"`
	CurrentValue  float64 `json:"current_value" binding:"min=0"`
	DueDate       string  `json:"due_date" binding:"required"`
	DebtType      string  `json:"debt_type" binding:"required,oneof=CREDIT_CARD LOAN FINANCING OTHER"`
	Notes         string  `json:"notes"`
}

// UpdateDebtRequest represents a partial update of a debt's mutable
// fields. Omitted fields are left unchanged.
type UpdateDebtRequest struct {
	Description  *string  `json:"description,omitempty"`
	Creditor     *string  `json:"creditor,omitempty"`
	CurrentValue *float64 `json:"current_value,omitempty" binding:"omitempty,min=0"`
	DueDate      *string  `json:"due_date,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// DebtResponse represents a debt in API responses
type DebtResponse struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Creditor      string  `json:"creditor,omitempty"`
	OriginalValue float64 `json:"original_value"`
	CurrentValue  float64 `json:"current_value"`
	DueDate       string  `json:"due_date"`
	DebtType      string  `json:"debt_type"`
	Notes         string  `json:"notes,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	SettledAt     string  `json:"settled_at,omitempty"`
}

// CreateAgreementRequest represents a request to negotiate an installment
// plan against an active debt
type CreateAgreementRequest struct {
	DebtID           string   `json:"debt_id" binding:"required,uuid"`
	Description      string   `json:"description" binding:"required"`
	TotalValue       float64  `json:"total_value" binding:"min=0"`
	InstallmentCount int      `json:"installment_count" binding:"required,min=1"`
	InterestRate     *float64 `json:"interest_rate,omitempty"`
	DiscountRate     *float64 `json:"discount_rate,omitempty"`
	StartDate        string   `json:"start_date" binding:"required"`
	EndDate          string   `json:"end_date,omitempty"`
	Notes            string   `json:"notes"`
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID       string  `json:"id"`
	Sequence int     `json:"sequence"`
	Value    float64 `json:"value"`
	DueDate  string  `json:"due_date"`
	Paid     bool    `json:"paid"`
	PaidAt   string  `json:"paid_at,omitempty"`
	Interest float64 `json:"interest,omitempty"`
	Penalty  float64 `json:"penalty,omitempty"`
}

// AgreementResponse represents an agreement in API responses
type AgreementResponse struct {
	ID               string                `json:"id"`
	DebtID           string                `json:"debt_id"`
	Description      string                `json:"description"`
	TotalValue       float64               `json:"total_value"`
	OriginalValue    float64               `json:"original_value"`
	InstallmentCount int                   `json:"installment_count"`
	InterestRate     *float64              `json:"interest_rate,omitempty"`
	DiscountRate     *float64              `json:"discount_rate,omitempty"`
	StartDate        string                `json:"start_date"`
	EndDate          string                `json:"end_date,omitempty"`
	Notes            string                `json:"notes,omitempty"`
	Savings          float64               `json:"savings"`
	Status           string                `json:"status"`
	Installments     []InstallmentResponse `json:"installments"`
	CreatedAt        string                `json:"created_at"`
}

// TransactionResponse represents a bridged transaction in API responses
type TransactionResponse struct {
	ID            string  `json:"id"`
	AgreementID   string  `json:"agreement_id"`
	InstallmentID string  `json:"installment_id"`
	Description   string  `json:"description"`
	Value         float64 `json:"value"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Direction     string  `json:"direction"`
	CreatedAt     string  `json:"created_at"`
}

// UpcomingInstallmentResponse points at the next installment coming due
type UpcomingInstallmentResponse struct {
	AgreementID string              `json:"agreement_id"`
	Installment InstallmentResponse `json:"installment"`
}

// SummaryResponse represents the owner's dashboard totals
type SummaryResponse struct {
	TotalOutstandingDebt  float64                      `json:"total_outstanding_debt"`
	TotalCommittedToPlans float64                      `json:"total_committed_to_plans"`
	TotalSaved            float64                      `json:"total_saved"`
	NextDueInstallment    *UpcomingInstallmentResponse `json:"next_due_installment,omitempty"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}
