package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/api/middleware"
	"github.com/debtdesk-ledger/internal/api/service"
	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
)

// AgreementHandler handles HTTP requests for agreement ledger operations
type AgreementHandler struct {
	agreementService service.AgreementService
	logger           *slog.Logger
}

// NewAgreementHandler creates a new agreement handler
func NewAgreementHandler(logger *slog.Logger, agreementService service.AgreementService) *AgreementHandler {
	return &AgreementHandler{
		agreementService: agreementService,
		logger:           logger,
	}
}

// Create handles negotiation of a new installment plan. Renegotiating a
// debt that is not active returns 409.
func (h *AgreementHandler) Create(c *gin.Context) {
	var req CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	debtID, err := uuid.Parse(req.DebtID)
	if err != nil {
		RespondBadRequest(c, "Invalid debt_id")
		return
	}

	startDate, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		RespondBadRequest(c, "Invalid start_date: expected "+DateLayout)
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(DateLayout, req.EndDate)
		if err != nil {
			RespondBadRequest(c, "Invalid end_date: expected "+DateLayout)
			return
		}
		endDate = &parsed
	}

	input := service.CreateAgreementInput{
		DebtID:           debtID,
		Description:      req.Description,
		TotalValue:       req.TotalValue,
		InstallmentCount: req.InstallmentCount,
		InterestRate:     req.InterestRate,
		DiscountRate:     req.DiscountRate,
		StartDate:        startDate,
		EndDate:          endDate,
		Notes:            req.Notes,
	}

	a, err := h.agreementService.CreateAgreement(c.Request.Context(), middleware.GetOwnerID(c), input, middleware.GetCorrelationID(c))
	if err != nil {
		var debtNotFound debt.ErrDebtNotFound
		switch {
		case errors.As(err, &debtNotFound):
			RespondNotFound(c, "Debt not found")
		case errors.Is(err, debt.ErrNotActive),
			errors.Is(err, agreement.ErrDebtAlreadyNegotiated):
			RespondConflict(c, "Debt already has an active agreement")
		case errors.Is(err, agreement.ErrEmptyDescription),
			errors.Is(err, agreement.ErrInvalidInstallmentCount),
			errors.Is(err, agreement.ErrNegativeTotalValue):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to create agreement", "debt_id", debtID, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapAgreementToResponse(a))
}

// GetByID retrieves an agreement with its installments, returning 404 if not found
func (h *AgreementHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid agreement ID")
		return
	}

	a, err := h.agreementService.GetAgreementByID(c.Request.Context(), id, middleware.GetOwnerID(c))
	if err != nil {
		var notFound agreement.ErrAgreementNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Agreement not found")
			return
		}
		h.logger.Error("Failed to get agreement", "agreement_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAgreementToResponse(a))
}

// List retrieves all agreements of the requesting owner
func (h *AgreementHandler) List(c *gin.Context) {
	agreements, err := h.agreementService.ListAgreements(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		h.logger.Error("Failed to list agreements", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]AgreementResponse, 0, len(agreements))
	for _, a := range agreements {
		responses = append(responses, mapAgreementToResponse(a))
	}

	RespondOK(c, responses)
}

// Delete removes an agreement and restores its debt to the active state
func (h *AgreementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid agreement ID")
		return
	}

	if err := h.agreementService.DeleteAgreement(c.Request.Context(), id, middleware.GetOwnerID(c)); err != nil {
		var notFound agreement.ErrAgreementNotFound
		switch {
		case errors.As(err, &notFound):
			RespondNotFound(c, "Agreement not found")
		case errors.Is(err, agreement.ErrCompleted):
			RespondConflict(c, "Completed agreements cannot be deleted")
		default:
			h.logger.Error("Failed to delete agreement", "agreement_id", id, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondNoContent(c)
}

// ToggleInstallment flips the paid flag of one installment and returns
// the agreement with any cascaded status changes applied
func (h *AgreementHandler) ToggleInstallment(c *gin.Context) {
	agreementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid agreement ID")
		return
	}

	installmentID, err := uuid.Parse(c.Param("installmentId"))
	if err != nil {
		RespondBadRequest(c, "Invalid installment ID")
		return
	}

	a, err := h.agreementService.ToggleInstallmentPaid(c.Request.Context(), agreementID, installmentID, middleware.GetOwnerID(c))
	if err != nil {
		var agreementNotFound agreement.ErrAgreementNotFound
		var installmentNotFound agreement.ErrInstallmentNotFound
		switch {
		case errors.As(err, &agreementNotFound):
			RespondNotFound(c, "Agreement not found")
		case errors.As(err, &installmentNotFound):
			RespondNotFound(c, "Installment not found")
		default:
			h.logger.Error("Failed to toggle installment",
				"agreement_id", agreementID,
				"installment_id", installmentID,
				"error", err,
			)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, mapAgreementToResponse(a))
}

// mapAgreementToResponse maps an agreement entity to a response DTO
func mapAgreementToResponse(a *agreement.Agreement) AgreementResponse {
	installments := make([]InstallmentResponse, 0, len(a.Installments))
	for _, inst := range a.Installments {
		installments = append(installments, mapInstallmentToResponse(inst))
	}

	resp := AgreementResponse{
		ID:               a.ID.String(),
		DebtID:           a.DebtID.String(),
		Description:      a.Description,
		TotalValue:       a.TotalValue,
		OriginalValue:    a.OriginalValue,
		InstallmentCount: a.InstallmentCount,
		InterestRate:     a.InterestRate,
		DiscountRate:     a.DiscountRate,
		StartDate:        a.StartDate.Format(DateLayout),
		Notes:            a.Notes,
		Savings:          a.Savings,
		Status:           string(a.Status),
		Installments:     installments,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
	}
	if a.EndDate != nil {
		resp.EndDate = a.EndDate.Format(DateLayout)
	}
	return resp
}

// mapInstallmentToResponse maps an installment entity to a response DTO
func mapInstallmentToResponse(inst *agreement.Installment) InstallmentResponse {
	resp := InstallmentResponse{
		ID:       inst.ID.String(),
		Sequence: inst.Sequence,
		Value:    inst.Value,
		DueDate:  inst.DueDate.Format(DateLayout),
		Paid:     inst.Paid,
		Interest: inst.Interest,
		Penalty:  inst.Penalty,
	}
	if inst.PaidAt != nil {
		resp.PaidAt = inst.PaidAt.Format(time.RFC3339)
	}
	return resp
}
