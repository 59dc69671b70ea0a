package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/api/middleware"
	"github.com/debtdesk-ledger/internal/api/service"
	"github.com/debtdesk-ledger/internal/domain/debt"
)

// DebtHandler handles HTTP requests for debt ledger operations
type DebtHandler struct {
	debtService service.DebtService
	logger      *slog.Logger
}

// NewDebtHandler creates a new debt handler
func NewDebtHandler(logger *slog.Logger, debtService service.DebtService) *DebtHandler {
	return &DebtHandler{
		debtService: debtService,
		logger:      logger,
	}
}

// Create handles registration of a new debt
func (h *DebtHandler) Create(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	dueDate, err := time.Parse(DateLayout, req.DueDate)
	if err != nil {
		RespondBadRequest(c, "Invalid due_date: expected "+DateLayout)
		return
	}

	input := service.CreateDebtInput{
		Description:   req.Description,
		Creditor:      req.Creditor,
		OriginalValue: req.OriginalValue,
		CurrentValue:  req.CurrentValue,
		DueDate:       dueDate,
		DebtType:      debt.Type(req.DebtType),
		Notes:         req.Notes,
	}

	d, err := h.debtService.CreateDebt(c.Request.Context(), middleware.GetOwnerID(c), input)
	if err != nil {
		if errors.Is(err, debt.ErrEmptyDescription) || errors.Is(err, debt.ErrNegativeValue) || errors.Is(err, debt.ErrInvalidType) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create debt", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapDebtToResponse(d))
}

// GetByID retrieves a debt by its ID, returning 404 if not found
func (h *DebtHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid debt ID")
		return
	}

	d, err := h.debtService.GetDebtByID(c.Request.Context(), id, middleware.GetOwnerID(c))
	if err != nil {
		var notFound debt.ErrDebtNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Debt not found")
			return
		}
		h.logger.Error("Failed to get debt", "debt_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapDebtToResponse(d))
}

// List retrieves all debts of the requesting owner
func (h *DebtHandler) List(c *gin.Context) {
	debts, err := h.debtService.ListDebts(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		h.logger.Error("Failed to list debts", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]DebtResponse, 0, len(debts))
	for _, d := range debts {
		responses = append(responses, mapDebtToResponse(d))
	}

	RespondOK(c, responses)
}

// Update merges the supplied fields into a debt
func (h *DebtHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid debt ID")
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := service.UpdateDebtInput{
		Description:  req.Description,
		Creditor:     req.Creditor,
		CurrentValue: req.CurrentValue,
		Notes:        req.Notes,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(DateLayout, *req.DueDate)
		if err != nil {
			RespondBadRequest(c, "Invalid due_date: expected "+DateLayout)
			return
		}
		input.DueDate = &dueDate
	}

	d, err := h.debtService.UpdateDebt(c.Request.Context(), id, middleware.GetOwnerID(c), input)
	if err != nil {
		var notFound debt.ErrDebtNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Debt not found")
			return
		}
		if errors.Is(err, debt.ErrEmptyDescription) || errors.Is(err, debt.ErrNegativeValue) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update debt", "debt_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapDebtToResponse(d))
}

// Delete removes a debt and any agreement negotiated against it
func (h *DebtHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid debt ID")
		return
	}

	if err := h.debtService.DeleteDebt(c.Request.Context(), id, middleware.GetOwnerID(c)); err != nil {
		var notFound debt.ErrDebtNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Debt not found")
			return
		}
		h.logger.Error("Failed to delete debt", "debt_id", id, "error", err)
		RespondInternalError(c)
		return
	}

	RespondNoContent(c)
}

// mapDebtToResponse maps a debt entity to a debt response DTO
func mapDebtToResponse(d *debt.Debt) DebtResponse {
	resp := DebtResponse{
		ID:            d.ID.String(),
		Description:   d.Description,
		Creditor:      d.Creditor,
		OriginalValue: d.OriginalValue,
		CurrentValue:  d.CurrentValue,
		DueDate:       d.DueDate.Format(DateLayout),
		DebtType:      string(d.DebtType),
		Notes:         d.Notes,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
	if d.SettledAt != nil {
		resp.SettledAt = d.SettledAt.Format(time.RFC3339)
	}
	return resp
}
