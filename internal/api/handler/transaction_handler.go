package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/debtdesk-ledger/internal/api/middleware"
	"github.com/debtdesk-ledger/internal/api/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// TransactionHandler handles HTTP requests over the bridged
// financial-transactions store
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// GetByID retrieves a bridged transaction by its ID, returning 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transaction", "transaction_id", id, "error", err)
		RespondInternalError(c)
		return
	}
	if txn == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapTransactionToResponse(txn))
}

// List retrieves a paginated list of bridged transactions for the owner
func (h *TransactionHandler) List(c *gin.Context) {
	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	txns, total, err := h.transactionService.ListTransactions(c.Request.Context(), middleware.GetOwnerID(c), params.Page, params.PerPage)
	if err != nil {
		h.logger.Error("Failed to list transactions", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, mapTransactionToResponse(txn))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, params.Page, params.PerPage, int(total))
}

// mapTransactionToResponse maps a transaction entity to a response DTO
func mapTransactionToResponse(txn *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID.String(),
		AgreementID:   txn.AgreementID.String(),
		InstallmentID: txn.InstallmentID.String(),
		Description:   txn.Description,
		Value:         txn.Value,
		Category:      txn.Category,
		Date:          txn.Date.Format(DateLayout),
		Direction:     txn.Direction,
		CreatedAt:     txn.CreatedAt.Format(time.RFC3339),
	}
}
