package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/debtdesk-ledger/internal/api/middleware"
	"github.com/debtdesk-ledger/internal/api/service"
	"github.com/debtdesk-ledger/internal/domain/report"
)

// ReportHandler handles HTTP requests for the aggregate dashboard figures
type ReportHandler struct {
	reportService service.ReportService
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(logger *slog.Logger, reportService service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Summary returns the owner's derived totals, recomputed on every call
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.GetSummary(c.Request.Context(), middleware.GetOwnerID(c))
	if err != nil {
		h.logger.Error("Failed to compute summary", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapSummaryToResponse(summary))
}

// mapSummaryToResponse maps a report summary to a response DTO
func mapSummaryToResponse(s *report.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalOutstandingDebt:  s.TotalOutstandingDebt,
		TotalCommittedToPlans: s.TotalCommittedToPlans,
		TotalSaved:            s.TotalSaved,
	}
	if s.NextDueInstallment != nil {
		resp.NextDueInstallment = &UpcomingInstallmentResponse{
			AgreementID: s.NextDueInstallment.AgreementID.String(),
			Installment: mapInstallmentToResponse(s.NextDueInstallment.Installment),
		}
	}
	return resp
}
