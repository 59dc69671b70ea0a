package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/debtdesk-ledger/internal/api/handler"
	"github.com/debtdesk-ledger/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	corsOrigins []string,
	debtHandler *handler.DebtHandler,
	agreementHandler *handler.AgreementHandler,
	reportHandler *handler.ReportHandler,
	transactionHandler *handler.TransactionHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", middleware.OwnerIDHeader, middleware.CorrelationIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.CorrelationIDHeader},
		AllowCredentials: true,
	}))

	// API v1 endpoints, all scoped to the owner in the X-Owner-ID header
	v1 := r.Group("/api/v1")
	v1.Use(middleware.OwnerScope())
	{
		// Debt ledger operations
		debts := v1.Group("/debts")
		{
			debts.POST("", debtHandler.Create)
			debts.GET("", debtHandler.List)
			debts.GET("/:id", debtHandler.GetByID)
			debts.PATCH("/:id", debtHandler.Update)
			debts.DELETE("/:id", debtHandler.Delete)
		}

		// Agreement ledger operations
		agreements := v1.Group("/agreements")
		{
			agreements.POST("", agreementHandler.Create)
			agreements.GET("", agreementHandler.List)
			agreements.GET("/:id", agreementHandler.GetByID)
			agreements.DELETE("/:id", agreementHandler.Delete)
			agreements.POST("/:id/installments/:installmentId/toggle", agreementHandler.ToggleInstallment)
		}

		// Aggregate reporters
		v1.GET("/reports/summary", reportHandler.Summary)

		// Bridged financial transactions
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.GET("/:id", transactionHandler.GetByID)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
