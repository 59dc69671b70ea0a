package components

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/debtdesk-ledger/internal/config"
	"github.com/debtdesk-ledger/internal/dispatcher/service"
	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// CreateProcessingService creates a new ProcessingService with all its dependencies.
func CreateProcessingService(
	transactionRepo transaction.Repository,
	redisClient *redis.Client,
	logger *slog.Logger,
	cfg *config.Config,
) service.ProcessingService {
	validator := NewTransactionValidator(logger)
	dupChecker := NewDuplicateChecker(redisClient, cfg.Redis.DedupeTTL, logger)
	storeWriter := NewStoreWriter(transactionRepo, logger)

	baseService := service.NewProcessingService(
		validator,
		dupChecker,
		storeWriter,
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolProcessingService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool processing service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
