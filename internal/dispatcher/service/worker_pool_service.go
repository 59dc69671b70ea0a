package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// WorkerPoolProcessingService fans dispatches out over an ants pool
// while keeping the caller synchronous: ProcessTransaction blocks until
// its own dispatch finishes, so the Kafka offset is only committed for
// work that actually landed.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger

	// mu guards results
	mu      sync.Mutex
	results map[string]chan error
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan error),
	}, nil
}

// ProcessTransaction submits a transaction to the worker pool and waits
// for its result.
func (s *WorkerPoolProcessingService) ProcessTransaction(ctx context.Context, txn *transaction.Transaction) error {
	logger := s.logger
	if txn.CorrelationID != "" {
		logger = s.logger.With("correlation_id", txn.CorrelationID)
	}

	logger.Info("Submitting transaction to worker pool",
		"transaction_id", txn.ID.String(),
		"agreement_id", txn.AgreementID.String(),
	)

	resultChan := make(chan error, 1)
	transactionID := txn.ID.String()

	s.mu.Lock()
	s.results[transactionID] = resultChan
	s.mu.Unlock()

	// The worker gets its own copy; the caller's transaction stays
	// untouched while the dispatch runs
	txnCopy := *txn

	err := s.pool.Submit(func() {
		dispatchErr := s.baseService.ProcessTransaction(ctx, &txnCopy)
		resultChan <- dispatchErr

		s.mu.Lock()
		delete(s.results, transactionID)
		close(resultChan)
		s.mu.Unlock()
	})
	if err != nil {
		s.mu.Lock()
		delete(s.results, transactionID)
		close(resultChan)
		s.mu.Unlock()

		logger.Error("Failed to submit transaction to worker pool",
			"transaction_id", txn.ID.String(),
			"error", err,
		)
		return err
	}

	return <-resultChan
}

// Shutdown releases the pool. In-flight workers finish first.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
