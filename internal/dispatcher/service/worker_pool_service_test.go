package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

// MockProcessingService mocks the ProcessingService interface
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) ProcessTransaction(ctx context.Context, txn *transaction.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func TestWorkerPoolProcessingService_ProcessTransaction(t *testing.T) {
	logger := slog.Default()
	txn := newBridgeTransaction()

	tests := []struct {
		name          string
		processErr    error
		expectedError error
	}{
		{
			name:          "successful dispatch",
			processErr:    nil,
			expectedError: nil,
		},
		{
			name:          "dispatch error",
			processErr:    errors.New("dispatch error"),
			expectedError: errors.New("dispatch error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockBaseService := &MockProcessingService{}
			workerPoolService, err := NewWorkerPoolProcessingService(
				mockBaseService,
				WorkerPoolConfig{Size: 2},
				logger,
			)
			assert.NoError(t, err)
			defer workerPoolService.Shutdown()

			mockBaseService.On("ProcessTransaction", mock.Anything, txn).Return(tt.processErr).Once()

			err = workerPoolService.ProcessTransaction(context.Background(), txn)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			mockBaseService.AssertExpectations(t)
		})
	}
}

func TestWorkerPoolProcessingService_Concurrency(t *testing.T) {
	mockBaseService := &MockProcessingService{}
	logger := slog.Default()

	workerPoolService, err := NewWorkerPoolProcessingService(
		mockBaseService,
		WorkerPoolConfig{Size: 5},
		logger,
	)
	assert.NoError(t, err)
	defer workerPoolService.Shutdown()

	var mu sync.Mutex
	counter := 0

	mockBaseService.On("ProcessTransaction", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(10 * time.Millisecond)

		mu.Lock()
		counter++
		mu.Unlock()
	}).Return(nil)

	numTransactions := 10
	var wg sync.WaitGroup
	wg.Add(numTransactions)

	for i := 0; i < numTransactions; i++ {
		go func() {
			defer wg.Done()

			txn := newBridgeTransaction()
			txn.InstallmentID = uuid.New()

			err := workerPoolService.ProcessTransaction(context.Background(), txn)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, numTransactions, counter)
	assert.Equal(t, 5, workerPoolService.Capacity())
}
