package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/debtdesk-ledger/internal/domain/transaction"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Save(ctx context.Context, txn *transaction.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func sampleTransaction(ownerID uuid.UUID) *transaction.Transaction {
	return &transaction.Transaction{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AgreementID:   uuid.New(),
		InstallmentID: uuid.New(),
		Description:   "Installment 1/3 - Credit card balance",
		Value:         300,
		Category:      transaction.CategoryBillsPayable,
		Date:          time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Direction:     transaction.DirectionOutflow,
		CreatedAt:     time.Now(),
	}
}

func TestTransactionServiceImpl_GetTransactionByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		expected := sampleTransaction(uuid.New())
		mockRepo.On("GetByID", ctx, expected.ID).Return(expected, nil).Once()

		txn, err := svc.GetTransactionByID(ctx, expected.ID)

		require.NoError(t, err)
		assert.Equal(t, expected, txn)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFoundReturnsNil", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		txnID := uuid.New()
		mockRepo.On("GetByID", ctx, txnID).Return(nil, transaction.ErrTransactionNotFound{TransactionID: txnID}).Once()

		txn, err := svc.GetTransactionByID(ctx, txnID)

		assert.NoError(t, err)
		assert.Nil(t, txn)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		txnID := uuid.New()
		repoErr := errors.New("database error")
		mockRepo.On("GetByID", ctx, txnID).Return(nil, repoErr).Once()

		txn, err := svc.GetTransactionByID(ctx, txnID)

		assert.Nil(t, txn)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestTransactionServiceImpl_ListTransactions(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		expected := []*transaction.Transaction{sampleTransaction(ownerID), sampleTransaction(ownerID)}
		// Page 2 at 10 per page translates to offset 10.
		mockRepo.On("ListByOwner", ctx, ownerID, 10, 10).Return(expected, nil).Once()
		mockRepo.On("CountByOwner", ctx, ownerID).Return(int64(12), nil).Once()

		txns, total, err := svc.ListTransactions(ctx, ownerID, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, expected, txns)
		assert.Equal(t, int64(12), total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("ListError", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		repoErr := errors.New("database error")
		mockRepo.On("ListByOwner", ctx, ownerID, 10, 0).Return(nil, repoErr).Once()

		txns, total, err := svc.ListTransactions(ctx, ownerID, 1, 10)

		assert.Nil(t, txns)
		assert.Zero(t, total)
		assert.ErrorIs(t, err, repoErr)
		mockRepo.AssertNotCalled(t, "CountByOwner", mock.Anything, mock.Anything)
	})

	t.Run("CountError", func(t *testing.T) {
		mockRepo := new(MockTransactionRepository)
		svc := NewTransactionService(newTestLogger(), mockRepo)

		repoErr := errors.New("database error")
		mockRepo.On("ListByOwner", ctx, ownerID, 10, 0).Return([]*transaction.Transaction{}, nil).Once()
		mockRepo.On("CountByOwner", ctx, ownerID).Return(int64(0), repoErr).Once()

		txns, total, err := svc.ListTransactions(ctx, ownerID, 1, 10)

		assert.Nil(t, txns)
		assert.Zero(t, total)
		assert.ErrorIs(t, err, repoErr)
	})
}
