package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/debtdesk-ledger/internal/api/service"
	"github.com/debtdesk-ledger/internal/domain/agreement"
	"github.com/debtdesk-ledger/internal/domain/debt"
)

type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) CreateAgreement(ctx context.Context, ownerID uuid.UUID, input service.CreateAgreementInput, correlationID string) (*agreement.Agreement, error) {
	args := m.Called(ctx, ownerID, input, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agreement.Agreement), args.Error(1)
}

func (m *MockAgreementService) GetAgreementByID(ctx context.Context, id, ownerID uuid.UUID) (*agreement.Agreement, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agreement.Agreement), args.Error(1)
}

func (m *MockAgreementService) ListAgreements(ctx context.Context, ownerID uuid.UUID) ([]*agreement.Agreement, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agreement.Agreement), args.Error(1)
}

func (m *MockAgreementService) DeleteAgreement(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockAgreementService) ToggleInstallmentPaid(ctx context.Context, agreementID, installmentID, ownerID uuid.UUID) (*agreement.Agreement, error) {
	args := m.Called(ctx, agreementID, installmentID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agreement.Agreement), args.Error(1)
}

func testAgreement(t *testing.T, ownerID uuid.UUID) *agreement.Agreement {
	t.Helper()
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	a, err := agreement.New(ownerID, uuid.New(), "Card settlement plan", 900, 1500, 3, nil, nil, start, nil, "")
	require.NoError(t, err)
	return a
}

func TestAgreementHandler_Create(t *testing.T) {
	logger := newHandlerTestLogger()
	ownerID := uuid.New()

	validBody := func(debtID uuid.UUID) []byte {
		body, _ := json.Marshal(CreateAgreementRequest{
			DebtID:           debtID.String(),
			Description:      "Card settlement plan",
			TotalValue:       900,
			InstallmentCount: 3,
			StartDate:        "2026-03-10",
		})
		return body
	}

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		expected := testAgreement(t, ownerID)
		mockService.On("CreateAgreement", mock.Anything, ownerID, mock.AnythingOfType("service.CreateAgreementInput"), mock.AnythingOfType("string")).Return(expected, nil)

		router := setupTestRouter(ownerID)
		router.POST("/agreements", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/agreements", bytes.NewBuffer(validBody(expected.DebtID)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		got := decodeData[AgreementResponse](t, rr.Body.Bytes())
		assert.Equal(t, expected.ID.String(), got.ID)
		assert.Equal(t, float64(600), got.Savings)
		assert.Len(t, got.Installments, 3)
		mockService.AssertExpectations(t)
	})

	t.Run("DebtNotFound", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		debtID := uuid.New()
		mockService.On("CreateAgreement", mock.Anything, ownerID, mock.AnythingOfType("service.CreateAgreementInput"), mock.AnythingOfType("string")).Return(nil, debt.ErrDebtNotFound{DebtID: debtID})

		router := setupTestRouter(ownerID)
		router.POST("/agreements", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/agreements", bytes.NewBuffer(validBody(debtID)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("DebtNotActive", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		mockService.On("CreateAgreement", mock.Anything, ownerID, mock.AnythingOfType("service.CreateAgreementInput"), mock.AnythingOfType("string")).Return(nil, debt.ErrNotActive)

		router := setupTestRouter(ownerID)
		router.POST("/agreements", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/agreements", bytes.NewBuffer(validBody(uuid.New())))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("DebtAlreadyHasAgreement", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		mockService.On("CreateAgreement", mock.Anything, ownerID, mock.AnythingOfType("service.CreateAgreementInput"), mock.AnythingOfType("string")).Return(nil, agreement.ErrDebtAlreadyNegotiated)

		router := setupTestRouter(ownerID)
		router.POST("/agreements", h.Create)

		req, _ := http.NewRequest(http.MethodPost, "/agreements", bytes.NewBuffer(validBody(uuid.New())))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("ZeroInstallments", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		router := setupTestRouter(ownerID)
		router.POST("/agreements", h.Create)

		body, _ := json.Marshal(CreateAgreementRequest{
			DebtID:           uuid.New().String(),
			Description:      "Plan",
			TotalValue:       900,
			InstallmentCount: 0,
			StartDate:        "2026-03-10",
		})
		req, _ := http.NewRequest(http.MethodPost, "/agreements", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "CreateAgreement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAgreementHandler_GetByID(t *testing.T) {
	logger := newHandlerTestLogger()
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		expected := testAgreement(t, ownerID)
		mockService.On("GetAgreementByID", mock.Anything, expected.ID, ownerID).Return(expected, nil)

		router := setupTestRouter(ownerID)
		router.GET("/agreements/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/agreements/"+expected.ID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		got := decodeData[AgreementResponse](t, rr.Body.Bytes())
		assert.Equal(t, expected.ID.String(), got.ID)
		assert.Equal(t, "2026-03-10", got.StartDate)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		agreementID := uuid.New()
		mockService.On("GetAgreementByID", mock.Anything, agreementID, ownerID).Return(nil, agreement.ErrAgreementNotFound{AgreementID: agreementID})

		router := setupTestRouter(ownerID)
		router.GET("/agreements/:id", h.GetByID)

		req, _ := http.NewRequest(http.MethodGet, "/agreements/"+agreementID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAgreementHandler_Delete(t *testing.T) {
	logger := newHandlerTestLogger()
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		agreementID := uuid.New()
		mockService.On("DeleteAgreement", mock.Anything, agreementID, ownerID).Return(nil)

		router := setupTestRouter(ownerID)
		router.DELETE("/agreements/:id", h.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/agreements/"+agreementID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("CompletedAgreement", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		agreementID := uuid.New()
		mockService.On("DeleteAgreement", mock.Anything, agreementID, ownerID).Return(agreement.ErrCompleted)

		router := setupTestRouter(ownerID)
		router.DELETE("/agreements/:id", h.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/agreements/"+agreementID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "CONFLICT", resp.Error.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		agreementID := uuid.New()
		mockService.On("DeleteAgreement", mock.Anything, agreementID, ownerID).Return(agreement.ErrAgreementNotFound{AgreementID: agreementID})

		router := setupTestRouter(ownerID)
		router.DELETE("/agreements/:id", h.Delete)

		req, _ := http.NewRequest(http.MethodDelete, "/agreements/"+agreementID.String(), nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAgreementHandler_ToggleInstallment(t *testing.T) {
	logger := newHandlerTestLogger()
	ownerID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		a := testAgreement(t, ownerID)
		target := a.Installments[0]
		target.MarkPaid(time.Now())
		mockService.On("ToggleInstallmentPaid", mock.Anything, a.ID, target.ID, ownerID).Return(a, nil)

		router := setupTestRouter(ownerID)
		router.POST("/agreements/:id/installments/:installmentId/toggle", h.ToggleInstallment)

		req, _ := http.NewRequest(http.MethodPost, "/agreements/"+a.ID.String()+"/installments/"+target.ID.String()+"/toggle", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		got := decodeData[AgreementResponse](t, rr.Body.Bytes())
		assert.True(t, got.Installments[0].Paid)
		mockService.AssertExpectations(t)
	})

	t.Run("InstallmentNotFound", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		agreementID := uuid.New()
		installmentID := uuid.New()
		mockService.On("ToggleInstallmentPaid", mock.Anything, agreementID, installmentID, ownerID).Return(nil, agreement.ErrInstallmentNotFound{InstallmentID: installmentID})

		router := setupTestRouter(ownerID)
		router.POST("/agreements/:id/installments/:installmentId/toggle", h.ToggleInstallment)

		req, _ := http.NewRequest(http.MethodPost, "/agreements/"+agreementID.String()+"/installments/"+installmentID.String()+"/toggle", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("InvalidInstallmentID", func(t *testing.T) {
		mockService := new(MockAgreementService)
		h := NewAgreementHandler(logger, mockService)

		router := setupTestRouter(ownerID)
		router.POST("/agreements/:id/installments/:installmentId/toggle", h.ToggleInstallment)

		req, _ := http.NewRequest(http.MethodPost, "/agreements/"+uuid.New().String()+"/installments/not-a-uuid/toggle", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "ToggleInstallmentPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
