package movement

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/service"
)

type mockPostingService struct {
	mock.Mock
}

func (m *mockPostingService) Post(ctx context.Context, movement ledger.Movement) (*service.PostingResult, error) {
	args := m.Called(ctx, movement)
	result, _ := args.Get(0).(*service.PostingResult)
	return result, args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc movementPoster) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewPostMovementHandler(svc).Register(api)
	return api
}

func TestHTTP_PostMovement_Success(t *testing.T) {
	txID := uuid.Must(uuid.NewV7())

	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.MatchedBy(func(m ledger.Movement) bool {
		return m.AccountID == "user-123" &&
			m.Amount == "25.50" &&
			m.Kind == "deposit" &&
			m.Description == "Paycheck"
	})).Return(&service.PostingResult{
		Transaction: service.Transaction{
			ID:          txID,
			AccountID:   "user-123",
			Amount:      decimal.RequireFromString("25.50"),
			Kind:        ledger.KindDeposit,
			Description: "Paycheck",
			PostedAt:    "2025-06-01T12:00:00Z",
		},
		Balance: decimal.RequireFromString("125.50"),
	}, nil)

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID:   "user-123",
		Amount:      "25.50",
		Kind:        "deposit",
		Description: "Paycheck",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body PostMovementResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, txID.String(), body.Transaction.ID)
	assert.Equal(t, "user-123", body.Transaction.AccountID)
	assert.Equal(t, "25.5", body.Transaction.Amount)
	assert.Equal(t, "deposit", body.Transaction.Kind)
	assert.Equal(t, "125.5", body.Balance)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_PostMovement_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockPostingService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newTestAPI(t, mockSvc).Post("/v1/movement", map[string]any{
		"accountID": "user-123",
		// Amount and Kind omitted
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Post")
}

func TestHTTP_PostMovement_ValidationError(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, ledger.NewValidationError(ledger.KindInvalidAmount, "amount is not a valid decimal"))

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "not-a-decimal",
		Kind:      "deposit",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), ledger.KindInvalidAmount)
}

func TestHTTP_PostMovement_InvalidKind(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, ledger.NewValidationError(ledger.KindInvalidKind, "unknown kind"))

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "5.00",
		Kind:      "withdrawl",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), ledger.KindInvalidKind)
}

func TestHTTP_PostMovement_InsufficientFunds(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, ledger.ErrInsufficientFunds)

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "150.00",
		Kind:      "withdrawal",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), ledger.KindInsufficientFunds)
}

func TestHTTP_PostMovement_ConflictRetryExhausted(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, &ledger.PostingError{Kind: ledger.KindConflictRetryExhausted})

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "5.00",
		Kind:      "deposit",
	})

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), ledger.KindConflictRetryExhausted)
}

func TestHTTP_PostMovement_StoreUnavailable(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, &ledger.PostingError{Kind: ledger.KindStoreUnavailable})

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "5.00",
		Kind:      "deposit",
	})

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestHTTP_PostMovement_NotFoundAfterWrite(t *testing.T) {
	mockSvc := new(mockPostingService)
	mockSvc.On("Post", mock.Anything, mock.Anything).
		Return(nil, ledger.ErrNotFoundAfterWrite)

	resp := newTestAPI(t, mockSvc).Post("/v1/movement", PostMovementBody{
		AccountID: "user-123",
		Amount:    "5.00",
		Kind:      "deposit",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
