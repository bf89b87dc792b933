package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/operator/actions"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func newTestPostingService(t *testing.T) (*PostingService, *mockProcessor) {
	t.Helper()
	processor := new(mockProcessor)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewPostingService(processor, logger, 2, time.Second), processor
}

func depositMovement(amount string) ledger.Movement {
	return ledger.Movement{AccountID: "user-123", Amount: amount, Kind: "deposit"}
}

func TestPost_Success(t *testing.T) {
	svc, processor := newTestPostingService(t)

	committedRow := &transaction.Transaction{
		ID:          uuid.Must(uuid.NewV7()),
		AccountID:   "user-123",
		Amount:      decimal.RequireFromString("25.50"),
		Kind:        "deposit",
		Description: "Paycheck",
		PostedAt:    "2025-06-01T12:00:00.000000Z",
	}

	processor.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.PostMovement)
			action.Result = actions.PostMovementResult{
				Transaction: committedRow,
				Balance:     decimal.RequireFromString("25.50"),
			}
		}).Return(nil).Once()

	result, err := svc.Post(context.Background(), ledger.Movement{
		AccountID:   "user-123",
		Amount:      "25.50",
		Kind:        "deposit",
		Description: "Paycheck",
	})

	assert.NoError(t, err)
	assert.Equal(t, committedRow.ID, result.Transaction.ID)
	assert.True(t, result.Transaction.Amount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, ledger.KindDeposit, result.Transaction.Kind)
	assert.Equal(t, "Paycheck", result.Transaction.Description)
	assert.True(t, result.Balance.Equal(decimal.RequireFromString("25.50")))
	processor.AssertExpectations(t)
}

func TestPost_ValidationFailureSkipsStore(t *testing.T) {
	svc, processor := newTestPostingService(t)

	for _, movement := range []ledger.Movement{
		depositMovement("abc"),
		depositMovement("0"),
		{AccountID: "user-123", Amount: "5", Kind: "withdrawl"},
		{Amount: "5", Kind: "deposit"},
	} {
		_, err := svc.Post(context.Background(), movement)
		assert.Error(t, err)
		assert.True(t, ledger.IsValidation(err), "expected validation error for %+v", movement)
	}

	processor.AssertNotCalled(t, "Process")
}

func TestPost_InsufficientFundsNotRetried(t *testing.T) {
	svc, processor := newTestPostingService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(ledger.ErrInsufficientFunds).Once()

	_, err := svc.Post(context.Background(), ledger.Movement{
		AccountID: "user-123", Amount: "150.00", Kind: "withdrawal",
	})

	assert.True(t, ledger.IsKind(err, ledger.KindInsufficientFunds))
	processor.AssertNumberOfCalls(t, "Process", 1)
}

func TestPost_SerializationConflictRetriedThenSucceeds(t *testing.T) {
	svc, processor := newTestPostingService(t)

	conflict := &pq.Error{Code: "40001"}
	processor.On("Process", mock.Anything, mock.Anything).Return(conflict).Once()
	processor.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			action := args.Get(1).(*actions.PostMovement)
			action.Result = actions.PostMovementResult{
				Transaction: &transaction.Transaction{ID: uuid.Must(uuid.NewV7())},
				Balance:     decimal.RequireFromString("5.00"),
			}
		}).Return(nil).Once()

	result, err := svc.Post(context.Background(), depositMovement("5.00"))

	assert.NoError(t, err)
	assert.True(t, result.Balance.Equal(decimal.RequireFromString("5.00")))
	processor.AssertNumberOfCalls(t, "Process", 2)
}

func TestPost_ConflictRetriesExhausted(t *testing.T) {
	svc, processor := newTestPostingService(t)

	deadlock := &pq.Error{Code: "40P01"}
	processor.On("Process", mock.Anything, mock.Anything).Return(deadlock)

	_, err := svc.Post(context.Background(), depositMovement("5.00"))

	assert.True(t, ledger.IsKind(err, ledger.KindConflictRetryExhausted))
	// initial attempt plus the configured retries
	processor.AssertNumberOfCalls(t, "Process", 3)
}

func TestPost_StoreTimeout(t *testing.T) {
	svc, processor := newTestPostingService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded).Once()

	_, err := svc.Post(context.Background(), depositMovement("5.00"))

	assert.True(t, ledger.IsKind(err, ledger.KindStoreUnavailable))
}

func TestPost_UnknownStoreErrorNotLeaked(t *testing.T) {
	svc, processor := newTestPostingService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(errors.New("pq: password authentication failed for user")).Once()

	_, err := svc.Post(context.Background(), depositMovement("5.00"))

	assert.True(t, ledger.IsKind(err, ledger.KindStoreUnavailable))
	assert.NotContains(t, err.Error(), "password")
}

func TestPost_CallerCancellation(t *testing.T) {
	svc, processor := newTestPostingService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor.On("Process", mock.Anything, mock.Anything).
		Return(context.Canceled).Maybe()

	_, err := svc.Post(ctx, depositMovement("5.00"))

	assert.ErrorIs(t, err, context.Canceled)
}
