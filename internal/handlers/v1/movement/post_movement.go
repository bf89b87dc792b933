package movement

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/logging"
	"github.com/securebanking/core-ledger/internal/service"
)

// PostMovementBody is the request body for posting a movement.
type PostMovementBody struct {
	AccountID   string `json:"accountID" required:"true" minLength:"1" doc:"Verified account identifier supplied by the API collaborator"`
	Amount      string `json:"amount" required:"true" doc:"Decimal amount; sign for withdrawals is normalized server-side"`
	Kind        string `json:"kind" required:"true" doc:"deposit, withdrawal or transfer"`
	Description string `json:"description,omitempty" doc:"Free-text description, defaults to 'Transfer'"`
}

// PostMovementInput is the Huma input for posting a movement.
type PostMovementInput struct {
	Body PostMovementBody
}

// PostMovementResponse is the response body for a successful posting.
type PostMovementResponse struct {
	Message     string      `json:"message" doc:"Human-readable confirmation"`
	Transaction Transaction `json:"transaction" doc:"The transaction as committed by the store"`
	Balance     string      `json:"balance" doc:"Resulting account balance"`
}

// PostMovementOutput is the Huma output for posting a movement.
type PostMovementOutput struct {
	Status int
	Body   PostMovementResponse
}

// movementPoster is the interface for posting movements.
type movementPoster interface {
	Post(ctx context.Context, movement ledger.Movement) (*service.PostingResult, error)
}

// PostMovementHandler handles POST /v1/movement.
type PostMovementHandler struct {
	PostingService movementPoster
}

// NewPostMovementHandler creates a new PostMovementHandler.
func NewPostMovementHandler(svc movementPoster) *PostMovementHandler {
	return &PostMovementHandler{PostingService: svc}
}

// Register registers the post movement endpoint with the Huma API.
func (h *PostMovementHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "post-movement",
		Method:      http.MethodPost,
		Path:        "/v1/movement",
		Summary:     "Post a movement",
		Description: "Validates and durably records one monetary movement against the account's balance.",
		Tags:        []string{"Movements"},
	}, h.handle)
}

func (h *PostMovementHandler) handle(ctx context.Context, input *PostMovementInput) (*PostMovementOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("postMovementMs")
	}
	result, err := h.PostingService.Post(ctx, ledger.Movement{
		AccountID:   input.Body.AccountID,
		Amount:      input.Body.Amount,
		Kind:        input.Body.Kind,
		Description: input.Body.Description,
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, mapPostingError(err)
	}

	if logData != nil {
		logData.AddData("transactionID", result.Transaction.ID.String())
		logData.AddData("accountID", result.Transaction.AccountID)
	}

	return &PostMovementOutput{
		Status: http.StatusCreated,
		Body: PostMovementResponse{
			Message: "Movement recorded successfully",
			Transaction: Transaction{
				ID:          result.Transaction.ID.String(),
				AccountID:   result.Transaction.AccountID,
				Amount:      result.Transaction.Amount.String(),
				Kind:        string(result.Transaction.Kind),
				Description: result.Transaction.Description,
				PostedAt:    result.Transaction.PostedAt,
			},
			Balance: result.Balance.String(),
		},
	}, nil
}

// mapPostingError converts the stable error taxonomy into HTTP responses.
// The error kind is the message so callers can branch on it; internal store
// detail never crosses this boundary.
func mapPostingError(err error) error {
	var postingErr *ledger.PostingError
	if !errors.As(err, &postingErr) {
		return huma.NewError(http.StatusInternalServerError, "failed to post movement")
	}

	status := http.StatusInternalServerError
	switch postingErr.Kind {
	case ledger.KindMissingField, ledger.KindInvalidAmount, ledger.KindInvalidKind:
		status = http.StatusBadRequest
	case ledger.KindInsufficientFunds:
		status = http.StatusUnprocessableEntity
	case ledger.KindConflictRetryExhausted, ledger.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
	case ledger.KindNotFoundAfterWrite:
		status = http.StatusInternalServerError
	}

	if postingErr.Details != "" {
		return huma.NewError(status, postingErr.Kind, errors.New(postingErr.Details))
	}
	return huma.NewError(status, postingErr.Kind)
}
