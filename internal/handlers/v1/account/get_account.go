package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/securebanking/core-ledger/internal/logging"
	"github.com/securebanking/core-ledger/internal/service"
)

// Transaction is the API response model for the account's latest transaction.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	AccountID   string `json:"accountID" doc:"Opaque account identifier"`
	Amount      string `json:"amount" doc:"Signed decimal amount"`
	Kind        string `json:"kind" doc:"deposit, withdrawal or transfer"`
	Description string `json:"description" doc:"Free-text description"`
	PostedAt    string `json:"postedAt" doc:"Store-assigned posting timestamp"`
}

// GetAccountInput is the Huma input for reading an account summary.
type GetAccountInput struct {
	AccountID string `query:"accountID" required:"true" minLength:"1" doc:"Verified account identifier supplied by the API collaborator"`
}

// GetAccountResponseBody is the account summary response. An account that has
// never been posted to reports a zero balance with no createdAt or latest
// transaction.
type GetAccountResponseBody struct {
	AccountID         string       `json:"accountID" doc:"Opaque account identifier"`
	Balance           string       `json:"balance" doc:"Current balance, 0 for accounts with no postings"`
	CreatedAt         string       `json:"createdAt,omitempty" doc:"When the account row was created, absent before the first posting"`
	LatestTransaction *Transaction `json:"latestTransaction,omitempty" doc:"The most recent transaction, absent before the first posting"`
}

// GetAccountOutput is the Huma output for reading an account summary.
type GetAccountOutput struct {
	Body GetAccountResponseBody
}

// accountSummarizer is the interface for reading account summaries.
type accountSummarizer interface {
	Summary(ctx context.Context, accountID string) (*service.AccountSummary, error)
}

// GetAccountHandler handles GET /v1/account.
type GetAccountHandler struct {
	AccountService accountSummarizer
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountSummarizer) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the account summary endpoint with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account",
		Summary:     "Get account summary",
		Description: "Returns the account's current balance and most recent transaction.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("getAccountMs")
	}
	summary, err := h.AccountService.Summary(ctx, input.AccountID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusServiceUnavailable, "failed to read account")
	}

	if logData != nil {
		logData.AddData("accountID", input.AccountID)
	}

	resp := GetAccountResponseBody{
		AccountID: summary.AccountID,
		Balance:   summary.Balance.String(),
	}
	if !summary.CreatedAt.IsZero() {
		resp.CreatedAt = summary.CreatedAt.UTC().Format(time.RFC3339)
	}
	if summary.LatestTransaction != nil {
		resp.LatestTransaction = &Transaction{
			ID:          summary.LatestTransaction.ID.String(),
			AccountID:   summary.LatestTransaction.AccountID,
			Amount:      summary.LatestTransaction.Amount.String(),
			Kind:        string(summary.LatestTransaction.Kind),
			Description: summary.LatestTransaction.Description,
			PostedAt:    summary.LatestTransaction.PostedAt,
		}
	}

	return &GetAccountOutput{Body: resp}, nil
}
