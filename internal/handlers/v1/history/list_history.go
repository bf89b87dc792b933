package history

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/securebanking/core-ledger/internal/logging"
	"github.com/securebanking/core-ledger/internal/service"
)

// Transaction is the API response model for one history entry. PostedAt is
// rendered in the requested display timezone; when the stored timestamp
// could not be converted it carries the raw stored value and
// timestampConversionFailed is set.
type Transaction struct {
	ID                        string `json:"id" doc:"Transaction UUID"`
	AccountID                 string `json:"accountID" doc:"Opaque account identifier"`
	Amount                    string `json:"amount" doc:"Signed decimal amount"`
	Kind                      string `json:"kind" doc:"deposit, withdrawal or transfer"`
	Description               string `json:"description" doc:"Free-text description"`
	PostedAt                  string `json:"postedAt" doc:"Posting time in the requested display timezone"`
	TimestampConversionFailed bool   `json:"timestampConversionFailed,omitempty" doc:"Set when postedAt is the raw stored value because conversion failed"`
}

// ListHistoryCursor represents a pagination cursor in response bodies.
type ListHistoryCursor struct {
	Position    int    `json:"position" doc:"Numeric offset position for the next page"`
	Limit       int    `json:"limit" doc:"Page size used for this cursor"`
	MaxPostedAt string `json:"maxPostedAt" doc:"Upper bound on posted_at locked in from the first page"`
}

// ListHistoryInput is the Huma input for listing an account's history.
type ListHistoryInput struct {
	AccountID   string `query:"accountID" required:"true" minLength:"1" doc:"Verified account identifier supplied by the API collaborator"`
	Timezone    string `query:"timezone" doc:"IANA timezone for display timestamps, defaults to the server's configured display timezone"`
	Position    int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit       int    `query:"limit" minimum:"1" maximum:"100" doc:"Page size, default 20"`
	MaxPostedAt string `query:"maxPostedAt" doc:"Cursor bound from a previous response's nextCursor"`
}

// ListHistoryResponseBody is the response body for listing history.
type ListHistoryResponseBody struct {
	Transactions []Transaction      `json:"transactions" doc:"Page of transactions, newest first"`
	NextCursor   *ListHistoryCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListHistoryOutput is the Huma output for listing history.
type ListHistoryOutput struct {
	Body ListHistoryResponseBody
}

// historyReader is the interface for reading account history.
type historyReader interface {
	History(ctx context.Context, accountID string, loc *time.Location, cursor *service.HistoryCursor) ([]service.HistoryEntry, *service.HistoryCursor, error)
}

// ListHistoryHandler handles GET /v1/history.
type ListHistoryHandler struct {
	HistoryService  historyReader
	DefaultTimezone string
}

// NewListHistoryHandler creates a new ListHistoryHandler.
func NewListHistoryHandler(svc historyReader, defaultTimezone string) *ListHistoryHandler {
	return &ListHistoryHandler{HistoryService: svc, DefaultTimezone: defaultTimezone}
}

// Register registers the history endpoint with the Huma API.
func (h *ListHistoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-history",
		Method:      http.MethodGet,
		Path:        "/v1/history",
		Summary:     "List account history",
		Description: "Returns the account's transactions newest first, with timestamps in the requested display timezone.",
		Tags:        []string{"History"},
	}, h.handle)
}

// parseListHistoryInput resolves the display timezone and optional cursor.
func (h *ListHistoryHandler) parseListHistoryInput(input *ListHistoryInput) (*time.Location, *service.HistoryCursor, error) {
	timezone := input.Timezone
	if timezone == "" {
		timezone = h.DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid timezone", err)
	}

	if input.Position == 0 && input.Limit == 0 && input.MaxPostedAt == "" {
		return loc, nil, nil
	}

	limit := input.Limit
	if limit == 0 {
		limit = 20
	}

	return loc, &service.HistoryCursor{
		Position:    input.Position,
		Limit:       limit,
		MaxPostedAt: input.MaxPostedAt,
	}, nil
}

func (h *ListHistoryHandler) handle(ctx context.Context, input *ListHistoryInput) (*ListHistoryOutput, error) {
	logData := logging.GetLogData(ctx)

	loc, cursor, err := h.parseListHistoryInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listHistoryMs")
	}
	entries, nextCursor, err := h.HistoryService.History(ctx, input.AccountID, loc, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusServiceUnavailable, "failed to list history")
	}

	if logData != nil {
		logData.AddData("accountID", input.AccountID)
		logData.AddData("transactionCount", len(entries))
	}

	resp := ListHistoryResponseBody{
		Transactions: make([]Transaction, len(entries)),
	}

	for i, entry := range entries {
		resp.Transactions[i] = Transaction{
			ID:                        entry.ID.String(),
			AccountID:                 entry.AccountID,
			Amount:                    entry.Amount.String(),
			Kind:                      string(entry.Kind),
			Description:               entry.Description,
			PostedAt:                  entry.DisplayPostedAt,
			TimestampConversionFailed: entry.ConversionFailed,
		}
	}

	if nextCursor != nil {
		resp.NextCursor = &ListHistoryCursor{
			Position:    nextCursor.Position,
			Limit:       nextCursor.Limit,
			MaxPostedAt: nextCursor.MaxPostedAt,
		}
	}

	return &ListHistoryOutput{Body: resp}, nil
}
