package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

const defaultHistoryLimit = 20

// transactionLister is the store-side interface the history reader needs.
type transactionLister interface {
	ListByAccount(ctx context.Context, accountID string, filter *transaction.Filter) ([]*transaction.Transaction, error)
}

// HistoryEntry is one history row prepared for presentation: the committed
// transaction plus its posted time rendered in the requested timezone. When
// the stored timestamp cannot be interpreted, DisplayPostedAt carries the
// raw stored value and ConversionFailed is set instead of the row (or the
// whole listing) being dropped.
type HistoryEntry struct {
	Transaction
	DisplayPostedAt  string
	ConversionFailed bool
}

// HistoryCursor identifies a position in a paginated result set and carries
// the limit and maxPostedAt so subsequent pages are consistent.
type HistoryCursor struct {
	Position    int
	Limit       int
	MaxPostedAt string
}

// HistoryService produces ordered, paginable views of an account's
// transactions. It only ever reads.
type HistoryService struct {
	transactions transactionLister
	logger       *logrus.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(transactions transactionLister, logger *logrus.Logger) *HistoryService {
	return &HistoryService{transactions: transactions, logger: logger}
}

// History returns a page of the account's transactions, newest first, with
// timestamps rendered in loc. Reading twice with no intervening posting
// yields identical sequences.
func (s *HistoryService) History(ctx context.Context, accountID string, loc *time.Location, cursor *HistoryCursor) ([]HistoryEntry, *HistoryCursor, error) {
	limit := defaultHistoryLimit
	offset := 0
	maxPostedAt := ""
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxPostedAt = cursor.MaxPostedAt
	}

	filter := &transaction.Filter{
		Limit:       limit,
		Offset:      offset,
		MaxPostedAt: maxPostedAt,
	}

	rows, err := s.transactions.ListByAccount(ctx, accountID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *HistoryCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxPostedAt := rows[0].PostedAt
		if maxPostedAt != "" {
			cursorMaxPostedAt = maxPostedAt
		}

		nextCursor = &HistoryCursor{
			Position:    offset + limit,
			Limit:       limit,
			MaxPostedAt: cursorMaxPostedAt,
		}
	}

	entries := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = s.toEntry(row, loc)
	}

	return entries, nextCursor, nil
}

func (s *HistoryService) toEntry(row *transaction.Transaction, loc *time.Location) HistoryEntry {
	entry := HistoryEntry{Transaction: fromStorageTransaction(row)}

	postedAt, err := parseStoredTimestamp(row.PostedAt)
	if err != nil {
		// Surface the raw value rather than hiding the whole account's
		// history behind one bad row.
		s.logger.WithFields(logrus.Fields{
			"transactionID": row.ID.String(),
			"postedAt":      row.PostedAt,
		}).Warn("HistoryService.History.unparsable stored timestamp")
		entry.DisplayPostedAt = row.PostedAt
		entry.ConversionFailed = true
		return entry
	}

	entry.DisplayPostedAt = postedAt.In(loc).Format(time.RFC3339)
	return entry
}

// parseStoredTimestamp accepts the formats the store has historically
// produced for posted_at.
func parseStoredTimestamp(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05.999999999-07", raw)
}
