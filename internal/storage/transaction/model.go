package transaction

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents a committed transaction record. PostedAt is the
// canonical stored timestamp as text (RFC3339Nano, UTC); display conversion
// happens in the history service so a malformed value degrades a single row
// instead of the whole listing.
type Transaction struct {
	ID          uuid.UUID       `db:"transaction_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Kind        string          `db:"kind"`
	Description string          `db:"description"`
	PostedAt    string          `db:"posted_at"`
}

// Create is the input for inserting a new transaction. The store assigns
// the ID and posted_at.
type Create struct {
	AccountID   string
	Amount      decimal.Decimal
	Kind        string
	Description string
}

// Filter narrows a listing. MaxPostedAt pins the upper bound so later pages
// are not shifted by rows posted after the first page was read.
type Filter struct {
	Limit       int
	Offset      int
	MaxPostedAt string
}
