package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a per-user account row. The balance is mutated only by
// the posting pipeline, inside the same database transaction that records
// the movement.
type Account struct {
	AccountID string          `db:"account_id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}
