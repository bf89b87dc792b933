package account

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	exec bob.Executor
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

// EnsureExists creates the account row with a zero balance if it is missing.
// Running this before BalanceForUpdate guarantees there is always a row to
// lock, which is what makes first-posting races safe.
func (w *Writer) EnsureExists(ctx context.Context, accountID string) error {
	query := psql.Insert(
		im.Into("accounts", "account_id", "balance"),
		im.Values(psql.Arg(accountID, decimal.Zero)),
		im.OnConflict("account_id").DoNothing(),
	)

	_, err := bob.Exec(ctx, w.exec, query)
	return err
}

// BalanceForUpdate reads the balance under a row lock. The lock is held
// until the surrounding transaction commits or rolls back, serializing
// concurrent postings for the same account.
func (w *Writer) BalanceForUpdate(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := psql.Select(
		sm.Columns("balance"),
		sm.From("accounts"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.ForUpdate(),
	)

	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[decimal.Decimal])
}

// SetBalance writes the new balance and returns the value the store now
// holds. sql.ErrNoRows here means the row vanished mid-transaction, which
// the caller treats as a consistency failure.
func (w *Writer) SetBalance(ctx context.Context, accountID string, balance decimal.Decimal) (decimal.Decimal, error) {
	query := psql.Update(
		um.Table("accounts"),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		um.Returning("balance"),
	)

	return bob.One(ctx, w.exec, query, scan.SingleColumnMapper[decimal.Decimal])
}
