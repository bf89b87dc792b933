package account

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves an account row, or nil when it does not exist yet.
// Accounts only come into existence through postings, so absence here just
// means nothing has been posted.
func (r *Reader) FindByID(ctx context.Context, accountID string) (*Account, error) {
	query := psql.Select(
		sm.Columns("account_id", "balance", "created_at"),
		sm.From("accounts"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Account]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
