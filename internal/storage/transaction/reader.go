package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"transaction_id", "account_id", "amount", "kind", "description", "posted_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// ListByAccount returns an account's transactions newest first. When a limit
// is set, one extra row is fetched so the caller can detect a next page.
// Ties on posted_at break on transaction_id, which is time-ordered (UUIDv7),
// so the order is total and repeatable.
func (r *Reader) ListByAccount(ctx context.Context, accountID string, filter *Filter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.OrderBy("posted_at").Desc(),
		sm.OrderBy("transaction_id").Desc(),
	}

	if filter != nil {
		if filter.MaxPostedAt != "" {
			queryMods = append(queryMods, sm.Where(psql.Quote("posted_at").LTE(psql.Arg(filter.MaxPostedAt))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// LatestByAccount returns the most recent transaction, or nil when the
// account has none.
func (r *Reader) LatestByAccount(ctx context.Context, accountID string) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.OrderBy("posted_at").Desc(),
		sm.OrderBy("transaction_id").Desc(),
		sm.Limit(1),
	)

	row, err := bob.One(ctx, r.exec, query, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
