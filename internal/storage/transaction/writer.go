package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
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

// Insert writes a new immutable transaction row and returns it as committed
// by the store: the ID is a time-ordered UUIDv7 assigned here, posted_at is
// assigned by the database, and the returned row comes from RETURNING rather
// than being echoed back from the input.
func (w *Writer) Insert(ctx context.Context, create *Create) (*Transaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	query := psql.Insert(
		im.Into("transactions", "transaction_id", "account_id", "amount", "kind", "description"),
		im.Values(psql.Arg(id, create.AccountID, create.Amount, create.Kind, create.Description)),
		im.Returning(columns...),
	)

	row, err := bob.One(ctx, w.exec, query, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
