package actions

import (
	"context"

	"github.com/securebanking/core-ledger/internal/storage"
)

// IAction is one unit of ledger work executed inside a single database
// transaction. Perform must either fully succeed or leave nothing behind;
// the operator commits on nil and rolls back on error.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
