package actions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/storage"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

// PostMovementResult is what the store durably committed: the inserted row
// as returned by the database and the balance it now holds.
type PostMovementResult struct {
	Transaction *transaction.Transaction
	Balance     decimal.Decimal
}

// PostMovement records one validated movement against an account. The whole
// sequence runs in the writer's transaction with the account row locked, so
// concurrent postings for the same account serialize and the ledger
// invariant (balance == sum of transaction amounts) holds at commit.
type PostMovement struct {
	Movement ledger.ValidatedMovement

	Result PostMovementResult
}

func (p *PostMovement) Perform(ctx context.Context, writer *storage.Writer) error {
	accountID := p.Movement.AccountID

	// Accounts come into existence on first posting. Inserting the zero row
	// first means BalanceForUpdate always has a row to lock.
	if err := writer.Account.EnsureExists(ctx, accountID); err != nil {
		return err
	}

	balance, err := writer.Account.BalanceForUpdate(ctx, accountID)
	if err != nil {
		return err
	}

	newBalance := balance.Add(p.Movement.Amount)
	if p.Movement.Amount.IsNegative() && newBalance.IsNegative() {
		return ledger.ErrInsufficientFunds
	}

	row, err := writer.Transaction.Insert(ctx, &transaction.Create{
		AccountID:   accountID,
		Amount:      p.Movement.Amount,
		Kind:        string(p.Movement.Kind),
		Description: p.Movement.Description,
	})
	if err != nil {
		return err
	}
	if row == nil {
		return ledger.ErrNotFoundAfterWrite
	}

	committedBalance, err := writer.Account.SetBalance(ctx, accountID, newBalance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.ErrNotFoundAfterWrite
		}
		return err
	}

	p.Result = PostMovementResult{
		Transaction: row,
		Balance:     committedBalance,
	}
	return nil
}
