package storage

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"

	"github.com/securebanking/core-ledger/internal/storage/account"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

// AccountWriter is the account-side store contract the posting pipeline
// runs against. Declared here so actions can be tested with doubles.
//
//go:generate mockery --name AccountWriter --output mock_AccountWriter.go
type AccountWriter interface {
	EnsureExists(ctx context.Context, accountID string) error
	BalanceForUpdate(ctx context.Context, accountID string) (decimal.Decimal, error)
	SetBalance(ctx context.Context, accountID string, balance decimal.Decimal) (decimal.Decimal, error)
}

// TransactionWriter is the transaction-side store contract.
//
//go:generate mockery --name TransactionWriter --output mock_TransactionWriter.go
type TransactionWriter interface {
	Insert(ctx context.Context, create *transaction.Create) (*transaction.Transaction, error)
}

type Writer struct {
	tx          bob.Tx
	Account     AccountWriter
	Transaction TransactionWriter
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
