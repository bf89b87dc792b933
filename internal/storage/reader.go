package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/securebanking/core-ledger/internal/storage/account"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Transactions *transaction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
	}
}
