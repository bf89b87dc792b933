package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/securebanking/core-ledger/internal/storage/account"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

// accountFinder is the account-side read contract the summary needs.
type accountFinder interface {
	FindByID(ctx context.Context, accountID string) (*account.Account, error)
}

// latestTransactionFinder returns an account's most recent transaction.
type latestTransactionFinder interface {
	LatestByAccount(ctx context.Context, accountID string) (*transaction.Transaction, error)
}

// AccountSummary is the current state of an account: its balance and the
// transaction that last moved it. An account that has never been posted to
// reports a zero balance, a zero CreatedAt and no latest transaction.
type AccountSummary struct {
	AccountID         string
	Balance           decimal.Decimal
	CreatedAt         time.Time
	LatestTransaction *Transaction
}

// AccountService serves account-level reads. Accounts come into existence
// through postings, so there is no create here.
type AccountService struct {
	accounts     accountFinder
	transactions latestTransactionFinder
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts accountFinder, transactions latestTransactionFinder) *AccountService {
	return &AccountService{accounts: accounts, transactions: transactions}
}

// Summary returns the account's balance and most recent transaction.
func (s *AccountService) Summary(ctx context.Context, accountID string) (*AccountSummary, error) {
	summary := &AccountSummary{
		AccountID: accountID,
		Balance:   decimal.Zero,
	}

	row, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return summary, nil
	}

	summary.Balance = row.Balance
	summary.CreatedAt = row.CreatedAt

	latest, err := s.transactions.LatestByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		converted := fromStorageTransaction(latest)
		summary.LatestTransaction = &converted
	}

	return summary, nil
}
