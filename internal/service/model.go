package service

import (
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/storage/transaction"
)

// Transaction represents a committed transaction in the service layer.
// PostedAt is the canonical stored timestamp string; only history listings
// render it in a display timezone.
type Transaction struct {
	ID          uuid.UUID
	AccountID   string
	Amount      decimal.Decimal
	Kind        ledger.Kind
	Description string
	PostedAt    string
}

// PostingResult is the post-commit view returned to the caller: the
// transaction as the store recorded it and the balance it produced.
type PostingResult struct {
	Transaction Transaction
	Balance     decimal.Decimal
}

func fromStorageTransaction(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		Amount:      row.Amount,
		Kind:        ledger.Kind(row.Kind),
		Description: row.Description,
		PostedAt:    row.PostedAt,
	}
}
