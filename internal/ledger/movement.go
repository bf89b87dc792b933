package ledger

import (
	"github.com/shopspring/decimal"
)

// Kind classifies a monetary movement.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindTransfer   Kind = "transfer"
)

// DefaultDescription is applied when the caller supplies none.
const DefaultDescription = "Transfer"

// Movement is a requested monetary movement as received from the caller,
// before validation. Amount is the caller's raw string so that parsing
// failures stay a validation concern, not a transport one.
type Movement struct {
	AccountID   string
	Amount      string
	Kind        string
	Description string
}

// ValidatedMovement is a movement that passed validation. Amount carries the
// stored sign: negative for funds leaving the account.
type ValidatedMovement struct {
	AccountID   string
	Amount      decimal.Decimal
	Kind        Kind
	Description string
}

// Validate checks a movement for structural and business validity and
// normalizes it. Withdrawals are stored as -abs(amount); deposits and
// transfers keep the amount as given. Pure function, no side effects.
func Validate(m Movement) (ValidatedMovement, error) {
	if m.AccountID == "" {
		return ValidatedMovement{}, NewValidationError(KindMissingField, "accountID is required")
	}
	if m.Amount == "" {
		return ValidatedMovement{}, NewValidationError(KindMissingField, "amount is required")
	}
	if m.Kind == "" {
		return ValidatedMovement{}, NewValidationError(KindMissingField, "kind is required")
	}

	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return ValidatedMovement{}, NewValidationError(KindInvalidAmount, "amount must be a finite decimal")
	}
	if amount.IsZero() {
		return ValidatedMovement{}, NewValidationError(KindInvalidAmount, "amount must be non-zero")
	}

	kind := Kind(m.Kind)
	switch kind {
	case KindDeposit, KindTransfer:
		// stored as given
	case KindWithdrawal:
		amount = amount.Abs().Neg()
	default:
		return ValidatedMovement{}, NewValidationError(KindInvalidKind, "kind must be deposit, withdrawal or transfer")
	}

	description := m.Description
	if description == "" {
		description = DefaultDescription
	}

	return ValidatedMovement{
		AccountID:   m.AccountID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
	}, nil
}
