// Package ledger holds the posting domain: movement kinds, validation and
// the error taxonomy shared by the service and handler layers.
package ledger

import "errors"

// Stable error kinds surfaced to callers. Handlers map these to HTTP
// statuses; the raw store error text never crosses the API boundary.
const (
	KindMissingField           = "missing_field"
	KindInvalidAmount          = "invalid_amount"
	KindInvalidKind            = "invalid_kind"
	KindInsufficientFunds      = "insufficient_funds"
	KindConflictRetryExhausted = "conflict_retry_exhausted"
	KindStoreUnavailable       = "store_unavailable"
	KindNotFoundAfterWrite     = "not_found_after_write"
)

// PostingError is a classified posting failure with a stable kind and an
// optional human-readable detail.
type PostingError struct {
	Kind    string
	Details string
}

func (e *PostingError) Error() string {
	if e.Details == "" {
		return e.Kind
	}
	return e.Kind + ": " + e.Details
}

// NewValidationError builds a caller-fault error with the given kind.
func NewValidationError(kind, details string) *PostingError {
	return &PostingError{Kind: kind, Details: details}
}

// ErrInsufficientFunds rejects a movement that would overdraw the account.
var ErrInsufficientFunds = &PostingError{Kind: KindInsufficientFunds, Details: "balance would become negative"}

// ErrNotFoundAfterWrite signals that a just-written row could not be read
// back, which means the store broke its own consistency contract.
var ErrNotFoundAfterWrite = &PostingError{Kind: KindNotFoundAfterWrite, Details: "written record could not be read back"}

// IsKind reports whether err is a PostingError of the given kind.
func IsKind(err error, kind string) bool {
	var pe *PostingError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsValidation reports whether err is a caller-fault validation error.
func IsValidation(err error) bool {
	var pe *PostingError
	if !errors.As(err, &pe) {
		return false
	}
	switch pe.Kind {
	case KindMissingField, KindInvalidAmount, KindInvalidKind:
		return true
	}
	return false
}
