package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/securebanking/core-ledger/internal/ledger"
	"github.com/securebanking/core-ledger/internal/operator/actions"
)

// movementProcessor is the interface for executing one posting as a single
// commit-or-rollback unit.
type movementProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// PostingService coordinates a posting: validate, execute the atomic unit,
// retry serialization conflicts a bounded number of times, and classify
// whatever comes back into the stable error taxonomy.
type PostingService struct {
	operator     movementProcessor
	logger       *logrus.Logger
	maxRetries   int
	storeTimeout time.Duration
}

// NewPostingService creates a new PostingService.
func NewPostingService(op movementProcessor, logger *logrus.Logger, maxRetries int, storeTimeout time.Duration) *PostingService {
	return &PostingService{
		operator:     op,
		logger:       logger,
		maxRetries:   maxRetries,
		storeTimeout: storeTimeout,
	}
}

// Post validates and durably records one movement, returning the committed
// transaction and resulting balance. Validation and business-rule failures
// return immediately with no writes; conflicting attempts rerun the whole
// unit against a fresh transaction.
func (s *PostingService) Post(ctx context.Context, movement ledger.Movement) (*PostingResult, error) {
	validated, err := ledger.Validate(movement)
	if err != nil {
		return nil, err
	}

	action := &actions.PostMovement{Movement: validated}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 20 * time.Millisecond
	expBackoff.MaxInterval = 250 * time.Millisecond

	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()

		attemptErr := s.operator.Process(attemptCtx, action)
		if attemptErr == nil {
			return nil
		}
		if isRetryableConflict(attemptErr) {
			return attemptErr
		}
		return backoff.Permanent(attemptErr)
	}

	retryPolicy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(s.maxRetries)), ctx)
	if err := backoff.Retry(attempt, retryPolicy); err != nil {
		return nil, s.classify(validated, err)
	}

	result := &PostingResult{
		Transaction: fromStorageTransaction(action.Result.Transaction),
		Balance:     action.Result.Balance,
	}
	return result, nil
}

// classify maps store and domain failures onto the stable taxonomy. Raw
// store error text stays in the logs, never in the returned error.
func (s *PostingService) classify(movement ledger.ValidatedMovement, err error) error {
	var postingErr *ledger.PostingError
	if errors.As(err, &postingErr) {
		if postingErr.Kind == ledger.KindNotFoundAfterWrite {
			s.logger.WithFields(logrus.Fields{
				"accountID": movement.AccountID,
				"kind":      movement.Kind,
				"amount":    movement.Amount.String(),
			}).WithError(err).Error("PostingService.Post.read back after write failed")
		}
		return postingErr
	}

	if isRetryableConflict(err) {
		s.logger.WithField("accountID", movement.AccountID).
			WithError(err).Warn("PostingService.Post.conflict retries exhausted")
		return &ledger.PostingError{
			Kind:    ledger.KindConflictRetryExhausted,
			Details: "the posting conflicted with concurrent activity, retry the request",
		}
	}

	// Caller gave up; nothing was committed, nothing to classify.
	if errors.Is(err, context.Canceled) {
		return err
	}

	if isUnavailable(err) {
		s.logger.WithField("accountID", movement.AccountID).
			WithError(err).Warn("PostingService.Post.store timeout")
		return &ledger.PostingError{
			Kind:    ledger.KindStoreUnavailable,
			Details: "the ledger store timed out, retry the request",
		}
	}

	s.logger.WithField("accountID", movement.AccountID).
		WithError(err).Error("PostingService.Post.store error")
	return &ledger.PostingError{
		Kind:    ledger.KindStoreUnavailable,
		Details: "the ledger store did not complete the posting",
	}
}

// isRetryableConflict reports whether the error is a serialization loss that
// is safe to retry with a fresh transaction: Postgres serialization failure,
// deadlock, or a duplicate-key race on the implicit account insert.
func isRetryableConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case "40001", "40P01", "23505":
			return true
		}
	}
	return false
}

// isUnavailable reports whether the error looks like the store itself being
// unreachable or too slow rather than a data-level failure.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
