package operator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/securebanking/core-ledger/internal/storage"
)

type failingStore struct {
	err error
}

func (s *failingStore) Write(ctx context.Context) (*storage.Writer, error) {
	return nil, s.err
}

type noopAction struct {
	performed bool
}

func (a *noopAction) Perform(ctx context.Context, writer *storage.Writer) error {
	a.performed = true
	return nil
}

func TestProcess_StoreWriteErrorPropagates(t *testing.T) {
	writeErr := errors.New("cannot begin transaction")
	delegator := NewOperatorDelegator(&failingStore{err: writeErr}, 1)
	delegator.Start()
	defer delegator.Stop()

	action := &noopAction{}
	err := delegator.Process(context.Background(), action)

	assert.ErrorIs(t, err, writeErr)
	assert.False(t, action.performed, "action must not run without a writer")
}

func TestProcess_CanceledContextSkipsAction(t *testing.T) {
	delegator := NewOperatorDelegator(&failingStore{err: errors.New("unreachable")}, 1)
	delegator.Start()
	defer delegator.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	action := &noopAction{}
	err := delegator.Process(ctx, action)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, action.performed)
}
