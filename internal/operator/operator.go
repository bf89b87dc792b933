package operator

import (
	"context"

	"github.com/securebanking/core-ledger/internal/operator/actions"
	"github.com/securebanking/core-ledger/internal/storage"
)

// WriteBeginner opens a transaction-scoped writer. Satisfied by
// *storage.Storage.
type WriteBeginner interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that executes queued ledger actions, one database
// transaction each: commit on success, rollback on any failure so no
// posting is ever left half-committed.
type Operator struct {
	storage WriteBeginner
	queue   chan ActionItem
}

func NewOperator(s WriteBeginner, queue chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// A caller that gave up before we started must leave no trace.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		_ = writer.Rollback()
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
