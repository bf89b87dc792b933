package service

import (
	"github.com/sirupsen/logrus"

	"github.com/securebanking/core-ledger/internal/config"
	"github.com/securebanking/core-ledger/internal/operator"
	"github.com/securebanking/core-ledger/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Posting *PostingService
	History *HistoryService
	Account *AccountService
}

// NewService wires the posting pipeline and the read services against the
// given storage and operator.
func NewService(store *storage.Storage, delegator *operator.OperatorDelegator, env *config.Config, logger *logrus.Logger) *Service {
	reader := store.Read()
	return &Service{
		Posting: NewPostingService(delegator, logger, env.PostingRetries, env.StoreTimeout),
		History: NewHistoryService(reader.Transactions, logger),
		Account: NewAccountService(reader.Accounts, reader.Transactions),
	}
}
