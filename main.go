package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/securebanking/core-ledger/api"
	"github.com/securebanking/core-ledger/internal/config"
	"github.com/securebanking/core-ledger/internal/logging"
	"github.com/securebanking/core-ledger/internal/operator"
	"github.com/securebanking/core-ledger/internal/service"
	"github.com/securebanking/core-ledger/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("core-ledger starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, delegator, envConfig, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:          logger,
			Port:            envConfig.HTTPPort,
			Service:         svc,
			Storage:         dbStorage,
			DefaultTimezone: envConfig.DisplayTimezone,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
