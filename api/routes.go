package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/securebanking/core-ledger/internal/handlers/v1/account"
	"github.com/securebanking/core-ledger/internal/handlers/v1/history"
	"github.com/securebanking/core-ledger/internal/handlers/v1/movement"
	"github.com/securebanking/core-ledger/internal/handlers/v1/status"
	"github.com/securebanking/core-ledger/internal/logging"
	"github.com/securebanking/core-ledger/internal/service"
	"github.com/securebanking/core-ledger/internal/storage"
)

type Rest struct {
	Logger          *logrus.Logger
	Port            string
	Service         *service.Service
	Storage         *storage.Storage
	DefaultTimezone string
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Core Ledger API", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware)

	movement.NewPostMovementHandler(r.Service.Posting).Register(humaAPI)
	history.NewListHistoryHandler(r.Service.History, r.DefaultTimezone).Register(humaAPI)
	account.NewGetAccountHandler(r.Service.Account).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// logDataMiddleware gives every huma request a LogData and emits one
// structured completion line with the collected timings and fields.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	endTimer := logData.AddTiming("duration")

	next(huma.WithValue(ctx, logging.LogDataKey, logData))

	endTimer()
	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}
