package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-server/internal/handlers/v1/category"
	"github.com/carson-networks/finance-server/internal/handlers/v1/notification"
	"github.com/carson-networks/finance-server/internal/handlers/v1/score"
	"github.com/carson-networks/finance-server/internal/handlers/v1/status"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/finance-server/internal/handlers/v1/wallet"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Storage  *storage.Storage
	Operator *operator.OperatorDelegator
	Service  *service.Service
	Deps     *actions.Deps
}

type registerer interface {
	Register(api huma.API)
}

func (r *Rest) router() http.Handler {
	router := chi.NewRouter()
	router.Use(logging.Middleware(r.Logger))

	humaAPI := humachi.New(router, huma.DefaultConfig("finance-server", "1.0.0"))

	handlers := []registerer{
		wallet.NewCreateWalletHandler(r.Operator),
		wallet.NewListWalletsHandler(r.Service.Wallet),
		wallet.NewUpdateWalletHandler(r.Operator),
		wallet.NewDeleteWalletHandler(r.Operator),

		category.NewCreateCategoryHandler(r.Operator),
		category.NewListCategoriesHandler(r.Storage),
		category.NewUpdateCategoryHandler(r.Operator),
		category.NewDeleteCategoryHandler(r.Operator),

		transaction.NewCreateTransactionHandler(r.Operator, r.Deps),
		transaction.NewListTransactionsHandler(r.Service.Transaction),
		transaction.NewMonthlySummaryHandler(r.Service.Transaction),
		transaction.NewUpdateTransactionHandler(r.Operator, r.Deps),
		transaction.NewDeleteTransactionHandler(r.Operator, r.Deps),

		budget.NewCreateBudgetHandler(r.Operator, r.Deps),
		budget.NewBudgetReportHandler(r.Service.Budget),
		budget.NewBudgetStatusHandler(r.Service.Budget),
		budget.NewUpdateBudgetHandler(r.Operator, r.Deps),
		budget.NewDeleteBudgetHandler(r.Operator),

		transfer.NewCreateTransferHandler(r.Operator, r.Deps),
		transfer.NewRespondTransferHandler(r.Operator, r.Deps),
		transfer.NewListTransfersHandler(r.Service.Transfer),

		notification.NewListNotificationsHandler(r.Service.Notification, r.Logger),
		notification.NewUnreadCountHandler(r.Service.Notification),
		notification.NewMarkReadHandler(r.Operator),
		notification.NewMarkAllReadHandler(r.Operator),
		notification.NewDeleteReadHandler(r.Operator),
		notification.NewDeleteNotificationHandler(r.Operator),

		score.NewGetScoreHandler(r.Service.Score, r.Logger),
	}
	for _, h := range handlers {
		h.Register(humaAPI)
	}

	statusHandler := status.NewHandler()
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
}
