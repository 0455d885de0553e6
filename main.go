package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-server/api"
	"github.com/carson-networks/finance-server/internal/anomaly"
	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/logging"
	"github.com/carson-networks/finance-server/internal/monitor"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/operator"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/push"
	"github.com/carson-networks/finance-server/internal/ratelimit"
	"github.com/carson-networks/finance-server/internal/recurring"
	"github.com/carson-networks/finance-server/internal/service"
	"github.com/carson-networks/finance-server/internal/storage"
)

const (
	operatorWorkers = 4

	scoreWindow   = time.Minute
	scoreRequests = 10
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("finance-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	var deliverer push.Deliverer = push.NopDeliverer{}
	if envConfig.AmqpURL != "" {
		amqpDeliverer, err := push.NewAmqpDeliverer(envConfig.AmqpURL, envConfig.AmqpExchange)
		if err != nil {
			logrus.WithError(err).Fatal("push.NewAmqpDeliverer")
			return
		}
		defer amqpDeliverer.Close()
		deliverer = amqpDeliverer
	}

	notifier := notify.NewNotifier(deliverer, logger)
	deps := &actions.Deps{
		Notifier: notifier,
		Monitor:  monitor.NewMonitor(notifier),
		Detector: anomaly.NewDetector(notifier),
	}

	delegator := operator.NewOperatorDelegator(dbStorage, logger, operatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	scoreLimiter := ratelimit.NewLimiter(scoreWindow, scoreRequests)
	svc := service.NewService(dbStorage, scoreLimiter, logger)

	engine := recurring.NewEngine(dbStorage.Transactions, delegator, deps, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Storage:  dbStorage,
			Operator: delegator,
			Service:  svc,
			Deps:     deps,
		}
		return httpRest.Serve(ctx)
	})

	group.Go(func() error {
		return engine.Run(ctx, envConfig.RecurringInterval)
	})

	group.Go(func() error {
		ticker := time.NewTicker(scoreWindow)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				scoreLimiter.EvictExpired()
			}
		}
	})

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Error("finance-server exited")
	}
	logrus.Info("finance-server stopped")
}
