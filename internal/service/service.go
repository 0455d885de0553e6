package service

import (
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/ratelimit"
	"github.com/carson-networks/finance-server/internal/storage"
)

// Service holds all read-side business logic services.
type Service struct {
	Wallet       *WalletService
	Transaction  *TransactionService
	Budget       *BudgetService
	Transfer     *TransferService
	Notification *NotificationService
	Score        *ScoreService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, scoreLimiter *ratelimit.Limiter, log *logrus.Logger) *Service {
	return &Service{
		Wallet:       NewWalletService(store),
		Transaction:  NewTransactionService(store),
		Budget:       NewBudgetService(store),
		Transfer:     NewTransferService(store),
		Notification: NewNotificationService(store),
		Score:        NewScoreService(store, scoreLimiter, log),
	}
}
