package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/metrics"
	"github.com/carson-networks/finance-server/internal/ratelimit"
	"github.com/carson-networks/finance-server/internal/score"
	"github.com/carson-networks/finance-server/internal/storage"
)

// ScoreService computes financial health scores on demand. The score
// walks three months of history, so requests are rate limited per user.
type ScoreService struct {
	storage *storage.Storage
	limiter *ratelimit.Limiter
	log     *logrus.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(store *storage.Storage, limiter *ratelimit.Limiter, log *logrus.Logger) *ScoreService {
	return &ScoreService{
		storage: store,
		limiter: limiter,
		log:     log,
	}
}

// GetScore computes the user's current financial health score.
func (s *ScoreService) GetScore(ctx context.Context, userID uuid.UUID) (*score.Score, error) {
	if !s.limiter.Allow(userID.String()) {
		metrics.RateLimited.Inc()
		s.log.WithField("user_id", userID).Info("score request rate limited")
		return nil, finance.ErrRateLimited
	}
	return score.Compute(ctx, s.storage.Reader, userID, time.Now().UTC())
}
