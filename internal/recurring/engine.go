// Package recurring fires due recurring transaction templates on a
// periodic tick. Each template is materialized in its own transaction
// so one bad template cannot block the rest of the run.
package recurring

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-server/internal/metrics"
	"github.com/carson-networks/finance-server/internal/operator/actions"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

// Processor executes one action in its own storage transaction.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Stats tallies one engine run.
type Stats struct {
	Due       int
	Processed int
	Failed    int
}

type Engine struct {
	templates transaction.ITransactionReader
	ops       Processor
	deps      *actions.Deps
	log       *logrus.Logger

	mu sync.Mutex
}

func NewEngine(templates transaction.ITransactionReader, ops Processor, deps *actions.Deps, log *logrus.Logger) *Engine {
	return &Engine{
		templates: templates,
		ops:       ops,
		deps:      deps,
		log:       log,
	}
}

// RunDueTransactions fires every template due at now. Only one run is
// active at a time; an overlapping call returns immediately with empty
// stats rather than double-firing.
func (e *Engine) RunDueTransactions(ctx context.Context, now time.Time) (Stats, error) {
	if !e.mu.TryLock() {
		return Stats{}, nil
	}
	defer e.mu.Unlock()

	due, err := e.templates.ListDueTemplates(ctx, now)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Due: len(due)}
	for _, tmpl := range due {
		err := e.ops.Process(ctx, &actions.MaterializeRecurring{
			Deps:       e.deps,
			UserID:     tmpl.UserID,
			TemplateID: tmpl.ID,
			AsOf:       now,
		})
		if err != nil {
			stats.Failed++
			metrics.RecurringFailed.Inc()
			e.log.WithError(err).WithField("template_id", tmpl.ID).Error("recurring template failed")
			continue
		}
		stats.Processed++
		metrics.RecurringProcessed.Inc()
	}
	return stats, nil
}

// Run ticks the engine at the given interval until ctx is cancelled.
// One pass runs immediately on start.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := e.RunDueTransactions(ctx, time.Now().UTC())
		if err != nil {
			e.log.WithError(err).Error("recurring run failed")
		} else if stats.Due > 0 {
			e.log.WithFields(logrus.Fields{
				"due":       stats.Due,
				"processed": stats.Processed,
				"failed":    stats.Failed,
			}).Info("recurring run complete")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
