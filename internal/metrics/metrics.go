// Package metrics declares the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ActionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "finance_actions_processed_total",
	Help: "Mutating actions executed by the operator, by outcome.",
}, []string{"action", "outcome"})

var NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "finance_notifications_created_total",
	Help: "Notifications persisted, by kind.",
}, []string{"type"})

var RecurringProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "finance_recurring_templates_processed_total",
	Help: "Recurring templates materialized successfully.",
})

var RecurringFailed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "finance_recurring_templates_failed_total",
	Help: "Recurring templates that failed during a tick.",
})

var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Name: "finance_rate_limited_total",
	Help: "Requests rejected by the per-user rate limiter.",
})
