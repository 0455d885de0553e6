package actions

import (
	"context"

	"github.com/carson-networks/finance-server/internal/anomaly"
	"github.com/carson-networks/finance-server/internal/monitor"
	"github.com/carson-networks/finance-server/internal/notify"
	"github.com/carson-networks/finance-server/internal/storage"
)

// IAction is a unit of mutating work executed inside one storage
// transaction. Name labels metrics and logs.
type IAction interface {
	Name() string
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Deps bundles the engines actions invoke beyond the storage writer.
// One instance is built at startup and shared by every action.
type Deps struct {
	Notifier *notify.Notifier
	Monitor  *monitor.Monitor
	Detector *anomaly.Detector
}
