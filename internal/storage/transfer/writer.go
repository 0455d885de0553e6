package transfer

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/carson-networks/finance-server/internal/finance"
)

type Writer struct {
	tx bob.Executor
	Reader
}

func NewWriter(tx bob.Executor) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

func (w *Writer) Insert(ctx context.Context, create *TransferCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	requestedAt := create.RequestedAt
	if requestedAt.IsZero() {
		requestedAt = time.Now().UTC()
	}
	q := psql.Insert(
		im.Into("budget_transfers",
			"id", "user_id", "from_budget_id", "to_budget_id",
			"from_category_name", "to_category_name", "amount",
			"status", "suggested", "requested_at"),
		im.Values(psql.Arg(
			id, create.UserID, create.FromBudgetID, create.ToBudgetID,
			create.FromCategoryName, create.ToCategoryName, create.Amount,
			string(finance.TransferPending), create.Suggested, requestedAt)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) MarkResponded(ctx context.Context, userID, id uuid.UUID, status finance.TransferStatus, at time.Time) error {
	q := psql.Update(
		um.Table("budget_transfers"),
		um.SetCol("status").To(psql.Arg(string(status))),
		um.SetCol("responded_at").To(psql.Arg(at)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		um.Where(psql.Quote("status").EQ(psql.Arg(string(finance.TransferPending)))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return finance.ErrAlreadyProcessed
	}
	return nil
}
