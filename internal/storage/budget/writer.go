package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
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

func (w *Writer) Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	q := psql.Insert(
		im.Into("budgets", "id", "user_id", "category_id", "limit_amount", "alert_threshold", "start_date", "end_date"),
		im.Values(psql.Arg(id, create.UserID, create.CategoryID, create.LimitAmount,
			create.AlertThreshold, create.StartDate, create.EndDate)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, userID, id uuid.UUID, update *BudgetUpdate) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("budgets"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if update.LimitAmount != nil {
		mods = append(mods, um.SetCol("limit_amount").To(psql.Arg(*update.LimitAmount)))
	}
	if update.AlertThreshold != nil {
		mods = append(mods, um.SetCol("alert_threshold").To(psql.Arg(*update.AlertThreshold)))
	}
	if update.StartDate != nil {
		mods = append(mods, um.SetCol("start_date").To(psql.Arg(*update.StartDate)))
	}
	if update.EndDate != nil {
		mods = append(mods, um.SetCol("end_date").To(psql.Arg(*update.EndDate)))
	}

	res, err := bob.Exec(ctx, w.tx, psql.Update(mods...))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return finance.ErrNotFound
	}
	return nil
}

func (w *Writer) AddLimit(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	q := psql.Update(
		um.Table("budgets"),
		um.SetCol("limit_amount").To(psql.Raw("limit_amount + ?", delta)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
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
		return finance.ErrNotFound
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("budgets"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
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
		return finance.ErrNotFound
	}
	return nil
}
