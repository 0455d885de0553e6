package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
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

func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	createdAt := create.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	q := psql.Insert(
		im.Into("transactions",
			"id", "user_id", "wallet_id", "category_id", "type", "amount",
			"currency", "exchange_rate", "tags", "note",
			"is_recurring", "frequency", "next_fire_at", "created_at"),
		im.Values(psql.Arg(
			id, create.UserID, create.WalletID, create.CategoryID,
			string(create.Type), create.Amount, create.Currency,
			create.ExchangeRate, pq.StringArray(create.Tags), create.Note,
			create.IsRecurring, string(create.Frequency), create.NextFireAt,
			createdAt)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, userID, id uuid.UUID, update *TransactionUpdate) error {
	mods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table("transactions"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if update.WalletID != nil {
		mods = append(mods, um.SetCol("wallet_id").To(psql.Arg(*update.WalletID)))
	}
	if update.CategoryID != nil {
		mods = append(mods, um.SetCol("category_id").To(psql.Arg(*update.CategoryID)))
	}
	if update.Type != nil {
		mods = append(mods, um.SetCol("type").To(psql.Arg(string(*update.Type))))
	}
	if update.Amount != nil {
		mods = append(mods, um.SetCol("amount").To(psql.Arg(*update.Amount)))
	}
	if update.Currency != nil {
		mods = append(mods, um.SetCol("currency").To(psql.Arg(*update.Currency)))
	}
	if update.Note != nil {
		mods = append(mods, um.SetCol("note").To(psql.Arg(*update.Note)))
	}
	if update.Tags != nil {
		mods = append(mods, um.SetCol("tags").To(psql.Arg(pq.StringArray(*update.Tags))))
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

func (w *Writer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("transactions"),
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

func (w *Writer) AdvanceTemplate(ctx context.Context, id uuid.UUID, lastFiredAt, nextFireAt time.Time) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("last_fired_at").To(psql.Arg(lastFiredAt)),
		um.SetCol("next_fire_at").To(psql.Arg(nextFireAt)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("is_recurring").EQ(psql.Arg(true))),
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
