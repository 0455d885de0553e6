package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/finance"
)

var columns = []any{
	"id", "user_id", "wallet_id", "category_id", "type", "amount",
	"currency", "exchange_rate", "tags", "note",
	"is_recurring", "frequency", "last_fired_at", "next_fire_at", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil {
		if filter.WalletID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("wallet_id").EQ(psql.Arg(*filter.WalletID))))
		}
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.Type != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("type").EQ(psql.Arg(string(*filter.Type)))))
		}
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.To))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("created_at").GTE(psql.Arg(since))),
		sm.OrderBy("created_at").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) SumExpenses(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("coalesce(sum(amount), 0)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(string(finance.TransactionExpense)))),
		sm.Where(psql.Quote("created_at").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("created_at").LTE(psql.Arg(to))),
	)
	total, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *Reader) ListExpenseAmounts(ctx context.Context, userID, categoryID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns("amount"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(string(finance.TransactionExpense)))),
		sm.Where(psql.Quote("created_at").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("created_at").LTE(psql.Arg(to))),
		sm.Where(psql.Quote("id").NE(psql.Arg(excludeID))),
	)
	return bob.All(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

func (r *Reader) ListDueTemplates(ctx context.Context, asOf time.Time) ([]*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("is_recurring").EQ(psql.Arg(true))),
		sm.Where(psql.Quote("next_fire_at").IsNotNull()),
		sm.Where(psql.Quote("next_fire_at").LTE(psql.Arg(asOf))),
		sm.OrderBy("next_fire_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) CountByWallet(ctx context.Context, userID, walletID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("wallet_id").EQ(psql.Arg(walletID))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

func (r *Reader) CountByCategory(ctx context.Context, userID, categoryID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

func asPointers(rows []Transaction) []*Transaction {
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}
