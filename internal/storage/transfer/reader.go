package transfer

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/finance-server/internal/finance"
)

var columns = []any{
	"id", "user_id", "from_budget_id", "to_budget_id",
	"from_category_name", "to_category_name", "amount",
	"status", "suggested", "requested_at", "responded_at", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Transfer, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budget_transfers"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Transfer]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *TransferFilter) ([]*Transfer, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("budget_transfers"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil {
		if filter.Status != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(string(*filter.Status)))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("requested_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Transfer]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) FindPendingForBudgets(ctx context.Context, userID, fromBudgetID, toBudgetID uuid.UUID) (*Transfer, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budget_transfers"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("from_budget_id").EQ(psql.Arg(fromBudgetID))),
		sm.Where(psql.Quote("to_budget_id").EQ(psql.Arg(toBudgetID))),
		sm.Where(psql.Quote("status").EQ(psql.Arg(string(finance.TransferPending)))),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Transfer]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func asPointers(rows []Transfer) []*Transfer {
	result := make([]*Transfer, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}
