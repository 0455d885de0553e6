package budget

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "user_id", "category_id", "limit_amount", "alert_threshold", "start_date", "end_date", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) ListActive(ctx context.Context, userID uuid.UUID, asOf time.Time) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("start_date").LTE(psql.Arg(asOf))),
		sm.Where(psql.Quote("end_date").GTE(psql.Arg(asOf))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) ListActiveForCategory(ctx context.Context, userID, categoryID uuid.UUID, asOf time.Time) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("start_date").LTE(psql.Arg(asOf))),
		sm.Where(psql.Quote("end_date").GTE(psql.Arg(asOf))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) FindOverlapping(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time) (*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
		sm.Where(psql.Quote("start_date").LTE(psql.Arg(end))),
		sm.Where(psql.Quote("end_date").GTE(psql.Arg(start))),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Budget]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func asPointers(rows []Budget) []*Budget {
	result := make([]*Budget, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}
