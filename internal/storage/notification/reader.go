package notification

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "user_id", "type", "title", "message",
	"budget_id", "payload", "read", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, userID, id uuid.UUID) (*Notification, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("notifications"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[Notification]())
	if err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (r *Reader) List(ctx context.Context, userID uuid.UUID, filter *NotificationFilter) ([]*Notification, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("notifications"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}
	if filter != nil {
		if filter.UnreadOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("read").EQ(psql.Arg(false))))
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
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[Notification]())
	if err != nil {
		return nil, err
	}
	return asPointers(rows), nil
}

func (r *Reader) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("notifications"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("read").EQ(psql.Arg(false))),
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

func (r *Reader) ExistsForBudgetOnDay(ctx context.Context, userID, budgetID uuid.UUID, day time.Time) (bool, error) {
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	q := psql.Select(
		sm.Columns(psql.Raw("count(*)")),
		sm.From("notifications"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("budget_id").EQ(psql.Arg(budgetID))),
		sm.Where(psql.Quote("created_at").GTE(psql.Arg(dayStart))),
		sm.Where(psql.Quote("created_at").LT(psql.Arg(dayEnd))),
	)
	count, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func asPointers(rows []Notification) []*Notification {
	result := make([]*Notification, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result
}
