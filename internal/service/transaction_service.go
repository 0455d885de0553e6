package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	storagetx "github.com/carson-networks/finance-server/internal/storage/transaction"
)

const defaultTransactionLimit = 20

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID           uuid.UUID
	WalletID     uuid.UUID
	CategoryID   uuid.UUID
	Type         finance.TransactionType
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate *decimal.Decimal
	Tags         []string
	Note         string
	IsRecurring  bool
	Frequency    finance.Frequency
	NextFireAt   *time.Time
	CreatedAt    time.Time
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

// TransactionQuery narrows a listing.
type TransactionQuery struct {
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	Type       *finance.TransactionType
	From       *time.Time
	To         *time.Time
}

// MonthlySummary aggregates one calendar month of activity.
type MonthlySummary struct {
	Year       int
	Month      time.Month
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Net        decimal.Decimal
	ByCategory map[uuid.UUID]decimal.Decimal
	ByWallet   map[uuid.UUID]decimal.Decimal

	// Percent change against the previous calendar month. Nil when the
	// previous month has no activity of that kind to compare against.
	IncomeChange  *float64
	ExpenseChange *float64
}

// TransactionService handles transaction read logic.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	t := transactionFromStorage(row)
	return &t, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, query *TransactionQuery, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultTransactionLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &storagetx.TransactionFilter{
		Limit:  limit,
		Offset: offset,
	}
	if query != nil {
		filter.WalletID = query.WalletID
		filter.CategoryID = query.CategoryID
		filter.Type = query.Type
		filter.From = query.From
		filter.To = query.To
	}

	rows, err := s.storage.Transactions.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted, nextCursor, nil
}

// Monthly aggregates income, expense, the per-category and per-wallet
// expense breakdown for one calendar month, and the percent change
// against the previous month.
func (s *TransactionService) Monthly(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	rows, err := s.storage.Transactions.List(ctx, userID, &storagetx.TransactionFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: map[uuid.UUID]decimal.Decimal{},
		ByWallet:   map[uuid.UUID]decimal.Decimal{},
	}
	for _, row := range rows {
		switch row.Type {
		case finance.TransactionIncome:
			summary.Income = summary.Income.Add(row.Amount)
		case finance.TransactionExpense:
			summary.Expense = summary.Expense.Add(row.Amount)
			summary.ByCategory[row.CategoryID] = sumInto(summary.ByCategory, row.CategoryID, row.Amount)
			summary.ByWallet[row.WalletID] = sumInto(summary.ByWallet, row.WalletID, row.Amount)
		}
	}
	summary.Net = summary.Income.Sub(summary.Expense)

	prevIncome, prevExpense, err := s.monthTotals(ctx, userID, from.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}
	summary.IncomeChange = percentChange(prevIncome, summary.Income)
	summary.ExpenseChange = percentChange(prevExpense, summary.Expense)
	return summary, nil
}

func (s *TransactionService) monthTotals(ctx context.Context, userID uuid.UUID, from time.Time) (income, expense decimal.Decimal, err error) {
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	rows, err := s.storage.Transactions.List(ctx, userID, &storagetx.TransactionFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	income, expense = decimal.Zero, decimal.Zero
	for _, row := range rows {
		switch row.Type {
		case finance.TransactionIncome:
			income = income.Add(row.Amount)
		case finance.TransactionExpense:
			expense = expense.Add(row.Amount)
		}
	}
	return income, expense, nil
}

func sumInto(totals map[uuid.UUID]decimal.Decimal, key uuid.UUID, amount decimal.Decimal) decimal.Decimal {
	current, ok := totals[key]
	if !ok {
		current = decimal.Zero
	}
	return current.Add(amount)
}

func percentChange(previous, current decimal.Decimal) *float64 {
	if previous.IsZero() {
		return nil
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).InexactFloat64()
	return &change
}

func transactionFromStorage(row *storagetx.Transaction) Transaction {
	t := Transaction{
		ID:          row.ID,
		WalletID:    row.WalletID,
		CategoryID:  row.CategoryID,
		Type:        row.Type,
		Amount:      row.Amount,
		Currency:    row.Currency,
		Tags:        row.Tags,
		Note:        row.Note,
		IsRecurring: row.IsRecurring,
		Frequency:   row.Frequency,
		CreatedAt:   row.CreatedAt,
	}
	if row.ExchangeRate.Valid {
		rate := row.ExchangeRate.Decimal
		t.ExchangeRate = &rate
	}
	if row.NextFireAt.Valid {
		next := row.NextFireAt.Time
		t.NextFireAt = &next
	}
	return t
}
