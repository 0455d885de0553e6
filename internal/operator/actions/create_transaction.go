package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/ledger"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
)

type CreateTransaction struct {
	Deps *Deps

	UserID       uuid.UUID
	WalletID     uuid.UUID
	CategoryID   uuid.UUID
	Type         finance.TransactionType
	Amount       decimal.Decimal
	Currency     string
	ExchangeRate decimal.NullDecimal
	Tags         []string
	Note         string
	IsRecurring  bool
	Frequency    finance.Frequency
	CreatedAt    time.Time // zero means now

	// Set on success.
	TransactionID uuid.UUID
}

func (a *CreateTransaction) Name() string { return "create_transaction" }

func (a *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if !a.Amount.IsPositive() {
		return finance.Validationf("amount must be positive, got %s", a.Amount)
	}

	wlt, err := writer.Wallets.FindByID(ctx, a.UserID, a.WalletID)
	if err != nil {
		return err
	}
	cat, err := writer.Categories.FindByID(ctx, a.UserID, a.CategoryID)
	if err != nil {
		return err
	}
	if cat.Type != a.Type {
		return finance.Validationf("category %q is for %s transactions", cat.Name, cat.Type)
	}

	currency := a.Currency
	if currency == "" {
		currency = wlt.Currency
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	create := &transaction.TransactionCreate{
		UserID:       a.UserID,
		WalletID:     a.WalletID,
		CategoryID:   a.CategoryID,
		Type:         a.Type,
		Amount:       a.Amount,
		Currency:     currency,
		ExchangeRate: a.ExchangeRate,
		Tags:         a.Tags,
		Note:         a.Note,
		CreatedAt:    createdAt,
	}
	if a.IsRecurring {
		if _, err := finance.ParseFrequency(string(a.Frequency)); err != nil {
			return err
		}
		next := a.Frequency.Advance(createdAt)
		create.IsRecurring = true
		create.Frequency = a.Frequency
		create.NextFireAt = &next
	}

	id, err := writer.Transactions.Insert(ctx, create)
	if err != nil {
		return err
	}
	a.TransactionID = id

	if err := ledger.Apply(ctx, writer.Wallets, a.UserID, a.WalletID, a.Type, a.Amount); err != nil {
		return err
	}

	if a.Type == finance.TransactionExpense {
		row, err := writer.Transactions.FindByID(ctx, a.UserID, id)
		if err != nil {
			return err
		}
		if err := a.Deps.Detector.Check(ctx, writer, a.UserID, row); err != nil {
			return err
		}
		if err := a.Deps.Monitor.Evaluate(ctx, writer, a.UserID, a.CategoryID, createdAt); err != nil {
			return err
		}
	}
	return nil
}
