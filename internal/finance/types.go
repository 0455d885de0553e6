package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the monetary direction of a transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// ParseTransactionType validates a wire value.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionIncome, TransactionExpense:
		return TransactionType(s), nil
	}
	return "", Validationf("transaction type must be income or expense, got %q", s)
}

// SignedDelta is the effect a transaction has on its wallet balance:
// +amount for income, -amount for expense.
func (t TransactionType) SignedDelta(amount decimal.Decimal) decimal.Decimal {
	if t == TransactionExpense {
		return amount.Neg()
	}
	return amount
}

// WalletType is the kind of account a wallet represents.
type WalletType string

const (
	WalletCash   WalletType = "cash"
	WalletBank   WalletType = "bank"
	WalletCredit WalletType = "credit"
	WalletSaving WalletType = "saving"
)

// ParseWalletType validates a wire value, defaulting empty to cash.
func ParseWalletType(s string) (WalletType, error) {
	if s == "" {
		return WalletCash, nil
	}
	switch WalletType(s) {
	case WalletCash, WalletBank, WalletCredit, WalletSaving:
		return WalletType(s), nil
	}
	return "", Validationf("wallet type must be cash, bank, credit or saving, got %q", s)
}

// TransferStatus is the state of a budget transfer. Pending is the only
// non-terminal state.
type TransferStatus string

const (
	TransferPending  TransferStatus = "pending"
	TransferApproved TransferStatus = "approved"
	TransferRejected TransferStatus = "rejected"
)

// Terminal reports whether the transfer can no longer be responded to.
func (s TransferStatus) Terminal() bool {
	return s == TransferApproved || s == TransferRejected
}

// BudgetState is the derived health of a budget, computed on demand and
// never stored.
type BudgetState string

const (
	BudgetSafe     BudgetState = "SAFE"
	BudgetWarning  BudgetState = "WARNING"
	BudgetExceeded BudgetState = "EXCEEDED"
)

// Frequency is the closed set of recurrence intervals a transaction
// template can carry.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency validates a wire value.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return Frequency(s), nil
	}
	return "", Validationf("frequency must be daily, weekly or monthly, got %q", s)
}

// Advance returns the next fire time after t for this frequency. Monthly
// arithmetic clamps to the last valid day of the target month, so
// Jan 31 advances to Feb 28 (or 29) rather than rolling into March.
func (f Frequency) Advance(t time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonthClamped(t)
	}
	return t
}

func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
