// Package storagetest provides an in-memory implementation of the
// storage table interfaces for exercising actions and engines without a
// database.
package storagetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/notification"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/transfer"
	"github.com/carson-networks/finance-server/internal/storage/wallet"
)

// Store holds every table in insertion order, which matches the
// created_at/id ordering the SQL readers produce.
type Store struct {
	mu sync.Mutex

	// NowFunc stands in for time.Now so tests can pin the clock.
	NowFunc func() time.Time

	wallets       []*wallet.Wallet
	categories    []*category.Category
	transactions  []*transaction.Transaction
	budgets       []*budget.Budget
	transfers     []*transfer.Transfer
	notifications []*notification.Notification
}

func NewStore() *Store {
	return &Store{NowFunc: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) now() time.Time { return s.NowFunc() }

// Reader returns a read view backed by the store.
func (s *Store) Reader() *storage.Reader {
	return &storage.Reader{
		Wallets:       &walletTable{s},
		Categories:    &categoryTable{s},
		Transactions:  &transactionTable{s},
		Budgets:       &budgetTable{s},
		Transfers:     &transferTable{s},
		Notifications: &notificationTable{s},
	}
}

// Write returns a writer over the same data. There is no rollback
// isolation; tests assert on success paths and on validation failures
// that reject before mutating.
func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	w := storage.NewWriterWith(nopTx{}, storage.Tables{
		Wallets:       &walletTable{s},
		Categories:    &categoryTable{s},
		Transactions:  &transactionTable{s},
		Budgets:       &budgetTable{s},
		Transfers:     &transferTable{s},
		Notifications: &notificationTable{s},
	})
	return &w, nil
}

// AllNotifications returns a snapshot of every stored notification,
// newest-first like the SQL reader.
func (s *Store) AllNotifications() []*notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*notification.Notification, 0, len(s.notifications))
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := *s.notifications[i]
		out = append(out, &n)
	}
	return out
}

type nopTx struct{}

func (nopTx) Commit(context.Context) error   { return nil }
func (nopTx) Rollback(context.Context) error { return nil }

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

// --- wallets ---

type walletTable struct{ s *Store }

func (t *walletTable) FindByID(_ context.Context, userID, id uuid.UUID) (*wallet.Wallet, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, w := range t.s.wallets {
		if w.UserID == userID && w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *walletTable) List(_ context.Context, userID uuid.UUID) ([]*wallet.Wallet, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*wallet.Wallet
	for _, w := range t.s.wallets {
		if w.UserID == userID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *walletTable) Insert(_ context.Context, create *wallet.WalletCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	w := &wallet.Wallet{
		ID:                newID(),
		UserID:            create.UserID,
		Name:              create.Name,
		Type:              create.Type,
		Currency:          create.Currency,
		Balance:           create.Balance,
		ExcludedFromTotal: create.ExcludedFromTotal,
		CreatedAt:         t.s.now(),
	}
	t.s.wallets = append(t.s.wallets, w)
	return w.ID, nil
}

func (t *walletTable) AddBalance(_ context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, w := range t.s.wallets {
		if w.UserID == userID && w.ID == id {
			w.Balance = w.Balance.Add(delta)
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *walletTable) Update(_ context.Context, userID, id uuid.UUID, update *wallet.WalletUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, w := range t.s.wallets {
		if w.UserID == userID && w.ID == id {
			if update.Name != nil {
				w.Name = *update.Name
			}
			if update.ExcludedFromTotal != nil {
				w.ExcludedFromTotal = *update.ExcludedFromTotal
			}
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *walletTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, w := range t.s.wallets {
		if w.UserID == userID && w.ID == id {
			t.s.wallets = append(t.s.wallets[:i], t.s.wallets[i+1:]...)
			return nil
		}
	}
	return finance.ErrNotFound
}

// --- categories ---

type categoryTable struct{ s *Store }

func (t *categoryTable) FindByID(_ context.Context, userID, id uuid.UUID) (*category.Category, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, c := range t.s.categories {
		if c.UserID == userID && c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *categoryTable) FindByName(_ context.Context, userID uuid.UUID, name string, categoryType finance.TransactionType) (*category.Category, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, c := range t.s.categories {
		if c.UserID == userID && c.Name == name && c.Type == categoryType {
			cp := *c
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *categoryTable) List(_ context.Context, userID uuid.UUID) ([]*category.Category, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*category.Category
	for _, c := range t.s.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *categoryTable) Insert(_ context.Context, create *category.CategoryCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	c := &category.Category{
		ID:        newID(),
		UserID:    create.UserID,
		Name:      create.Name,
		Type:      create.Type,
		ParentID:  create.ParentID,
		Keywords:  create.Keywords,
		CreatedAt: t.s.now(),
	}
	t.s.categories = append(t.s.categories, c)
	return c.ID, nil
}

func (t *categoryTable) Update(_ context.Context, userID, id uuid.UUID, update *category.CategoryUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, c := range t.s.categories {
		if c.UserID == userID && c.ID == id {
			if update.Name != nil {
				c.Name = *update.Name
			}
			if update.Keywords != nil {
				c.Keywords = *update.Keywords
			}
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *categoryTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, c := range t.s.categories {
		if c.UserID == userID && c.ID == id {
			t.s.categories = append(t.s.categories[:i], t.s.categories[i+1:]...)
			return nil
		}
	}
	return finance.ErrNotFound
}

// --- transactions ---

type transactionTable struct{ s *Store }

func (t *transactionTable) FindByID(_ context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *transactionTable) List(_ context.Context, userID uuid.UUID, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*transaction.Transaction
	for _, tx := range t.s.transactions {
		if tx.UserID != userID {
			continue
		}
		if filter != nil {
			if filter.WalletID != nil && tx.WalletID != *filter.WalletID {
				continue
			}
			if filter.CategoryID != nil && tx.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.Type != nil && tx.Type != *filter.Type {
				continue
			}
			if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && tx.CreatedAt.After(*filter.To) {
				continue
			}
		}
		cp := *tx
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(out) {
				return nil, nil
			}
			out = out[filter.Offset:]
		}
		if filter.Limit > 0 && len(out) > filter.Limit+1 {
			out = out[:filter.Limit+1]
		}
	}
	return out, nil
}

func (t *transactionTable) ListSince(_ context.Context, userID uuid.UUID, since time.Time) ([]*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*transaction.Transaction
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && !tx.CreatedAt.Before(since) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (t *transactionTable) SumExpenses(_ context.Context, userID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	total := decimal.Zero
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && tx.CategoryID == categoryID &&
			tx.Type == finance.TransactionExpense &&
			!tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			total = total.Add(tx.Amount)
		}
	}
	return total, nil
}

func (t *transactionTable) ListExpenseAmounts(_ context.Context, userID, categoryID uuid.UUID, from, to time.Time, excludeID uuid.UUID) ([]decimal.Decimal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []decimal.Decimal
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && tx.CategoryID == categoryID &&
			tx.Type == finance.TransactionExpense && tx.ID != excludeID &&
			!tx.CreatedAt.Before(from) && !tx.CreatedAt.After(to) {
			out = append(out, tx.Amount)
		}
	}
	return out, nil
}

func (t *transactionTable) ListDueTemplates(_ context.Context, asOf time.Time) ([]*transaction.Transaction, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*transaction.Transaction
	for _, tx := range t.s.transactions {
		if tx.IsRecurring && tx.NextFireAt.Valid && !tx.NextFireAt.Time.After(asOf) {
			cp := *tx
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NextFireAt.Time.Before(out[j].NextFireAt.Time) })
	return out, nil
}

func (t *transactionTable) CountByWallet(_ context.Context, userID, walletID uuid.UUID) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var n int64
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && tx.WalletID == walletID {
			n++
		}
	}
	return n, nil
}

func (t *transactionTable) CountByCategory(_ context.Context, userID, categoryID uuid.UUID) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var n int64
	for _, tx := range t.s.transactions {
		if tx.UserID == userID && tx.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (t *transactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	createdAt := create.CreatedAt
	if createdAt.IsZero() {
		createdAt = t.s.now()
	}
	tx := &transaction.Transaction{
		ID:           newID(),
		UserID:       create.UserID,
		WalletID:     create.WalletID,
		CategoryID:   create.CategoryID,
		Type:         create.Type,
		Amount:       create.Amount,
		Currency:     create.Currency,
		ExchangeRate: create.ExchangeRate,
		Tags:         create.Tags,
		Note:         create.Note,
		IsRecurring:  create.IsRecurring,
		Frequency:    create.Frequency,
		CreatedAt:    createdAt,
	}
	if create.NextFireAt != nil {
		tx.NextFireAt.Time = *create.NextFireAt
		tx.NextFireAt.Valid = true
	}
	t.s.transactions = append(t.s.transactions, tx)
	return tx.ID, nil
}

func (t *transactionTable) Update(_ context.Context, userID, id uuid.UUID, update *transaction.TransactionUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tx := range t.s.transactions {
		if tx.UserID != userID || tx.ID != id {
			continue
		}
		if update.WalletID != nil {
			tx.WalletID = *update.WalletID
		}
		if update.CategoryID != nil {
			tx.CategoryID = *update.CategoryID
		}
		if update.Type != nil {
			tx.Type = *update.Type
		}
		if update.Amount != nil {
			tx.Amount = *update.Amount
		}
		if update.Currency != nil {
			tx.Currency = *update.Currency
		}
		if update.Note != nil {
			tx.Note = *update.Note
		}
		if update.Tags != nil {
			tx.Tags = *update.Tags
		}
		return nil
	}
	return finance.ErrNotFound
}

func (t *transactionTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, tx := range t.s.transactions {
		if tx.UserID == userID && tx.ID == id {
			t.s.transactions = append(t.s.transactions[:i], t.s.transactions[i+1:]...)
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *transactionTable) AdvanceTemplate(_ context.Context, id uuid.UUID, lastFiredAt, nextFireAt time.Time) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tx := range t.s.transactions {
		if tx.ID == id && tx.IsRecurring {
			tx.LastFiredAt.Time = lastFiredAt
			tx.LastFiredAt.Valid = true
			tx.NextFireAt.Time = nextFireAt
			tx.NextFireAt.Valid = true
			return nil
		}
	}
	return finance.ErrNotFound
}

// --- budgets ---

type budgetTable struct{ s *Store }

func (t *budgetTable) FindByID(_ context.Context, userID, id uuid.UUID) (*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, b := range t.s.budgets {
		if b.UserID == userID && b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *budgetTable) List(_ context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*budget.Budget
	for _, b := range t.s.budgets {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *budgetTable) ListActive(_ context.Context, userID uuid.UUID, asOf time.Time) ([]*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*budget.Budget
	for _, b := range t.s.budgets {
		if b.UserID == userID && b.Active(asOf) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *budgetTable) ListActiveForCategory(_ context.Context, userID, categoryID uuid.UUID, asOf time.Time) ([]*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*budget.Budget
	for _, b := range t.s.budgets {
		if b.UserID == userID && b.CategoryID == categoryID && b.Active(asOf) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *budgetTable) FindOverlapping(_ context.Context, userID, categoryID uuid.UUID, start, end time.Time) (*budget.Budget, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, b := range t.s.budgets {
		if b.UserID == userID && b.CategoryID == categoryID &&
			!b.StartDate.After(end) && !b.EndDate.Before(start) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *budgetTable) Insert(_ context.Context, create *budget.BudgetCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	b := &budget.Budget{
		ID:             newID(),
		UserID:         create.UserID,
		CategoryID:     create.CategoryID,
		LimitAmount:    create.LimitAmount,
		AlertThreshold: create.AlertThreshold,
		StartDate:      create.StartDate,
		EndDate:        create.EndDate,
		CreatedAt:      t.s.now(),
	}
	t.s.budgets = append(t.s.budgets, b)
	return b.ID, nil
}

func (t *budgetTable) Update(_ context.Context, userID, id uuid.UUID, update *budget.BudgetUpdate) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, b := range t.s.budgets {
		if b.UserID != userID || b.ID != id {
			continue
		}
		if update.LimitAmount != nil {
			b.LimitAmount = *update.LimitAmount
		}
		if update.AlertThreshold != nil {
			b.AlertThreshold = *update.AlertThreshold
		}
		if update.StartDate != nil {
			b.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			b.EndDate = *update.EndDate
		}
		return nil
	}
	return finance.ErrNotFound
}

func (t *budgetTable) AddLimit(_ context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, b := range t.s.budgets {
		if b.UserID == userID && b.ID == id {
			b.LimitAmount = b.LimitAmount.Add(delta)
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *budgetTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, b := range t.s.budgets {
		if b.UserID == userID && b.ID == id {
			t.s.budgets = append(t.s.budgets[:i], t.s.budgets[i+1:]...)
			return nil
		}
	}
	return finance.ErrNotFound
}

// --- transfers ---

type transferTable struct{ s *Store }

func (t *transferTable) FindByID(_ context.Context, userID, id uuid.UUID) (*transfer.Transfer, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tr := range t.s.transfers {
		if tr.UserID == userID && tr.ID == id {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *transferTable) List(_ context.Context, userID uuid.UUID, filter *transfer.TransferFilter) ([]*transfer.Transfer, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*transfer.Transfer
	for _, tr := range t.s.transfers {
		if tr.UserID != userID {
			continue
		}
		if filter != nil && filter.Status != nil && tr.Status != *filter.Status {
			continue
		}
		cp := *tr
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func (t *transferTable) FindPendingForBudgets(_ context.Context, userID, fromBudgetID, toBudgetID uuid.UUID) (*transfer.Transfer, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tr := range t.s.transfers {
		if tr.UserID == userID && tr.FromBudgetID == fromBudgetID &&
			tr.ToBudgetID == toBudgetID && tr.Status == finance.TransferPending {
			cp := *tr
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *transferTable) Insert(_ context.Context, create *transfer.TransferCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	requestedAt := create.RequestedAt
	if requestedAt.IsZero() {
		requestedAt = t.s.now()
	}
	tr := &transfer.Transfer{
		ID:               newID(),
		UserID:           create.UserID,
		FromBudgetID:     create.FromBudgetID,
		ToBudgetID:       create.ToBudgetID,
		FromCategoryName: create.FromCategoryName,
		ToCategoryName:   create.ToCategoryName,
		Amount:           create.Amount,
		Status:           finance.TransferPending,
		Suggested:        create.Suggested,
		RequestedAt:      requestedAt,
		CreatedAt:        t.s.now(),
	}
	t.s.transfers = append(t.s.transfers, tr)
	return tr.ID, nil
}

func (t *transferTable) MarkResponded(_ context.Context, userID, id uuid.UUID, status finance.TransferStatus, at time.Time) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, tr := range t.s.transfers {
		if tr.UserID == userID && tr.ID == id {
			if tr.Status != finance.TransferPending {
				return finance.ErrAlreadyProcessed
			}
			tr.Status = status
			tr.RespondedAt.Time = at
			tr.RespondedAt.Valid = true
			return nil
		}
	}
	return finance.ErrAlreadyProcessed
}

// --- notifications ---

type notificationTable struct{ s *Store }

func (t *notificationTable) FindByID(_ context.Context, userID, id uuid.UUID) (*notification.Notification, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, n := range t.s.notifications {
		if n.UserID == userID && n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, finance.ErrNotFound
}

func (t *notificationTable) List(_ context.Context, userID uuid.UUID, filter *notification.NotificationFilter) ([]*notification.Notification, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var out []*notification.Notification
	for _, n := range t.s.notifications {
		if n.UserID != userID {
			continue
		}
		if filter != nil && filter.UnreadOnly && n.Read {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (t *notificationTable) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var n int64
	for _, nt := range t.s.notifications {
		if nt.UserID == userID && !nt.Read {
			n++
		}
	}
	return n, nil
}

func (t *notificationTable) ExistsForBudgetOnDay(_ context.Context, userID, budgetID uuid.UUID, day time.Time) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	for _, n := range t.s.notifications {
		if n.UserID == userID && n.BudgetID.Valid && n.BudgetID.UUID == budgetID &&
			!n.CreatedAt.Before(dayStart) && n.CreatedAt.Before(dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (t *notificationTable) Insert(_ context.Context, create *notification.NotificationCreate) (uuid.UUID, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	n := &notification.Notification{
		ID:        newID(),
		UserID:    create.UserID,
		Type:      create.Type,
		Title:     create.Title,
		Message:   create.Message,
		BudgetID:  create.BudgetID,
		Payload:   create.Payload,
		CreatedAt: t.s.now(),
	}
	t.s.notifications = append(t.s.notifications, n)
	return n.ID, nil
}

func (t *notificationTable) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, n := range t.s.notifications {
		if n.UserID == userID && n.ID == id {
			n.Read = true
			return nil
		}
	}
	return finance.ErrNotFound
}

func (t *notificationTable) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var updated int64
	for _, n := range t.s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			updated++
		}
	}
	return updated, nil
}

func (t *notificationTable) DeleteRead(_ context.Context, userID uuid.UUID) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var kept []*notification.Notification
	var deleted int64
	for _, n := range t.s.notifications {
		if n.UserID == userID && n.Read {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	t.s.notifications = kept
	return deleted, nil
}

func (t *notificationTable) Delete(_ context.Context, userID, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, n := range t.s.notifications {
		if n.UserID == userID && n.ID == id {
			t.s.notifications = append(t.s.notifications[:i], t.s.notifications[i+1:]...)
			return nil
		}
	}
	return finance.ErrNotFound
}
