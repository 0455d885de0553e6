package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-server/internal/finance"
	"github.com/carson-networks/finance-server/internal/storage"
	storagetransfer "github.com/carson-networks/finance-server/internal/storage/transfer"
)

// Transfer represents a budget transfer in the service layer.
type Transfer struct {
	ID           uuid.UUID
	FromBudgetID uuid.UUID
	ToBudgetID   uuid.UUID
	FromCategory string
	ToCategory   string
	Amount       decimal.Decimal
	Status       finance.TransferStatus
	Suggested    bool
	RequestedAt  time.Time
	RespondedAt  *time.Time
}

// TransferService handles transfer read logic.
type TransferService struct {
	storage *storage.Storage
}

// NewTransferService creates a new TransferService.
func NewTransferService(store *storage.Storage) *TransferService {
	return &TransferService{storage: store}
}

// History returns every transfer newest-first.
func (s *TransferService) History(ctx context.Context, userID uuid.UUID) ([]Transfer, error) {
	return s.list(ctx, userID, nil)
}

// Pending returns transfers still awaiting a response.
func (s *TransferService) Pending(ctx context.Context, userID uuid.UUID) ([]Transfer, error) {
	pending := finance.TransferPending
	return s.list(ctx, userID, &pending)
}

func (s *TransferService) list(ctx context.Context, userID uuid.UUID, status *finance.TransferStatus) ([]Transfer, error) {
	rows, err := s.storage.Transfers.List(ctx, userID, &storagetransfer.TransferFilter{Status: status})
	if err != nil {
		return nil, err
	}
	transfers := make([]Transfer, len(rows))
	for i, row := range rows {
		transfers[i] = transferFromStorage(row)
	}
	return transfers, nil
}

func transferFromStorage(row *storagetransfer.Transfer) Transfer {
	t := Transfer{
		ID:           row.ID,
		FromBudgetID: row.FromBudgetID,
		ToBudgetID:   row.ToBudgetID,
		FromCategory: row.FromCategoryName,
		ToCategory:   row.ToCategoryName,
		Amount:       row.Amount,
		Status:       row.Status,
		Suggested:    row.Suggested,
		RequestedAt:  row.RequestedAt,
	}
	if row.RespondedAt.Valid {
		at := row.RespondedAt.Time
		t.RespondedAt = &at
	}
	return t
}
