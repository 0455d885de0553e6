package wallet

import "github.com/carson-networks/finance-server/internal/service"

// Wallet is the API response model for a wallet.
type Wallet struct {
	ID                string `json:"id" doc:"Wallet UUID"`
	Name              string `json:"name" doc:"Display name"`
	Type              string `json:"type" doc:"Wallet kind: cash, bank, credit or saving"`
	Currency          string `json:"currency" doc:"ISO currency code"`
	Balance           string `json:"balance" doc:"Current decimal balance"`
	ExcludedFromTotal bool   `json:"excludedFromTotal" doc:"Left out of the combined balance when true"`
}

func fromService(w service.Wallet) Wallet {
	return Wallet{
		ID:                w.ID.String(),
		Name:              w.Name,
		Type:              string(w.Type),
		Currency:          w.Currency,
		Balance:           w.Balance.String(),
		ExcludedFromTotal: w.ExcludedFromTotal,
	}
}
