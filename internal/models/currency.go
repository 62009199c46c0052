package models

import (
	"github.com/shopspring/decimal"
)

// Currency is a reference cryptocurrency entry. It is referenced by wallets
// and transactions and never mutated by the transaction lifecycle.
type Currency struct {
	ID       uint            `gorm:"primarykey" json:"id"`
	Name     string          `gorm:"not null" json:"nombre"`
	Symbol   string          `gorm:"not null;size:10" json:"simbolo"`
	Network  *string         `json:"red,omitempty"`
	USDValue decimal.Decimal `gorm:"type:decimal(18,8);default:0" json:"valor_usd"`
}

type CreateCurrencyInput struct {
	Name     string          `json:"nombre"`
	Symbol   string          `json:"simbolo"`
	Network  *string         `json:"red"`
	USDValue decimal.Decimal `json:"valor_usd"`
}
