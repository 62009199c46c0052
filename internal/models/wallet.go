package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds a per-user, per-currency balance. At most one wallet may
// exist for a (user, currency) pair.
type Wallet struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_wallets_user_currency" json:"usuario_id"`
	CurrencyID uint            `gorm:"not null;uniqueIndex:idx_wallets_user_currency" json:"cryptomoneda_id"`
	Address    string          `gorm:"not null;size:255" json:"direccion_wallet"`
	Balance    decimal.Decimal `gorm:"type:decimal(18,8);default:0" json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Balances always start at zero
	w.Balance = decimal.Zero
	return nil
}

type CreateWalletInput struct {
	CurrencyID uint   `json:"cryptomoneda_id"`
	Address    string `json:"direccion_wallet"`
}

// UpdateWalletInput is an enumerated partial update; only non-nil fields are
// applied. Balance goes through the same validation as construction.
type UpdateWalletInput struct {
	Address *string          `json:"direccion_wallet"`
	Balance *decimal.Decimal `json:"balance"`
}
