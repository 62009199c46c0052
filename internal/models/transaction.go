package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeTransfer TransactionType = "Transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeTransfer
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusCompleted TransactionStatus = "Completed"
	StatusFailed    TransactionStatus = "Failed"
	StatusCancelled TransactionStatus = "Cancelled"
)

// Valid reports whether s is a known lifecycle status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions.
func (s TransactionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Transaction records a transfer intent. Source and destination wallets are
// independently optional; totals are derived, never user-supplied.
type Transaction struct {
	ID             uint              `gorm:"primarykey" json:"id"`
	UserID         uint              `gorm:"not null;index" json:"usuario_id"`
	CurrencyID     uint              `gorm:"not null;index" json:"cryptomoneda_id"`
	SourceWalletID *uint             `json:"wallet_origen_id,omitempty"`
	DestWalletID   *uint             `json:"wallet_destino_id,omitempty"`
	Type           TransactionType   `gorm:"not null" json:"tipo"`
	Status         TransactionStatus `gorm:"not null;default:'Pending'" json:"estado"`
	Amount         decimal.Decimal   `gorm:"type:decimal(18,8);not null" json:"cantidad"`
	UnitPrice      *decimal.Decimal  `gorm:"type:decimal(18,8)" json:"precio_unitario,omitempty"`
	TotalUSD       *decimal.Decimal  `gorm:"type:decimal(18,2)" json:"total_usd,omitempty"`
	Fee            decimal.Decimal   `gorm:"type:decimal(18,8);default:0" json:"comision"`
	Hash           *string           `gorm:"size:255" json:"hash_transaccion,omitempty"`
	DestAddress    *string           `gorm:"size:255" json:"direccion_destino,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
}

type CreateTransactionInput struct {
	CurrencyID     uint             `json:"cryptomoneda_id"`
	SourceWalletID *uint            `json:"wallet_origen_id"`
	DestWalletID   *uint            `json:"wallet_destino_id"`
	Type           TransactionType  `json:"tipo"`
	Amount         decimal.Decimal  `json:"cantidad"`
	UnitPrice      *decimal.Decimal `json:"precio_unitario"`
	DestAddress    *string          `json:"direccion_destino"`
}

// UpdateTransactionInput is an enumerated partial update naming exactly the
// mutable transaction fields; only non-nil fields are applied.
type UpdateTransactionInput struct {
	Status      *TransactionStatus `json:"estado"`
	Hash        *string            `json:"hash_transaccion"`
	CompletedAt *time.Time         `json:"completed_at"`
}
