package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
)

// TransactionFilter narrows transaction listings; nil fields match
// everything. Filters are conjunctive.
type TransactionFilter struct {
	UserID     *uint
	CurrencyID *uint
	Type       *models.TransactionType
	Status     *models.TransactionStatus
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	// GetByIDForUpdate locks the transaction row so concurrent status
	// transitions on the same record serialize.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]models.Transaction, error)
	Save(ctx context.Context, txn *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	// ClearWalletRefs nulls source/destination references to a wallet on all
	// transactions, marking them historical.
	ClearWalletRefs(ctx context.Context, walletID uint) error
	// ExecuteInTransaction runs fn against repositories bound to a single
	// database transaction; fn's error rolls everything back.
	ExecuteInTransaction(ctx context.Context, fn func(txns TransactionRepository, wallets WalletRepository) error) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) GetByIDForUpdate(ctx context.Context, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&txn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CurrencyID != nil {
		query = query.Where("currency_id = ?", *filter.CurrencyID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var txns []models.Transaction
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (r *transactionRepository) Save(ctx context.Context, txn *models.Transaction) error {
	if err := r.db.WithContext(ctx).Save(txn).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) ClearWalletRefs(ctx context.Context, walletID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("source_wallet_id = ?", walletID).
		Update("source_wallet_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear source wallet refs: %w", err)
	}
	err = r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("dest_wallet_id = ?", walletID).
		Update("dest_wallet_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear destination wallet refs: %w", err)
	}
	return nil
}

func (r *transactionRepository) ExecuteInTransaction(ctx context.Context, fn func(txns TransactionRepository, wallets WalletRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewTransactionRepository(tx), NewWalletRepository(tx))
	})
}
