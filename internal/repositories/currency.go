package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
)

type CurrencyRepository interface {
	Create(ctx context.Context, currency *models.Currency) error
	GetByID(ctx context.Context, id uint) (*models.Currency, error)
	List(ctx context.Context) ([]models.Currency, error)
	Delete(ctx context.Context, id uint) error
}

type currencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) Create(ctx context.Context, currency *models.Currency) error {
	if err := r.db.WithContext(ctx).Create(currency).Error; err != nil {
		return fmt.Errorf("failed to create currency: %w", err)
	}
	return nil
}

func (r *currencyRepository) GetByID(ctx context.Context, id uint) (*models.Currency, error) {
	var currency models.Currency
	if err := r.db.WithContext(ctx).First(&currency, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]models.Currency, error) {
	var currencies []models.Currency
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *currencyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Currency{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete currency: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCurrencyNotFound
	}
	return nil
}
