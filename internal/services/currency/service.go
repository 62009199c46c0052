// Package currency manages the cryptocurrency reference registry. Entries
// are read-mostly and cached in Redis; the transaction lifecycle never
// mutates them.
package currency

import (
	"context"

	"cryptowallet/internal/models"
	"cryptowallet/internal/money"
	"cryptowallet/internal/repositories/cache"

	"cryptowallet/internal/repositories"
)

type Service interface {
	List(ctx context.Context) ([]models.Currency, error)
	Get(ctx context.Context, id uint) (*models.Currency, error)
	Create(ctx context.Context, input models.CreateCurrencyInput) (*models.Currency, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo  repositories.CurrencyRepository
	cache *cache.CacheService
}

// NewService creates a currency service. cache may be nil.
func NewService(repo repositories.CurrencyRepository, cacheSvc *cache.CacheService) Service {
	if repo == nil {
		panic("currency repository is required")
	}
	return &service{repo: repo, cache: cacheSvc}
}

func (s *service) List(ctx context.Context) ([]models.Currency, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id uint) (*models.Currency, error) {
	if s.cache != nil {
		if currency, hit := s.cache.GetCurrency(ctx, id); hit {
			return currency, nil
		}
	}

	currency, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetCurrency(ctx, currency)
	}
	return currency, nil
}

func (s *service) Create(ctx context.Context, input models.CreateCurrencyInput) (*models.Currency, error) {
	if err := money.Validate(input.USDValue, money.CryptoScale); err != nil {
		return nil, err
	}

	currency := &models.Currency{
		Name:     input.Name,
		Symbol:   input.Symbol,
		Network:  input.Network,
		USDValue: input.USDValue,
	}
	if err := s.repo.Create(ctx, currency); err != nil {
		return nil, err
	}
	return currency, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateCurrency(ctx, id)
	}
	return nil
}
