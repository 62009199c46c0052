// Package wallet implements the wallet registry: one wallet per
// (user, currency) pair, balances starting at zero.
package wallet

import (
	"context"

	"github.com/google/uuid"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
	"cryptowallet/internal/money"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/repositories/cache"
)

type Service interface {
	Create(ctx context.Context, ownerID uint, input models.CreateWalletInput) (*models.Wallet, error)
	Get(ctx context.Context, id uint) (*models.Wallet, error)
	List(ctx context.Context, filter repositories.WalletFilter, skip, limit int) ([]models.Wallet, error)
	Update(ctx context.Context, actorID, id uint, input models.UpdateWalletInput) (*models.Wallet, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type service struct {
	repo         repositories.WalletRepository
	currencyRepo repositories.CurrencyRepository
	txnRepo      repositories.TransactionRepository
	cache        *cache.CacheService
}

// NewService creates a wallet service. cache may be nil.
func NewService(
	repo repositories.WalletRepository,
	currencyRepo repositories.CurrencyRepository,
	txnRepo repositories.TransactionRepository,
	cacheSvc *cache.CacheService,
) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if currencyRepo == nil {
		panic("currency repository is required")
	}
	if txnRepo == nil {
		panic("transaction repository is required")
	}
	return &service{
		repo:         repo,
		currencyRepo: currencyRepo,
		txnRepo:      txnRepo,
		cache:        cacheSvc,
	}
}

func (s *service) Create(ctx context.Context, ownerID uint, input models.CreateWalletInput) (*models.Wallet, error) {
	if _, err := s.currencyRepo.GetByID(ctx, input.CurrencyID); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByUserAndCurrency(ctx, ownerID, input.CurrencyID); err == nil {
		return nil, domain.ErrDuplicateWallet
	}

	address := input.Address
	if address == "" {
		address = uuid.NewString()
	}

	wallet := &models.Wallet{
		UserID:     ownerID,
		CurrencyID: input.CurrencyID,
		Address:    address,
	}
	// The unique index backstops the pre-check under concurrent creates
	if err := s.repo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Wallet, error) {
	if s.cache != nil {
		if wallet, hit := s.cache.GetWallet(ctx, id); hit {
			return wallet, nil
		}
	}

	wallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetWallet(ctx, wallet)
	}
	return wallet, nil
}

func (s *service) List(ctx context.Context, filter repositories.WalletFilter, skip, limit int) ([]models.Wallet, error) {
	return s.repo.List(ctx, filter, skip, limit)
}

func (s *service) Update(ctx context.Context, actorID, id uint, input models.UpdateWalletInput) (*models.Wallet, error) {
	// Lock the row for the whole read-modify-write so a concurrent
	// settlement cannot be overwritten with a stale balance.
	var out *models.Wallet
	err := s.txnRepo.ExecuteInTransaction(ctx, func(_ repositories.TransactionRepository, wallets repositories.WalletRepository) error {
		wallet, err := wallets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if wallet.UserID != actorID {
			return domain.ErrForbidden
		}

		if input.Address != nil {
			wallet.Address = *input.Address
		}
		if input.Balance != nil {
			if err := money.Validate(*input.Balance, money.CryptoScale); err != nil {
				return err
			}
			wallet.Balance = *input.Balance
		}

		out = wallet
		return wallets.Save(ctx, wallet)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetWallet(ctx, out)
	}
	return out, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	wallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wallet.UserID != actorID {
		return domain.ErrForbidden
	}

	// Null out wallet references on transactions and delete atomically;
	// the referencing records survive as historical entries.
	err = s.txnRepo.ExecuteInTransaction(ctx, func(txns repositories.TransactionRepository, wallets repositories.WalletRepository) error {
		if err := txns.ClearWalletRefs(ctx, id); err != nil {
			return err
		}
		return wallets.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateWallet(ctx, id)
	}
	return nil
}
