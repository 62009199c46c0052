// Package transaction implements the transfer lifecycle engine: creation
// with derived totals, status transitions with settlement on completion, and
// owner-guarded updates and deletion.
package transaction

import (
	"context"
	"sort"
	"time"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
	"cryptowallet/internal/money"
	"cryptowallet/internal/repositories"
	"cryptowallet/internal/repositories/cache"
)

type Service interface {
	Create(ctx context.Context, initiatorID uint, input models.CreateTransactionInput) (*models.Transaction, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context, filter repositories.TransactionFilter, skip, limit int) ([]models.Transaction, error)
	// Transition moves the record to newStatus. Entering Completed settles
	// the transfer against the referenced wallets and stamps completed_at
	// exactly once.
	Transition(ctx context.Context, actorID, id uint, newStatus models.TransactionStatus) (*models.Transaction, error)
	Update(ctx context.Context, actorID, id uint, input models.UpdateTransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, actorID, id uint) error
}

type service struct {
	repo         repositories.TransactionRepository
	walletRepo   repositories.WalletRepository
	currencyRepo repositories.CurrencyRepository
	cache        *cache.CacheService
	now          func() time.Time
}

// NewService creates a transaction service. cache may be nil.
func NewService(
	repo repositories.TransactionRepository,
	walletRepo repositories.WalletRepository,
	currencyRepo repositories.CurrencyRepository,
	cacheSvc *cache.CacheService,
) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if walletRepo == nil {
		panic("wallet repository is required")
	}
	if currencyRepo == nil {
		panic("currency repository is required")
	}
	return &service{
		repo:         repo,
		walletRepo:   walletRepo,
		currencyRepo: currencyRepo,
		cache:        cacheSvc,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, initiatorID uint, input models.CreateTransactionInput) (*models.Transaction, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	if err := money.ValidatePositive(input.Amount, money.CryptoScale); err != nil {
		return nil, err
	}
	if input.UnitPrice != nil {
		if err := money.Validate(*input.UnitPrice, money.CryptoScale); err != nil {
			return nil, err
		}
	}

	if _, err := s.currencyRepo.GetByID(ctx, input.CurrencyID); err != nil {
		return nil, err
	}
	if input.SourceWalletID != nil {
		if _, err := s.walletRepo.GetByID(ctx, *input.SourceWalletID); err != nil {
			return nil, err
		}
	}
	if input.DestWalletID != nil {
		if _, err := s.walletRepo.GetByID(ctx, *input.DestWalletID); err != nil {
			return nil, err
		}
	}

	txn := &models.Transaction{
		UserID:         initiatorID,
		CurrencyID:     input.CurrencyID,
		SourceWalletID: input.SourceWalletID,
		DestWalletID:   input.DestWalletID,
		Type:           input.Type,
		Status:         models.StatusPending,
		Amount:         input.Amount,
		UnitPrice:      input.UnitPrice,
		DestAddress:    input.DestAddress,
	}

	// The USD total is derived, never taken from the caller
	if input.UnitPrice != nil {
		total := money.Total(input.Amount, *input.UnitPrice)
		txn.TotalUSD = &total
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter repositories.TransactionFilter, skip, limit int) ([]models.Transaction, error) {
	return s.repo.List(ctx, filter, skip, limit)
}

func (s *service) Transition(ctx context.Context, actorID, id uint, newStatus models.TransactionStatus) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.repo.ExecuteInTransaction(ctx, func(txns repositories.TransactionRepository, wallets repositories.WalletRepository) error {
		txn, err := txns.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if txn.UserID != actorID {
			return domain.ErrForbidden
		}
		if !CanTransition(txn.Status, newStatus) {
			return domain.ErrInvalidTransition
		}

		if newStatus == models.StatusCompleted {
			if err := s.settle(ctx, wallets, txn); err != nil {
				return err
			}
			if txn.CompletedAt == nil {
				now := s.now()
				txn.CompletedAt = &now
			}
		}

		txn.Status = newStatus
		out = txn
		return txns.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, out)
	return out, nil
}

func (s *service) Update(ctx context.Context, actorID, id uint, input models.UpdateTransactionInput) (*models.Transaction, error) {
	var out *models.Transaction
	err := s.repo.ExecuteInTransaction(ctx, func(txns repositories.TransactionRepository, wallets repositories.WalletRepository) error {
		txn, err := txns.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if txn.UserID != actorID {
			return domain.ErrForbidden
		}

		if input.Status != nil && *input.Status != txn.Status {
			if !CanTransition(txn.Status, *input.Status) {
				return domain.ErrInvalidTransition
			}
			if *input.Status == models.StatusCompleted {
				if err := s.settle(ctx, wallets, txn); err != nil {
					return err
				}
				if txn.CompletedAt == nil {
					now := s.now()
					txn.CompletedAt = &now
				}
			}
			txn.Status = *input.Status
		}
		if input.Hash != nil {
			txn.Hash = input.Hash
		}
		// completed_at is written at most once, whoever supplies it
		if input.CompletedAt != nil && txn.CompletedAt == nil {
			txn.CompletedAt = input.CompletedAt
		}

		out = txn
		return txns.Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallets(ctx, out)
	return out, nil
}

func (s *service) Delete(ctx context.Context, actorID, id uint) error {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if txn.UserID != actorID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// settle executes the business effect of a completed transfer: the source
// wallet is debited amount+fee and the destination wallet is credited the
// amount, each leg only when the wallet reference is set. Wallet rows are
// locked in ascending id order so concurrent settlements cannot deadlock.
func (s *service) settle(ctx context.Context, wallets repositories.WalletRepository, txn *models.Transaction) error {
	ids := make([]uint, 0, 2)
	if txn.SourceWalletID != nil {
		ids = append(ids, *txn.SourceWalletID)
	}
	if txn.DestWalletID != nil && (txn.SourceWalletID == nil || *txn.DestWalletID != *txn.SourceWalletID) {
		ids = append(ids, *txn.DestWalletID)
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	locked := make(map[uint]*models.Wallet, len(ids))
	for _, id := range ids {
		w, err := wallets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		locked[id] = w
	}

	if txn.SourceWalletID != nil {
		src := locked[*txn.SourceWalletID]
		debit := txn.Amount.Add(txn.Fee)
		if src.Balance.LessThan(debit) {
			return domain.ErrInsufficientFunds
		}
		src.Balance = src.Balance.Sub(debit)
	}
	if txn.DestWalletID != nil {
		locked[*txn.DestWalletID].Balance = locked[*txn.DestWalletID].Balance.Add(txn.Amount)
	}

	for _, id := range ids {
		if err := wallets.Save(ctx, locked[id]); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) invalidateWallets(ctx context.Context, txn *models.Transaction) {
	if s.cache == nil || txn == nil {
		return
	}
	ids := make([]uint, 0, 2)
	if txn.SourceWalletID != nil {
		ids = append(ids, *txn.SourceWalletID)
	}
	if txn.DestWalletID != nil {
		ids = append(ids, *txn.DestWalletID)
	}
	if len(ids) > 0 {
		_ = s.cache.InvalidateWallet(ctx, ids...)
	}
}
