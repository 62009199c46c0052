package transaction

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "cryptowallet/internal/errors"
	"cryptowallet/internal/models"
	"cryptowallet/internal/repositories"
)

// fakeWalletRepo is an in-memory wallet store. Reads hand out copies so a
// caller's mutations only land through Save, mirroring row semantics.
type fakeWalletRepo struct {
	wallets map[uint]*models.Wallet
}

func newFakeWalletRepo(wallets ...*models.Wallet) *fakeWalletRepo {
	r := &fakeWalletRepo{wallets: make(map[uint]*models.Wallet)}
	for _, w := range wallets {
		cp := *w
		r.wallets[w.ID] = &cp
	}
	return r
}

func (r *fakeWalletRepo) Create(_ context.Context, wallet *models.Wallet) error {
	cp := *wallet
	r.wallets[wallet.ID] = &cp
	return nil
}

func (r *fakeWalletRepo) GetByID(_ context.Context, id uint) (*models.Wallet, error) {
	w, ok := r.wallets[id]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWalletRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Wallet, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeWalletRepo) GetByUserAndCurrency(_ context.Context, userID, currencyID uint) (*models.Wallet, error) {
	for _, w := range r.wallets {
		if w.UserID == userID && w.CurrencyID == currencyID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (r *fakeWalletRepo) List(_ context.Context, _ repositories.WalletFilter, _, _ int) ([]models.Wallet, error) {
	out := make([]models.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWalletRepo) Save(_ context.Context, wallet *models.Wallet) error {
	cp := *wallet
	r.wallets[wallet.ID] = &cp
	return nil
}

func (r *fakeWalletRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.wallets[id]; !ok {
		return domain.ErrWalletNotFound
	}
	delete(r.wallets, id)
	return nil
}

type fakeTxnRepo struct {
	txns    map[uint]*models.Transaction
	nextID  uint
	wallets *fakeWalletRepo
}

func newFakeTxnRepo(wallets *fakeWalletRepo) *fakeTxnRepo {
	return &fakeTxnRepo{txns: make(map[uint]*models.Transaction), nextID: 1, wallets: wallets}
}

func (r *fakeTxnRepo) Create(_ context.Context, txn *models.Transaction) error {
	txn.ID = r.nextID
	r.nextID++
	cp := *txn
	r.txns[txn.ID] = &cp
	return nil
}

func (r *fakeTxnRepo) GetByID(_ context.Context, id uint) (*models.Transaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *txn
	return &cp, nil
}

func (r *fakeTxnRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTxnRepo) List(_ context.Context, filter repositories.TransactionFilter, offset, limit int) ([]models.Transaction, error) {
	matched := make([]models.Transaction, 0, len(r.txns))
	for _, txn := range r.txns {
		if filter.UserID != nil && txn.UserID != *filter.UserID {
			continue
		}
		if filter.CurrencyID != nil && txn.CurrencyID != *filter.CurrencyID {
			continue
		}
		if filter.Type != nil && txn.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && txn.Status != *filter.Status {
			continue
		}
		matched = append(matched, *txn)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *fakeTxnRepo) Save(_ context.Context, txn *models.Transaction) error {
	cp := *txn
	r.txns[txn.ID] = &cp
	return nil
}

func (r *fakeTxnRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.txns[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(r.txns, id)
	return nil
}

func (r *fakeTxnRepo) ClearWalletRefs(_ context.Context, walletID uint) error {
	for _, txn := range r.txns {
		if txn.SourceWalletID != nil && *txn.SourceWalletID == walletID {
			txn.SourceWalletID = nil
		}
		if txn.DestWalletID != nil && *txn.DestWalletID == walletID {
			txn.DestWalletID = nil
		}
	}
	return nil
}

func (r *fakeTxnRepo) ExecuteInTransaction(_ context.Context, fn func(txns repositories.TransactionRepository, wallets repositories.WalletRepository) error) error {
	return fn(r, r.wallets)
}

type fakeCurrencyRepo struct {
	currencies map[uint]*models.Currency
}

func newFakeCurrencyRepo(ids ...uint) *fakeCurrencyRepo {
	r := &fakeCurrencyRepo{currencies: make(map[uint]*models.Currency)}
	for _, id := range ids {
		r.currencies[id] = &models.Currency{ID: id, Name: "Bitcoin", Symbol: "BTC"}
	}
	return r
}

func (r *fakeCurrencyRepo) Create(_ context.Context, currency *models.Currency) error {
	r.currencies[currency.ID] = currency
	return nil
}

func (r *fakeCurrencyRepo) GetByID(_ context.Context, id uint) (*models.Currency, error) {
	c, ok := r.currencies[id]
	if !ok {
		return nil, domain.ErrCurrencyNotFound
	}
	return c, nil
}

func (r *fakeCurrencyRepo) List(_ context.Context) ([]models.Currency, error) {
	out := make([]models.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCurrencyRepo) Delete(_ context.Context, id uint) error {
	delete(r.currencies, id)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type fixture struct {
	svc     *service
	txns    *fakeTxnRepo
	wallets *fakeWalletRepo
	clock   time.Time
}

func newFixture(t *testing.T, wallets ...*models.Wallet) *fixture {
	t.Helper()
	walletRepo := newFakeWalletRepo(wallets...)
	txnRepo := newFakeTxnRepo(walletRepo)
	svc := NewService(txnRepo, walletRepo, newFakeCurrencyRepo(1), nil).(*service)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return &fixture{svc: svc, txns: txnRepo, wallets: walletRepo, clock: clock}
}

func (f *fixture) seedPending(t *testing.T, txn models.Transaction) uint {
	t.Helper()
	txn.Status = models.StatusPending
	if txn.Type == "" {
		txn.Type = models.TypeTransfer
	}
	require.NoError(t, f.txns.Create(context.Background(), &txn))
	return txn.ID
}

func TestCreateDerivesTotal(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
		CurrencyID: 1,
		Type:       models.TypeTransfer,
		Amount:     decimal.RequireFromString("1.5"),
		UnitPrice:  decPtr("50000.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, models.StatusPending, got.Status)
	require.NotNil(t, got.TotalUSD)
	assert.True(t, got.TotalUSD.Equal(decimal.RequireFromString("75000.00")),
		"total = %s", got.TotalUSD)
	assert.Nil(t, got.CompletedAt)
	assert.NotZero(t, got.ID)
}

func TestCreateWithoutUnitPrice(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
		CurrencyID: 1,
		Type:       models.TypeTransfer,
		Amount:     decimal.RequireFromString("0.25"),
	})
	require.NoError(t, err)

	assert.Nil(t, got.UnitPrice)
	assert.Nil(t, got.TotalUSD)
}

func TestCreateRejectsBadAmounts(t *testing.T) {
	f := newFixture(t)

	for _, amount := range []string{"0", "-1.5", "0.000000001"} {
		_, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
			CurrencyID: 1,
			Type:       models.TypeTransfer,
			Amount:     decimal.RequireFromString(amount),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %s", amount)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	f := newFixture(t)

	for _, typ := range []models.TransactionType{"", "Bogus", "transfer"} {
		_, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
			CurrencyID: 1,
			Type:       typ,
			Amount:     decimal.RequireFromString("1"),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransactionType, "type %q", typ)
	}
}

func TestCreateUnknownCurrency(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
		CurrencyID: 99,
		Type:       models.TypeTransfer,
		Amount:     decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}

func TestCreateUnknownWallet(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), 7, models.CreateTransactionInput{
		CurrencyID:     1,
		SourceWalletID: uintPtr(42),
		Type:           models.TypeTransfer,
		Amount:         decimal.RequireFromString("1"),
	})
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestTransitionCompletedSettles(t *testing.T) {
	f := newFixture(t,
		&models.Wallet{ID: 10, UserID: 7, CurrencyID: 1, Balance: decimal.RequireFromString("2.0")},
		&models.Wallet{ID: 11, UserID: 8, CurrencyID: 1, Balance: decimal.RequireFromString("0.5")},
	)
	id := f.seedPending(t, models.Transaction{
		UserID:         7,
		CurrencyID:     1,
		SourceWalletID: uintPtr(10),
		DestWalletID:   uintPtr(11),
		Amount:         decimal.RequireFromString("1.0"),
		Fee:            decimal.RequireFromString("0.25"),
	})

	got, err := f.svc.Transition(context.Background(), 7, id, models.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, f.clock, *got.CompletedAt)

	src, _ := f.wallets.GetByID(context.Background(), 10)
	dst, _ := f.wallets.GetByID(context.Background(), 11)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("0.75")), "source = %s", src.Balance)
	assert.True(t, dst.Balance.Equal(decimal.RequireFromString("1.5")), "dest = %s", dst.Balance)
}

func TestTransitionInsufficientFunds(t *testing.T) {
	f := newFixture(t,
		&models.Wallet{ID: 10, UserID: 7, CurrencyID: 1, Balance: decimal.RequireFromString("1.0")},
		&models.Wallet{ID: 11, UserID: 8, CurrencyID: 1, Balance: decimal.Zero},
	)
	id := f.seedPending(t, models.Transaction{
		UserID:         7,
		CurrencyID:     1,
		SourceWalletID: uintPtr(10),
		DestWalletID:   uintPtr(11),
		Amount:         decimal.RequireFromString("1.0"),
		Fee:            decimal.RequireFromString("0.25"),
	})

	_, err := f.svc.Transition(context.Background(), 7, id, models.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Nothing moved, the record is still pending.
	txn, _ := f.txns.GetByID(context.Background(), id)
	assert.Equal(t, models.StatusPending, txn.Status)
	assert.Nil(t, txn.CompletedAt)
	src, _ := f.wallets.GetByID(context.Background(), 10)
	dst, _ := f.wallets.GetByID(context.Background(), 11)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("1.0")))
	assert.True(t, dst.Balance.Equal(decimal.Zero))
}

func TestTransitionExactBalance(t *testing.T) {
	f := newFixture(t,
		&models.Wallet{ID: 10, UserID: 7, CurrencyID: 1, Balance: decimal.RequireFromString("1.25")},
	)
	id := f.seedPending(t, models.Transaction{
		UserID:         7,
		CurrencyID:     1,
		SourceWalletID: uintPtr(10),
		Amount:         decimal.RequireFromString("1.0"),
		Fee:            decimal.RequireFromString("0.25"),
	})

	_, err := f.svc.Transition(context.Background(), 7, id, models.StatusCompleted)
	require.NoError(t, err)

	src, _ := f.wallets.GetByID(context.Background(), 10)
	assert.True(t, src.Balance.Equal(decimal.Zero), "source = %s", src.Balance)
}

func TestTransitionCancelledDoesNotSettle(t *testing.T) {
	f := newFixture(t,
		&models.Wallet{ID: 10, UserID: 7, CurrencyID: 1, Balance: decimal.RequireFromString("2.0")},
	)
	id := f.seedPending(t, models.Transaction{
		UserID:         7,
		CurrencyID:     1,
		SourceWalletID: uintPtr(10),
		Amount:         decimal.RequireFromString("1.0"),
	})

	got, err := f.svc.Transition(context.Background(), 7, id, models.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Nil(t, got.CompletedAt)
	src, _ := f.wallets.GetByID(context.Background(), 10)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("2.0")))
}

func TestTransitionTerminalIsFinal(t *testing.T) {
	f := newFixture(t)
	id := f.seedPending(t, models.Transaction{UserID: 7, CurrencyID: 1, Amount: decimal.RequireFromString("1")})

	_, err := f.svc.Transition(context.Background(), 7, id, models.StatusFailed)
	require.NoError(t, err)

	for _, next := range []models.TransactionStatus{
		models.StatusPending, models.StatusCompleted, models.StatusFailed, models.StatusCancelled,
	} {
		_, err := f.svc.Transition(context.Background(), 7, id, next)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "to %s", next)
	}
}

func TestTransitionForbidden(t *testing.T) {
	f := newFixture(t)
	id := f.seedPending(t, models.Transaction{UserID: 7, CurrencyID: 1, Amount: decimal.RequireFromString("1")})

	_, err := f.svc.Transition(context.Background(), 8, id, models.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	txn, _ := f.txns.GetByID(context.Background(), id)
	assert.Equal(t, models.StatusPending, txn.Status)
}

func TestTransitionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), 7, 99, models.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListFiltersByOwnerInOrder(t *testing.T) {
	f := newFixture(t)

	// Interleave two owners so the id sequence alternates.
	for i := 0; i < 6; i++ {
		owner := uint(7)
		if i%2 == 1 {
			owner = 8
		}
		f.seedPending(t, models.Transaction{UserID: owner, CurrencyID: 1, Amount: decimal.RequireFromString("1")})
	}

	owner := uint(7)
	got, err := f.svc.List(context.Background(), repositories.TransactionFilter{UserID: &owner}, 0, 100)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, txn := range got {
		assert.Equal(t, owner, txn.UserID)
		if i > 0 {
			assert.Less(t, got[i-1].ID, txn.ID)
		}
	}

	// skip/limit walk the same ordered subset.
	page, err := f.svc.List(context.Background(), repositories.TransactionFilter{UserID: &owner}, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, got[1].ID, page[0].ID)

	tail, err := f.svc.List(context.Background(), repositories.TransactionFilter{UserID: &owner}, 2, 100)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, got[2].ID, tail[0].ID)
}

func TestUpdateHashLeavesStatus(t *testing.T) {
	f := newFixture(t)
	id := f.seedPending(t, models.Transaction{UserID: 7, CurrencyID: 1, Amount: decimal.RequireFromString("1")})

	hash := "0xabc123"
	got, err := f.svc.Update(context.Background(), 7, id, models.UpdateTransactionInput{Hash: &hash})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, got.Status)
	require.NotNil(t, got.Hash)
	assert.Equal(t, hash, *got.Hash)
}

func TestUpdateStatusSettlesOnce(t *testing.T) {
	f := newFixture(t,
		&models.Wallet{ID: 10, UserID: 7, CurrencyID: 1, Balance: decimal.RequireFromString("3.0")},
	)
	id := f.seedPending(t, models.Transaction{
		UserID:         7,
		CurrencyID:     1,
		SourceWalletID: uintPtr(10),
		Amount:         decimal.RequireFromString("1.0"),
	})

	done := models.StatusCompleted
	got, err := f.svc.Update(context.Background(), 7, id, models.UpdateTransactionInput{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	first := *got.CompletedAt

	// Repeating the same status is a no-op, never a second settlement.
	_, err = f.svc.Update(context.Background(), 7, id, models.UpdateTransactionInput{Status: &done})
	require.NoError(t, err)

	src, _ := f.wallets.GetByID(context.Background(), 10)
	assert.True(t, src.Balance.Equal(decimal.RequireFromString("2.0")), "source = %s", src.Balance)
	txn, _ := f.txns.GetByID(context.Background(), id)
	assert.Equal(t, first, *txn.CompletedAt)
}

func TestUpdateCompletedAtWrittenOnce(t *testing.T) {
	f := newFixture(t)
	id := f.seedPending(t, models.Transaction{UserID: 7, CurrencyID: 1, Amount: decimal.RequireFromString("1")})

	first := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	got, err := f.svc.Update(context.Background(), 7, id, models.UpdateTransactionInput{CompletedAt: &first})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, first, *got.CompletedAt)

	second := first.Add(24 * time.Hour)
	got, err = f.svc.Update(context.Background(), 7, id, models.UpdateTransactionInput{CompletedAt: &second})
	require.NoError(t, err)
	assert.Equal(t, first, *got.CompletedAt)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	id := f.seedPending(t, models.Transaction{UserID: 7, CurrencyID: 1, Amount: decimal.RequireFromString("1")})

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 8, id), domain.ErrForbidden)
	require.NoError(t, f.svc.Delete(context.Background(), 7, id))

	_, err := f.txns.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 7, id), domain.ErrTransactionNotFound)
}
