package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptowallet/internal/models"
)

// CacheService is a thin JSON cache over Redis with a default TTL.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get unmarshals the cached value into dest. The bool reports a cache hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *CacheService) GetCurrency(ctx context.Context, id uint) (*models.Currency, bool) {
	var currency models.Currency
	hit, err := s.Get(ctx, currencyKey(id), &currency)
	if err != nil || !hit {
		return nil, false
	}
	return &currency, true
}

func (s *CacheService) SetCurrency(ctx context.Context, currency *models.Currency) error {
	return s.Set(ctx, currencyKey(currency.ID), currency)
}

func (s *CacheService) InvalidateCurrency(ctx context.Context, id uint) error {
	return s.Delete(ctx, currencyKey(id))
}

func (s *CacheService) GetWallet(ctx context.Context, id uint) (*models.Wallet, bool) {
	var wallet models.Wallet
	hit, err := s.Get(ctx, walletKey(id), &wallet)
	if err != nil || !hit {
		return nil, false
	}
	return &wallet, true
}

func (s *CacheService) SetWallet(ctx context.Context, wallet *models.Wallet) error {
	return s.Set(ctx, walletKey(wallet.ID), wallet)
}

func (s *CacheService) InvalidateWallet(ctx context.Context, ids ...uint) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, walletKey(id))
	}
	return s.Delete(ctx, keys...)
}

// FlushAll clears the whole cache, used on startup.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

func currencyKey(id uint) string {
	return fmt.Sprintf("currency:%d", id)
}

func walletKey(id uint) string {
	return fmt.Sprintf("wallet:%d", id)
}
