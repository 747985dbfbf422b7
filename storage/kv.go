package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/go-redis/redis/v8"
)

const (
	snapshotKeyPrefix     = "order-details:"
	customerInfoKeyPrefix = "customer-info:"
)

// RedisStore keeps the per-shopper order snapshot and the saved customer
// info as single JSON blobs.
type RedisStore struct {
	client      *redis.Client
	snapshotTTL time.Duration
}

// NewRedisStore keeps snapshots for snapshotTTL; zero means no expiry.
func NewRedisStore(client *redis.Client, snapshotTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, snapshotTTL: snapshotTTL}
}

func (s *RedisStore) SaveSnapshot(ctx context.Context, shopperID string, snap models.OrderSnapshot) error {
	return s.putJSON(ctx, snapshotKeyPrefix+shopperID, snap, s.snapshotTTL)
}

func (s *RedisStore) LoadSnapshot(ctx context.Context, shopperID string) (models.OrderSnapshot, bool, error) {
	var snap models.OrderSnapshot
	ok, err := s.getJSON(ctx, snapshotKeyPrefix+shopperID, &snap)
	return snap, ok, err
}

func (s *RedisStore) LoadCustomerInfo(ctx context.Context, shopperID string) (models.ShippingForm, bool, error) {
	var form models.ShippingForm
	ok, err := s.getJSON(ctx, customerInfoKeyPrefix+shopperID, &form)
	return form, ok, err
}

func (s *RedisStore) SaveCustomerInfo(ctx context.Context, shopperID string, form models.ShippingForm) error {
	return s.putJSON(ctx, customerInfoKeyPrefix+shopperID, form, 0)
}

func (s *RedisStore) ClearCustomerInfo(ctx context.Context, shopperID string) error {
	if err := s.client.Del(ctx, customerInfoKeyPrefix+shopperID).Err(); err != nil {
		return fmt.Errorf("delete customer info: %w", err)
	}
	return nil
}

func (s *RedisStore) putJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
