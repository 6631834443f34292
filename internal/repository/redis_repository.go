package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/vespa-storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis stores snapshots under "<prefix>:<ownerID>:<key>".
// A zero ttl keeps snapshots forever.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) port.SnapshotStore {
	return &redisRepository{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (r *redisRepository) redisKey(ownerID, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, ownerID, key)
}

func (r *redisRepository) Load(ctx context.Context, ownerID, key string) ([]byte, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return nil, false, err
	}

	payload, err := r.client.Get(ctx, r.redisKey(ownerID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("client.Get: %w", err)
	}

	return payload, true, nil
}

func (r *redisRepository) Save(ctx context.Context, ownerID, key string, payload []byte) error {
	if err := validatePayload(ownerID, key, payload); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.redisKey(ownerID, key), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, ownerID, key string) (bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return false, err
	}

	n, err := r.client.Del(ctx, r.redisKey(ownerID, key)).Result()
	if err != nil {
		return false, fmt.Errorf("client.Del: %w", err)
	}

	return n > 0, nil
}
