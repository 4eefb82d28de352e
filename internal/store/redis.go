package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"evergrove/internal/engine"
)

const keyPrefix = "evergrove:game:"

// Redis stores snapshots in Redis with a TTL, surviving server
// restarts and allowing several server instances to share games.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(addr, password string, db int, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Ping verifies connectivity at startup.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Save(ctx context.Context, gameID string, snap *engine.GameSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+gameID, data, r.ttl).Err()
}

func (r *Redis) Load(ctx context.Context, gameID string) (*engine.GameSnapshot, error) {
	data, err := r.client.Get(ctx, keyPrefix+gameID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap engine.GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *Redis) Delete(ctx context.Context, gameID string) error {
	return r.client.Del(ctx, keyPrefix+gameID).Err()
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
