package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crm-console/internal/model"

	"github.com/redis/go-redis/v9"
)

const redisMirrorPrefix = "crm-console:permissions:"

type redisMirror struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisMirror keeps mirrors as JSON strings that expire after ttl, so
// Prune has nothing left to do. ttl <= 0 keeps keys forever.
func NewRedisMirror(client *redis.Client, ttl time.Duration) PermissionMirror {
	return &redisMirror{redis: client, ttl: ttl}
}

type redisSnapshot struct {
	UserID      string              `json:"user_id"`
	Permissions model.PermissionSet `json:"permissions"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (r *redisMirror) key(sessionKey string) string {
	return redisMirrorPrefix + sessionKey
}

func (r *redisMirror) Load(ctx context.Context, sessionKey string) (model.PermissionSet, bool, error) {
	raw, err := r.redis.Get(ctx, r.key(sessionKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var snap redisSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false, fmt.Errorf("decode mirror: %w", err)
	}
	if snap.Permissions == nil {
		snap.Permissions = model.PermissionSet{}
	}
	return snap.Permissions, true, nil
}

func (r *redisMirror) Save(ctx context.Context, sessionKey, userID string, set model.PermissionSet) error {
	raw, err := json.Marshal(redisSnapshot{UserID: userID, Permissions: set, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	return r.redis.Set(ctx, r.key(sessionKey), raw, ttl).Err()
}

func (r *redisMirror) Delete(ctx context.Context, sessionKey string) error {
	return r.redis.Del(ctx, r.key(sessionKey)).Err()
}

func (r *redisMirror) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	iter := r.redis.Scan(ctx, 0, redisMirrorPrefix+"*", 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			n, err := r.redis.Del(ctx, batch...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	if len(batch) > 0 {
		n, err := r.redis.Del(ctx, batch...).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	return deleted, nil
}

func (r *redisMirror) Prune(context.Context, time.Time) (int64, error) {
	return 0, nil
}
