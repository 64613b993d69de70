package repository

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionRepository records revoked tokens until they would have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const blacklistPrefix = "blacklist:"

type redisSessionRepository struct {
	redisClient *redis.Client
}

// NewRedisSessionRepository stores revocations as expiring Redis keys.
func NewRedisSessionRepository(redisClient *redis.Client) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

func (r *redisSessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.redisClient.Set(ctx, blacklistPrefix+tokenID, "true", ttl).Err()
}

func (r *redisSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// memorySessionRepository is used when no Redis is configured. Revocations are
// lost on restart.
type memorySessionRepository struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemorySessionRepository keeps revocations in process memory.
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{revoked: make(map[string]time.Time), now: time.Now}
}

func (r *memorySessionRepository) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.revoked {
		if !exp.After(now) {
			delete(r.revoked, id)
		}
	}
	r.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (r *memorySessionRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.revoked[tokenID]
	return ok && exp.After(r.now()), nil
}
