package session

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

const keyPrefix = "session:"

// Store — хранилище ключ-значение, на котором построен RedisRegistry.
type Store interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// RedisRegistry хранит сессии во внешнем хранилище, поэтому они переживают
// перезапуск сервиса. Срок жизни задаётся TTL ключа.
type RedisRegistry struct {
	store Store
	ttl   time.Duration
}

// NewRedisRegistry создаёт реестр поверх store. ttl <= 0 — ключи без срока.
func NewRedisRegistry(store Store, ttl time.Duration) *RedisRegistry {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisRegistry{store: store, ttl: ttl}
}

// Create сохраняет identity под новым уникальным токеном.
func (r *RedisRegistry) Create(ctx context.Context, identity models.Identity) (string, error) {
	const op = "session.RedisRegistry.Create"
	for range maxTokenAttempts {
		token := newToken()
		ok, err := r.store.SetNX(ctx, keyPrefix+token, identity, r.ttl)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if ok {
			return token, nil
		}
	}
	return "", fmt.Errorf("%s: %w", op, ErrTokenCollision)
}

// Resolve читает identity по токену.
func (r *RedisRegistry) Resolve(ctx context.Context, token string) (models.Identity, bool, error) {
	const op = "session.RedisRegistry.Resolve"
	var identity models.Identity
	found, err := r.store.Get(ctx, keyPrefix+token, &identity)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return models.Identity{}, false, nil
	}
	return identity, true, nil
}

// Revoke удаляет ключ сессии.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	const op = "session.RedisRegistry.Revoke"
	if err := r.store.Invalidate(ctx, keyPrefix+token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
