// Package session реализует реестр сессий: отображение непрозрачного токена
// на аутентифицированную идентичность пользователя.
//
// Токены генерируются через crypto/rand (UUIDv4) и уникальны в пределах реестра.
// Нулевой TTL означает, что сессия живёт до явного Revoke или перезапуска
// (для MemoryRegistry) либо до удаления ключа (для RedisRegistry).
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

// ErrTokenCollision возвращается, если не удалось подобрать уникальный токен.
var ErrTokenCollision = errors.New("could not generate unique session token")

// maxTokenAttempts ограничивает число попыток генерации уникального токена.
const maxTokenAttempts = 3

// Registry описывает операции реестра сессий.
type Registry interface {
	// Create создаёт сессию для identity и возвращает её токен.
	Create(ctx context.Context, identity models.Identity) (string, error)
	// Resolve возвращает identity по токену; found=false, если сессии нет.
	Resolve(ctx context.Context, token string) (identity models.Identity, found bool, err error)
	// Revoke удаляет сессию. Повторный вызов не является ошибкой.
	Revoke(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.NewString()
}
