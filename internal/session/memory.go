package session

import (
	"context"
	"sync"
	"time"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

type memoryEntry struct {
	identity  models.Identity
	expiresAt time.Time // нулевое значение — без срока
}

// MemoryRegistry хранит сессии в памяти процесса под мьютексом.
// Все сессии теряются при перезапуске.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryRegistry создаёт пустой реестр. ttl <= 0 отключает истечение сессий.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create создаёт сессию и возвращает новый токен.
func (m *MemoryRegistry) Create(ctx context.Context, identity models.Identity) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	entry := memoryEntry{identity: identity}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for range maxTokenAttempts {
		token := newToken()
		if _, exists := m.sessions[token]; exists {
			continue
		}
		m.sessions[token] = entry
		return token, nil
	}
	return "", ErrTokenCollision
}

// Resolve возвращает identity по токену. Истёкшие сессии удаляются.
func (m *MemoryRegistry) Resolve(ctx context.Context, token string) (models.Identity, bool, error) {
	if err := ctx.Err(); err != nil {
		return models.Identity{}, false, err
	}
	m.mu.RLock()
	entry, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return models.Identity{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		m.mu.Lock()
		if current, still := m.sessions[token]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(m.sessions, token)
		}
		m.mu.Unlock()
		return models.Identity{}, false, nil
	}
	return entry.identity, true, nil
}

// Revoke удаляет сессию, если она есть.
func (m *MemoryRegistry) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

// Len возвращает количество сессий в реестре, включая ещё не вычищенные истёкшие.
func (m *MemoryRegistry) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
