package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

func TestMemoryRegistry_CreateResolveRevoke(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(0)
	identity := models.Identity{Email: "alice@example.com"}

	token, err := reg.Create(ctx, identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, found, err := reg.Resolve(ctx, token)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, identity, got)

	require.NoError(t, reg.Revoke(ctx, token))
	require.NoError(t, reg.Revoke(ctx, token))

	_, found, err = reg.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, reg.Len())
}

func TestMemoryRegistry_ResolveUnknownToken(t *testing.T) {
	reg := NewMemoryRegistry(0)

	_, found, err := reg.Resolve(context.Background(), "no-such-token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryRegistry_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(0)
	identity := models.Identity{Email: "bob@example.com"}

	seen := make(map[string]struct{})
	for range 100 {
		token, err := reg.Create(ctx, identity)
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
	assert.Equal(t, 100, reg.Len())
}

func TestMemoryRegistry_TTL(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(time.Hour)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	token, err := reg.Create(ctx, models.Identity{Email: "carol@example.com"})
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, found, err := reg.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)

	now = now.Add(time.Minute)
	_, found, err = reg.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, reg.Len())
}

func TestMemoryRegistry_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(0)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	token, err := reg.Create(ctx, models.Identity{Email: "dave@example.com"})
	require.NoError(t, err)

	now = now.AddDate(10, 0, 0)
	_, found, err := reg.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryRegistry_CanceledContext(t *testing.T) {
	reg := NewMemoryRegistry(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reg.Create(ctx, models.Identity{Email: "x@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryRegistry_Concurrent(t *testing.T) {
	ctx := context.Background()
	reg := NewMemoryRegistry(0)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := reg.Create(ctx, models.Identity{Email: "concurrent@example.com"})
			if !assert.NoError(t, err) {
				return
			}
			_, found, err := reg.Resolve(ctx, token)
			assert.NoError(t, err)
			assert.True(t, found)
			assert.NoError(t, reg.Revoke(ctx, token))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, reg.Len())
}
