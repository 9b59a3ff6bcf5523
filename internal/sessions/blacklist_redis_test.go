package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisBlacklist_RevokeUntilTTL(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()
	bl := NewRedisBlacklist(client)

	ctx := context.Background()
	token := "access-token-1"
	require.NoError(t, bl.Revoke(ctx, token, 2*time.Second))

	ok, err := bl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	// advance past TTL
	m.FastForward(3 * time.Second)

	ok2, err := bl.IsRevoked(ctx, token)
	require.NoError(t, err)
	require.False(t, ok2)
}

func TestRedisBlacklist_ExpiredTokenNotStored(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()

	require.NoError(t, NewRedisBlacklist(client).Revoke(context.Background(), "old", -time.Second))
	require.False(t, m.Exists(revokedKey("old")))
}

func TestRedisBlacklist_StoresDigestOnly(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()

	require.NoError(t, NewRedisBlacklist(client).Revoke(context.Background(), "raw.jwt.value", time.Minute))
	keys := m.Keys()
	require.Len(t, keys, 1)
	require.NotContains(t, keys[0], "raw.jwt.value")
	require.Equal(t, revokedKey("raw.jwt.value"), keys[0])
}

func TestRedisBlacklist_ErrorsWhenRedisDown(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()
	m.Close()

	_, err = NewRedisBlacklist(client).IsRevoked(context.Background(), "x")
	require.Error(t, err)
}

func TestMemoryBlacklist(t *testing.T) {
	bl := NewMemoryBlacklist()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bl.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, bl.Revoke(ctx, "tok", time.Minute))
	ok, err := bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = bl.IsRevoked(ctx, "other")
	require.NoError(t, err)
	require.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	require.False(t, ok)
}
