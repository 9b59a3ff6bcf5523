package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "folio:revoked:"

// revokedKey stores a digest so raw tokens never sit in Redis.
func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedPrefix + hex.EncodeToString(sum[:])
}

// RedisBlacklist shares logouts between server instances. An entry lives
// exactly as long as the token it revokes would have.
type RedisBlacklist struct {
	rdb *redis.Client
}

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist { return &RedisBlacklist{rdb: rdb} }

// Revoke is a no-op for a non-positive ttl: the token has expired anyway.
func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.rdb.SetArgs(ctx, revokedKey(token), time.Now().UTC().Format(time.RFC3339), redis.SetArgs{TTL: ttl}).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.rdb.Exists(ctx, revokedKey(token)).Result()
	return n > 0, err
}
