package cards

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/keyxmakerx/wificard/internal/wifi"
)

// qrKeyPrefix namespaces cached QR images in Redis.
const qrKeyPrefix = "wificard:qr:"

// QRCache stores rendered QR PNGs keyed by payload and size. A miss is
// reported as (nil, false, nil).
type QRCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, png []byte) error
}

// cacheKey hashes the payload so credentials never appear in Redis keys.
func cacheKey(payload string, size int) string {
	sum := blake2b.Sum256([]byte(payload))
	return fmt.Sprintf("%s%d:%s", qrKeyPrefix, size, hex.EncodeToString(sum[:]))
}

// redisQRCache is the Redis-backed QRCache.
type redisQRCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQRCache creates a QRCache on the given client. Entries expire after ttl.
func NewRedisQRCache(client *redis.Client, ttl time.Duration) QRCache {
	return &redisQRCache{client: client, ttl: ttl}
}

func (c *redisQRCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading qr from redis: %w", err)
	}
	return data, true, nil
}

func (c *redisQRCache) Set(ctx context.Context, key string, png []byte) error {
	if err := c.client.Set(ctx, key, png, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing qr to redis: %w", err)
	}
	return nil
}

// noopQRCache never stores anything. Used when Redis is not configured.
type noopQRCache struct{}

// NewNoopQRCache returns a QRCache that always misses.
func NewNoopQRCache() QRCache { return noopQRCache{} }

func (noopQRCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopQRCache) Set(context.Context, string, []byte) error        { return nil }

// cachingRenderer serves renders from a QRCache and fills it on a miss.
// Cache errors are logged and otherwise ignored.
type cachingRenderer struct {
	next  wifi.QRRenderer
	cache QRCache
}

func (r *cachingRenderer) Render(ctx context.Context, payload string, opts wifi.RenderOptions) ([]byte, error) {
	// Only the default transparent, borderless style is cached.
	if opts.QuietZone {
		return r.next.Render(ctx, payload, opts)
	}

	key := cacheKey(payload, opts.Size)
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("qr cache read failed", slog.Any("error", err))
	}
	if ok {
		return data, nil
	}

	data, err = r.next.Render(ctx, payload, opts)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, data); err != nil {
		slog.Warn("qr cache write failed", slog.Any("error", err))
	}
	return data, nil
}
