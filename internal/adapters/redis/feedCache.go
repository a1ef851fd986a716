package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	postPort "chirp/internal/ports/post"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// FeedGenKey counts feed invalidations
	FeedGenKey = "feed:gen"
	// feedPagePrefix + generation holds the JSON of that generation's newest page
	feedPagePrefix = "feed:latest:"
)

// FeedPageKey is the key of the page cached for gen
func FeedPageKey(gen int64) string {
	return feedPagePrefix + strconv.FormatInt(gen, 10)
}

// FeedCacheRedis caches the assembled timeline page. Every mutation bumps
// FeedGenKey, which orphans pages filled for older generations; their TTL
// cleans them up.
type FeedCacheRedis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewFeedCacheRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *FeedCacheRedis {
	return &FeedCacheRedis{
		Client: client,
		TTL:    ttl,
		Logger: logger,
	}
}

func (r *FeedCacheRedis) Get(ctx context.Context) ([]*postPort.PostDTO, int64, bool, error) {
	gen, err := r.Client.Get(ctx, FeedGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := r.Client.Get(ctx, FeedPageKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	var posts []*postPort.PostDTO
	if err := json.Unmarshal(raw, &posts); err != nil {
		// drop the unreadable entry so the next read repopulates it
		r.Logger.Warn("⚠️ discarding corrupt feed cache entry", zap.Int64("gen", gen), zap.Error(err))
		_ = r.Client.Del(ctx, FeedPageKey(gen)).Err()
		return nil, gen, false, nil
	}
	r.Logger.Debug("feed cache hit", zap.Int64("gen", gen), zap.Int("posts", len(posts)))
	return posts, gen, true, nil
}

func (r *FeedCacheRedis) Set(ctx context.Context, gen int64, posts []*postPort.PostDTO) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, FeedPageKey(gen), raw, r.TTL).Err()
}

func (r *FeedCacheRedis) Invalidate(ctx context.Context) error {
	return r.Client.Incr(ctx, FeedGenKey).Err()
}

// NopFeedCache is used when no Redis address is configured
type NopFeedCache struct{}

func (NopFeedCache) Get(ctx context.Context) ([]*postPort.PostDTO, int64, bool, error) {
	return nil, 0, false, nil
}

func (NopFeedCache) Set(ctx context.Context, gen int64, posts []*postPort.PostDTO) error { return nil }

func (NopFeedCache) Invalidate(ctx context.Context) error { return nil }
