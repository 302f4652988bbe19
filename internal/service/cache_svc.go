package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached video detail responses live briefly: transitions invalidate them
// eagerly, the TTL only bounds staleness after missed invalidations.
const VideoCacheTTL = 5 * time.Minute

// CacheService provides a Redis cache-aside layer for video detail lookups.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetVideo retrieves a cached video response. Returns nil if not cached or
// the cache is disabled.
func (c *CacheService) GetVideo(ctx context.Context, videoID int64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, videoKey(videoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetVideo stores a video response in cache.
func (c *CacheService) SetVideo(ctx context.Context, videoID int64, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, videoKey(videoID), b, VideoCacheTTL).Err()
}

// InvalidateVideo removes a video from cache (called after any review write).
func (c *CacheService) InvalidateVideo(ctx context.Context, videoID int64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, videoKey(videoID)).Err()
}

// InvalidateAllVideos drops every cached video response. Used after registry
// changes, which alter the host map embedded in every cached detail.
func (c *CacheService) InvalidateAllVideos(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, "video:*", 200).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("redis: invalidate %s error: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("redis: scan error during bulk invalidation: %v", err)
	}
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func videoKey(videoID int64) string {
	return fmt.Sprintf("video:%d", videoID)
}
