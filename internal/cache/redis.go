package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/config"
)

// RedisCache shares the summary between API replicas. It degrades to
// misses when Redis is unreachable.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *logrus.Entry
}

// NewRedisCache connects to Redis. A failed ping is logged, not returned,
// so the service starts in degraded mode.
func NewRedisCache(cfg config.RedisConfig, ttl time.Duration, logger *logrus.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   2,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	rc := &RedisCache{
		client: client,
		key:    cfg.Prefix + summaryKey,
		ttl:    ttl,
		logger: logger.WithField("component", "redis_cache"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		rc.logger.WithError(err).Warn("Redis unreachable, summary cache degraded")
	} else {
		rc.logger.WithField("addr", cfg.Addr).Info("Redis connected")
	}
	return rc
}

// Get reads the summary; any error reads as a miss.
func (r *RedisCache) Get(ctx context.Context) (backtest.SummaryStats, bool) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).Debug("Summary cache read failed")
		}
		return backtest.SummaryStats{}, false
	}

	var stats backtest.SummaryStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.WithError(err).Warn("Discarding undecodable cached summary")
		return backtest.SummaryStats{}, false
	}
	return stats, true
}

// Set writes the summary with the configured ttl.
func (r *RedisCache) Set(ctx context.Context, stats backtest.SummaryStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to encode summary")
		return
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		r.logger.WithError(err).Debug("Summary cache write failed")
	}
}

// Invalidate deletes the cached summary.
func (r *RedisCache) Invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		r.logger.WithError(err).Debug("Summary cache invalidation failed")
	}
}

// Close releases the client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Ping reports whether Redis is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
