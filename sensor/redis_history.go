package sensor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"forum_backend/models"

	"github.com/redis/go-redis/v9"
)

const defaultHistoryKey = "sensor:readings"

// RedisHistory stores readings in a sorted set scored by timestamp, so several
// server instances can share one history.
type RedisHistory struct {
	rdb       *redis.Client
	key       string
	retention time.Duration
}

func NewRedisHistory(rdb *redis.Client, retention time.Duration) *RedisHistory {
	return &RedisHistory{rdb: rdb, key: defaultHistoryKey, retention: retention}
}

// NewRedisClient creates a client from a URL such as "redis://localhost:6379".
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

func (h *RedisHistory) Append(ctx context.Context, dp models.DataPoint) error {
	member, err := json.Marshal(dp)
	if err != nil {
		return fmt.Errorf("failed to encode reading: %w", err)
	}

	cutoff := dp.Timestamp - h.retention.Milliseconds()
	_, err = h.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, h.key, redis.Z{Score: float64(dp.Timestamp), Member: member})
		pipe.ZRemRangeByScore(ctx, h.key, "-inf", "("+strconv.FormatInt(cutoff, 10))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append reading: %w", err)
	}
	return nil
}

func (h *RedisHistory) Window(ctx context.Context, window time.Duration) ([]models.DataPoint, error) {
	newest, err := h.rdb.ZRevRangeWithScores(ctx, h.key, 0, 0).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read newest reading: %w", err)
	}
	if len(newest) == 0 {
		return []models.DataPoint{}, nil
	}

	top := int64(newest[0].Score)
	members, err := h.rdb.ZRangeByScore(ctx, h.key, &redis.ZRangeBy{
		Min: strconv.FormatInt(top-window.Milliseconds(), 10),
		Max: strconv.FormatInt(top, 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read readings: %w", err)
	}

	points := make([]models.DataPoint, 0, len(members))
	for _, m := range members {
		var dp models.DataPoint
		if err := json.Unmarshal([]byte(m), &dp); err != nil {
			return nil, fmt.Errorf("failed to decode reading: %w", err)
		}
		points = append(points, dp)
	}
	return points, nil
}
