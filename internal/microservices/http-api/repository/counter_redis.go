package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	counterKeyPrefix = "post:counters:"
	counterDirtySet  = "post:counters:dirty"
)

// CounterDelta is the pending view/like increments of one post.
type CounterDelta struct {
	PostID int64
	Views  int64
	Likes  int64
}

// CounterBuffer accumulates post counters in Redis until they are drained
// into postgres.
type CounterBuffer struct {
	client *redis.Client
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewCounterBuffer(client *redis.Client) *CounterBuffer {
	return &CounterBuffer{client: client}
}

func counterKey(postID int64) string {
	return counterKeyPrefix + strconv.FormatInt(postID, 10)
}

// Add records increments for a post and marks it dirty.
func (b *CounterBuffer) Add(ctx context.Context, postID int64, views, likes int64) error {
	key := counterKey(postID)
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if views != 0 {
			pipe.HIncrBy(ctx, key, "views", views)
		}
		if likes != 0 {
			pipe.HIncrBy(ctx, key, "likes", likes)
		}
		pipe.SAdd(ctx, counterDirtySet, postID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("buffer counters for post %d: %w", postID, err)
	}
	return nil
}

// Drain removes and returns every pending delta. Each post is read and cleared
// inside one MULTI so no increment is lost between the read and the delete.
func (b *CounterBuffer) Drain(ctx context.Context) ([]CounterDelta, error) {
	members, err := b.client.SMembers(ctx, counterDirtySet).Result()
	if err != nil {
		return nil, fmt.Errorf("read dirty counters: %w", err)
	}

	deltas := make([]CounterDelta, 0, len(members))
	for _, member := range members {
		postID, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			b.client.SRem(ctx, counterDirtySet, member)
			continue
		}

		key := counterKey(postID)
		var fields *redis.MapStringStringCmd
		_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			fields = pipe.HGetAll(ctx, key)
			pipe.Del(ctx, key)
			pipe.SRem(ctx, counterDirtySet, member)
			return nil
		})
		if err != nil {
			return deltas, fmt.Errorf("drain counters for post %d: %w", postID, err)
		}

		delta := CounterDelta{PostID: postID}
		values := fields.Val()
		delta.Views, _ = strconv.ParseInt(values["views"], 10, 64)
		delta.Likes, _ = strconv.ParseInt(values["likes"], 10, 64)
		if delta.Views != 0 || delta.Likes != 0 {
			deltas = append(deltas, delta)
		}
	}
	return deltas, nil
}

func (b *CounterBuffer) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
