package redisqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue is a Redis-list-backed job queue. Producers LPUSH JSON payloads
// onto a per-key list; the worker pops from the other end, so jobs are
// delivered in submission order.
type Queue struct {
	client *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(ctx context.Context, cfg Config) (*Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Queue{client: client}, nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}

func listKey(key string) string {
	return "queue:" + key
}

func (q *Queue) Enqueue(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s job: %w", key, err)
	}
	if err := q.client.LPush(ctx, listKey(key), data).Err(); err != nil {
		return fmt.Errorf("enqueue %s job: %w", key, err)
	}
	return nil
}

// Consume pops jobs for key and hands them to fn until ctx is canceled.
// Handler errors do not stop the loop; the caller decides what to log.
func (q *Queue) Consume(ctx context.Context, key string, fn func(ctx context.Context, payload []byte) error) error {
	for {
		res, err := q.client.BRPop(ctx, 5*time.Second, listKey(key)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		// BRPop returns [list, value]
		if len(res) != 2 {
			continue
		}
		_ = fn(ctx, []byte(res[1]))
	}
}
