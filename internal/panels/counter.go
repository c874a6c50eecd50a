package panels

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// InitialCounter is the value the shared form counter starts from.
const InitialCounter int64 = 120075

const DefaultCounterKey = "guardrail:form:counter"

// CounterStore is an atomic, shared counter.
type CounterStore interface {
	Increment(ctx context.Context) (int64, error)
	Value(ctx context.Context) (int64, error)
}

type MemoryCounter struct {
	mu    sync.Mutex
	value int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{value: InitialCounter}
}

func (c *MemoryCounter) Increment(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	return c.value, nil
}

func (c *MemoryCounter) Value(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, nil
}

// RedisCounter keeps the counter in a single Redis key so every replica
// shares it.
type RedisCounter struct {
	client *redis.Client
	key    string
}

func NewRedisCounter(client *redis.Client, key string) *RedisCounter {
	if key == "" {
		key = DefaultCounterKey
	}
	return &RedisCounter{client: client, key: key}
}

func (c *RedisCounter) seed(ctx context.Context) error {
	if err := c.client.SetNX(ctx, c.key, InitialCounter, 0).Err(); err != nil {
		return fmt.Errorf("failed to seed counter %s: %w", c.key, err)
	}
	return nil
}

func (c *RedisCounter) Increment(ctx context.Context) (int64, error) {
	if err := c.seed(ctx); err != nil {
		return 0, err
	}

	value, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", c.key, err)
	}
	return value, nil
}

func (c *RedisCounter) Value(ctx context.Context) (int64, error) {
	if err := c.seed(ctx); err != nil {
		return 0, err
	}

	value, err := c.client.Get(ctx, c.key).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to read counter %s: %w", c.key, err)
	}
	return value, nil
}
