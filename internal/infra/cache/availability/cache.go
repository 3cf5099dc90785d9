package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache кеш дневного отчёта доступности в redis
// Отчёт считается заново только при промахе; принятие заявки и продление
// инвалидируют ключ соответствующей даты
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New создает кеш отчёта доступности
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func key(date string) string {
	return fmt.Sprintf("availability:%s", date)
}

// Get возвращает закешированный отчёт за дату (сырой JSON) и признак попадания
func (c *Cache) Get(ctx context.Context, date string) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("availability cache: get %s: %w", date, err)
	}
	return payload, true, nil
}

// Set сохраняет отчёт за дату
func (c *Cache) Set(ctx context.Context, date string, payload []byte) error {
	if err := c.rdb.Set(ctx, key(date), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("availability cache: set %s: %w", date, err)
	}
	return nil
}

// Invalidate удаляет отчёт за дату
func (c *Cache) Invalidate(ctx context.Context, date string) error {
	if err := c.rdb.Del(ctx, key(date)).Err(); err != nil {
		return fmt.Errorf("availability cache: invalidate %s: %w", date, err)
	}
	return nil
}
