package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tokopos/internal/dto"

	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "product:barcode:"

type RedisProductCache struct {
	client *redis.Client
}

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{client: client}
}

func productKey(barcode string) string { return productKeyPrefix + barcode }

func (c *RedisProductCache) Get(ctx context.Context, barcode string) (*dto.ProductResponse, bool, error) {
	val, err := c.client.Get(ctx, productKey(barcode)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp dto.ProductResponse
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisProductCache) Set(ctx context.Context, barcode string, value *dto.ProductResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(barcode), payload, ttl).Err()
}

func (c *RedisProductCache) Invalidate(ctx context.Context, barcodes ...string) error {
	if len(barcodes) == 0 {
		return nil
	}
	keys := make([]string, 0, len(barcodes))
	for _, b := range barcodes {
		keys = append(keys, productKey(b))
	}
	return c.client.Del(ctx, keys...).Err()
}
