package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/resourcehub/internal/models"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects to Redis. prefix namespaces every key this cache
// writes and is required: Clear deletes everything under it.
func NewRedisClient(url, prefix string) (*RedisClient, error) {
	if prefix == "" || strings.ContainsAny(prefix, `*?[]\`) {
		return nil, fmt.Errorf("invalid Redis key prefix %q", prefix)
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		prefix: prefix,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) GetResource(ctx context.Context, slug string) (*models.Resource, error) {
	var res models.Resource
	found, err := r.getJSON(ctx, resourceKey(slug), &res)
	if err != nil || !found {
		return nil, err
	}
	return &res, nil
}

func (r *RedisClient) SetResource(ctx context.Context, res models.Resource, ttl time.Duration) error {
	return r.setJSON(ctx, resourceKey(res.Slug), res, ttl)
}

func (r *RedisClient) GetList(ctx context.Context, name string) ([]models.Resource, error) {
	var list []models.Resource
	found, err := r.getJSON(ctx, listKey(name), &list)
	if err != nil || !found {
		return nil, err
	}
	return list, nil
}

func (r *RedisClient) SetList(ctx context.Context, name string, list []models.Resource, ttl time.Duration) error {
	return r.setJSON(ctx, listKey(name), list, ttl)
}

// Invalidate drops the cached resource and every cached list, since any list
// may contain the resource.
func (r *RedisClient) Invalidate(ctx context.Context, slug string) error {
	if err := r.client.Del(ctx, r.prefix+resourceKey(slug)).Err(); err != nil {
		return fmt.Errorf("redis del error: %w", err)
	}
	return r.deleteMatching(ctx, r.prefix+"list:*")
}

func (r *RedisClient) Clear(ctx context.Context) error {
	return r.deleteMatching(ctx, r.prefix+"*")
}

func (r *RedisClient) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get error: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisClient) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.client.Set(ctx, r.prefix+key, data, ttl).Err()
}

func (r *RedisClient) deleteMatching(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error scanning keys: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("error deleting keys: %w", err)
		}
	}

	return nil
}
