// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package like

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-press/inkwell/internal/platform/constants"
)

// RedisCountCache implements [CountCache] using Redis.
//
// Entries expire after [constants.LikeCountCacheTTL], which bounds how stale
// a served counter can be; every toggle refreshes the entry with the
// post-transaction value.
type RedisCountCache struct {
	client *redis.Client
}

// NewRedisCountCache creates a new Redis-backed like counter cache.
func NewRedisCountCache(client *redis.Client) *RedisCountCache {
	return &RedisCountCache{client: client}
}

/*
Get reads the cached counter for a work.

Parameters:
  - context: context.Context
  - workID: string

Returns:
  - int: Cached count (zero when absent)
  - bool: Whether a cached value was present
  - error: Connectivity failures
*/
func (cache *RedisCountCache) Get(context context.Context, workID string) (int, bool, error) {
	key := constants.RedisPrefixLikeCount + workID

	raw, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		// Corrupt entry, treat as a miss.
		return 0, false, nil
	}
	return count, true, nil
}

/*
Set stores the counter for a work with the configured TTL.

Parameters:
  - context: context.Context
  - workID: string
  - count: int

Returns:
  - error: Storage failures
*/
func (cache *RedisCountCache) Set(context context.Context, workID string, count int) error {
	key := constants.RedisPrefixLikeCount + workID
	return cache.client.Set(context, key, strconv.Itoa(count), constants.LikeCountCacheTTL).Err()
}
