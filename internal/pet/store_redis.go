// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pet

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/petstore/internal/platform/constants"
)

// CachedRepository decorates a [Repository] with a Redis cache-aside layer for pet lookups.
//
// # Consistency
//
// Every write through the decorator evicts the cached entry. Redis failures
// are logged and the call falls through to the wrapped repository, so the
// cache can never make an operation fail.
type CachedRepository struct {
	Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a cache whose entries live for ttl.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: next, client: client, ttl: ttl, logger: logger}
}

// cachedPet carries the fields hidden from the API representation.
type cachedPet struct {
	Pet
	CategorySlug string `json:"categorySlug"`
}

func cacheKey(id int64) string {
	return constants.RedisPrefixPet + strconv.FormatInt(id, 10)
}

/*
Get returns the cached pet, loading and caching it from the wrapped repository on a miss.
*/
func (repository *CachedRepository) Get(ctx context.Context, id int64) (*Pet, error) {
	key := cacheKey(id)

	// 1. Try the cache
	payload, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entry cachedPet
		if err := json.Unmarshal(payload, &entry); err == nil {
			entry.Category.Slug = entry.CategorySlug
			return &entry.Pet, nil
		}
		repository.logger.WarnContext(ctx, "pet_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.WarnContext(ctx, "pet_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	}

	// 2. Load from the source of truth
	loaded, err := repository.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Populate the cache
	encoded, err := json.Marshal(cachedPet{Pet: *loaded, CategorySlug: loaded.Category.Slug})
	if err == nil {
		err = repository.client.Set(ctx, key, encoded, repository.ttl).Err()
	}
	if err != nil {
		repository.logger.WarnContext(ctx, "pet_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}

	return loaded, nil
}

func (repository *CachedRepository) Update(ctx context.Context, pet *Pet) error {
	defer repository.evict(ctx, pet.ID)
	return repository.Repository.Update(ctx, pet)
}

func (repository *CachedRepository) Delete(ctx context.Context, id int64) (*Pet, error) {
	defer repository.evict(ctx, id)
	return repository.Repository.Delete(ctx, id)
}

func (repository *CachedRepository) Reserve(ctx context.Context, id int64) (*Pet, error) {
	defer repository.evict(ctx, id)
	return repository.Repository.Reserve(ctx, id)
}

func (repository *CachedRepository) evict(ctx context.Context, id int64) {
	if err := repository.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		repository.logger.WarnContext(ctx, "pet_cache_evict_failed", slog.Int64("id", id), slog.Any("error", err))
	}
}
