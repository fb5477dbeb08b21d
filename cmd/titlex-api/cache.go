package main

import (
	"github.com/titlex/engine/internal/cache"
	"github.com/titlex/engine/internal/config"
)

// buildCache opens the cache backend the pattern loader snapshots into.
func buildCache(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(10000), nil
}
