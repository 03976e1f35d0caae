package cache

import (
	"context"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
)

// Cache 查詢結果快取。未命中時 Get 回傳 common.ErrCacheMiss。
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New 依設定建立快取；快取關閉時回傳 nil
func New(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		c, err := NewRedisCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
