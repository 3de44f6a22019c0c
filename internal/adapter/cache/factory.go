package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tasktracker/internal/config"
)

// NewStore builds the backend selected by CACHE_DRIVER. A redis server that
// cannot be reached at startup degrades to NoopStore instead of failing boot.
func NewStore(ctx context.Context, conf *config.Config) (Store, error) {
	switch conf.CacheDriver {
	case config.CacheDriverRedis:
		store, err := NewRedisStore(ctx, conf.RedisURL)
		if err != nil {
			zap.L().Warn("redis unavailable, task cache disabled", zap.Error(err))
			return NoopStore{}, nil
		}
		return store, nil
	case config.CacheDriverBadger:
		return NewBadgerStore(conf.BadgerPath)
	case config.CacheDriverNone, "":
		return NoopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", conf.CacheDriver)
	}
}
