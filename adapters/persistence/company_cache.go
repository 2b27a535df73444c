package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const (
	companyListKeyPrefix = "companies:list:"
	companyListGenKey    = "companies:list:gen"
)

func companyListKey(gen int64) string {
	return companyListKeyPrefix + strconv.FormatInt(gen, 10)
}

// redisCompanyCache keeps the company directory as one JSON value per
// generation. A nil client turns every call into a miss so the service runs
// without Redis.
type redisCompanyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger

	warnedUnavailable atomic.Bool
}

func NewRedisCompanyCache(client *redis.Client, ttl time.Duration, logger logger.Logger) company.ListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisCompanyCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisCompanyCache) warnUnavailableOnce(err error) {
	if c.warnedUnavailable.CompareAndSwap(false, true) {
		c.logger.Warn("Redis unavailable, bypassing company cache", zap.Error(err))
	}
}

// Generation is 0 until the first Invalidate.
func (c *redisCompanyCache) Generation(ctx context.Context) (int64, error) {
	if c.client == nil {
		return 0, nil
	}
	gen, err := c.client.Get(ctx, companyListGenKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		c.warnUnavailableOnce(err)
		return 0, err
	}
	return gen, nil
}

func (c *redisCompanyCache) GetSummaries(ctx context.Context, gen int64) ([]company.Summary, bool, error) {
	if c.client == nil {
		return nil, false, nil
	}
	b, err := c.client.Get(ctx, companyListKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		c.warnUnavailableOnce(err)
		return nil, false, err
	}
	if len(b) == 0 {
		return nil, false, nil
	}
	var items []company.Summary
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *redisCompanyCache) SetSummaries(ctx context.Context, gen int64, items []company.Summary) error {
	if c.client == nil {
		return nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, companyListKey(gen), b, c.ttl).Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Invalidate bumps the generation. Lists stored under older generations are
// never read again and expire with their TTL.
func (c *redisCompanyCache) Invalidate(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Incr(ctx, companyListGenKey).Err(); err != nil {
		c.warnUnavailableOnce(err)
		return err
	}
	return nil
}
