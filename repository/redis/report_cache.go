package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/workplan/backend/repository"
)

type reportCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewReportCache creates a Redis-backed dashboard report cache. Entries are
// keyed by data snapshot version plus the reference day, so a stale entry
// can never be served: any mutation bumps the version and any date rollover
// changes the day component.
func NewReportCache(client *redislib.Client, ttl time.Duration) repository.ReportCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &reportCache{
		client: client,
		prefix: "report:",
		ttl:    ttl,
	}
}

func (r *reportCache) Get(ctx context.Context, version, today string) ([]byte, error) {
	result, err := r.client.Get(ctx, r.key(version, today)).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (r *reportCache) Set(ctx context.Context, version, today string, payload []byte) error {
	return r.client.Set(ctx, r.key(version, today), payload, r.ttl).Err()
}

func (r *reportCache) key(version, today string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, version, today)
}
