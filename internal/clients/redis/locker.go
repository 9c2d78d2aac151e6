package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/samjsmart/gig-int-garden-api/internal/platform/envutil"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

// ErrLockHeld is returned when another submission for the same key is
// already in flight.
var ErrLockHeld = errors.New("submission lock already held")

// Locker serializes submission processing per identity key. Two
// concurrent submissions for the same email would otherwise race
// between the record read and the write.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
	Close() error
}

type locker struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewLocker connects to redis. REDIS_ADDR unset is not an error for the
// caller to decide; this constructor requires it.
func NewLocker(log *logger.Logger) (Locker, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSec := envutil.Int("REDIS_LOCK_TTL_SECONDS", 30)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &locker{
		log: log.With("client", "RedisLocker"),
		rdb: rdb,
		ttl: time.Duration(ttlSec) * time.Second,
	}, nil
}

// Only the lock holder may delete its key; the token guards against
// releasing a lock that expired and was re-acquired.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *locker) Acquire(ctx context.Context, key string) (func(), error) {
	if l == nil || l.rdb == nil {
		return nil, fmt.Errorf("redis locker not initialized")
	}

	lockKey := "submit:lock:" + strings.ToLower(strings.TrimSpace(key))
	token := uuid.New().String()

	ok, err := l.rdb.SetNX(ctx, lockKey, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{lockKey}, token).Err(); err != nil {
			l.log.Warn("Failed to release submission lock", "key", lockKey, "error", err)
		}
	}
	return release, nil
}

func (l *locker) Close() error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Close()
}
