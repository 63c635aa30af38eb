package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// RedisStore keeps one JSON blob per board at stickypack:{board}:config.
type RedisStore struct {
	rdb   *redis.Client
	board string
}

// NewRedisStore connects to Redis with opts. The board id scopes the key.
func NewRedisStore(opts *redis.Options, board string) (*RedisStore, error) {
	if board == "" {
		return nil, fmt.Errorf("board id cannot be empty")
	}
	return &RedisStore{rdb: redis.NewClient(opts), board: board}, nil
}

// NewRedisStoreURL is NewRedisStore with a redis:// URL.
func NewRedisStoreURL(url, board string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStore(opts, board)
}

// Key returns the Redis key the configuration lives at.
func (r *RedisStore) Key() string {
	return fmt.Sprintf("%s:%s:%s", AppName, r.board, Key)
}

// Ping verifies connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisStore) Load(ctx context.Context) (pack.Overrides, bool, error) {
	data, err := r.rdb.Get(ctx, r.Key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return pack.Overrides{}, false, nil
	}
	if err != nil {
		return pack.Overrides{}, false, err
	}
	var o pack.Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return pack.Overrides{}, false, fmt.Errorf("decode %s: %w", r.Key(), err)
	}
	return o, true, nil
}

func (r *RedisStore) Save(ctx context.Context, cfg pack.Config) error {
	data, err := json.Marshal(stored(cfg))
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.Key(), data, 0).Err()
}

func (r *RedisStore) Close() error { return r.rdb.Close() }

var _ Store = (*RedisStore)(nil)
