package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares wizard sessions between server instances.
type RedisStore struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	prefix string
}

func NewRedisStore(rdb redis.Cmdable, ttl time.Duration, prefix string) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "wizard"
	}
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Load(ctx context.Context, id string) (State, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrNoSession
	}
	if err != nil {
		return State{}, fmt.Errorf("wizard: redis get: %w", err)
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("wizard: decode session: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("wizard: encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("wizard: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("wizard: redis del: %w", err)
	}
	return nil
}
