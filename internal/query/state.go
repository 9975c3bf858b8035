package query

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KV is the minimal key-value surface filter-state persistence needs. Get
// returns "" with no error for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

const filterStateKeyPrefix = "catalog:filters:"

// FilterStateStore persists each user's filter and sort selection across
// sessions as one flat serialized object under one key.
type FilterStateStore struct {
	kv KV
}

func NewFilterStateStore(kv KV) *FilterStateStore {
	return &FilterStateStore{kv: kv}
}

// Load returns the saved filters, falling back silently to defaults when the
// state is missing, unreadable, or malformed. Restoring state never fails.
func (s *FilterStateStore) Load(ctx context.Context, userID string) Filters {
	if s.kv == nil || userID == "" {
		return DefaultFilters()
	}
	raw, err := s.kv.Get(ctx, filterStateKeyPrefix+userID)
	if err != nil || raw == "" {
		return DefaultFilters()
	}
	var f Filters
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return DefaultFilters()
	}
	if f.SortMode == "" {
		f.SortMode = SortRecent
	}
	return f
}

// Save overwrites the user's persisted state with the given filters.
func (s *FilterStateStore) Save(ctx context.Context, userID string, f Filters) error {
	if s.kv == nil || userID == "" {
		return nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, filterStateKeyPrefix+userID, string(data))
}

// RedisKV adapts a Redis client to the KV interface. Values do not expire;
// like browser local storage, the saved selection outlives any session.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}
