package save

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nathoo/stageplay/types"
	backend "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces snapshot keys.
const DefaultRedisPrefix = "stageplay:save:"

// RedisStore keeps snapshots as JSON strings in Redis, with a set of slot
// names as the index.
type RedisStore struct {
	client *backend.Client
	prefix string
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore connects to a Redis server.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	return NewRedisStoreFromClient(backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), opts...)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(slot string) string {
	return s.prefix + slot
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "index"
}

// Location returns the Redis key of the slot.
func (s *RedisStore) Location(slot string) string {
	return "redis:" + s.key(slot)
}

// Save stores the snapshot and records the slot in the index.
func (s *RedisStore) Save(ctx context.Context, slot string, w *types.World) error {
	if err := ValidateSlot(slot); err != nil {
		return err
	}
	data, err := Encode(w)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(slot), data, 0)
	pipe.SAdd(ctx, s.indexKey(), slot)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save to redis: %w", err)
	}
	return nil
}

// Load fetches and decodes a slot. An empty index means nothing was ever
// saved and maps to ErrNoSaveLocation.
func (s *RedisStore) Load(ctx context.Context, slot string) (*types.World, error) {
	if err := ValidateSlot(slot); err != nil {
		return nil, err
	}
	n, err := s.client.Exists(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load from redis: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSaveLocation, s.indexKey())
	}

	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
		}
		return nil, fmt.Errorf("load from redis: %w", err)
	}
	return Decode(data)
}

// List returns the indexed slot names, sorted.
func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	slots, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	sort.Strings(slots)
	return slots, nil
}

// Close releases the client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
