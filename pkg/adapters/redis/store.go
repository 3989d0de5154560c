// Package redis provides a ports.MachineStore backed by Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/absm/pkg/definition"
	"github.com/aretw0/absm/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "absm:machine:"

// Store implements ports.MachineStore using Redis.
// Definitions are stored as JSON strings; a ZSET index keeps List cheap.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of stored definitions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(machineID string) string {
	return s.prefix + machineID
}

// indexKey lives beside the machine keys, outside the prefix namespace.
func (s *Store) indexKey() string {
	return strings.TrimSuffix(s.prefix, ":") + "#index"
}

// reserved reports whether machineID would address the index key. Only possible
// with a prefix that does not end in a colon.
func (s *Store) reserved(machineID string) bool {
	return s.key(machineID) == s.indexKey()
}

// Save persists the definition to Redis.
func (s *Store) Save(ctx context.Context, machineID string, def *definition.Definition) error {
	if machineID == "" {
		return fmt.Errorf("machineID cannot be empty")
	}
	if s.reserved(machineID) {
		return fmt.Errorf("machineID %q is reserved", machineID)
	}
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	pipe := s.client.TxPipeline()

	// 1. Value with TTL (0 = no expiration)
	pipe.Set(ctx, s.key(machineID), data, s.ttl)

	// 2. Index entry scored by expiry so List can prune lazily
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: machineID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the definition from Redis.
func (s *Store) Load(ctx context.Context, machineID string) (*definition.Definition, error) {
	if s.reserved(machineID) {
		return nil, domain.ErrMachineNotFound
	}
	val, err := s.client.Get(ctx, s.key(machineID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var def definition.Definition
	if err := json.Unmarshal(val, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal definition: %w", err)
	}
	return &def, nil
}

// Delete removes the definition and its index entry.
func (s *Store) Delete(ctx context.Context, machineID string) error {
	if s.reserved(machineID) {
		return nil
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(machineID))
	pipe.ZRem(ctx, s.indexKey(), machineID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns the stored IDs, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired machines: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
