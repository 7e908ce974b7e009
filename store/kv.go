// api/store/kv.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Collection slots. Each holds one ordered JSON array of records.
const (
	slotAnalyticsEvents      = "analyticsEvents"
	slotAffiliateClicks      = "affiliateClicks"
	slotAffiliateConversions = "affiliateConversions"
)

// ErrKeyNotFound is returned by KV implementations for a slot that has never
// been written.
var ErrKeyNotFound = errors.New("key not found")

// KV is the document-store contract the logs persist through: every collection
// lives in a single slot as one UTF-8 JSON document.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RedisKV stores each collection document under its slot name as a plain
// string key.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read slot %q: %w", key, err)
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", key, err)
	}
	return nil
}

// MemoryKV is the in-process implementation used by tests and local development
// without a Redis instance. Contents are lost on restart.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// readSlice decodes the document in slot into a record slice. A missing or
// corrupt document is treated as an empty collection and never surfaced as a
// failure.
func readSlice[T any](ctx context.Context, kv KV, slot string) []T {
	doc, err := kv.Get(ctx, slot)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			log.Printf("Error reading slot %q, treating as empty: %v", slot, err)
		}
		return nil
	}

	var records []T
	if err := json.Unmarshal([]byte(doc), &records); err != nil {
		log.Printf("Corrupt document in slot %q, treating as empty: %v", slot, err)
		return nil
	}
	return records
}

// appendRecord appends one record to the slot document. The read-modify-write
// sequence is serialized through mu so two rapid-fire appends from independent
// callers cannot lose each other's update.
func appendRecord[T any](ctx context.Context, kv KV, mu *sync.Mutex, slot string, record T) error {
	mu.Lock()
	defer mu.Unlock()

	records := readSlice[T](ctx, kv, slot)
	records = append(records, record)

	doc, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode slot %q: %w", slot, err)
	}
	return kv.Set(ctx, slot, string(doc))
}
