package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tair/stockledger/internal/inventory/domain"
)

// RedisInventoryRepository keeps each collection as a JSON value under
// <prefix>:inventory, <prefix>:transactions and <prefix>:users.
type RedisInventoryRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisInventoryRepository(client *redis.Client, prefix string) *RedisInventoryRepository {
	if prefix == "" {
		prefix = "stockledger"
	}
	return &RedisInventoryRepository{client: client, prefix: prefix}
}

func (r *RedisInventoryRepository) keys() (string, string, string) {
	return r.prefix + ":inventory", r.prefix + ":transactions", r.prefix + ":users"
}

// LoadAll reads the three keys in one round trip. Missing keys are empty.
func (r *RedisInventoryRepository) LoadAll(ctx context.Context) (domain.Snapshot, error) {
	inv, txs, users := r.keys()
	vals, err := r.client.MGet(ctx, inv, txs, users).Result()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("redis mget: %w", err)
	}

	var snap domain.Snapshot
	targets := []any{&snap.Inventory, &snap.Transactions, &snap.Users}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if err := json.Unmarshal([]byte(s), targets[i]); err != nil {
			return domain.Snapshot{}, fmt.Errorf("decode %s: %w", []string{inv, txs, users}[i], err)
		}
	}
	return normalize(snap), nil
}

// SaveAll writes all three keys in a single MULTI/EXEC.
func (r *RedisInventoryRepository) SaveAll(ctx context.Context, snap domain.Snapshot) error {
	snap = normalize(snap)
	invJSON, err := json.Marshal(snap.Inventory)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	txJSON, err := json.Marshal(snap.Transactions)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	userJSON, err := json.Marshal(snap.Users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}

	inv, txs, users := r.keys()
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, inv, invJSON, 0)
		pipe.Set(ctx, txs, txJSON, 0)
		pipe.Set(ctx, users, userJSON, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi/exec: %w", err)
	}
	return nil
}
