package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/unicatalog/internal/config"
)

// CompareRedisRepository keeps each client's comparison ids as a JSON array
// under config.CacheKey.CompareSetKey. Keys never expire.
type CompareRedisRepository struct {
	rdb *redis.Client
}

func NewCompareRedisRepository(rdb *redis.Client) *CompareRedisRepository {
	return &CompareRedisRepository{rdb: rdb}
}

// Load returns the stored ids, or nil when the client has never saved a set.
func (r *CompareRedisRepository) Load(ctx context.Context, clientID string) ([]int, error) {
	raw, err := r.rdb.Get(ctx, config.CacheKey.CompareSetKey(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compare set: %w", err)
	}
	return decodeIDs(raw)
}

func (r *CompareRedisRepository) Save(ctx context.Context, clientID string, ids []int) error {
	raw, err := encodeIDs(ids)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, config.CacheKey.CompareSetKey(clientID), raw, 0).Err(); err != nil {
		return fmt.Errorf("set compare set: %w", err)
	}
	return nil
}

func (r *CompareRedisRepository) Delete(ctx context.Context, clientID string) error {
	if err := r.rdb.Del(ctx, config.CacheKey.CompareSetKey(clientID)).Err(); err != nil {
		return fmt.Errorf("delete compare set: %w", err)
	}
	return nil
}

func encodeIDs(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode compare ids: %w", err)
	}
	return raw, nil
}

// decodeIDs treats a corrupt payload as an error rather than an empty set so
// the caller can log it; the service then falls back to an empty selection.
func decodeIDs(raw []byte) ([]int, error) {
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode compare ids: %w", err)
	}
	return ids, nil
}
