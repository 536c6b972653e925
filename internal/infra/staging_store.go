package infra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"checkout-service/internal/domain"

	"github.com/go-redis/redis/v8"
)

// PendingOrder is the cart snapshot staged between intent creation and
// confirmation. It is advisory: if the entry has expired or the process
// restarted, settlement falls back to the items the confirmation request
// carries and re-validates them against the order hash.
type PendingOrder struct {
	UserID      uint64            `json:"userId"`
	Items       []domain.CartItem `json:"items"`
	TotalAmount int64             `json:"totalAmount"`
}

type StagingStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStagingStore(rdb *redis.Client, ttl time.Duration) *StagingStore {
	return &StagingStore{rdb: rdb, ttl: ttl}
}

func stagingKey(intentID string) string {
	return "checkout:intent:" + intentID
}

func (s *StagingStore) Put(ctx context.Context, intentID string, po *PendingOrder) error {
	data, err := json.Marshal(po)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, stagingKey(intentID), data, s.ttl).Err()
}

func (s *StagingStore) Get(ctx context.Context, intentID string) (*PendingOrder, error) {
	b, err := s.rdb.Get(ctx, stagingKey(intentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var po PendingOrder
	if err := json.Unmarshal([]byte(b), &po); err != nil {
		return nil, err
	}
	return &po, nil
}

func (s *StagingStore) Delete(ctx context.Context, intentID string) error {
	return s.rdb.Del(ctx, stagingKey(intentID)).Err()
}
