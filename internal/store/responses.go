package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vmihailenco/msgpack/v5"

	"voice-assistant/internal/common/database"
	"voice-assistant/internal/common/errors"
	"voice-assistant/internal/models"
)

// RedisResponseStore keeps the last response per session in Redis, msgpack
// encoded, expiring after ttl.
type RedisResponseStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewRedisResponseStore(client *database.RedisClient, ttl time.Duration) *RedisResponseStore {
	return &RedisResponseStore{redis: client, ttl: ttl}
}

func responseKey(sessionID string) string {
	return database.Key("session", sessionID, "last-response")
}

func (s *RedisResponseStore) Save(ctx context.Context, resp *models.StoredResponse) error {
	data, err := msgpack.Marshal(resp)
	if err != nil {
		return errors.NewResponseStoreFailedError("encode", err)
	}
	if err := s.redis.SetBytes(ctx, responseKey(resp.SessionID), data, s.ttl); err != nil {
		return errors.NewResponseStoreFailedError("save", err)
	}
	return nil
}

// Last returns the stored response, or found=false when the session has none.
func (s *RedisResponseStore) Last(ctx context.Context, sessionID string) (*models.StoredResponse, bool, error) {
	data, found, err := s.redis.GetBytes(ctx, responseKey(sessionID))
	if err != nil {
		return nil, false, errors.NewResponseStoreFailedError("load", err)
	}
	if !found {
		return nil, false, nil
	}

	var resp models.StoredResponse
	if err := msgpack.Unmarshal(data, &resp); err != nil {
		return nil, false, errors.NewResponseStoreFailedError("decode", err)
	}
	return &resp, true, nil
}

// MemoryResponseStore is an in-process store bounded by size and ttl.
type MemoryResponseStore struct {
	cache *expirable.LRU[string, models.StoredResponse]
}

func NewMemoryResponseStore(size int, ttl time.Duration) *MemoryResponseStore {
	return &MemoryResponseStore{
		cache: expirable.NewLRU[string, models.StoredResponse](size, nil, ttl),
	}
}

func (s *MemoryResponseStore) Save(_ context.Context, resp *models.StoredResponse) error {
	s.cache.Add(resp.SessionID, *resp)
	return nil
}

func (s *MemoryResponseStore) Last(_ context.Context, sessionID string) (*models.StoredResponse, bool, error) {
	resp, ok := s.cache.Get(sessionID)
	if !ok {
		return nil, false, nil
	}
	return &resp, true, nil
}

// Len reports the number of live sessions.
func (s *MemoryResponseStore) Len() int {
	return s.cache.Len()
}
