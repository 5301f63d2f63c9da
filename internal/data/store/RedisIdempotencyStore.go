package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

type RedisIdempotencyStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisIdempotencyStore(ctx context.Context) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisIdempotencyStore),
		logger: logger_i.NewLogger("IdempotencyStore"),
	}
}

// PutPlaceholder claims the key atomically via SETNX. Returns false when
// another request already holds it, completed or not.
func (s *RedisIdempotencyStore) PutPlaceholder(ctx context.Context, record resumeModel.IdempotencyRecord) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, err
	}
	claimed, err := s.store.SetNX(ctx, record.Key, data, config.RedisIdempotencyTTL)
	if err != nil {
		return false, err
	}
	s.logger.Debug("Placeholder claim", "key", record.Key, "claimed", claimed)
	return claimed, nil
}

func (s *RedisIdempotencyStore) GetRecord(ctx context.Context, key string) (resumeModel.IdempotencyRecord, bool) {
	var record resumeModel.IdempotencyRecord
	val, err := s.store.Get(ctx, key)
	if s.store.IsNil(err) {
		return record, false
	} else if err != nil {
		return record, false
	}

	if err = json.Unmarshal([]byte(val), &record); err != nil {
		return record, false
	}
	return record, true
}

func (s *RedisIdempotencyStore) SetResponse(ctx context.Context, key string, statusCode int, body []byte) error {
	record, found := s.GetRecord(ctx, key)
	if !found {
		record.Key = key
	}
	record.StatusCode = statusCode
	record.ResponseBody = body

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, key, data, config.RedisIdempotencyTTL)
}

func TestIdempotencyStore(store *redisStore.Store) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
