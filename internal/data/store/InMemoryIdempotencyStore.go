package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

type InMemoryIdempotencyStore struct {
	recordMutex *sync.RWMutex
	recordMap   map[string]resumeModel.IdempotencyRecord
}

func InitInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	return &InMemoryIdempotencyStore{
		recordMutex: new(sync.RWMutex),
		recordMap:   make(map[string]resumeModel.IdempotencyRecord),
	}
}

func (store *InMemoryIdempotencyStore) PutPlaceholder(ctx context.Context, record resumeModel.IdempotencyRecord) (bool, error) {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	if _, exists := store.recordMap[record.Key]; exists {
		return false, nil
	}
	store.recordMap[record.Key] = record
	return true, nil
}

func (store *InMemoryIdempotencyStore) GetRecord(ctx context.Context, key string) (resumeModel.IdempotencyRecord, bool) {
	store.recordMutex.RLock()
	defer store.recordMutex.RUnlock()
	result, found := store.recordMap[key]
	return result, found
}

func (store *InMemoryIdempotencyStore) SetResponse(ctx context.Context, key string, statusCode int, body []byte) error {
	store.recordMutex.Lock()
	defer store.recordMutex.Unlock()
	record := store.recordMap[key]
	record.Key = key
	record.StatusCode = statusCode
	record.ResponseBody = body
	store.recordMap[key] = record
	return nil
}
