package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

type InMemoryChunkStore struct {
	chunkMutex *sync.RWMutex
	chunkMap   map[string]resumeModel.ResumeChunk
	byResume   map[string][]string
}

func InitInMemoryChunkStore() *InMemoryChunkStore {
	return &InMemoryChunkStore{
		chunkMutex: new(sync.RWMutex),
		chunkMap:   make(map[string]resumeModel.ResumeChunk),
		byResume:   make(map[string][]string),
	}
}

func (store *InMemoryChunkStore) SaveChunks(ctx context.Context, chunks []resumeModel.ResumeChunk) error {
	store.chunkMutex.Lock()
	defer store.chunkMutex.Unlock()
	for _, chunk := range chunks {
		store.chunkMap[chunk.Id] = chunk
		store.byResume[chunk.ResumeId] = append(store.byResume[chunk.ResumeId], chunk.Id)
	}
	return nil
}

func (store *InMemoryChunkStore) GetChunk(ctx context.Context, chunkId string) (resumeModel.ResumeChunk, bool) {
	store.chunkMutex.RLock()
	defer store.chunkMutex.RUnlock()
	result, found := store.chunkMap[chunkId]
	return result, found
}

func (store *InMemoryChunkStore) GetChunksByResume(ctx context.Context, resumeId string) ([]resumeModel.ResumeChunk, error) {
	store.chunkMutex.RLock()
	defer store.chunkMutex.RUnlock()
	ids := store.byResume[resumeId]
	chunks := make([]resumeModel.ResumeChunk, 0, len(ids))
	for _, id := range ids {
		if chunk, found := store.chunkMap[id]; found {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}
