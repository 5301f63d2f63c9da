package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

type RedisChunkStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisChunkStore(ctx context.Context) *RedisChunkStore {
	return &RedisChunkStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisChunkStore),
		logger: logger_i.NewLogger("ChunkStore"),
	}
}

func resumeChunksKey(resumeId string) string {
	return fmt.Sprintf("resume_chunks:%s", resumeId)
}

// SaveChunks writes each chunk record and appends its id to the per-resume
// list, preserving chunk order.
func (s *RedisChunkStore) SaveChunks(ctx context.Context, chunks []resumeModel.ResumeChunk) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	for _, chunk := range chunks {
		data, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		if err = s.store.Set(ctx, chunk.Id, data, config.RedisRecordTTL); err != nil {
			return err
		}
		if err = s.store.ListPush(ctx, resumeChunksKey(chunk.ResumeId), chunk.Id); err != nil {
			return err
		}
	}
	log.Debug("Saved chunks to Redis", "count", len(chunks))
	return nil
}

func (s *RedisChunkStore) GetChunk(ctx context.Context, chunkId string) (resumeModel.ResumeChunk, bool) {
	var chunk resumeModel.ResumeChunk
	val, err := s.store.Get(ctx, chunkId)
	if s.store.IsNil(err) {
		return chunk, false
	} else if err != nil {
		return chunk, false
	}

	if err = json.Unmarshal([]byte(val), &chunk); err != nil {
		return chunk, false
	}
	return chunk, true
}

func (s *RedisChunkStore) GetChunksByResume(ctx context.Context, resumeId string) ([]resumeModel.ResumeChunk, error) {
	ids, err := s.store.ListGetAll(ctx, resumeChunksKey(resumeId))
	if err != nil {
		return nil, err
	}

	chunks := make([]resumeModel.ResumeChunk, 0, len(ids))
	for _, id := range ids {
		chunk, found := s.GetChunk(ctx, id)
		if !found {
			s.logger.Debug("Chunk id in list but record missing", "chunkId", id)
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}

func TestChunkStore(store *redisStore.Store) *RedisChunkStore {
	return &RedisChunkStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
