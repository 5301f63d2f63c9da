package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

// resumeIdSetKey holds every resume id so ListResumes never needs a SCAN.
const resumeIdSetKey = "resume_ids"

type RedisResumeStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisResumeStore(ctx context.Context) *RedisResumeStore {
	return &RedisResumeStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisResumeStore),
		logger: logger_i.NewLogger("ResumeStore"),
	}
}

func (s *RedisResumeStore) SaveResume(ctx context.Context, resume resumeModel.Resume) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "resumeId", resume.Id)
	log.Debug("saving resume")
	data, err := json.Marshal(resume)
	if err != nil {
		return err
	}

	if err = s.store.Set(ctx, resume.Id, data, config.RedisRecordTTL); err != nil {
		return err
	}
	if err = s.store.SetAdd(ctx, resumeIdSetKey, resume.Id); err != nil {
		return err
	}
	log.Debug("Saved resume to Redis")
	return nil
}

func (s *RedisResumeStore) GetResume(ctx context.Context, id string) (resumeModel.Resume, bool) {
	var resume resumeModel.Resume
	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return resume, false
	} else if err != nil {
		return resume, false
	}

	if err = json.Unmarshal([]byte(val), &resume); err != nil {
		return resume, false
	}
	return resume, true
}

func (s *RedisResumeStore) ListResumes(ctx context.Context) ([]resumeModel.Resume, error) {
	ids, err := s.store.SetMembers(ctx, resumeIdSetKey)
	if err != nil {
		return nil, err
	}

	resumes := make([]resumeModel.Resume, 0, len(ids))
	for _, id := range ids {
		resume, found := s.GetResume(ctx, id)
		if !found {
			s.logger.Debug("Resume id in set but record missing", "resumeId", id)
			continue
		}
		resumes = append(resumes, resume)
	}
	return resumes, nil
}

func TestResumeStore(store *redisStore.Store) *RedisResumeStore {
	return &RedisResumeStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
