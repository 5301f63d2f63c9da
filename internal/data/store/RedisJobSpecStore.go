package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

const jobSpecIdSetKey = "job_ids"

type RedisJobSpecStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisJobSpecStore(ctx context.Context) *RedisJobSpecStore {
	return &RedisJobSpecStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisJobSpecStore),
		logger: logger_i.NewLogger("JobSpecStore"),
	}
}

func (s *RedisJobSpecStore) SaveJobSpec(ctx context.Context, spec resumeModel.JobSpec) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", spec.Id)
	data, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	if err = s.store.Set(ctx, spec.Id, data, config.RedisRecordTTL); err != nil {
		return err
	}
	if err = s.store.SetAdd(ctx, jobSpecIdSetKey, spec.Id); err != nil {
		return err
	}
	log.Debug("Saved job spec to Redis")
	return nil
}

func (s *RedisJobSpecStore) GetJobSpec(ctx context.Context, id string) (resumeModel.JobSpec, bool) {
	var spec resumeModel.JobSpec
	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return spec, false
	} else if err != nil {
		return spec, false
	}

	if err = json.Unmarshal([]byte(val), &spec); err != nil {
		return spec, false
	}
	return spec, true
}

func (s *RedisJobSpecStore) ListJobSpecs(ctx context.Context) ([]resumeModel.JobSpec, error) {
	ids, err := s.store.SetMembers(ctx, jobSpecIdSetKey)
	if err != nil {
		return nil, err
	}

	specs := make([]resumeModel.JobSpec, 0, len(ids))
	for _, id := range ids {
		spec, found := s.GetJobSpec(ctx, id)
		if !found {
			s.logger.Debug("Job id in set but record missing", "jobId", id)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func TestJobSpecStore(store *redisStore.Store) *RedisJobSpecStore {
	return &RedisJobSpecStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
