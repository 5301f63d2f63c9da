package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

type RedisTaskStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisTaskStore(ctx context.Context) *RedisTaskStore {
	return &RedisTaskStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisTaskStore),
		logger: logger_i.NewLogger("TaskStore"),
	}
}

func (s *RedisTaskStore) SaveTask(ctx context.Context, task taskModel.Task) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "task Id", task.Id)
	log.Debug("saving task")
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, task.Id, data, config.RedisTaskStoreTTL)
	if err == nil {
		log.Debug("Saved task to Redis")
	}
	return err
}

func (s *RedisTaskStore) GetTask(ctx context.Context, taskId string) (taskModel.Task, bool) {
	var task taskModel.Task
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "task Id", taskId)
	log.Debug("getting task")
	val, err := s.store.Get(ctx, taskId)
	if s.store.IsNil(err) {
		return task, false
	} else if err != nil {
		return task, false
	}

	err = json.Unmarshal([]byte(val), &task)
	if err != nil {
		return task, false
	}

	log.Debug("Task found in Redis")
	return task, true
}

func (s *RedisTaskStore) DeleteTask(ctx context.Context, taskId string) {
	err := s.store.Del(ctx, taskId)
	if err != nil {
		s.logger.Error("Error deleting task from Redis", "taskId", taskId)
		return
	}
	s.logger.Debug("Task deleted from Redis", "taskId", taskId)
}

func TestTaskStore(store *redisStore.Store) *RedisTaskStore {
	return &RedisTaskStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
