package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var inMemTaskLogger = logger_i.NewLogger("InMem TaskStore")

type InMemoryTaskStore struct {
	taskMutex *sync.RWMutex
	taskMap   map[string]taskModel.Task
}

func InitInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		taskMutex: new(sync.RWMutex),
		taskMap:   make(map[string]taskModel.Task),
	}
}

func (store *InMemoryTaskStore) SaveTask(ctx context.Context, taskToStore taskModel.Task) error {
	store.taskMutex.Lock()
	defer store.taskMutex.Unlock()
	store.taskMap[taskToStore.Id] = taskToStore
	inMemTaskLogger.Debug(taskToStore.Id, " : Saved task to store")
	return nil
}

func (store *InMemoryTaskStore) GetTask(ctx context.Context, taskId string) (taskModel.Task, bool) {
	store.taskMutex.RLock()
	defer store.taskMutex.RUnlock()
	result, found := store.taskMap[taskId]
	return result, found
}

func (store *InMemoryTaskStore) DeleteTask(ctx context.Context, taskId string) {
	store.taskMutex.Lock()
	defer store.taskMutex.Unlock()
	delete(store.taskMap, taskId)
}
