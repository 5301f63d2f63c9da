package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

type InMemoryJobSpecStore struct {
	specMutex *sync.RWMutex
	specMap   map[string]resumeModel.JobSpec
}

func InitInMemoryJobSpecStore() *InMemoryJobSpecStore {
	return &InMemoryJobSpecStore{
		specMutex: new(sync.RWMutex),
		specMap:   make(map[string]resumeModel.JobSpec),
	}
}

func (store *InMemoryJobSpecStore) SaveJobSpec(ctx context.Context, spec resumeModel.JobSpec) error {
	store.specMutex.Lock()
	defer store.specMutex.Unlock()
	store.specMap[spec.Id] = spec
	return nil
}

func (store *InMemoryJobSpecStore) GetJobSpec(ctx context.Context, id string) (resumeModel.JobSpec, bool) {
	store.specMutex.RLock()
	defer store.specMutex.RUnlock()
	result, found := store.specMap[id]
	return result, found
}

func (store *InMemoryJobSpecStore) ListJobSpecs(ctx context.Context) ([]resumeModel.JobSpec, error) {
	store.specMutex.RLock()
	defer store.specMutex.RUnlock()
	specs := make([]resumeModel.JobSpec, 0, len(store.specMap))
	for _, spec := range store.specMap {
		specs = append(specs, spec)
	}
	return specs, nil
}
