package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

type InMemoryResumeStore struct {
	resumeMutex *sync.RWMutex
	resumeMap   map[string]resumeModel.Resume
}

func InitInMemoryResumeStore() *InMemoryResumeStore {
	return &InMemoryResumeStore{
		resumeMutex: new(sync.RWMutex),
		resumeMap:   make(map[string]resumeModel.Resume),
	}
}

func (store *InMemoryResumeStore) SaveResume(ctx context.Context, resume resumeModel.Resume) error {
	store.resumeMutex.Lock()
	defer store.resumeMutex.Unlock()
	store.resumeMap[resume.Id] = resume
	return nil
}

func (store *InMemoryResumeStore) GetResume(ctx context.Context, id string) (resumeModel.Resume, bool) {
	store.resumeMutex.RLock()
	defer store.resumeMutex.RUnlock()
	result, found := store.resumeMap[id]
	return result, found
}

func (store *InMemoryResumeStore) ListResumes(ctx context.Context) ([]resumeModel.Resume, error) {
	store.resumeMutex.RLock()
	defer store.resumeMutex.RUnlock()
	resumes := make([]resumeModel.Resume, 0, len(store.resumeMap))
	for _, resume := range store.resumeMap {
		resumes = append(resumes, resume)
	}
	return resumes, nil
}
