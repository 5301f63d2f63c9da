package store

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
)

type InMemoryReportStore struct {
	reportMutex *sync.RWMutex
	reportMap   map[string][]resumeModel.MatchReport
}

func InitInMemoryReportStore() *InMemoryReportStore {
	return &InMemoryReportStore{
		reportMutex: new(sync.RWMutex),
		reportMap:   make(map[string][]resumeModel.MatchReport),
	}
}

func (store *InMemoryReportStore) SaveReport(ctx context.Context, report resumeModel.MatchReport) error {
	store.reportMutex.Lock()
	defer store.reportMutex.Unlock()
	store.reportMap[report.JobId] = append(store.reportMap[report.JobId], report)
	return nil
}

func (store *InMemoryReportStore) GetReportsByJob(ctx context.Context, jobId string) ([]resumeModel.MatchReport, error) {
	store.reportMutex.RLock()
	defer store.reportMutex.RUnlock()
	reports := make([]resumeModel.MatchReport, len(store.reportMap[jobId]))
	copy(reports, store.reportMap[jobId])
	return reports, nil
}
