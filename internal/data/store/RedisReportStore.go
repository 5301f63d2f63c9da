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

type RedisReportStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisReportStore(ctx context.Context) *RedisReportStore {
	return &RedisReportStore{
		store:  redisStore.GetRedisStore(ctx, config.RedisReportStore),
		logger: logger_i.NewLogger("ReportStore"),
	}
}

func jobReportsKey(jobId string) string {
	return fmt.Sprintf("reports:%s", jobId)
}

// SaveReport appends. Reports are an audit trail, never overwritten.
func (s *RedisReportStore) SaveReport(ctx context.Context, report resumeModel.MatchReport) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", report.JobId)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	if err = s.store.ListPush(ctx, jobReportsKey(report.JobId), data); err != nil {
		return err
	}
	log.Debug("Saved match report to Redis", "resumeId", report.ResumeId)
	return nil
}

func (s *RedisReportStore) GetReportsByJob(ctx context.Context, jobId string) ([]resumeModel.MatchReport, error) {
	entries, err := s.store.ListGetAll(ctx, jobReportsKey(jobId))
	if err != nil {
		return nil, err
	}

	reports := make([]resumeModel.MatchReport, 0, len(entries))
	for _, entry := range entries {
		var report resumeModel.MatchReport
		if err := json.Unmarshal([]byte(entry), &report); err != nil {
			s.logger.Error("Skipping malformed report entry", "jobId", jobId, "error", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func TestReportStore(store *redisStore.Store) *RedisReportStore {
	return &RedisReportStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
