package matcher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
)

type MockRetriever struct {
	OnTopChunks func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error)
}

func (m *MockRetriever) TopChunks(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
	return m.OnTopChunks(ctx, query, k)
}

type MockResumeStore struct {
	Resumes map[string]resumeModel.Resume
}

func (m *MockResumeStore) SaveResume(ctx context.Context, resume resumeModel.Resume) error {
	return nil
}

func (m *MockResumeStore) GetResume(ctx context.Context, id string) (resumeModel.Resume, bool) {
	resume, found := m.Resumes[id]
	return resume, found
}

func (m *MockResumeStore) ListResumes(ctx context.Context) ([]resumeModel.Resume, error) {
	return nil, nil
}

type MockReportStore struct {
	mu      sync.Mutex
	Reports []resumeModel.MatchReport
}

func (m *MockReportStore) SaveReport(ctx context.Context, report resumeModel.MatchReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reports = append(m.Reports, report)
	return nil
}

func (m *MockReportStore) GetReportsByJob(ctx context.Context, jobId string) ([]resumeModel.MatchReport, error) {
	return m.Reports, nil
}

func chunkHit(chunkId, resumeId, text string, score float64) retrieval.ChunkHit {
	return retrieval.ChunkHit{
		Chunk: resumeModel.ResumeChunk{Id: chunkId, ResumeId: resumeId, Text: text},
		Score: score,
	}
}

func TestMatch_MeanScoreAggregation(t *testing.T) {
	// r1 has one strong chunk, r2 has two weaker ones. Mean score must rank
	// r1 (0.9) above r2 ((0.6+0.4)/2 = 0.5).
	retriever := &MockRetriever{
		OnTopChunks: func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
			return []retrieval.ChunkHit{
				chunkHit("c1", "r1", "golang and kubernetes", 0.9),
				chunkHit("c2", "r2", "some python", 0.6),
				chunkHit("c3", "r2", "misc text", 0.4),
			}, nil
		},
	}
	resumes := &MockResumeStore{Resumes: map[string]resumeModel.Resume{
		"r1": {Id: "r1"},
		"r2": {Id: "r2"},
	}}
	reports := &MockReportStore{}
	aggregator := NewAggregator(retriever, resumes, reports)

	matches, err := aggregator.Match(context.Background(), resumeModel.JobSpec{Id: "j1", Title: "Go Dev"}, 10)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].ResumeId != "r1" || matches[1].ResumeId != "r2" {
		t.Errorf("Wrong ranking order: %s then %s", matches[0].ResumeId, matches[1].ResumeId)
	}
	if matches[0].Score != 0.9 {
		t.Errorf("Expected mean 0.9 for r1, got %f", matches[0].Score)
	}
	if matches[1].Score != 0.5 {
		t.Errorf("Expected mean 0.5 for r2, got %f", matches[1].Score)
	}
}

func TestMatch_TieBreakOrder(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	retriever := &MockRetriever{
		OnTopChunks: func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
			return []retrieval.ChunkHit{
				chunkHit("c1", "old", "text", 0.7),
				chunkHit("c2", "new", "text", 0.7),
				chunkHit("c3", "aaa", "text", 0.7),
				chunkHit("c4", "zzz", "text", 0.7),
			}, nil
		},
	}
	resumes := &MockResumeStore{Resumes: map[string]resumeModel.Resume{
		"old": {Id: "old", UploadedAt: older},
		"new": {Id: "new", UploadedAt: newer},
		"aaa": {Id: "aaa", UploadedAt: older},
		"zzz": {Id: "zzz", UploadedAt: older},
	}}
	aggregator := NewAggregator(retriever, resumes, &MockReportStore{})

	matches, err := aggregator.Match(context.Background(), resumeModel.JobSpec{Id: "j1"}, 10)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	// Equal scores: newer upload first, then descending resume id.
	want := []string{"new", "zzz", "old", "aaa"}
	for i, id := range want {
		if matches[i].ResumeId != id {
			t.Fatalf("Position %d: want %s, got %s (full order: %v)", i, id, matches[i].ResumeId, matches)
		}
	}
}

func TestMatch_MissingRequirements(t *testing.T) {
	retriever := &MockRetriever{
		OnTopChunks: func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
			return []retrieval.ChunkHit{
				chunkHit("c1", "r1", "Senior engineer with Kubernetes and Go experience", 0.8),
			}, nil
		},
	}
	resumes := &MockResumeStore{Resumes: map[string]resumeModel.Resume{"r1": {Id: "r1"}}}
	aggregator := NewAggregator(retriever, resumes, &MockReportStore{})

	spec := resumeModel.JobSpec{
		Id:           "j1",
		Requirements: []string{"kubernetes", "Terraform", "go"},
	}
	matches, err := aggregator.Match(context.Background(), spec, 10)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}

	missing := matches[0].MissingRequirements
	if len(missing) != 1 || missing[0] != "Terraform" {
		t.Errorf("Expected only Terraform missing, got %v", missing)
	}
}

func TestMatch_TruncatesToTopNAndPersistsReports(t *testing.T) {
	retriever := &MockRetriever{
		OnTopChunks: func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
			return []retrieval.ChunkHit{
				chunkHit("c1", "r1", "a", 0.9),
				chunkHit("c2", "r2", "b", 0.8),
				chunkHit("c3", "r3", "c", 0.7),
			}, nil
		},
	}
	resumes := &MockResumeStore{Resumes: map[string]resumeModel.Resume{
		"r1": {Id: "r1"}, "r2": {Id: "r2"}, "r3": {Id: "r3"},
	}}
	reports := &MockReportStore{}
	aggregator := NewAggregator(retriever, resumes, reports)

	matches, err := aggregator.Match(context.Background(), resumeModel.JobSpec{Id: "j1"}, 2)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected matches truncated to 2, got %d", len(matches))
	}
	if len(reports.Reports) != 2 {
		t.Errorf("Expected one report per ranked resume, got %d", len(reports.Reports))
	}
	for _, report := range reports.Reports {
		if report.JobId != "j1" {
			t.Errorf("Report has wrong job id: %s", report.JobId)
		}
	}
}

func TestMatch_DropsUnknownResumes(t *testing.T) {
	retriever := &MockRetriever{
		OnTopChunks: func(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error) {
			return []retrieval.ChunkHit{
				chunkHit("c1", "known", "text", 0.9),
				chunkHit("c2", "ghost", "text", 0.8),
			}, nil
		},
	}
	resumes := &MockResumeStore{Resumes: map[string]resumeModel.Resume{"known": {Id: "known"}}}
	aggregator := NewAggregator(retriever, resumes, &MockReportStore{})

	matches, err := aggregator.Match(context.Background(), resumeModel.JobSpec{Id: "j1"}, 10)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ResumeId != "known" {
		t.Errorf("Expected only the known resume, got %v", matches)
	}
}
