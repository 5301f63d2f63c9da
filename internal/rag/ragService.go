package rag

import (
	"context"
	"time"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
	"github.com/akolanti/ResumeRAG/internal/rag/ingest"
	"github.com/akolanti/ResumeRAG/internal/rag/llm"
	"github.com/akolanti/ResumeRAG/internal/rag/matcher"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

// Service is the public contract: workers drive ingestion through it and the
// HTTP handlers drive queries. The private struct keeps the index, stores and
// the optional LLM out of reach of other packages.
type Service interface {
	IngestResume(ctx context.Context, task taskModel.Task) taskModel.Task
	Ask(ctx context.Context, query string, k int) ([]retrieval.Answer, string, error)
	MatchJob(ctx context.Context, spec resumeModel.JobSpec, topN int) ([]matcher.MatchHit, error)
}

type service struct {
	resumes    resumeModel.ResumeStore
	chunks     resumeModel.ChunkStore
	index      vectorindex.Index
	retriever  *retrieval.Service
	aggregator *matcher.Aggregator
	llm        llm.Provider //nil disables answer synthesis
	logger     *logger_i.Logger
}

// NewService constructor - llmProvider may be nil.
func NewService(resumes resumeModel.ResumeStore, chunks resumeModel.ChunkStore, reports resumeModel.ReportStore, index vectorindex.Index, retriever *retrieval.Service, llmProvider llm.Provider) Service {
	return &service{
		resumes:    resumes,
		chunks:     chunks,
		index:      index,
		retriever:  retriever,
		aggregator: matcher.NewAggregator(retriever, resumes, reports),
		llm:        llmProvider,
		logger:     logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) IngestResume(ctx context.Context, task taskModel.Task) taskModel.Task {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("resume_ingestion", time.Since(start)) }()

	return ingest.ProcessResumeIngestion(ctx, task, ingest.Params{
		Resumes: s.resumes,
		Chunks:  s.chunks,
		Index:   s.index,
	})
}

// Ask returns ranked evidence and, when an LLM provider is wired, a
// synthesized answer. An LLM failure degrades to evidence-only.
func (s *service) Ask(ctx context.Context, query string, k int) ([]retrieval.Answer, string, error) {
	answers, err := s.retriever.Ask(ctx, query, k)
	if err != nil {
		return nil, "", err
	}

	synthesized := ""
	if s.llm != nil && len(answers) > 0 {
		excerpts := make([]string, 0, len(answers))
		for _, a := range answers {
			for _, e := range a.Evidence {
				excerpts = append(excerpts, e.Text)
			}
		}
		start := time.Now()
		synthesized, err = s.llm.Generate(ctx, query, excerpts)
		metrics.CaptureExecutionMetrics("llm_generation", time.Since(start))
		if err != nil {
			s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY)).Error("Answer synthesis failed", "error", err)
			synthesized = ""
		}
	}
	return answers, synthesized, nil
}

func (s *service) MatchJob(ctx context.Context, spec resumeModel.JobSpec, topN int) ([]matcher.MatchHit, error) {
	return s.aggregator.Match(ctx, spec, topN)
}
