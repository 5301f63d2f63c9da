package matcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

type Retriever interface {
	TopChunks(ctx context.Context, query string, k int) ([]retrieval.ChunkHit, error)
}

type MatchHit struct {
	ResumeId            string                 `json:"resume_id"`
	Score               float64                `json:"score"`
	Evidence            []resumeModel.Evidence `json:"evidence"`
	MissingRequirements []string               `json:"missing_requirements"`
}

type Aggregator struct {
	retriever Retriever
	resumes   resumeModel.ResumeStore
	reports   resumeModel.ReportStore
	logger    *logger_i.Logger
}

func NewAggregator(r Retriever, resumes resumeModel.ResumeStore, reports resumeModel.ReportStore) *Aggregator {
	return &Aggregator{
		retriever: r,
		resumes:   resumes,
		reports:   reports,
		logger:    logger_i.NewLogger("Match Aggregator"),
	}
}

type resumeBucket struct {
	resume   resumeModel.Resume
	scoreSum float64
	count    int
	evidence []resumeModel.Evidence
}

// Match turns chunk-level hits for a job description into ranked resume-level
// matches. Per-resume score is the arithmetic mean of its hit scores, so a
// resume with one strong chunk is not buried under one with many weak ones.
func (a *Aggregator) Match(ctx context.Context, spec resumeModel.JobSpec, topN int) ([]MatchHit, error) {
	log := a.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "jobId", spec.Id)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("job_match", time.Since(start)) }()

	query := buildQuery(spec)
	// Over-fetch: many chunk hits collapse onto few resumes.
	hits, err := a.retriever.TopChunks(ctx, query, topN*config.MatchFanOut)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*resumeBucket)
	for _, hit := range hits {
		bucket, ok := buckets[hit.Chunk.ResumeId]
		if !ok {
			resume, found := a.resumes.GetResume(ctx, hit.Chunk.ResumeId)
			if !found {
				log.Debug("Dropping hit for unknown resume", "resumeId", hit.Chunk.ResumeId)
				continue
			}
			bucket = &resumeBucket{resume: resume}
			buckets[hit.Chunk.ResumeId] = bucket
		}
		bucket.scoreSum += hit.Score
		bucket.count++
		bucket.evidence = append(bucket.evidence, resumeModel.Evidence{
			ChunkId: hit.Chunk.Id,
			Text:    utils.TruncateString(hit.Chunk.Text, config.MatchExcerptLimit),
			Page:    hit.Chunk.PageNum,
			Start:   hit.Chunk.CharStart,
			End:     hit.Chunk.CharEnd,
		})
	}

	ranked := make([]*resumeBucket, 0, len(buckets))
	for _, bucket := range buckets {
		ranked = append(ranked, bucket)
	}
	// Compound tie-break guarantees a total order: mean score desc, upload
	// timestamp desc, resume id desc.
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := ranked[i].mean(), ranked[j].mean()
		if si != sj {
			return si > sj
		}
		ti, tj := ranked[i].resume.UploadedAt, ranked[j].resume.UploadedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ranked[i].resume.Id > ranked[j].resume.Id
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}

	matches := make([]MatchHit, 0, len(ranked))
	for _, bucket := range ranked {
		missing := missingRequirements(spec.Requirements, bucket.evidence)
		match := MatchHit{
			ResumeId:            bucket.resume.Id,
			Score:               bucket.mean(),
			Evidence:            bucket.evidence,
			MissingRequirements: missing,
		}
		matches = append(matches, match)

		report := resumeModel.MatchReport{
			Id:                  utils.GetNewUUID(),
			JobId:               spec.Id,
			ResumeId:            bucket.resume.Id,
			Score:               match.Score,
			Evidence:            bucket.evidence,
			MissingRequirements: missing,
			CreatedAt:           time.Now(),
		}
		if err := a.reports.SaveReport(ctx, report); err != nil {
			log.Error("Failed to persist match report", "resumeId", bucket.resume.Id, "error", err)
		}
	}
	return matches, nil
}

func (b *resumeBucket) mean() float64 {
	if b.count == 0 {
		return 0
	}
	return b.scoreSum / float64(b.count)
}

func buildQuery(spec resumeModel.JobSpec) string {
	return fmt.Sprintf("%s. Requirements: %s. %s", spec.Title, strings.Join(spec.Requirements, "; "), spec.Description)
}

// missingRequirements is a deliberately lexical check: a requirement counts as
// found only when it appears as a case-insensitive substring of the combined
// evidence excerpts.
func missingRequirements(requirements []string, evidence []resumeModel.Evidence) []string {
	texts := make([]string, 0, len(evidence))
	for _, e := range evidence {
		texts = append(texts, e.Text)
	}
	blob := strings.ToLower(strings.Join(texts, " "))

	missing := make([]string, 0)
	for _, req := range requirements {
		if !strings.Contains(blob, strings.ToLower(req)) {
			missing = append(missing, req)
		}
	}
	return missing
}
