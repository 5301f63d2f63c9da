package retrieval

import (
	"context"
	"time"

	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

// ChunkHit is one resolved index hit: the full chunk record plus its
// similarity to the query.
type ChunkHit struct {
	Chunk resumeModel.ResumeChunk
	Score float64
}

type Answer struct {
	ResumeId string                 `json:"resume_id"`
	Score    float64                `json:"score"`
	Evidence []resumeModel.Evidence `json:"evidence"`
}

type Service struct {
	index    vectorindex.Index
	embedder embedding.Embedder
	chunks   resumeModel.ChunkStore
	logger   *logger_i.Logger
}

func NewService(index vectorindex.Index, e embedding.Embedder, chunks resumeModel.ChunkStore) *Service {
	return &Service{
		index:    index,
		embedder: e,
		chunks:   chunks,
		logger:   logger_i.NewLogger("Retrieval Service"),
	}
}

// TopChunks embeds the query, searches the index and resolves hits back to
// chunk records. Hits whose chunk cannot be resolved are dropped silently -
// a stale index entry degrades the result set, it does not fail the query.
func (s *Service) TopChunks(ctx context.Context, query string, k int) ([]ChunkHit, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	start := time.Now()
	vector, err := s.embedder.GetEmbedding(ctx, query)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		return nil, err
	}
	vectorindex.Normalize(vector)

	start = time.Now()
	hits, err := s.index.Search(ctx, vector, k)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		return nil, err
	}

	results := make([]ChunkHit, 0, len(hits))
	for _, hit := range hits {
		chunk, found := s.chunks.GetChunk(ctx, hit.ChunkId)
		if !found {
			log.Debug("Dropping unresolvable index hit", "chunkId", hit.ChunkId)
			continue
		}
		results = append(results, ChunkHit{Chunk: chunk, Score: float64(hit.Score)})
	}
	return results, nil
}

// Ask returns one answer per chunk hit, ranked by similarity.
func (s *Service) Ask(ctx context.Context, query string, k int) ([]Answer, error) {
	hits, err := s.TopChunks(ctx, query, k)
	if err != nil {
		return nil, err
	}

	answers := make([]Answer, 0, len(hits))
	for _, hit := range hits {
		answers = append(answers, Answer{
			ResumeId: hit.Chunk.ResumeId,
			Score:    hit.Score,
			Evidence: []resumeModel.Evidence{{
				ChunkId: hit.Chunk.Id,
				Text:    utils.TruncateString(hit.Chunk.Text, config.AskExcerptLimit),
				Page:    hit.Chunk.PageNum,
				Start:   hit.Chunk.CharStart,
				End:     hit.Chunk.CharEnd,
			}},
		})
	}
	return answers, nil
}
