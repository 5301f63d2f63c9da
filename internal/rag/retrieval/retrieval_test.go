package retrieval

import (
	"context"
	"testing"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
)

type MockEmbedder struct{}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))
	for i := range chunks {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type MockIndex struct {
	Hits []vectorindex.Hit
}

func (m *MockIndex) Add(ctx context.Context, refs []vectorindex.ChunkRef) error { return nil }

func (m *MockIndex) Search(ctx context.Context, vector []float32, k int) ([]vectorindex.Hit, error) {
	if k < len(m.Hits) {
		return m.Hits[:k], nil
	}
	return m.Hits, nil
}

type MockChunkStore struct {
	Chunks map[string]resumeModel.ResumeChunk
}

func (m *MockChunkStore) SaveChunks(ctx context.Context, chunks []resumeModel.ResumeChunk) error {
	return nil
}

func (m *MockChunkStore) GetChunk(ctx context.Context, chunkId string) (resumeModel.ResumeChunk, bool) {
	chunk, found := m.Chunks[chunkId]
	return chunk, found
}

func (m *MockChunkStore) GetChunksByResume(ctx context.Context, resumeId string) ([]resumeModel.ResumeChunk, error) {
	return nil, nil
}

func TestTopChunks_ResolvesHitsAndDropsStaleOnes(t *testing.T) {
	index := &MockIndex{Hits: []vectorindex.Hit{
		{InternalId: 0, ChunkId: "c1", Score: 0.9},
		{InternalId: 1, ChunkId: "stale", Score: 0.8},
		{InternalId: 2, ChunkId: "c2", Score: 0.7},
	}}
	chunks := &MockChunkStore{Chunks: map[string]resumeModel.ResumeChunk{
		"c1": {Id: "c1", ResumeId: "r1", Text: "golang services"},
		"c2": {Id: "c2", ResumeId: "r2", Text: "python scripts"},
	}}
	service := NewService(index, &MockEmbedder{}, chunks)

	hits, err := service.TopChunks(context.Background(), "golang", 5)
	if err != nil {
		t.Fatalf("TopChunks failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("Expected stale hit dropped, got %d hits", len(hits))
	}
	if hits[0].Chunk.Id != "c1" || hits[1].Chunk.Id != "c2" {
		t.Errorf("Hits out of order: %v", hits)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("Scores not descending: %f then %f", hits[0].Score, hits[1].Score)
	}
}

func TestAsk_BuildsOneAnswerPerHitWithBoundedEvidence(t *testing.T) {
	longText := ""
	for i := 0; i < config.AskExcerptLimit+200; i++ {
		longText += "x"
	}

	index := &MockIndex{Hits: []vectorindex.Hit{
		{InternalId: 0, ChunkId: "c1", Score: 0.9},
	}}
	chunks := &MockChunkStore{Chunks: map[string]resumeModel.ResumeChunk{
		"c1": {Id: "c1", ResumeId: "r1", Text: longText},
	}}
	service := NewService(index, &MockEmbedder{}, chunks)

	answers, err := service.Ask(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("Expected 1 answer, got %d", len(answers))
	}
	answer := answers[0]
	if answer.ResumeId != "r1" {
		t.Errorf("Wrong resume id: %s", answer.ResumeId)
	}
	if len(answer.Evidence) != 1 {
		t.Fatalf("Expected 1 evidence entry, got %d", len(answer.Evidence))
	}
	if len(answer.Evidence[0].Text) != config.AskExcerptLimit {
		t.Errorf("Evidence excerpt not bounded: %d chars", len(answer.Evidence[0].Text))
	}
}
