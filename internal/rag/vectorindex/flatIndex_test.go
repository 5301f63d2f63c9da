package vectorindex

import (
	"context"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/akolanti/ResumeRAG/internal/config"
)

const testDim = int(config.EmbeddingOutputDimensionality)

// bagEmbedder maps each whitespace token to a deterministic slot, so similar
// texts get similar vectors without any model behind it.
type bagEmbedder struct{}

func embedText(text string) []float32 {
	v := make([]float32, testDim)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		v[int(h.Sum32())%testDim]++
	}
	return v
}

func (bagEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return embedText(query), nil
}

func (bagEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	out := make([][]float32, len(chunks))
	for i, c := range chunks {
		out[i] = embedText(c)
	}
	return out, nil
}

func normalizedQuery(text string) []float32 {
	v := embedText(text)
	Normalize(v)
	return v
}

func TestFlatIndex_AddAndSearch(t *testing.T) {
	idx, err := OpenFlatIndex(t.TempDir(), testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("OpenFlatIndex failed: %v", err)
	}

	ctx := context.Background()
	refs := []ChunkRef{
		{ChunkId: "chunk-go", Text: "golang backend microservices grpc"},
		{ChunkId: "chunk-ml", Text: "python pytorch machine learning"},
		{ChunkId: "chunk-fe", Text: "react typescript frontend"},
	}
	if err := idx.Add(ctx, refs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := idx.Search(ctx, normalizedQuery("golang grpc services"), 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].ChunkId != "chunk-go" {
		t.Errorf("top hit = %s, want chunk-go", hits[0].ChunkId)
	}
	if hits[0].Score < hits[1].Score {
		t.Errorf("hits not sorted by descending score: %v", hits)
	}
	if hits[0].InternalId != 0 {
		t.Errorf("chunk-go internal id = %d, want 0", hits[0].InternalId)
	}
}

func TestFlatIndex_SelfSimilarityIsUnit(t *testing.T) {
	idx, err := OpenFlatIndex(t.TempDir(), testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("OpenFlatIndex failed: %v", err)
	}
	ctx := context.Background()
	text := "kubernetes operator golang"
	if err := idx.Add(ctx, []ChunkRef{{ChunkId: "c0", Text: text}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := idx.Search(ctx, normalizedQuery(text), 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if got := hits[0].Score; got < 0.999 || got > 1.001 {
		t.Errorf("identical text similarity = %f, want ~1.0", got)
	}
}

func TestFlatIndex_FewerThanK(t *testing.T) {
	idx, err := OpenFlatIndex(t.TempDir(), testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("OpenFlatIndex failed: %v", err)
	}
	ctx := context.Background()
	if err := idx.Add(ctx, []ChunkRef{{ChunkId: "only", Text: "solo chunk"}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	hits, err := idx.Search(ctx, normalizedQuery("solo"), 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("expected 1 hit for a 1-vector index, got %d", len(hits))
	}
}

func TestFlatIndex_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := OpenFlatIndex(dir, testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("OpenFlatIndex failed: %v", err)
	}
	refs := []ChunkRef{
		{ChunkId: "a", Text: "distributed systems engineer"},
		{ChunkId: "b", Text: "payments platform java"},
		{ChunkId: "c", Text: "site reliability kubernetes"},
	}
	if err := idx.Add(ctx, refs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	query := normalizedQuery("kubernetes reliability")
	before, err := idx.Search(ctx, query, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	reloaded, err := OpenFlatIndex(dir, testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Count() != len(refs) {
		t.Fatalf("reloaded count = %d, want %d", reloaded.Count(), len(refs))
	}
	after, err := reloaded.Search(ctx, query, 3)
	if err != nil {
		t.Fatalf("Search after reload failed: %v", err)
	}

	if len(before) != len(after) {
		t.Fatalf("result count changed across reload: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("hit %d changed across reload: %+v vs %+v", i, before[i], after[i])
		}
	}

	// Appends after reload keep internal ids dense.
	if err := reloaded.Add(ctx, []ChunkRef{{ChunkId: "d", Text: "android mobile kotlin"}}); err != nil {
		t.Fatalf("Add after reload failed: %v", err)
	}
	hits, err := reloaded.Search(ctx, normalizedQuery("android kotlin"), 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if hits[0].ChunkId != "d" || hits[0].InternalId != 3 {
		t.Errorf("new entry = %+v, want chunk d at internal id 3", hits[0])
	}
}

func TestFlatIndex_EmptyIndexSearch(t *testing.T) {
	idx, err := OpenFlatIndex(t.TempDir(), testDim, bagEmbedder{})
	if err != nil {
		t.Fatalf("OpenFlatIndex failed: %v", err)
	}
	hits, err := idx.Search(context.Background(), normalizedQuery("anything"), 5)
	if err != nil {
		t.Fatalf("Search on empty index errored: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no hits, got %d", len(hits))
	}
}
