package vectorindex

import (
	"context"
	"math"
)

// ChunkRef is the unit handed to the index: the chunk identity plus the source
// text to embed. Vectors are always recomputed from source text, never reused.
type ChunkRef struct {
	ChunkId string
	Text    string
}

type Hit struct {
	InternalId int     `json:"chunk_index"`
	ChunkId    string  `json:"chunk_id"`
	Score      float32 `json:"score"`
}

type Index interface {
	Add(ctx context.Context, refs []ChunkRef) error
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)
}

// Normalize scales v to unit length in place, so inner product equals cosine
// similarity. Zero vectors are left untouched.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range v {
		v[i] /= norm
	}
}
