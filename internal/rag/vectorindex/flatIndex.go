package vectorindex

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var flatMagic = [4]byte{'R', 'C', 'V', '1'}

// FlatIndex is an exact inner-product index over L2-normalized vectors,
// persisted as two co-located artifacts: a binary vector blob and a JSON map
// of decimal-string internal ids to chunk ids. Internal ids are dense, start
// at 0 and equal the count of prior entries at insertion time; the structure
// is append-only. A single mutex serializes the whole load-append-persist
// cycle so concurrent writers cannot lose each other's additions.
type FlatIndex struct {
	mu       sync.RWMutex
	dir      string
	dim      int
	embedder embedding.Embedder
	vectors  [][]float32
	idMap    []string //internal id -> chunk id
	logger   *logger_i.Logger
}

func OpenFlatIndex(dir string, dim int, e embedding.Embedder) (*FlatIndex, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("index dir: %w", err)
	}
	idx := &FlatIndex{
		dir:      dir,
		dim:      dim,
		embedder: e,
		logger:   logger_i.NewLogger("FlatIndex"),
	}
	if err := idx.load(); err != nil {
		return nil, err
	}
	idx.logger.Info("Vector index opened", "dir", dir, "vectors", len(idx.vectors))
	return idx, nil
}

func (f *FlatIndex) vectorPath() string { return filepath.Join(f.dir, config.VectorIndexFile) }
func (f *FlatIndex) idMapPath() string  { return filepath.Join(f.dir, config.IdMapFile) }

func (f *FlatIndex) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vectors)
}

func (f *FlatIndex) Add(ctx context.Context, refs []ChunkRef) error {
	if len(refs) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	newVectors := make([][]float32, 0, len(refs))
	for i := 0; i < len(refs); i += config.EmbeddingBatchSize {
		end := i + config.EmbeddingBatchSize
		if end > len(refs) {
			end = len(refs)
		}
		texts := make([]string, 0, end-i)
		for _, r := range refs[i:end] {
			texts = append(texts, r.Text)
		}
		vectors, err := f.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch failed: %w", err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
		}
		for _, v := range vectors {
			if len(v) != f.dim {
				return fmt.Errorf("vector dimension %d, index dimension %d", len(v), f.dim)
			}
			Normalize(v)
			newVectors = append(newVectors, v)
		}
	}

	vectors := make([][]float32, 0, len(f.vectors)+len(newVectors))
	vectors = append(append(vectors, f.vectors...), newVectors...)
	idMap := make([]string, 0, len(f.idMap)+len(refs))
	idMap = append(idMap, f.idMap...)
	for _, r := range refs {
		idMap = append(idMap, r.ChunkId)
	}

	// Persist first, commit in memory only once both artifacts are on disk.
	if err := f.persist(vectors, idMap); err != nil {
		return err
	}
	f.vectors = vectors
	f.idMap = idMap
	f.logger.Debug("Appended vectors", "added", len(refs), "total", len(f.vectors))
	return nil
}

func (f *FlatIndex) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("query dimension %d, index dimension %d", len(query), f.dim)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if k <= 0 || len(f.vectors) == 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	scores := make([]float32, len(f.vectors))
	for i, v := range f.vectors {
		var dot float32
		for j := range v {
			dot += v[j] * query[j]
		}
		scores[i] = dot
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })

	hits := make([]Hit, 0, k)
	for _, internalId := range order[:k] {
		if internalId < 0 || internalId >= len(f.idMap) {
			continue //sentinel slot, no valid match
		}
		hits = append(hits, Hit{
			InternalId: internalId,
			ChunkId:    f.idMap[internalId],
			Score:      scores[internalId],
		})
	}
	return hits, nil
}

func (f *FlatIndex) load() error {
	raw, err := os.ReadFile(f.vectorPath())
	if os.IsNotExist(err) {
		return nil //fresh index
	}
	if err != nil {
		return fmt.Errorf("reading vector blob: %w", err)
	}

	if len(raw) < 8 || [4]byte(raw[:4]) != flatMagic {
		return fmt.Errorf("vector blob %s is corrupt", f.vectorPath())
	}
	dim := int(binary.LittleEndian.Uint32(raw[4:8]))
	if dim != f.dim {
		return fmt.Errorf("vector blob dimension %d, expected %d", dim, f.dim)
	}
	body := raw[8:]
	if len(body)%(4*dim) != 0 {
		return fmt.Errorf("vector blob %s is truncated", f.vectorPath())
	}
	count := len(body) / (4 * dim)

	vectors := make([][]float32, count)
	for i := 0; i < count; i++ {
		v := make([]float32, dim)
		for j := 0; j < dim; j++ {
			bits := binary.LittleEndian.Uint32(body[(i*dim+j)*4:])
			v[j] = math.Float32frombits(bits)
		}
		vectors[i] = v
	}

	idMap, err := f.loadIdMap(count)
	if err != nil {
		return err
	}
	f.vectors = vectors
	f.idMap = idMap
	return nil
}

// loadIdMap refuses any pair that is out of sync: the map domain must be
// exactly 0..count-1.
func (f *FlatIndex) loadIdMap(count int) ([]string, error) {
	raw, err := os.ReadFile(f.idMapPath())
	if err != nil {
		return nil, fmt.Errorf("reading id map: %w", err)
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding id map: %w", err)
	}
	if len(m) != count {
		return nil, fmt.Errorf("id map covers %d ids, index holds %d vectors", len(m), count)
	}
	idMap := make([]string, count)
	for i := 0; i < count; i++ {
		chunkId, ok := m[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("id map is missing internal id %d", i)
		}
		idMap[i] = chunkId
	}
	return idMap, nil
}

func (f *FlatIndex) persist(vectors [][]float32, idMap []string) error {
	blob := make([]byte, 8, 8+len(vectors)*f.dim*4)
	copy(blob[:4], flatMagic[:])
	binary.LittleEndian.PutUint32(blob[4:8], uint32(f.dim))
	for _, v := range vectors {
		for _, x := range v {
			blob = binary.LittleEndian.AppendUint32(blob, math.Float32bits(x))
		}
	}

	m := make(map[string]string, len(idMap))
	for i, chunkId := range idMap {
		m[strconv.Itoa(i)] = chunkId
	}
	mapBytes, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding id map: %w", err)
	}

	vecTmp := f.vectorPath() + ".tmp"
	mapTmp := f.idMapPath() + ".tmp"
	if err := os.WriteFile(vecTmp, blob, 0640); err != nil {
		return fmt.Errorf("writing vector blob: %w", err)
	}
	if err := os.WriteFile(mapTmp, mapBytes, 0640); err != nil {
		return fmt.Errorf("writing id map: %w", err)
	}
	if err := os.Rename(vecTmp, f.vectorPath()); err != nil {
		return fmt.Errorf("committing vector blob: %w", err)
	}
	if err := os.Rename(mapTmp, f.idMapPath()); err != nil {
		return fmt.Errorf("committing id map: %w", err)
	}
	return nil
}
