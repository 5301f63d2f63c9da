package vectorindex

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var qdrantLogger *logger_i.Logger
var qdrantInstance *qdrant.Client
var qdrantOnce sync.Once
var qdrantDimension = uint64(config.EmbeddingOutputDimensionality)

// QdrantIndex is the optional remote backend behind the same Index port. It
// has no dense internal-id contract; hits carry their result rank instead.
type QdrantIndex struct {
	client   *qdrant.Client
	embedder embedding.Embedder
}

func GetQdrantIndex(ctx context.Context, e embedding.Embedder) *QdrantIndex {
	qdrantOnce.Do(func() {
		qdrantLogger = logger_i.NewLogger("QdrantIndex")
		res := newQdrantClient(ctx)
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &QdrantIndex{client: qdrantInstance, embedder: e}
}

func newQdrantClient(ctx context.Context) *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		qdrantLogger.Error("could not instantiate: ", "error:", err)
		return nil
	}

	if err = ensureCollection(ctx, client); err != nil {
		qdrantLogger.Error("could not create collection: ", "collectionName", config.QdrantCollectionName, "error:", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	qdrantLogger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		qdrantLogger.Error("could not close Qdrant: ", "error:", err)
	}
}

func ensureCollection(ctx context.Context, client *qdrant.Client) error {
	exists, err := client.CollectionExists(ctx, config.QdrantCollectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: config.QdrantCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     qdrantDimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (q *QdrantIndex) Add(ctx context.Context, refs []ChunkRef) error {
	if len(refs) == 0 {
		return nil
	}

	texts := make([]string, len(refs))
	for i, r := range refs {
		texts[i] = r.Text
	}
	vectors, err := q.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding batch failed: %w", err)
	}
	if len(vectors) != len(refs) {
		return fmt.Errorf("mismatch: got %d refs but %d vectors", len(refs), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(refs))
	for i, r := range refs {
		Normalize(vectors[i])
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(r.ChunkId),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"chunk_id": r.ChunkId,
			}),
		}
	}

	_, err = q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: config.QdrantCollectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (q *QdrantIndex) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	loggr := qdrantLogger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	if k <= 0 {
		return nil, nil
	}

	result, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: config.QdrantCollectionName,
		Query:          qdrant.NewQuery(query...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		loggr.Error("Error querying Qdrant: ", "error:", err)
		return nil, err
	}

	hits := make([]Hit, 0, len(result))
	for i, point := range result {
		chunkId := point.Payload["chunk_id"].GetStringValue()
		if chunkId == "" {
			continue
		}
		hits = append(hits, Hit{InternalId: i, ChunkId: chunkId, Score: point.Score})
	}
	return hits, nil
}
