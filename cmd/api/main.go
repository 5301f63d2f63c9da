// @title           ResumeRAG API
// @version         1.0
// @description     Resume ingestion, semantic search and job matching.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/redisStore"
	"github.com/akolanti/ResumeRAG/internal/data/store"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/handlers"
	"github.com/akolanti/ResumeRAG/internal/middleware"
	"github.com/akolanti/ResumeRAG/internal/rag"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/ResumeRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/ResumeRAG/internal/rag/llm/gemini"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
	"github.com/akolanti/ResumeRAG/internal/server"
	"github.com/akolanti/ResumeRAG/internal/task"
	"github.com/akolanti/ResumeRAG/internal/worker"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered task channel
	taskChannel := make(chan taskModel.Task, config.BufferLimit)
	dispatcherChannel := make(chan bool, config.BufferLimit)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	taskStore, resumeStore, chunkStore, jobSpecStore, reportStore, idemStore := buildStores(serviceContext, logger)

	serviceConfig := task.ServiceConfig{
		TaskChannel:       taskChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		TaskStore:         taskStore,
	}
	logger.Info("Starting task service")
	taskService := task.InitTaskService(serviceConfig)

	embeddingService := buildEmbedder(serviceContext, logger)
	if embeddingService == nil {
		logger.Error("Embedding service failed to initialize. Shutting down.")
		return
	}

	index := buildIndex(serviceContext, embeddingService, logger)
	if index == nil {
		logger.Error("Vector index failed to initialize. Shutting down.")
		return
	}

	//the LLM is optional - without it /api/ask returns evidence only
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleEmbeddingAPIKey)
	if llmProvider == nil {
		logger.Warn("LLM provider unavailable, answer synthesis disabled")
	}

	retriever := retrieval.NewService(index, embeddingService, chunkStore)
	ragService := rag.NewService(resumeStore, chunkStore, reportStore, index, retriever, llmProvider)

	handlers.InitHandlers(taskService, ragService, resumeStore, chunkStore, jobSpecStore)
	middleware.InitIdempotencyGuard(idemStore)

	//init worker pool
	worker.InitServices(taskService, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func buildStores(ctx context.Context, logger *logger_i.Logger) (
	taskModel.TaskStore,
	resumeModel.ResumeStore,
	resumeModel.ChunkStore,
	resumeModel.JobSpecStore,
	resumeModel.ReportStore,
	resumeModel.IdempotencyStore,
) {
	var taskStore taskModel.TaskStore = store.GetRedisTaskStore(ctx)
	var resumeStore resumeModel.ResumeStore = store.GetRedisResumeStore(ctx)
	var chunkStore resumeModel.ChunkStore = store.GetRedisChunkStore(ctx)
	var jobSpecStore resumeModel.JobSpecStore = store.GetRedisJobSpecStore(ctx)
	var reportStore resumeModel.ReportStore = store.GetRedisReportStore(ctx)
	var idemStore resumeModel.IdempotencyStore = store.GetRedisIdempotencyStore(ctx)

	if redisStore.GetRedisStore(ctx, config.RedisTaskStore) == nil && config.FALLBACK_REDIS_TO_INTERNALSTORE {
		logger.Error("Redis stores are offline, falling back to in-memory stores")
		taskStore = store.InitInMemoryTaskStore()
		resumeStore = store.InitInMemoryResumeStore()
		chunkStore = store.InitInMemoryChunkStore()
		jobSpecStore = store.InitInMemoryJobSpecStore()
		reportStore = store.InitInMemoryReportStore()
		idemStore = store.InitInMemoryIdempotencyStore()
	}
	return taskStore, resumeStore, chunkStore, jobSpecStore, reportStore, idemStore
}

func buildEmbedder(ctx context.Context, logger *logger_i.Logger) embedding.Embedder {
	if config.EmbeddingProvider == "openai" {
		logger.Info("Using OpenAI embeddings", "model", config.OpenAIEmbeddingModel)
		return openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, config.OpenAIAPIKey)
	}
	logger.Info("Using Google embeddings", "model", config.GoogleEmbeddingModel)
	return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
}

func buildIndex(ctx context.Context, e embedding.Embedder, logger *logger_i.Logger) vectorindex.Index {
	if config.VectorBackend == "qdrant" {
		if qdrant := vectorindex.GetQdrantIndex(ctx, e); qdrant != nil {
			logger.Info("Using qdrant vector backend")
			return qdrant
		}
		logger.Error("Qdrant unavailable, falling back to flat index")
	}

	flat, err := vectorindex.OpenFlatIndex(config.VectorIndexDir, int(config.EmbeddingOutputDimensionality), e)
	if err != nil {
		logger.Error("Could not open flat index", "error", err)
		return nil
	}
	logger.Info("Using flat vector index", "dir", config.VectorIndexDir, "vectors", flat.Count())
	return flat
}
