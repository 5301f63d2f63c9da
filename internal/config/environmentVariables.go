package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to the in-memory stores
	TRACE_ID_KEY                    = "traceId"
	ROLE_KEY                        = "requesterRole"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//auth - one static bearer token per role
	NoAuthBypass   = false
	CandidateToken = "candidate-dev-token"
	RecruiterToken = "recruiter-dev-token"
	AdminToken     = "admin-dev-token"

	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"

	//embeddings
	EmbeddingOutputDimensionality int32 = 1536
	EmbeddingProvider                   = "google" //"google" or "openai"
	GoogleEmbeddingModel                = "gemini-embedding-001"
	GoogleEmbeddingAPIKey               = ""
	OpenAIEmbeddingModel                = "text-embedding-3-small"
	OpenAIAPIKey                        = ""

	//llm - optional answer synthesis on /api/ask, skipped when the client fails to init
	GeminiModelName          = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTemperature float32 = 0.7
	ModelContext             = "You answer questions about candidate resumes using only the supplied excerpts. If the excerpts do not contain the answer, say you dont know."

	//vector index
	VectorBackend      = "flat" //"flat" or "qdrant"
	VectorIndexDir     = "vector_index"
	VectorIndexFile    = "resume_chunks.vec"
	IdMapFile          = "id_map.json"
	EmbeddingBatchSize = 100

	//qdrant backend (optional)
	QdrantCollectionName = "resume-chunks"
	QdrantHost           = ""
	QdrantGrpcPort       = 6334
	QdrantUseTLS         = false
	QdrantPoolSize       = 1

	//ingestion pipeline
	ChunkSize     = 250 //tokens per window
	ChunkOverlap  = 50  //tokens shared between adjacent windows
	SummaryLimit  = 800 //chars of redacted text kept as the resume summary
	UploadDirName = "resume_uploads"
	MaxUploadSize = 32 << 20

	//retrieval and matching
	DefaultAskK       = 5
	DefaultMatchTopN  = 10
	MatchFanOut       = 5   //over-fetch factor: chunk hits collapse onto few resumes
	AskExcerptLimit   = 500 //chars of chunk text returned as ask evidence
	MatchExcerptLimit = 300 //chars of chunk text used for match evidence and gap analysis

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//ingestion task buffer limit
	BufferLimit = 100

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DBs we can use
	RedisTaskStore        = 0
	RedisResumeStore      = 1
	RedisChunkStore       = 2
	RedisJobSpecStore     = 3
	RedisReportStore      = 4
	RedisIdempotencyStore = 5

	//redis timeouts
	RedisTaskStoreTTL   = 24 * time.Hour
	RedisRecordTTL      = 0 //resumes, chunks, jobs and reports do not expire
	RedisIdempotencyTTL = 24 * time.Hour
)
