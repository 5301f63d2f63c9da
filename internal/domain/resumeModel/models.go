package resumeModel

import (
	"context"
	"time"
)

type ResumeStatus string

const (
	StatusProcessing ResumeStatus = "processing"
	StatusProcessed  ResumeStatus = "processed"
	StatusFailed     ResumeStatus = "failed"
)

// Resume is created at upload time with StatusProcessing, mutated exactly once
// by the ingestion pipeline to a terminal status, and immutable afterwards.
type Resume struct {
	Id         string       `json:"id"`
	OwnerId    string       `json:"owner_id,omitempty"`
	Filename   string       `json:"filename"`
	UploadedAt time.Time    `json:"uploaded_at"`
	Status     ResumeStatus `json:"status"`
	Redacted   bool         `json:"redacted"`
	Summary    string       `json:"summary,omitempty"`
}

// ResumeChunk ordinals are dense per resume starting at 0, in chunking output
// order. Chunks are never reordered or deleted independently of their resume.
type ResumeChunk struct {
	Id        string    `json:"id"`
	ResumeId  string    `json:"resume_id"`
	Text      string    `json:"chunk_text"`
	Order     int       `json:"chunk_order"`
	PageNum   int       `json:"page_number,omitempty"`
	CharStart int       `json:"char_start,omitempty"`
	CharEnd   int       `json:"char_end,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type JobSpec struct {
	Id           string    `json:"id"`
	OwnerRole    string    `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
}

// Evidence is a retrieved chunk excerpt cited in support of an answer or match.
type Evidence struct {
	ChunkId string `json:"chunk_id"`
	Text    string `json:"text"`
	Page    int    `json:"page,omitempty"`
	Start   int    `json:"start,omitempty"`
	End     int    `json:"end,omitempty"`
}

// MatchReport is an append-only audit record. One report is written per ranked
// resume per match invocation, duplicates over time included.
type MatchReport struct {
	Id                  string     `json:"id"`
	JobId               string     `json:"job_id"`
	ResumeId            string     `json:"resume_id"`
	Score               float64    `json:"score"`
	Evidence            []Evidence `json:"evidence"`
	MissingRequirements []string   `json:"missing_requirements"`
	CreatedAt           time.Time  `json:"created_at"`
}

type IdempotencyRecord struct {
	Key          string    `json:"key"`
	Requester    string    `json:"requester"`
	Endpoint     string    `json:"endpoint"`
	RequestHash  string    `json:"request_hash"`
	StatusCode   int       `json:"status_code,omitempty"`
	ResponseBody []byte    `json:"response_body,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResumeStore interface {
	SaveResume(ctx context.Context, resume Resume) error
	GetResume(ctx context.Context, id string) (Resume, bool)
	ListResumes(ctx context.Context) ([]Resume, error)
}

type ChunkStore interface {
	SaveChunks(ctx context.Context, chunks []ResumeChunk) error
	GetChunk(ctx context.Context, chunkId string) (ResumeChunk, bool)
	GetChunksByResume(ctx context.Context, resumeId string) ([]ResumeChunk, error)
}

type JobSpecStore interface {
	SaveJobSpec(ctx context.Context, spec JobSpec) error
	GetJobSpec(ctx context.Context, id string) (JobSpec, bool)
	ListJobSpecs(ctx context.Context) ([]JobSpec, error)
}

type ReportStore interface {
	SaveReport(ctx context.Context, report MatchReport) error
	GetReportsByJob(ctx context.Context, jobId string) ([]MatchReport, error)
}

// IdempotencyStore backs the request guard. PutPlaceholder must succeed for at
// most one caller per key.
type IdempotencyStore interface {
	PutPlaceholder(ctx context.Context, record IdempotencyRecord) (bool, error)
	GetRecord(ctx context.Context, key string) (IdempotencyRecord, bool)
	SetResponse(ctx context.Context, key string, statusCode int, body []byte) error
}
