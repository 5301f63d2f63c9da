package ingest

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/ResumeRAG/internal/adapter/utils"
	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
	"github.com/akolanti/ResumeRAG/internal/rag/chunker"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
	"github.com/akolanti/ResumeRAG/internal/redact"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var logger *logger_i.Logger

type Params struct {
	Resumes resumeModel.ResumeStore
	Chunks  resumeModel.ChunkStore
	Index   vectorindex.Index
}

// ProcessResumeIngestion runs extract -> redact -> chunk -> persist -> index
// for one uploaded resume. Extraction is best effort: a parse failure yields
// empty text, not a failed resume. Embedding or index errors are terminal and
// flip the resume to StatusFailed; nothing is retried.
func ProcessResumeIngestion(ctx context.Context, task taskModel.Task, p Params) taskModel.Task {
	logger = logger_i.NewLogger("Resume Ingestion")
	log := logger.With("traceId", task.TraceId, "resumeId", task.ResumeId)

	resume, found := p.Resumes.GetResume(ctx, task.ResumeId)
	if !found {
		log.Error("Resume record missing for ingestion task")
		return taskError(task, "resume record not found")
	}

	task.CurrentStep = taskModel.ExtractCall
	start := time.Now()
	text := extractText(task.Payload.FilePath)
	metrics.CaptureExecutionMetrics("text_extraction", time.Since(start))
	log.Debug("Extracted resume text", "chars", len(text))

	task.CurrentStep = taskModel.RedactCall
	redacted := redact.Scrub(text)

	task.CurrentStep = taskModel.ChunkCall
	pieces, err := chunker.Split(redacted, config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		//only possible on a bad window configuration
		log.Error("Chunking failed", "error", err)
		return failResume(ctx, task, resume, p, err.Error())
	}
	log.Debug("Chunked resume text", "chunks", len(pieces))

	chunks := make([]resumeModel.ResumeChunk, len(pieces))
	refs := make([]vectorindex.ChunkRef, len(pieces))
	now := time.Now()
	for i, piece := range pieces {
		chunks[i] = resumeModel.ResumeChunk{
			Id:        utils.GetNewUUID(),
			ResumeId:  resume.Id,
			Text:      piece.Text,
			Order:     piece.Order,
			CreatedAt: now,
		}
		refs[i] = vectorindex.ChunkRef{ChunkId: chunks[i].Id, Text: chunks[i].Text}
	}
	if err := p.Chunks.SaveChunks(ctx, chunks); err != nil {
		log.Error("Saving chunk records failed", "error", err)
		return failResume(ctx, task, resume, p, "chunk store error")
	}

	task.CurrentStep = taskModel.IndexCall
	start = time.Now()
	if err := p.Index.Add(ctx, refs); err != nil {
		log.Error("Indexing failed", "error", err)
		return failResume(ctx, task, resume, p, "vector index error")
	}
	metrics.CaptureExecutionMetrics("index_add", time.Since(start))

	resume.Status = resumeModel.StatusProcessed
	resume.Summary = utils.TruncateString(redacted, config.SummaryLimit)
	resume.Redacted = true
	if err := p.Resumes.SaveResume(ctx, resume); err != nil {
		log.Error("Saving processed resume failed", "error", err)
		return taskError(task, "resume store error")
	}

	if err := os.Remove(task.Payload.FilePath); err != nil {
		log.Error("Error removing staged file", "error", err)
	}

	metrics.IncrementResumesIngested()
	task.CurrentStep = taskModel.Complete
	task.Status = taskModel.TaskStatusComplete
	return task
}

// failResume marks the resume terminally failed; the caller sees it only as a
// status field, never as a structured error payload.
func failResume(ctx context.Context, task taskModel.Task, resume resumeModel.Resume, p Params, message string) taskModel.Task {
	resume.Status = resumeModel.StatusFailed
	if err := p.Resumes.SaveResume(ctx, resume); err != nil {
		logger.Error("Could not mark resume as failed", "resumeId", resume.Id, "error", err)
	}
	return taskError(task, message)
}

func taskError(task taskModel.Task, message string) taskModel.Task {
	task.Status = taskModel.TaskStatusError
	task.CurrentStep = taskModel.Error
	task.Error = taskModel.TaskError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Retry:   false,
	}
	return task
}
