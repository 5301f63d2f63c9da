package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/data/store"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/rag/vectorindex"
)

type capturingIndex struct {
	Added []vectorindex.ChunkRef
	Fail  bool
}

func (c *capturingIndex) Add(ctx context.Context, refs []vectorindex.ChunkRef) error {
	if c.Fail {
		return os.ErrDeadlineExceeded
	}
	c.Added = append(c.Added, refs...)
	return nil
}

func (c *capturingIndex) Search(ctx context.Context, query []float32, k int) ([]vectorindex.Hit, error) {
	return nil, nil
}

func stageFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		t.Fatalf("could not stage file: %v", err)
	}
	return path
}

func setupTask(t *testing.T, content string) (taskModel.Task, Params, *capturingIndex) {
	t.Helper()
	resumes := store.InitInMemoryResumeStore()
	chunks := store.InitInMemoryChunkStore()
	index := &capturingIndex{}

	resume := resumeModel.Resume{Id: "r1", Filename: "resume.txt", Status: resumeModel.StatusProcessing}
	if err := resumes.SaveResume(context.Background(), resume); err != nil {
		t.Fatalf("could not seed resume: %v", err)
	}

	ingestTask := taskModel.Task{
		Id:       "t1",
		ResumeId: "r1",
		TraceId:  "trace-1",
		Payload:  taskModel.TaskPayload{Filename: "resume.txt", FilePath: stageFile(t, content)},
		Status:   taskModel.TaskStatusRunning,
	}
	return ingestTask, Params{Resumes: resumes, Chunks: chunks, Index: index}, index
}

func TestProcessResumeIngestion_RedactsAndIndexes(t *testing.T) {
	content := "Alice Example, reach me at alice@example.com or 555-123-4567. " +
		strings.Repeat("Seasoned Go engineer with Kubernetes experience. ", 20)
	ingestTask, params, index := setupTask(t, content)

	result := ProcessResumeIngestion(context.Background(), ingestTask, params)

	if result.Status != taskModel.TaskStatusComplete {
		t.Fatalf("Expected COMPLETE, got %s (error: %v)", result.Status, result.Error)
	}

	resume, found := params.Resumes.GetResume(context.Background(), "r1")
	if !found {
		t.Fatal("Resume vanished")
	}
	if resume.Status != resumeModel.StatusProcessed {
		t.Errorf("Resume status = %s", resume.Status)
	}
	if !resume.Redacted {
		t.Error("Resume not flagged redacted")
	}
	if len(resume.Summary) > config.SummaryLimit {
		t.Errorf("Summary exceeds limit: %d chars", len(resume.Summary))
	}

	savedChunks, err := params.Chunks.GetChunksByResume(context.Background(), "r1")
	if err != nil || len(savedChunks) == 0 {
		t.Fatalf("No chunks persisted: %v", err)
	}
	for _, chunk := range savedChunks {
		if strings.Contains(chunk.Text, "alice@example.com") || strings.Contains(chunk.Text, "555-123-4567") {
			t.Errorf("Raw PII leaked into chunk %s", chunk.Id)
		}
	}

	if len(index.Added) != len(savedChunks) {
		t.Errorf("Indexed %d refs for %d chunks", len(index.Added), len(savedChunks))
	}

	if _, err := os.Stat(ingestTask.Payload.FilePath); !os.IsNotExist(err) {
		t.Error("Staged file not removed after ingestion")
	}
}

func TestProcessResumeIngestion_IndexFailureMarksResumeFailed(t *testing.T) {
	ingestTask, params, index := setupTask(t, "plain resume text with enough words to chunk")
	index.Fail = true

	result := ProcessResumeIngestion(context.Background(), ingestTask, params)

	if result.Status != taskModel.TaskStatusError {
		t.Fatalf("Expected Error status, got %s", result.Status)
	}
	resume, _ := params.Resumes.GetResume(context.Background(), "r1")
	if resume.Status != resumeModel.StatusFailed {
		t.Errorf("Resume should be failed, got %s", resume.Status)
	}
}

func TestProcessResumeIngestion_MissingResumeRecord(t *testing.T) {
	ingestTask, params, _ := setupTask(t, "text")
	ingestTask.ResumeId = "ghost"

	result := ProcessResumeIngestion(context.Background(), ingestTask, params)

	if result.Status != taskModel.TaskStatusError {
		t.Errorf("Expected Error status for missing resume, got %s", result.Status)
	}
}

func TestProcessResumeIngestion_UnparseableFileStillCompletes(t *testing.T) {
	// Extraction is best effort: a file with an unknown extension yields empty
	// text and zero chunks, but the resume still lands in a terminal processed
	// state rather than failing.
	ingestTask, params, _ := setupTask(t, "ignored")
	ingestTask.Payload.FilePath = filepath.Join(t.TempDir(), "missing.bin")

	result := ProcessResumeIngestion(context.Background(), ingestTask, params)

	if result.Status != taskModel.TaskStatusComplete {
		t.Fatalf("Expected COMPLETE for empty extraction, got %s", result.Status)
	}
	resume, _ := params.Resumes.GetResume(context.Background(), "r1")
	if resume.Status != resumeModel.StatusProcessed {
		t.Errorf("Resume status = %s", resume.Status)
	}
}
