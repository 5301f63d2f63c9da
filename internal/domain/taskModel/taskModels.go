package taskModel

import (
	"context"
	"time"
)

type TaskStatus string
type InternalStatus string

const (
	TaskStatusQueued   TaskStatus = "QUEUED"
	TaskStatusRunning  TaskStatus = "RUNNING"
	TaskStatusComplete TaskStatus = "COMPLETE"
	TaskStatusError    TaskStatus = "Error"

	IngestInit       InternalStatus = "Init"
	ExtractCall      InternalStatus = "Extract"
	RedactCall       InternalStatus = "Redact"
	ChunkCall        InternalStatus = "Chunk"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	IndexCall        InternalStatus = "VectorIndex"
	Error            InternalStatus = "Error"
	Complete         InternalStatus = "Complete"
)

// Task is one submitted ingestion unit: upload returns its id immediately and
// the worker pool drives it to a terminal status.
type Task struct {
	Id          string         `json:"id"`
	ResumeId    string         `json:"resume_id"`
	TraceId     string         `json:"trace_id"`
	Payload     TaskPayload    `json:"payload"`
	Error       TaskError      `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      TaskStatus     `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type TaskError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type TaskPayload struct {
	Filename string `json:"filename,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

type TaskStore interface {
	GetTask(ctx context.Context, taskId string) (Task, bool)
	SaveTask(ctx context.Context, task Task) error
	DeleteTask(ctx context.Context, taskId string)
}
