package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
)

func executeTask(currentTask taskModel.Task) {
	start := time.Now()
	defer func() {
		metrics.CaptureTaskMetrics(string(currentTask.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, currentTask.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 60*time.Second)
	defer cancel()
	logger.Debug("Processing ingestion task:", "task Id:", currentTask.Id)

	saveTaskState(ctx, currentTask, taskModel.TaskStatusRunning)

	currentTask = _ragService.IngestResume(ctx, currentTask)

	currentTask.EndTime = time.Now()
	// The pipeline sets TaskStatusError itself on failure. Only promote to
	// COMPLETE when it finished clean.
	if currentTask.Status == taskModel.TaskStatusError {
		saveTaskState(ctx, currentTask, taskModel.TaskStatusError)
		return
	}
	saveTaskState(ctx, currentTask, taskModel.TaskStatusComplete)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

func saveTaskState(ctx context.Context, currentTask taskModel.Task, status taskModel.TaskStatus) {
	currentTask.Status = status
	if err := _taskService.TaskStore.SaveTask(ctx, currentTask); err != nil {
		logger.Error("Failed to update task status in Redis", "err", err)
	}
}
