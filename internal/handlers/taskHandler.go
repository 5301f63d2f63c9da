package handlers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/metrics"
	"github.com/akolanti/ResumeRAG/internal/rag"
	"github.com/akolanti/ResumeRAG/internal/task"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

var (
	handlerInstance *TaskHandler //private singleton
	once            sync.Once
	logTH           *logger_i.Logger
)

type TaskHandler struct {
	service *task.Service
	rag     rag.Service
	resumes resumeModel.ResumeStore
	chunks  resumeModel.ChunkStore
	jobs    resumeModel.JobSpecStore
}

func InitHandlers(taskService *task.Service, ragService rag.Service, resumes resumeModel.ResumeStore, chunks resumeModel.ChunkStore, jobs resumeModel.JobSpecStore) {
	once.Do(func() {
		handlerInstance = &TaskHandler{
			service: taskService,
			rag:     ragService,
			resumes: resumes,
			chunks:  chunks,
			jobs:    jobs,
		}

		logTH = logger_i.NewLogger("TaskHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logTH.Info("Starting task handler")
	})

}

// newTaskData carries everything the upload handler stages before a task is
// pushed onto the ingestion channel.
type newTaskData struct {
	taskId   string
	resumeId string
	traceId  string
	filename string
	filePath string
}

func CreateNewTask(data newTaskData) {
	logTH.With("traceId", data.traceId, "task id", data.taskId)
	logTH.Info("To create new ingestion task")
	handlerInstance.pushToTaskChannel(data)
}

func GetTaskStatus(id string, traceId string) (result taskModel.Task, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.TaskStore.GetTask(ctxC, id)
	}
	return result, false
}

// private methods
func (h *TaskHandler) pushToTaskChannel(data newTaskData) {

	newTask := taskModel.Task{}
	newTask.Id = data.taskId
	newTask.ResumeId = data.resumeId
	newTask.CreatedTime = time.Now()
	newTask.TraceId = data.traceId
	newTask.Status = taskModel.TaskStatusQueued
	newTask.CurrentStep = taskModel.IngestInit
	newTask.Payload.Filename = data.filename
	newTask.Payload.FilePath = data.filePath

	//metrics
	metrics.IncrementTasksInQueue()

	h.service.TaskChannel <- newTask //this is a blocking send to prevent the system from being overwhelmed
	logTH.Info("Created new ingestion task")

	//ingestion involves batch embedding calls which take time - external system call
	//so every queued resume also signals the dispatcher for an extra worker
	//idle workers retire on their own, keeping the pool small between uploads
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	metrics.StartDispatcherSignalCount() //metrics
	logTH.Debug("Request count ", accurateCount)
	h.service.DispatcherChannel <- true
}
