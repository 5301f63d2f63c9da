package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akolanti/ResumeRAG/internal/config"
	"github.com/akolanti/ResumeRAG/internal/domain/resumeModel"
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
	"github.com/akolanti/ResumeRAG/internal/rag/matcher"
	"github.com/akolanti/ResumeRAG/internal/rag/retrieval"
	"github.com/akolanti/ResumeRAG/internal/task"
	"github.com/akolanti/ResumeRAG/pkg/logger_i"
)

// MockRagService tracks whether tasks get executed
type MockRagService struct {
	ProcessedCount int32
}

func (m *MockRagService) IngestResume(ctx context.Context, t taskModel.Task) taskModel.Task {
	atomic.AddInt32(&m.ProcessedCount, 1)
	t.Status = taskModel.TaskStatusComplete
	return t
}

func (m *MockRagService) Ask(ctx context.Context, query string, k int) ([]retrieval.Answer, string, error) {
	return nil, "", nil
}

func (m *MockRagService) MatchJob(ctx context.Context, spec resumeModel.JobSpec, topN int) ([]matcher.MatchHit, error) {
	return nil, nil
}

type MockTaskStore struct {
	OnSaveTask func(ctx context.Context, t taskModel.Task) error
}

func (m *MockTaskStore) GetTask(ctx context.Context, taskId string) (taskModel.Task, bool) {
	return taskModel.Task{}, false
}

func (m *MockTaskStore) DeleteTask(ctx context.Context, taskId string) {}

func (m *MockTaskStore) SaveTask(ctx context.Context, t taskModel.Task) error {
	if m.OnSaveTask != nil {
		return m.OnSaveTask(ctx, t)
	}
	return nil
}

func TestWorkerPool_Flow(t *testing.T) {
	taskSvc := &task.Service{
		TaskChannel:       make(chan taskModel.Task, 10),
		DispatcherChannel: make(chan bool, 10),
		TaskStore:         &MockTaskStore{},
	}
	mockRag := &MockRagService{}
	stopChan := make(chan bool)
	wg := &sync.WaitGroup{}

	InitServices(taskSvc, mockRag)
	InitWorkerPool(stopChan, wg)

	// Reset global state for test
	atomic.StoreInt64(&currentWorkerCount, 0)

	t.Run("Dispatcher creates worker on signal", func(t *testing.T) {
		taskSvc.DispatcherChannel <- true

		time.Sleep(50 * time.Millisecond)

		count := atomic.LoadInt64(&currentWorkerCount)
		if count < 1 {
			t.Errorf("Expected at least 1 worker, got %d", count)
		}
	})

	t.Run("Worker processes a task", func(t *testing.T) {
		testTask := taskModel.Task{Id: "test-1"}
		taskSvc.TaskChannel <- testTask

		time.Sleep(50 * time.Millisecond)

		processed := atomic.LoadInt32(&mockRag.ProcessedCount)
		if processed != 1 {
			t.Errorf("Expected 1 task processed, got %d", processed)
		}
	})

	t.Run("Stop signal retires workers", func(t *testing.T) {
		close(stopChan)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			// Success
		case <-time.After(2 * time.Second):
			t.Error("Workers did not stop within timeout")
		}
	})
}

func TestWorker_TerminalStatePersisted(t *testing.T) {
	var savedStatuses []taskModel.TaskStatus
	var mu sync.Mutex

	taskSvc := &task.Service{
		TaskChannel: make(chan taskModel.Task),
		TaskStore: &MockTaskStore{
			OnSaveTask: func(ctx context.Context, saved taskModel.Task) error {
				mu.Lock()
				defer mu.Unlock()
				savedStatuses = append(savedStatuses, saved.Status)
				return nil
			},
		},
	}
	InitServices(taskSvc, &MockRagService{})
	logger = logger_i.NewLogger("TestWorkerPool")

	executeTask(taskModel.Task{Id: "t1", TraceId: "trace-1"})

	mu.Lock()
	defer mu.Unlock()
	if len(savedStatuses) != 2 {
		t.Fatalf("Expected RUNNING then COMPLETE saves, got %v", savedStatuses)
	}
	if savedStatuses[0] != taskModel.TaskStatusRunning || savedStatuses[1] != taskModel.TaskStatusComplete {
		t.Errorf("Unexpected status sequence: %v", savedStatuses)
	}
}

func TestWorker_IdleTimeout(t *testing.T) {
	atomic.StoreInt64(&currentWorkerCount, 0)
	atomic.StoreInt64(&minWorkerCount, 2)
	logger = logger_i.NewLogger("TestWorkerPool")
	taskSvc := &task.Service{
		TaskChannel: make(chan taskModel.Task),
	}
	InitServices(taskSvc, &MockRagService{})

	wg := &sync.WaitGroup{}
	stopChan := make(chan bool)
	workerWaitGroup = wg
	stopWorkerChannel = stopChan

	createWorker()
	time.Sleep(config.IdleWorkerTimeout)

	time.Sleep(100 * time.Millisecond)
	count := atomic.LoadInt64(&currentWorkerCount)
	if count != 0 {
		t.Errorf("Assertion Failed: Worker should have timed out and retired, but count is %d", count)
	}
}
