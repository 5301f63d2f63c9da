package task

import (
	"github.com/akolanti/ResumeRAG/internal/domain/taskModel"
)

type Service struct {
	TaskChannel       chan taskModel.Task
	RequestCount      int64
	DispatcherChannel chan bool
	TaskStore         taskModel.TaskStore
}

type ServiceConfig struct {
	TaskChannel       chan taskModel.Task
	RequestCount      int64
	DispatcherChannel chan bool
	TaskStore         taskModel.TaskStore
}

func InitTaskService(cfg ServiceConfig) *Service {
	return &Service{
		TaskChannel:       cfg.TaskChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		TaskStore:         cfg.TaskStore,
	}
}
