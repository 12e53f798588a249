package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
)

const (
	defaultMaxWorkers = 10
	defaultQueueSize  = 100

	cleanupInterval = time.Hour
)

// TaskManager runs submitted tasks on a bounded worker pool, detached from
// the request path that submitted them. The webhook handler hands candidate
// processing here so its acknowledgment never waits on downstream calls.
type TaskManager interface {
	// Start starts the task manager
	Start(ctx context.Context) error

	// Stop stops the task manager gracefully
	Stop(ctx context.Context) error

	// Submit schedules a task for background execution
	Submit(ctx context.Context, processID string, taskType TaskType, metadata map[string]interface{}, fn func(context.Context) error) error

	// GetTaskResult retrieves the result of a task by process ID
	GetTaskResult(ctx context.Context, processID string) (*TaskResult, error)

	// ListTasks lists all recorded tasks (for monitoring)
	ListTasks(ctx context.Context) ([]*TaskResult, error)

	// IsHealthy checks if the task manager is accepting work
	IsHealthy() bool
}

// taskExecution pairs a recorded task with its work function
type taskExecution struct {
	processID string
	taskType  TaskType
	execute   func(context.Context) error
}

// TaskManagerImpl implements the TaskManager interface
type TaskManagerImpl struct {
	config     *config.Config
	store      TaskStore
	logger     types.Logger
	taskChan   chan *taskExecution
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.RWMutex
	running    bool
	maxWorkers int
}

// NewTaskManager creates a new task manager
func NewTaskManager(cfg *config.Config) *TaskManagerImpl {
	maxWorkers := cfg.BackgroundTasks.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	queueSize := cfg.BackgroundTasks.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &TaskManagerImpl{
		config:     cfg,
		store:      NewInMemoryTaskStore(),
		logger:     logging.GetGlobalLogger(),
		taskChan:   make(chan *taskExecution, queueSize),
		maxWorkers: maxWorkers,
	}
}

// Start starts the worker goroutines
func (tm *TaskManagerImpl) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	tm.ctx, tm.cancel = context.WithCancel(ctx)
	tm.running = true

	for i := 0; i < tm.maxWorkers; i++ {
		tm.wg.Add(1)
		go tm.worker(i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine()

	tm.logger.Info("Task manager started", map[string]interface{}{
		"max_workers": tm.maxWorkers,
	})
	return nil
}

// Stop stops the task manager gracefully
func (tm *TaskManagerImpl) Stop(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if !tm.running {
		return nil
	}

	tm.cancel()
	close(tm.taskChan)

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.logger.Info("Task manager stopped gracefully")
	case <-ctx.Done():
		tm.logger.Warn("Task manager shutdown timed out")
	}

	tm.running = false
	return nil
}

// Submit schedules a task for background execution. The submitting context
// only governs enqueueing; execution runs under the manager's own context
// so the caller's request can complete independently.
func (tm *TaskManagerImpl) Submit(ctx context.Context, processID string, taskType TaskType, metadata map[string]interface{}, fn func(context.Context) error) error {
	if !tm.IsHealthy() {
		return fmt.Errorf("task manager is not healthy")
	}

	result := &TaskResult{
		ProcessID: processID,
		Type:      taskType,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}

	if err := tm.store.Store(ctx, result); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	execution := &taskExecution{
		processID: processID,
		taskType:  taskType,
		execute:   fn,
	}

	select {
	case tm.taskChan <- execution:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves the result of a task by process ID
func (tm *TaskManagerImpl) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

// ListTasks lists all recorded tasks (for monitoring)
func (tm *TaskManagerImpl) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

// IsHealthy checks if the task manager is accepting work
func (tm *TaskManagerImpl) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && tm.ctx.Err() == nil
}

// worker processes tasks from the task channel
func (tm *TaskManagerImpl) worker(workerID int) {
	defer tm.wg.Done()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case task, ok := <-tm.taskChan:
			if !ok {
				return
			}
			tm.processTask(workerID, task)
		}
	}
}

// processTask runs a single task and records its outcome
func (tm *TaskManagerImpl) processTask(workerID int, task *taskExecution) {
	startTime := time.Now()

	tm.logger.Info("Processing task", map[string]interface{}{
		"worker_id":  workerID,
		"process_id": task.processID,
		"task_type":  task.taskType,
	})

	tm.updateTaskStatus(task.processID, TaskStatusProcessing, "")

	taskCtx, cancel := context.WithTimeout(tm.ctx, tm.config.BackgroundTasks.TaskTimeout)
	err := task.execute(taskCtx)
	cancel()

	processingTime := time.Since(startTime)

	if err != nil {
		tm.logger.Error("Task execution failed", map[string]interface{}{
			"worker_id":       workerID,
			"process_id":      task.processID,
			"task_type":       task.taskType,
			"processing_time": processingTime.String(),
			"error":           err.Error(),
		})
		tm.finishTask(task.processID, TaskStatusFailure, err.Error(), processingTime)
		return
	}

	tm.logger.Info("Task execution completed", map[string]interface{}{
		"worker_id":       workerID,
		"process_id":      task.processID,
		"task_type":       task.taskType,
		"processing_time": processingTime.String(),
	})
	tm.finishTask(task.processID, TaskStatusSuccess, "", processingTime)
}

func (tm *TaskManagerImpl) updateTaskStatus(processID string, status TaskStatus, errMsg string) {
	result, err := tm.store.Get(context.Background(), processID)
	if err != nil {
		return
	}

	result.Status = status
	if errMsg != "" {
		result.Error = errMsg
	}
	tm.store.Update(context.Background(), result)
}

func (tm *TaskManagerImpl) finishTask(processID string, status TaskStatus, errMsg string, processingTime time.Duration) {
	result, err := tm.store.Get(context.Background(), processID)
	if err != nil {
		return
	}

	completedAt := time.Now()
	result.Status = status
	result.Error = errMsg
	result.CompletedAt = &completedAt
	result.ProcessingTime = &processingTime
	tm.store.Update(context.Background(), result)
}

// cleanupRoutine periodically evicts old task results
func (tm *TaskManagerImpl) cleanupRoutine() {
	defer tm.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tm.ctx.Done():
			return
		case <-ticker.C:
			if err := tm.store.Cleanup(tm.ctx, tm.config.BackgroundTasks.MaxTaskAge); err != nil {
				tm.logger.Error("Task cleanup failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
