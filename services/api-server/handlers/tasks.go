package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 任务状态
const (
	TaskStatusPending   = "pending"
	TaskStatusRunning   = "running"
	TaskStatusCompleted = "completed"
	TaskStatusFailed    = "failed"
)

// Task 一次后台处理任务。结果保存在内存里，
// 会话期内可反复下载，服务重启即失效。
type Task struct {
	ID        string    `json:"task_id"`
	Status    string    `json:"status"`
	Done      int       `json:"done"`
	Total     int       `json:"total"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	result   []byte
	filename string
}

// TaskStore 内存任务表，支持按任务订阅进度
type TaskStore struct {
	mu          sync.RWMutex
	tasks       map[string]*Task
	subscribers map[string][]chan Progress
}

// Progress 进度事件
type Progress struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Error  string `json:"error,omitempty"`
}

// NewTaskStore 创建任务表
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks:       make(map[string]*Task),
		subscribers: make(map[string][]chan Progress),
	}
}

// Create 登记新任务
func (s *TaskStore) Create() *Task {
	task := &Task{
		ID:        uuid.New().String(),
		Status:    TaskStatusPending,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()
	return task
}

// Get 查询任务，返回快照，后台写入不影响已取出的副本
func (s *TaskStore) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// UpdateProgress 更新进度并广播给订阅者
func (s *TaskStore) UpdateProgress(id string, done, total int) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.Unlock()
		return
	}
	task.Status = TaskStatusRunning
	task.Done = done
	task.Total = total
	s.mu.Unlock()

	s.broadcast(id)
}

// Complete 任务完成，保存结果字节流
func (s *TaskStore) Complete(id string, result []byte, filename string) {
	s.mu.Lock()
	if task, ok := s.tasks[id]; ok {
		task.Status = TaskStatusCompleted
		task.result = result
		task.filename = filename
	}
	s.mu.Unlock()

	s.broadcast(id)
	s.closeSubscribers(id)
}

// Fail 任务失败
func (s *TaskStore) Fail(id string, err error) {
	s.mu.Lock()
	if task, ok := s.tasks[id]; ok {
		task.Status = TaskStatusFailed
		task.Error = err.Error()
	}
	s.mu.Unlock()

	s.broadcast(id)
	s.closeSubscribers(id)
}

// Result 取任务结果
func (s *TaskStore) Result(id string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok || task.Status != TaskStatusCompleted {
		return nil, "", false
	}
	return task.result, task.filename, true
}

// Subscribe 订阅任务进度，任务结束后通道关闭。
// 任务已经结束时立即收到最终状态。
func (s *TaskStore) Subscribe(id string) (<-chan Progress, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, false
	}

	ch := make(chan Progress, 16)
	if task.Status == TaskStatusCompleted || task.Status == TaskStatusFailed {
		ch <- s.progressLocked(task)
		close(ch)
		return ch, true
	}

	s.subscribers[id] = append(s.subscribers[id], ch)
	return ch, true
}

func (s *TaskStore) progressLocked(task *Task) Progress {
	return Progress{
		TaskID: task.ID,
		Status: task.Status,
		Done:   task.Done,
		Total:  task.Total,
		Error:  task.Error,
	}
}

func (s *TaskStore) broadcast(id string) {
	s.mu.RLock()
	task, ok := s.tasks[id]
	if !ok {
		s.mu.RUnlock()
		return
	}
	event := s.progressLocked(task)
	subs := s.subscribers[id]
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default: // 慢消费者丢事件，进度只需要最新值
		}
	}
}

func (s *TaskStore) closeSubscribers(id string) {
	s.mu.Lock()
	subs := s.subscribers[id]
	delete(s.subscribers, id)
	s.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}
