package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"job-research/internal/models"
	"job-research/internal/pipeline"
)

type Status string

const (
	StatusStarted   Status = "started"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Task is one research run and its lifecycle bookkeeping. Results live only
// as long as the process.
type Task struct {
	ID          string                   `json:"research_id"`
	Status      Status                   `json:"status"`
	CurrentStep string                   `json:"current_step,omitempty"`
	Request     models.ResearchRequest   `json:"request"`
	Results     *models.ResearchResponse `json:"results,omitempty"`
	Skipped     []pipeline.SkippedRecord `json:"skipped_records,omitempty"`
	Error       string                   `json:"error,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
}

// TaskSummary is the listing view of a task.
type TaskSummary struct {
	ID          string     `json:"research_id"`
	Status      Status     `json:"status"`
	JobTitle    string     `json:"job_title"`
	Location    string     `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Memory is a mutex-guarded in-memory task store.
type Memory struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewMemory() *Memory {
	return &Memory{tasks: map[string]*Task{}}
}

// Create registers a new task in the started state and returns its ID.
func (m *Memory) Create(req models.ResearchRequest) string {
	id := "research_" + uuid.NewString()

	m.mu.Lock()
	m.tasks[id] = &Task{
		ID:        id,
		Status:    StatusStarted,
		Request:   req,
		CreatedAt: time.Now(),
	}
	m.mu.Unlock()

	return id
}

// Get returns a copy of the task, if present.
func (m *Memory) Get(id string) (Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// SetRunning marks the task as in progress.
func (m *Memory) SetRunning(id string) {
	m.mu.Lock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusRunning
	}
	m.mu.Unlock()
}

// SetStep records the workflow step the task is currently on.
func (m *Memory) SetStep(id, step string) {
	m.mu.Lock()
	if task, ok := m.tasks[id]; ok {
		task.CurrentStep = step
	}
	m.mu.Unlock()
}

// Complete stores the results and marks the task done.
func (m *Memory) Complete(id string, results *models.ResearchResponse, skipped []pipeline.SkippedRecord) {
	now := time.Now()
	m.mu.Lock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusCompleted
		task.Results = results
		task.Skipped = skipped
		task.CompletedAt = &now
	}
	m.mu.Unlock()
}

// Fail records the error and marks the task failed.
func (m *Memory) Fail(id string, err error) {
	now := time.Now()
	m.mu.Lock()
	if task, ok := m.tasks[id]; ok {
		task.Status = StatusFailed
		task.Error = err.Error()
		task.CompletedAt = &now
	}
	m.mu.Unlock()
}

// List returns summaries of every task, oldest first.
func (m *Memory) List() []TaskSummary {
	m.mu.RLock()
	out := make([]TaskSummary, 0, len(m.tasks))
	for _, task := range m.tasks {
		out = append(out, TaskSummary{
			ID:          task.ID,
			Status:      task.Status,
			JobTitle:    task.Request.JobTitle,
			Location:    task.Request.Location,
			CreatedAt:   task.CreatedAt,
			CompletedAt: task.CompletedAt,
		})
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
