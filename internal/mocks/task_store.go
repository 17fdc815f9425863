package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn   func(ctx context.Context) ([]domain.Task, error)
	CreateFn func(ctx context.Context, task *domain.Task) (int64, error)
	UpdateFn func(ctx context.Context, task *domain.Task) (int64, error)
	DeleteFn func(ctx context.Context, id int64) (int64, error)
	CountFn  func(ctx context.Context) (int64, error)

	// Err, when set, is returned by every method without a function field.
	Err error

	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64

	// Call tracking for verification
	ListCalls   int
	CreateCalls []domain.Task
	UpdateCalls []domain.Task
	DeleteCalls []int64
	CountCalls  int
}

// NewMockTaskStore creates a new mock store with an empty in-memory table.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:  make(map[int64]domain.Task),
		nextID: 1,
	}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) (int64, error) {
	m.mu.Lock()
	if task != nil {
		m.CreateCalls = append(m.CreateCalls, *task)
	}
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *task
	stored.ID = m.nextID
	if stored.Status == "" {
		stored.Status = domain.DefaultTaskStatus
	}
	now := time.Now().UTC()
	stored.CreatedAt = &now
	m.ensureTable()
	m.tasks[stored.ID] = stored
	m.nextID++
	return stored.ID, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) (int64, error) {
	m.mu.Lock()
	if task != nil {
		m.UpdateCalls = append(m.UpdateCalls, *task)
	}
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok {
		return 0, nil
	}
	existing.Title = task.Title
	existing.Description = task.Description
	existing.Status = task.Status
	m.tasks[task.ID] = existing
	return 1, nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}

// Count implements the TaskStore interface
func (m *MockTaskStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	m.CountCalls++
	m.mu.Unlock()

	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	if m.Err != nil {
		return 0, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.tasks)), nil
}

// Get returns a stored task by ID, for assertions.
func (m *MockTaskStore) Get(id int64) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	return t, ok
}

// ListCallCount returns the number of List calls made so far.
func (m *MockTaskStore) ListCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ListCalls
}

func (m *MockTaskStore) ensureTable() {
	if m.tasks == nil {
		m.tasks = make(map[int64]domain.Task)
	}
	if m.nextID == 0 {
		m.nextID = 1
	}
}
