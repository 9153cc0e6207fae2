package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/planner-service/internal/domain"
)

// In-memory implementations of the repository interfaces. They back the
// service when no POSTGRES_DSN is configured and the handler tests. The
// mutex gives batch inserts the same at-most-once dedup guarantee the
// partial unique index provides in Postgres.

type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

// NewMemoryUserRepository returns a map-backed UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

type memoryTaskRepository struct {
	mu        sync.RWMutex
	tasks     map[string]domain.Task
	order     map[string]uint64
	dedupKeys map[string]string
	seq       uint64
}

// NewMemoryTaskRepository returns a map-backed TaskRepository.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{
		tasks:     make(map[string]domain.Task),
		order:     make(map[string]uint64),
		dedupKeys: make(map[string]string),
	}
}

func dedupKey(ownerID, sourceID string) string {
	return ownerID + "\x00" + sourceID
}

func (r *memoryTaskRepository) insertLocked(task *domain.Task) {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.seq++
	r.tasks[task.ID] = *task
	r.order[task.ID] = r.seq
	if task.Meta.SourceID != "" {
		r.dedupKeys[dedupKey(task.OwnerID, task.Meta.SourceID)] = task.ID
	}
}

func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertLocked(task)
	return nil
}

func (r *memoryTaskRepository) GetByID(_ context.Context, ownerID, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return &task, nil
}

func (r *memoryTaskRepository) ListByOwner(_ context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Task
	for _, task := range r.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if filter.Date != nil && task.Date != *filter.Date {
			continue
		}
		if filter.Type != nil && task.Type != *filter.Type {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.TrimSpace(*filter.SearchTerm)
			if term != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(term)) {
				continue
			}
		}
		result = append(result, task)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return r.order[result[i].ID] < r.order[result[j].ID]
	})
	return result, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, ownerID, id string, patch TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Date != nil {
		task.Date = *patch.Date
	}
	if patch.Type != nil {
		task.Type = *patch.Type
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	task.UpdatedAt = time.Now().UTC()

	r.tasks[id] = task
	return &task, nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return ErrNotFound
	}

	delete(r.tasks, id)
	delete(r.order, id)
	if task.Meta.SourceID != "" {
		delete(r.dedupKeys, dedupKey(task.OwnerID, task.Meta.SourceID))
	}
	return nil
}

func (r *memoryTaskRepository) InsertManyDeduped(_ context.Context, tasks []domain.Task) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Meta.SourceID != "" {
			if _, exists := r.dedupKeys[dedupKey(task.OwnerID, task.Meta.SourceID)]; exists {
				continue
			}
		}
		r.insertLocked(&task)
		inserted = append(inserted, task)
	}
	return inserted, nil
}
