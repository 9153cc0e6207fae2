package service

import (
	"context"
	"errors"

	"github.com/spec-kit/planner-service/internal/domain"
	"github.com/spec-kit/planner-service/internal/repository"
	apperrors "github.com/spec-kit/planner-service/pkg/errorutil"
)

// TaskCreateInput describes a locally created task. Type defaults to
// "task" when left empty.
type TaskCreateInput struct {
	Title string
	Date  string
	Type  domain.TaskType
}

// TaskService coordinates task workflows. Every operation is scoped to
// the owner resolved from the access token.
type TaskService struct {
	tasks repository.TaskRepository
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create stores a new local task with defaulted status and source.
func (s *TaskService) Create(ctx context.Context, ownerID string, input TaskCreateInput) (*domain.Task, error) {
	taskType := input.Type
	if taskType == "" {
		taskType = domain.TaskTypeTask
	}
	if !taskType.Valid() {
		return nil, apperrors.NewValidationError("unknown task type", map[string]any{"type": string(taskType)})
	}

	task := &domain.Task{
		OwnerID: ownerID,
		Title:   input.Title,
		Date:    input.Date,
		Type:    taskType,
		Status:  domain.TaskStatusTodo,
		Source:  domain.TaskSourceLocal,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// Get returns a single owned task.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapTaskError(err)
	}
	return task, nil
}

// List returns the owner's tasks matching the filter, ordered by date.
func (s *TaskService) List(ctx context.Context, ownerID string, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// Update applies a partial update. A patch that changes nothing is
// rejected rather than silently accepted.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("no fields to update", nil)
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, apperrors.NewValidationError("unknown task type", map[string]any{"type": string(*patch.Type)})
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown task status", map[string]any{"status": string(*patch.Status)})
	}

	task, err := s.tasks.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, mapTaskError(err)
	}
	return task, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.tasks.Delete(ctx, ownerID, id); err != nil {
		return mapTaskError(err)
	}
	return nil
}

// mapTaskError keeps absent and foreign-owned tasks indistinguishable.
func mapTaskError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("task", nil)
	}
	return apperrors.MapError(err)
}
