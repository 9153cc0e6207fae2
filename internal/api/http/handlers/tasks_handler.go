package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planner-service/internal/api/dto"
	"github.com/spec-kit/planner-service/internal/auth"
	"github.com/spec-kit/planner-service/internal/domain"
	"github.com/spec-kit/planner-service/internal/repository"
	"github.com/spec-kit/planner-service/internal/service"
	apperrors "github.com/spec-kit/planner-service/pkg/errorutil"
)

// TasksHandler exposes the owner-scoped task endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("malformed request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.TaskCreateInput{
		Title: req.Title,
		Date:  req.Date,
		Type:  domain.TaskType(req.Type),
	}
	task, err := h.tasks.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.NewTaskResponse(task))
}

// List handles GET /tasks with optional date, type and q filters.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var filter repository.TaskFilter
	if date := c.Query("date"); date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return apperrors.NewValidationError("invalid date filter", map[string]any{"date": date})
		}
		filter.Date = &date
	}
	if typ := c.Query("type"); typ != "" {
		taskType := domain.TaskType(typ)
		if !taskType.Valid() {
			return apperrors.NewValidationError("invalid task type", map[string]any{"type": typ})
		}
		filter.Type = &taskType
	}
	if q := c.Query("q"); q != "" {
		filter.SearchTerm = &q
	}

	tasks, err := h.tasks.List(c.UserContext(), user.ID, filter)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewTaskListResponse(tasks))
}

// Get handles GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	task, err := h.tasks.Get(c.UserContext(), user.ID, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(dto.NewTaskResponse(task))
}

// Update handles PATCH /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewUnprocessable("malformed request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	patch := repository.TaskPatch{
		Title: req.Title,
		Date:  req.Date,
	}
	if req.Type != nil {
		taskType := domain.TaskType(*req.Type)
		patch.Type = &taskType
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}

	task, err := h.tasks.Update(c.UserContext(), user.ID, c.Params("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.tasks.Delete(c.UserContext(), user.ID, c.Params("id")); err != nil {
		return err
	}

	return c.SendStatus(http.StatusNoContent)
}
