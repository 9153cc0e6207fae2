package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/planner-service/internal/domain"
	"github.com/spec-kit/planner-service/internal/repository"
)

func newUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func newTask(t *testing.T, tasks repository.TaskRepository, ownerID, title, date string, taskType domain.TaskType) *domain.Task {
	t.Helper()
	task := &domain.Task{
		OwnerID: ownerID,
		Title:   title,
		Date:    date,
		Type:    taskType,
		Status:  domain.TaskStatusTodo,
		Source:  domain.TaskSourceLocal,
	}
	require.NoError(t, tasks.Create(context.Background(), task))
	require.NotEmpty(t, task.ID)
	return task
}

func TestMemoryUserRepository_DuplicateEmail(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	newUser(t, users, "a@x.com")

	dup := &domain.User{Email: "a@x.com", PasswordHash: "other"}
	err := users.Create(context.Background(), dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestMemoryUserRepository_Lookups(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	created := newUser(t, users, "a@x.com")

	byEmail, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := users.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	_, err = users.GetByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(context.Background(), "missing-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryTaskRepository_OwnershipConflatedWithNotFound(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	tasks := repository.NewMemoryTaskRepository()
	owner := newUser(t, users, "owner@x.com")
	other := newUser(t, users, "other@x.com")

	task := newTask(t, tasks, owner.ID, "Exam", "2025-06-01", domain.TaskTypeDeadline)

	_, err := tasks.GetByID(context.Background(), other.ID, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	title := "Hijacked"
	_, err = tasks.Update(context.Background(), other.ID, task.ID, repository.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = tasks.Delete(context.Background(), other.ID, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := tasks.GetByID(context.Background(), owner.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Exam", got.Title)
}

func TestMemoryTaskRepository_ListFiltersAndOrder(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()
	ownerID := "owner-1"

	newTask(t, tasks, ownerID, "Standup", "2025-06-02", domain.TaskTypeMeeting)
	newTask(t, tasks, ownerID, "Exam", "2025-06-01", domain.TaskTypeDeadline)
	newTask(t, tasks, ownerID, "Review exam results", "2025-06-03", domain.TaskTypeTask)
	newTask(t, tasks, "someone-else", "Exam", "2025-06-01", domain.TaskTypeDeadline)

	all, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"},
		[]string{all[0].Date, all[1].Date, all[2].Date})

	date := "2025-06-01"
	byDate, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{Date: &date})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Exam", byDate[0].Title)

	deadline := domain.TaskTypeDeadline
	byType, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{Type: &deadline})
	require.NoError(t, err)
	require.Len(t, byType, 1)

	term := "EXAM"
	byTerm, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{SearchTerm: &term})
	require.NoError(t, err)
	assert.Len(t, byTerm, 2)

	combined, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{Date: &date, Type: &deadline, SearchTerm: &term})
	require.NoError(t, err)
	assert.Len(t, combined, 1)
}

func TestMemoryTaskRepository_PartialUpdate(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()
	task := newTask(t, tasks, "owner-1", "Exam", "2025-06-01", domain.TaskTypeDeadline)

	done := domain.TaskStatusDone
	updated, err := tasks.Update(context.Background(), "owner-1", task.ID, repository.TaskPatch{Status: &done})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	assert.Equal(t, "Exam", updated.Title)
	assert.Equal(t, "2025-06-01", updated.Date)
	assert.Equal(t, domain.TaskTypeDeadline, updated.Type)
}

func TestMemoryTaskRepository_InsertManyDeduped(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()
	ownerID := "owner-1"

	batch := []domain.Task{
		importedTask(ownerID, "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou"),
		importedTask(ownerID, "Crăciunul", "2025-12-25", "nager_RO_2025-12-25_cr_ciunul"),
	}

	inserted, err := tasks.InsertManyDeduped(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.NotEmpty(t, inserted[0].ID)
	assert.Equal(t, "Anul Nou", inserted[0].Title)

	again, err := tasks.InsertManyDeduped(context.Background(), batch)
	require.NoError(t, err)
	assert.Empty(t, again)

	all, err := tasks.ListByOwner(context.Background(), ownerID, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryTaskRepository_DedupWithinBatch(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()

	batch := []domain.Task{
		importedTask("owner-1", "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou"),
		importedTask("owner-1", "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou"),
	}

	inserted, err := tasks.InsertManyDeduped(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, inserted, 1)
}

func TestMemoryTaskRepository_DedupScopedPerOwner(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()

	first, err := tasks.InsertManyDeduped(context.Background(),
		[]domain.Task{importedTask("owner-1", "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou")})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := tasks.InsertManyDeduped(context.Background(),
		[]domain.Task{importedTask("owner-2", "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou")})
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestMemoryTaskRepository_DeleteFreesDedupKey(t *testing.T) {
	tasks := repository.NewMemoryTaskRepository()
	ownerID := "owner-1"
	batch := []domain.Task{importedTask(ownerID, "Anul Nou", "2025-01-01", "nager_RO_2025-01-01_anul_nou")}

	inserted, err := tasks.InsertManyDeduped(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	require.NoError(t, tasks.Delete(context.Background(), ownerID, inserted[0].ID))

	reimported, err := tasks.InsertManyDeduped(context.Background(), batch)
	require.NoError(t, err)
	assert.Len(t, reimported, 1)
}

func importedTask(ownerID, title, date, sourceID string) domain.Task {
	return domain.Task{
		OwnerID: ownerID,
		Title:   title,
		Date:    date,
		Type:    domain.TaskTypeHoliday,
		Status:  domain.TaskStatusTodo,
		Source:  domain.TaskSourceNager,
		Meta:    domain.TaskMeta{SourceID: sourceID},
	}
}
