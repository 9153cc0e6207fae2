package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/planner-service/internal/domain"
)

// TaskFilter captures list query parameters. All set fields are combined
// with AND.
type TaskFilter struct {
	Date       *string
	Type       *domain.TaskType
	SearchTerm *string
}

// TaskPatch carries the fields a partial update may change. Nil means
// "leave unchanged", so a JSON null in a PATCH body is a no-op.
type TaskPatch struct {
	Title  *string
	Date   *string
	Type   *domain.TaskType
	Status *domain.TaskStatus
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Type == nil && p.Status == nil
}

// TaskRepository encapsulates task persistence. Every method is scoped to
// an owner; a task owned by someone else behaves as if it did not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, ownerID, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
	InsertManyDeduped(ctx context.Context, tasks []domain.Task) ([]domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (user_id, title, date, type, status, source, meta)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.OwnerID,
		task.Title,
		task.Date,
		task.Type,
		task.Status,
		task.Source,
		task.Meta,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
        SELECT id, user_id, title, date, type, status, source, meta, created_at, updated_at
        FROM tasks WHERE id=$1 AND user_id=$2`

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Date,
		&task.Type,
		&task.Status,
		&task.Source,
		&task.Meta,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string, filter TaskFilter) ([]domain.Task, error) {
	base := `SELECT id, user_id, title, date, type, status, source, meta, created_at, updated_at
             FROM tasks`
	clauses := []string{"user_id=$1"}
	args := []any{ownerID}

	if filter.Date != nil {
		args = append(args, *filter.Date)
		clauses = append(clauses, fmt.Sprintf("date=$%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("type=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + escapeLike(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY date ASC, created_at ASC, id ASC`,
		base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *taskRepository) Update(ctx context.Context, ownerID, id string, patch TaskPatch) (*domain.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	sets := []string{"updated_at=NOW()"}
	args := []any{}

	if patch.Title != nil {
		args = append(args, *patch.Title)
		sets = append(sets, fmt.Sprintf("title=$%d", len(args)))
	}
	if patch.Date != nil {
		args = append(args, *patch.Date)
		sets = append(sets, fmt.Sprintf("date=$%d", len(args)))
	}
	if patch.Type != nil {
		args = append(args, *patch.Type)
		sets = append(sets, fmt.Sprintf("type=$%d", len(args)))
	}
	if patch.Status != nil {
		args = append(args, *patch.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}

	args = append(args, id)
	idPos := len(args)
	args = append(args, ownerID)
	ownerPos := len(args)

	query := fmt.Sprintf(`
        UPDATE tasks SET %s
        WHERE id=$%d AND user_id=$%d
        RETURNING id, user_id, title, date, type, status, source, meta, created_at, updated_at`,
		strings.Join(sets, ", "), idPos, ownerPos)

	var task domain.Task
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Date,
		&task.Type,
		&task.Status,
		&task.Source,
		&task.Meta,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	const query = `DELETE FROM tasks WHERE id=$1 AND user_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertManyDeduped inserts the given tasks, silently skipping any whose
// (owner, meta source id) already exists. The partial unique index
// arbitrates concurrent imports, so each item lands at most once. The
// returned slice holds only the rows actually inserted, in input order.
func (r *taskRepository) InsertManyDeduped(ctx context.Context, tasks []domain.Task) ([]domain.Task, error) {
	const query = `
        INSERT INTO tasks (user_id, title, date, type, status, source, meta)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT DO NOTHING
        RETURNING id, created_at, updated_at`

	inserted := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		err := r.pool.QueryRow(ctx, query,
			task.OwnerID,
			task.Title,
			task.Date,
			task.Type,
			task.Status,
			task.Source,
			task.Meta,
		).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		inserted = append(inserted, task)
	}
	return inserted, nil
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Date,
			&task.Type,
			&task.Status,
			&task.Source,
			&task.Meta,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

// escapeLike neutralizes LIKE wildcards in user input.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
