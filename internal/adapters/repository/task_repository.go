package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/database"
	"github.com/taskboard/core/internal/ports"
)

// taskSelect is the joined projection used by every task read. The lookup
// references are all optional, so every join is a LEFT JOIN.
const taskSelect = `
	SELECT t.id, t.name, t.description, t.category_id, t.assigned_to,
		t.status_id, t.priority_id, t.created_at, t.updated_at, t.due_date,
		t.completed_at, t.estimated_hours, t.actual_hours, t.tags, t.is_archived,
		c.name AS category_name,
		m.name AS assignee_name,
		m.avatar AS assignee_avatar,
		s.name AS status_name,
		s.is_completed AS status_completed,
		p.name AS priority_name,
		p.level AS priority_level
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN members m ON m.id = t.assigned_to
	LEFT JOIN statuses s ON s.id = t.status_id
	LEFT JOIN priorities p ON p.id = t.priority_id`

const taskCountSelect = `
	SELECT COUNT(*)
	FROM tasks t
	LEFT JOIN members m ON m.id = t.assigned_to`

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// buildTaskWhere composes the WHERE clause for the list filter. Conditions
// are conjunctive and applied in form order: base archived exclusion, search,
// exact-match references, due-date bounds, overdue. Enabling the archived
// view last discards everything gathered before it and lists every task;
// see DESIGN.md before changing that.
func buildTaskWhere(f ports.TaskFilter) (string, []interface{}) {
	conds := []string{"t.is_archived = FALSE"}
	var args []interface{}

	if f.SearchQuery != "" {
		field := f.SearchIn
		if field == "" {
			field = entities.SearchInName
		}
		args = append(args, "%"+f.SearchQuery+"%")
		n := len(args)
		switch field {
		case entities.SearchInDescription:
			conds = append(conds, fmt.Sprintf("t.description ILIKE $%d", n))
		case entities.SearchInTags:
			conds = append(conds, fmt.Sprintf("t.tags ILIKE $%d", n))
		case entities.SearchInAssignedTo:
			conds = append(conds, fmt.Sprintf("m.name ILIKE $%d", n))
		default:
			conds = append(conds, fmt.Sprintf("t.name ILIKE $%d", n))
		}
	}

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.StatusID != nil {
		args = append(args, *f.StatusID)
		conds = append(conds, fmt.Sprintf("t.status_id = $%d", len(args)))
	}
	if f.PriorityID != nil {
		args = append(args, *f.PriorityID)
		conds = append(conds, fmt.Sprintf("t.priority_id = $%d", len(args)))
	}
	if f.AssignedTo != nil {
		args = append(args, *f.AssignedTo)
		conds = append(conds, fmt.Sprintf("t.assigned_to = $%d", len(args)))
	}

	if f.DueDateFrom != nil {
		args = append(args, *f.DueDateFrom)
		conds = append(conds, fmt.Sprintf("t.due_date >= $%d", len(args)))
	}
	if f.DueDateTo != nil {
		args = append(args, *f.DueDateTo)
		conds = append(conds, fmt.Sprintf("t.due_date <= $%d", len(args)))
	}

	if f.ShowOverdue {
		// Strictly before now; completion state is intentionally ignored here.
		args = append(args, f.Now)
		conds = append(conds, fmt.Sprintf("t.due_date < $%d", len(args)))
	}

	if f.ShowArchived {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (name, description, category_id, assigned_to, status_id,
			priority_id, due_date, estimated_hours, actual_hours, tags, is_archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowContext(ctx, query,
		task.Name, task.Description, task.CategoryID, task.AssignedTo,
		task.StatusID, task.PriorityID, task.DueDate, task.EstimatedHours,
		task.ActualHours, task.Tags, task.IsArchived,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Task, error) {
	query := taskSelect + ` WHERE t.id = $1`

	var task entities.Task
	err := r.db.DB.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, category_id = $4, assigned_to = $5,
			status_id = $6, priority_id = $7, due_date = $8, completed_at = $9,
			estimated_hours = $10, actual_hours = $11, tags = $12,
			is_archived = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.DB.QueryRowContext(ctx, query,
		task.ID, task.Name, task.Description, task.CategoryID, task.AssignedTo,
		task.StatusID, task.PriorityID, task.DueDate, task.CompletedAt,
		task.EstimatedHours, task.ActualHours, task.Tags, task.IsArchived,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	// Comments and attachments go with the task via ON DELETE CASCADE.
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, int64, error) {
	where, args := buildTaskWhere(filter)

	var total int64
	if err := r.db.DB.GetContext(ctx, &total, taskCountSelect+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf("%s%s ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d",
		taskSelect, where, len(args)-1, len(args))

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, total, nil
}

func (r *TaskRepositoryImpl) ListAll(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	where, args := buildTaskWhere(filter)
	query := taskSelect + where + " ORDER BY t.created_at DESC"

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) SetStatus(ctx context.Context, taskID, statusID int64, completedAt *time.Time) error {
	// completed_at only moves forward here: a NULL completion stamp keeps
	// whatever is already stored, so leaving a completed status does not
	// clear it.
	query := `
		UPDATE tasks
		SET status_id = $2,
			completed_at = COALESCE($3, completed_at),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, taskID, statusID, completedAt)
	if err != nil {
		return fmt.Errorf("set task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) BulkDelete(ctx context.Context, taskIDs []int64) (int64, error) {
	return r.bulkExec(ctx, `DELETE FROM tasks WHERE id = ANY($1)`, taskIDs)
}

func (r *TaskRepositoryImpl) BulkArchive(ctx context.Context, taskIDs []int64) (int64, error) {
	return r.bulkExec(ctx, `
		UPDATE tasks
		SET is_archived = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($1)`, taskIDs)
}

func (r *TaskRepositoryImpl) BulkSetStatus(ctx context.Context, taskIDs []int64, statusID int64) (int64, error) {
	// No completion bookkeeping here; only the single-task transition path
	// stamps completed_at.
	return r.bulkExec(ctx, `
		UPDATE tasks
		SET status_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($1)`, taskIDs, statusID)
}

func (r *TaskRepositoryImpl) BulkSetPriority(ctx context.Context, taskIDs []int64, priorityID int64) (int64, error) {
	return r.bulkExec(ctx, `
		UPDATE tasks
		SET priority_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($1)`, taskIDs, priorityID)
}

// bulkExec runs one statement over a set of ids inside a transaction so the
// whole set commits or rolls back together. Ids that match no row are
// silently skipped by the id = ANY filter.
func (r *TaskRepositoryImpl) bulkExec(ctx context.Context, query string, taskIDs []int64, extra ...interface{}) (int64, error) {
	var affected int64

	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		args := append([]interface{}{pq.Array(taskIDs)}, extra...)
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("bulk task update: %w", err)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return affected, nil
}

func (r *TaskRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) CountCompleted(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM tasks t
		JOIN statuses s ON s.id = t.status_id
		WHERE s.is_completed = TRUE`

	var count int64
	err := r.db.DB.GetContext(ctx, &count, query)
	if err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	// IS NOT TRUE treats tasks without a status as not completed.
	query := `
		SELECT COUNT(*)
		FROM tasks t
		LEFT JOIN statuses s ON s.id = t.status_id
		WHERE t.due_date < $1 AND s.is_completed IS NOT TRUE`

	var count int64
	err := r.db.DB.GetContext(ctx, &count, query, now)
	if err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) CountByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	query := `
		SELECT s.id AS status_id, s.name AS status_name, s.color,
			s.is_completed, s.sort_order, COUNT(t.id) AS count
		FROM statuses s
		LEFT JOIN tasks t ON t.status_id = s.id
		GROUP BY s.id, s.name, s.color, s.is_completed, s.sort_order
		ORDER BY s.sort_order, s.name`

	var counts []ports.StatusCount
	if err := r.db.DB.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count tasks by status: %w", err)
	}
	return counts, nil
}

func (r *TaskRepositoryImpl) CountByPriority(ctx context.Context) ([]ports.PriorityCount, error) {
	query := `
		SELECT p.id AS priority_id, p.name AS priority_name, p.level, p.color,
			COUNT(t.id) AS count
		FROM priorities p
		LEFT JOIN tasks t ON t.priority_id = p.id
		GROUP BY p.id, p.name, p.level, p.color
		ORDER BY p.level`

	var counts []ports.PriorityCount
	if err := r.db.DB.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count tasks by priority: %w", err)
	}
	return counts, nil
}

func (r *TaskRepositoryImpl) Recent(ctx context.Context, limit int) ([]*entities.Task, error) {
	query := taskSelect + ` ORDER BY t.created_at DESC LIMIT $1`

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, limit); err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) DueSoon(ctx context.Context, now time.Time, days int) ([]*entities.Task, error) {
	query := taskSelect + `
		WHERE t.due_date >= $1 AND t.due_date <= $2
			AND s.is_completed IS NOT TRUE
		ORDER BY t.due_date ASC`

	until := now.AddDate(0, 0, days)

	var tasks []*entities.Task
	if err := r.db.DB.SelectContext(ctx, &tasks, query, now, until); err != nil {
		return nil, fmt.Errorf("due soon tasks: %w", err)
	}
	return tasks, nil
}
