package ports

import (
	"context"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
)

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int64) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id int64) error

	// List returns one page of filtered tasks plus the total match count.
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, int64, error)
	// ListAll returns the whole filtered set, unpaginated, for board grouping.
	ListAll(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)

	// SetStatus applies a status change with an optional completion stamp.
	SetStatus(ctx context.Context, taskID, statusID int64, completedAt *time.Time) error

	// Bulk operations run inside a single transaction and report how many
	// rows were touched; unknown ids simply do not match.
	BulkDelete(ctx context.Context, taskIDs []int64) (int64, error)
	BulkArchive(ctx context.Context, taskIDs []int64) (int64, error)
	BulkSetStatus(ctx context.Context, taskIDs []int64, statusID int64) (int64, error)
	BulkSetPriority(ctx context.Context, taskIDs []int64, priorityID int64) (int64, error)

	// Dashboard reads. Counts are computed fresh per call.
	CountAll(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByPriority(ctx context.Context) ([]PriorityCount, error)
	Recent(ctx context.Context, limit int) ([]*entities.Task, error)
	DueSoon(ctx context.Context, now time.Time, days int) ([]*entities.Task, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id int64) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entities.Category, error)
}

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *entities.Member) error
	GetByID(ctx context.Context, id int64) (*entities.Member, error)
	Update(ctx context.Context, member *entities.Member) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entities.Member, error)
}

// PriorityRepository defines the interface for priority data operations
type PriorityRepository interface {
	Create(ctx context.Context, priority *entities.Priority) error
	GetByID(ctx context.Context, id int64) (*entities.Priority, error)
	Update(ctx context.Context, priority *entities.Priority) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entities.Priority, error)
}

// StatusRepository defines the interface for status data operations
type StatusRepository interface {
	Create(ctx context.Context, status *entities.Status) error
	GetByID(ctx context.Context, id int64) (*entities.Status, error)
	Update(ctx context.Context, status *entities.Status) error
	Delete(ctx context.Context, id int64) error
	// List returns statuses in board order: (sort_order, name).
	List(ctx context.Context) ([]*entities.Status, error)
}

// CommentRepository defines the interface for task comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *entities.TaskComment) error
	GetByID(ctx context.Context, id int64) (*entities.TaskComment, error)
	Delete(ctx context.Context, id int64) error
	// ListByTask returns comments newest first.
	ListByTask(ctx context.Context, taskID int64) ([]*entities.TaskComment, error)
}

// AttachmentRepository defines the interface for task attachment operations
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *entities.TaskAttachment) error
	GetByID(ctx context.Context, id int64) (*entities.TaskAttachment, error)
	Delete(ctx context.Context, id int64) error
	ListByTask(ctx context.Context, taskID int64) ([]*entities.TaskAttachment, error)
}

// TaskFilter carries the optional list/search parameters. Zero values mean
// "do not filter on this dimension". Now anchors overdue and date math so
// query building stays deterministic under test.
type TaskFilter struct {
	SearchQuery  string
	SearchIn     string
	CategoryID   *int64
	StatusID     *int64
	PriorityID   *int64
	AssignedTo   *int64
	DueDateFrom  *time.Time
	DueDateTo    *time.Time
	ShowOverdue  bool
	ShowArchived bool
	Now          time.Time
	Page         int
	PageSize     int
}

// StatusCount pairs a status with its task count for the dashboard.
type StatusCount struct {
	StatusID    int64  `json:"status_id" db:"status_id"`
	StatusName  string `json:"status_name" db:"status_name"`
	Color       string `json:"color" db:"color"`
	IsCompleted bool   `json:"is_completed" db:"is_completed"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
	Count       int64  `json:"count" db:"count"`
}

// PriorityCount pairs a priority with its task count for the dashboard.
type PriorityCount struct {
	PriorityID   int64  `json:"priority_id" db:"priority_id"`
	PriorityName string `json:"priority_name" db:"priority_name"`
	Level        int    `json:"level" db:"level"`
	Color        string `json:"color" db:"color"`
	Count        int64  `json:"count" db:"count"`
}
