package entities

import (
	"errors"
	"strings"
	"time"
)

// Common errors
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrStatusNotFound     = errors.New("status not found")
	ErrPriorityNotFound   = errors.New("priority not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrDueDateInPast      = errors.New("due date cannot be in the past")
	ErrInvalidBulkAction  = errors.New("unknown bulk action")
	ErrMissingStatusID    = errors.New("status_id is required for this action")
	ErrMissingPriorityID  = errors.New("priority_id is required for this action")
	ErrPriorityLevelRange = errors.New("priority level must be between 1 and 5")
)

// BulkAction identifies an operation applied uniformly to a set of tasks.
type BulkAction string

const (
	BulkActionDelete         BulkAction = "delete"
	BulkActionArchive        BulkAction = "archive"
	BulkActionChangeStatus   BulkAction = "change_status"
	BulkActionChangePriority BulkAction = "change_priority"
)

func (a BulkAction) IsValid() bool {
	switch a {
	case BulkActionDelete, BulkActionArchive, BulkActionChangeStatus, BulkActionChangePriority:
		return true
	default:
		return false
	}
}

// Search fields recognized by the task filter.
const (
	SearchInName        = "name"
	SearchInDescription = "description"
	SearchInTags        = "tags"
	SearchInAssignedTo  = "assigned_to"
)

// ValidSearchIn reports whether field is a recognized search target.
func ValidSearchIn(field string) bool {
	switch field {
	case SearchInName, SearchInDescription, SearchInTags, SearchInAssignedTo:
		return true
	default:
		return false
	}
}

// Category groups tasks. Deleting a category nulls the reference on its tasks.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color" db:"color"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Member is an assignee or comment author.
type Member struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Avatar string `json:"avatar" db:"avatar"`
}

// Priority is an ordered urgency level. Level runs 1-5 and is unique.
type Priority struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Level int    `json:"level" db:"level"`
	Color string `json:"color" db:"color"`
}

// Status is a kanban column. SortOrder controls board ordering; ties break
// on name.
type Status struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Color       string `json:"color" db:"color"`
	IsCompleted bool   `json:"is_completed" db:"is_completed"`
	SortOrder   int    `json:"sort_order" db:"sort_order"`
}

// Task is the central entity. Category, assignee, status and priority are all
// optional references resolved by LEFT JOIN; the *Name/*Level fields below
// carry the joined display values and are not columns on the tasks table.
type Task struct {
	ID             int64      `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	CategoryID     *int64     `json:"category_id" db:"category_id"`
	AssignedTo     *int64     `json:"assigned_to" db:"assigned_to"`
	StatusID       *int64     `json:"status_id" db:"status_id"`
	PriorityID     *int64     `json:"priority_id" db:"priority_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DueDate        *time.Time `json:"due_date" db:"due_date"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`
	EstimatedHours float64    `json:"estimated_hours" db:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours" db:"actual_hours"`
	Tags           string     `json:"tags" db:"tags"`
	IsArchived     bool       `json:"is_archived" db:"is_archived"`

	CategoryName    *string `json:"category_name,omitempty" db:"category_name"`
	AssigneeName    *string `json:"assignee_name,omitempty" db:"assignee_name"`
	AssigneeAvatar  *string `json:"assignee_avatar,omitempty" db:"assignee_avatar"`
	StatusName      *string `json:"status_name,omitempty" db:"status_name"`
	StatusCompleted *bool   `json:"status_completed,omitempty" db:"status_completed"`
	PriorityName    *string `json:"priority_name,omitempty" db:"priority_name"`
	PriorityLevel   *int    `json:"priority_level,omitempty" db:"priority_level"`
}

// TaskComment belongs to a task and is removed with it.
type TaskComment struct {
	ID        int64     `json:"id" db:"id"`
	TaskID    int64     `json:"task_id" db:"task_id"`
	AuthorID  int64     `json:"author_id" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	AuthorName   *string `json:"author_name,omitempty" db:"author_name"`
	AuthorAvatar *string `json:"author_avatar,omitempty" db:"author_avatar"`
}

// TaskAttachment records an uploaded file tied to a task.
type TaskAttachment struct {
	ID         int64     `json:"id" db:"id"`
	TaskID     int64     `json:"task_id" db:"task_id"`
	FileName   string    `json:"file_name" db:"file_name"`
	FilePath   string    `json:"file_path" db:"file_path"`
	FileSize   int64     `json:"file_size" db:"file_size"`
	UploadedBy *int64    `json:"uploaded_by" db:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// IsOverdue reports whether the task is past due and not in a completed
// status. A task with no status counts as not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if !t.DueDate.Before(now) {
		return false
	}
	return t.StatusCompleted == nil || !*t.StatusCompleted
}

// IsCompleted reports whether the task sits in a completed status.
func (t *Task) IsCompleted() bool {
	return t.StatusCompleted != nil && *t.StatusCompleted
}

// TagList splits the comma-separated tags field into trimmed, non-empty tags.
func (t *Task) TagList() []string {
	if strings.TrimSpace(t.Tags) == "" {
		return nil
	}
	parts := strings.Split(t.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MarkCompleted stamps completion time. Repeated completion refreshes the
// stamp; leaving a completed status does not clear it.
func (t *Task) MarkCompleted(now time.Time) {
	t.CompletedAt = &now
}

// ValidatePriorityLevel enforces the 1-5 level range.
func ValidatePriorityLevel(level int) error {
	if level < 1 || level > 5 {
		return ErrPriorityLevelRange
	}
	return nil
}

// ValidateDueDate rejects due dates already in the past. Only enforced at
// submission time; stored tasks may go overdue afterwards.
func ValidateDueDate(dueDate *time.Time, now time.Time) error {
	if dueDate != nil && dueDate.Before(now) {
		return ErrDueDateInPast
	}
	return nil
}
