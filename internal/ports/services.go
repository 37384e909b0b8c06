package ports

import (
	"context"
	"io"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
)

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id int64) (*TaskDetail, error)
	UpdateTask(ctx context.Context, id int64, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	Transition(ctx context.Context, taskID, statusID int64) (*TransitionResult, error)
	ApplyBulk(ctx context.Context, req BulkActionRequest) (int64, error)
}

// BoardService interface for filtered listing and kanban grouping
type BoardService interface {
	ListTasks(ctx context.Context, filter TaskFilter) (*TaskPage, error)
	Board(ctx context.Context, filter TaskFilter) ([]StatusColumn, error)
}

// DashboardService interface for summary statistics
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

// CommentService interface for task comments and attachments
type CommentService interface {
	AddComment(ctx context.Context, taskID, authorID int64, content string) (*entities.TaskComment, error)
	DeleteComment(ctx context.Context, id int64) error
	AddAttachment(ctx context.Context, req AddAttachmentRequest) (*entities.TaskAttachment, error)
	DeleteAttachment(ctx context.Context, id int64) error
}

// LookupService interface for category/member/priority/status management
type LookupService interface {
	CreateCategory(ctx context.Context, req CategoryRequest) (*entities.Category, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*entities.Category, error)

	CreateMember(ctx context.Context, req MemberRequest) (*entities.Member, error)
	UpdateMember(ctx context.Context, id int64, req MemberRequest) (*entities.Member, error)
	DeleteMember(ctx context.Context, id int64) error
	ListMembers(ctx context.Context) ([]*entities.Member, error)

	CreatePriority(ctx context.Context, req PriorityRequest) (*entities.Priority, error)
	UpdatePriority(ctx context.Context, id int64, req PriorityRequest) (*entities.Priority, error)
	DeletePriority(ctx context.Context, id int64) error
	ListPriorities(ctx context.Context) ([]*entities.Priority, error)

	CreateStatus(ctx context.Context, req StatusRequest) (*entities.Status, error)
	UpdateStatus(ctx context.Context, id int64, req StatusRequest) (*entities.Status, error)
	DeleteStatus(ctx context.Context, id int64) error
	ListStatuses(ctx context.Context) ([]*entities.Status, error)
}

// Request/Response Types

type CreateTaskRequest struct {
	Name           string     `json:"name" validate:"required,max=100"`
	Description    string     `json:"description" validate:"max=5000"`
	CategoryID     *int64     `json:"category_id"`
	AssignedTo     *int64     `json:"assigned_to"`
	StatusID       *int64     `json:"status_id"`
	PriorityID     *int64     `json:"priority_id"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours float64    `json:"estimated_hours" validate:"min=0"`
	ActualHours    *float64   `json:"actual_hours" validate:"omitempty,min=0"`
	Tags           string     `json:"tags" validate:"max=500"`
	IsArchived     bool       `json:"is_archived"`
}

type UpdateTaskRequest struct {
	Name           *string    `json:"name" validate:"omitempty,max=100"`
	Description    *string    `json:"description" validate:"omitempty,max=5000"`
	CategoryID     *int64     `json:"category_id"`
	AssignedTo     *int64     `json:"assigned_to"`
	StatusID       *int64     `json:"status_id"`
	PriorityID     *int64     `json:"priority_id"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours" validate:"omitempty,min=0"`
	ActualHours    *float64   `json:"actual_hours" validate:"omitempty,min=0"`
	Tags           *string    `json:"tags" validate:"omitempty,max=500"`
	IsArchived     *bool      `json:"is_archived"`
}

// TransitionRequest is the drag-and-drop payload from the board.
type TransitionRequest struct {
	TaskID   int64 `json:"task_id" validate:"required"`
	StatusID int64 `json:"status_id" validate:"required"`
}

// TransitionResult confirms a status change with a human-readable message.
type TransitionResult struct {
	TaskID     int64  `json:"task_id"`
	TaskName   string `json:"task_name"`
	StatusID   int64  `json:"status_id"`
	StatusName string `json:"status_name"`
	Completed  bool   `json:"completed"`
	Message    string `json:"message"`
}

type BulkActionRequest struct {
	Action     entities.BulkAction `json:"action" validate:"required"`
	TaskIDs    []int64             `json:"task_ids"`
	StatusID   *int64              `json:"status_id"`
	PriorityID *int64              `json:"priority_id"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	Description string `json:"description" validate:"max=1000"`
}

type MemberRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Avatar string `json:"avatar" validate:"max=10"`
}

type PriorityRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Level int    `json:"level" validate:"required,min=1,max=5"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type StatusRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	IsCompleted bool   `json:"is_completed"`
	SortOrder   int    `json:"sort_order" validate:"min=0"`
}

type AddAttachmentRequest struct {
	TaskID     int64
	FileName   string
	Size       int64
	UploadedBy *int64
	Content    io.Reader
}

// TaskDetail bundles a task with its comments and attachments.
type TaskDetail struct {
	Task        *entities.Task             `json:"task"`
	Comments    []*entities.TaskComment    `json:"comments"`
	Attachments []*entities.TaskAttachment `json:"attachments"`
}

// TaskPage is one page of the flat filtered list.
type TaskPage struct {
	Tasks    []*entities.Task `json:"tasks"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// StatusColumn is one kanban column: a status paired with its filtered tasks.
// Columns appear for every status, including empty ones.
type StatusColumn struct {
	Status *entities.Status `json:"status"`
	Tasks  []*entities.Task `json:"tasks"`
}

// DashboardSummary is the aggregate payload for the dashboard view.
type DashboardSummary struct {
	TotalTasks     int64            `json:"total_tasks"`
	CompletedTasks int64            `json:"completed_tasks"`
	OverdueTasks   int64            `json:"overdue_tasks"`
	ByStatus       []StatusCount    `json:"by_status"`
	ByPriority     []PriorityCount  `json:"by_priority"`
	RecentTasks    []*entities.Task `json:"recent_tasks"`
	DueSoon        []*entities.Task `json:"due_soon"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
