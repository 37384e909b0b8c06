package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskService handles task CRUD, status transitions and bulk actions
type TaskService struct {
	taskRepo       ports.TaskRepository
	categoryRepo   ports.CategoryRepository
	memberRepo     ports.MemberRepository
	statusRepo     ports.StatusRepository
	priorityRepo   ports.PriorityRepository
	commentRepo    ports.CommentRepository
	attachmentRepo ports.AttachmentRepository
	logger         *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo ports.TaskRepository,
	categoryRepo ports.CategoryRepository,
	memberRepo ports.MemberRepository,
	statusRepo ports.StatusRepository,
	priorityRepo ports.PriorityRepository,
	commentRepo ports.CommentRepository,
	attachmentRepo ports.AttachmentRepository,
	logger *logger.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		categoryRepo:   categoryRepo,
		memberRepo:     memberRepo,
		statusRepo:     statusRepo,
		priorityRepo:   priorityRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

// CreateTask creates a new task
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if err := entities.ValidateDueDate(req.DueDate, time.Now()); err != nil {
		return nil, err
	}

	if err := s.resolveReferences(ctx, req.CategoryID, req.AssignedTo, req.StatusID, req.PriorityID); err != nil {
		return nil, err
	}

	task := &entities.Task{
		Name:           req.Name,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		AssignedTo:     req.AssignedTo,
		StatusID:       req.StatusID,
		PriorityID:     req.PriorityID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Tags:           req.Tags,
		IsArchived:     req.IsArchived,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "name", task.Name)

	// Re-read to pick up the joined display fields.
	return s.taskRepo.GetByID(ctx, task.ID)
}

// GetTask retrieves a task with its comments and attachments
func (s *TaskService) GetTask(ctx context.Context, id int64) (*ports.TaskDetail, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	attachments, err := s.attachmentRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	return &ports.TaskDetail{
		Task:        task,
		Comments:    comments,
		Attachments: attachments,
	}, nil
}

// UpdateTask updates a task's fields; absent fields stay unchanged
func (s *TaskService) UpdateTask(ctx context.Context, id int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		if err := entities.ValidateDueDate(req.DueDate, time.Now()); err != nil {
			return nil, err
		}
	}

	if err := s.resolveReferences(ctx, req.CategoryID, req.AssignedTo, req.StatusID, req.PriorityID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.CategoryID != nil {
		task.CategoryID = req.CategoryID
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.StatusID != nil {
		task.StatusID = req.StatusID
	}
	if req.PriorityID != nil {
		task.PriorityID = req.PriorityID
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = *req.EstimatedHours
	}
	if req.ActualHours != nil {
		task.ActualHours = req.ActualHours
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.IsArchived != nil {
		task.IsArchived = *req.IsArchived
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "name", task.Name)

	return s.taskRepo.GetByID(ctx, task.ID)
}

// DeleteTask permanently removes a task and its comments and attachments
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Task deleted", "task_id", id)

	return nil
}

// Transition moves a task to a new status. Entering a completed status
// stamps completed_at with the current time, refreshing it on repeats;
// leaving a completed status keeps the old stamp.
func (s *TaskService) Transition(ctx context.Context, taskID, statusID int64) (*ports.TransitionResult, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	status, err := s.statusRepo.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if status.IsCompleted {
		now := time.Now()
		completedAt = &now
	}

	if err := s.taskRepo.SetStatus(ctx, taskID, statusID, completedAt); err != nil {
		return nil, err
	}

	s.logger.LogTaskAction(taskID, "status_transition", map[string]interface{}{
		"status_id":   statusID,
		"status_name": status.Name,
		"completed":   status.IsCompleted,
	})

	return &ports.TransitionResult{
		TaskID:     task.ID,
		TaskName:   task.Name,
		StatusID:   status.ID,
		StatusName: status.Name,
		Completed:  status.IsCompleted,
		Message:    fmt.Sprintf("Task %q moved to %q", task.Name, status.Name),
	}, nil
}

// ApplyBulk applies one action to a set of task ids as a single unit of
// work. Unknown ids are skipped; an unrecognized action or an empty id set
// changes nothing and reports zero affected. Bulk status changes do not
// stamp completed_at; only Transition does.
func (s *TaskService) ApplyBulk(ctx context.Context, req ports.BulkActionRequest) (int64, error) {
	if len(req.TaskIDs) == 0 || !req.Action.IsValid() {
		return 0, nil
	}

	var (
		affected int64
		err      error
	)

	switch req.Action {
	case entities.BulkActionDelete:
		affected, err = s.taskRepo.BulkDelete(ctx, req.TaskIDs)

	case entities.BulkActionArchive:
		affected, err = s.taskRepo.BulkArchive(ctx, req.TaskIDs)

	case entities.BulkActionChangeStatus:
		if req.StatusID == nil {
			return 0, entities.ErrMissingStatusID
		}
		if _, err := s.statusRepo.GetByID(ctx, *req.StatusID); err != nil {
			return 0, err
		}
		affected, err = s.taskRepo.BulkSetStatus(ctx, req.TaskIDs, *req.StatusID)

	case entities.BulkActionChangePriority:
		if req.PriorityID == nil {
			return 0, entities.ErrMissingPriorityID
		}
		if _, err := s.priorityRepo.GetByID(ctx, *req.PriorityID); err != nil {
			return 0, err
		}
		affected, err = s.taskRepo.BulkSetPriority(ctx, req.TaskIDs, *req.PriorityID)
	}

	if err != nil {
		return 0, fmt.Errorf("bulk %s failed: %w", req.Action, err)
	}

	s.logger.Infow("Bulk action applied",
		"action", req.Action,
		"requested", len(req.TaskIDs),
		"affected", affected,
	)

	return affected, nil
}

// resolveReferences verifies that every supplied lookup id exists.
func (s *TaskService) resolveReferences(ctx context.Context, categoryID, assignedTo, statusID, priorityID *int64) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			return err
		}
	}
	if assignedTo != nil {
		if _, err := s.memberRepo.GetByID(ctx, *assignedTo); err != nil {
			return err
		}
	}
	if statusID != nil {
		if _, err := s.statusRepo.GetByID(ctx, *statusID); err != nil {
			return err
		}
	}
	if priorityID != nil {
		if _, err := s.priorityRepo.GetByID(ctx, *priorityID); err != nil {
			return err
		}
	}
	return nil
}
