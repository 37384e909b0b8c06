package services

import (
	"context"
	"fmt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// DefaultPageSize is the flat list page length.
const DefaultPageSize = 20

// BoardService produces the filtered flat list and the kanban grouping
type BoardService struct {
	taskRepo   ports.TaskRepository
	statusRepo ports.StatusRepository
	logger     *logger.Logger
}

// NewBoardService creates a new board service
func NewBoardService(taskRepo ports.TaskRepository, statusRepo ports.StatusRepository, logger *logger.Logger) *BoardService {
	return &BoardService{
		taskRepo:   taskRepo,
		statusRepo: statusRepo,
		logger:     logger,
	}
}

// ListTasks returns one page of the filtered task list, newest first.
func (s *BoardService) ListTasks(ctx context.Context, filter ports.TaskFilter) (*ports.TaskPage, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	tasks, total, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ports.TaskPage{
		Tasks:    tasks,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Board returns the filtered set partitioned into kanban columns: every
// status in (sort_order, name) order, empty columns included. Tasks without
// a status do not appear on the board.
func (s *BoardService) Board(ctx context.Context, filter ports.TaskFilter) ([]ports.StatusColumn, error) {
	statuses, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}

	tasks, err := s.taskRepo.ListAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return GroupTasksByStatus(statuses, tasks), nil
}

// GroupTasksByStatus partitions tasks into one column per status, preserving
// both the status order and the task order within each column.
func GroupTasksByStatus(statuses []*entities.Status, tasks []*entities.Task) []ports.StatusColumn {
	byStatus := make(map[int64][]*entities.Task, len(statuses))
	for _, task := range tasks {
		if task.StatusID == nil {
			continue
		}
		byStatus[*task.StatusID] = append(byStatus[*task.StatusID], task)
	}

	columns := make([]ports.StatusColumn, 0, len(statuses))
	for _, status := range statuses {
		column := ports.StatusColumn{
			Status: status,
			Tasks:  byStatus[status.ID],
		}
		if column.Tasks == nil {
			column.Tasks = []*entities.Task{}
		}
		columns = append(columns, column)
	}

	return columns
}
