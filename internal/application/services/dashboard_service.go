package services

import (
	"context"
	"fmt"
	"time"

	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

const (
	recentTasksLimit = 10
	dueSoonDays      = 7
)

// DashboardService computes summary statistics over the task set. Every
// number is computed fresh per call; there is no caching layer.
type DashboardService struct {
	taskRepo ports.TaskRepository
	logger   *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(taskRepo ports.TaskRepository, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Summary assembles the dashboard payload.
func (s *DashboardService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	now := time.Now()

	total, err := s.taskRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	completed, err := s.taskRepo.CountCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	overdue, err := s.taskRepo.CountOverdue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	byStatus, err := s.taskRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}

	byPriority, err := s.taskRepo.CountByPriority(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}

	recent, err := s.taskRepo.Recent(ctx, recentTasksLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent tasks: %w", err)
	}

	dueSoon, err := s.taskRepo.DueSoon(ctx, now, dueSoonDays)
	if err != nil {
		return nil, fmt.Errorf("failed to load due-soon tasks: %w", err)
	}

	return &ports.DashboardSummary{
		TotalTasks:     total,
		CompletedTasks: completed,
		OverdueTasks:   overdue,
		ByStatus:       byStatus,
		ByPriority:     byPriority,
		RecentTasks:    recent,
		DueSoon:        dueSoon,
	}, nil
}
