package services

import (
	"context"
	"fmt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

const (
	defaultCategoryColor = "#6c757d"
	defaultStatusColor   = "#0d6efd"
	defaultPriorityColor = "#6c757d"
	defaultAvatar        = "👤"
)

// LookupService manages the four lookup tables behind tasks: categories,
// members, priorities and statuses. Deleting any of them leaves referencing
// tasks in place with the reference cleared.
type LookupService struct {
	categoryRepo ports.CategoryRepository
	memberRepo   ports.MemberRepository
	priorityRepo ports.PriorityRepository
	statusRepo   ports.StatusRepository
	logger       *logger.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(
	categoryRepo ports.CategoryRepository,
	memberRepo ports.MemberRepository,
	priorityRepo ports.PriorityRepository,
	statusRepo ports.StatusRepository,
	logger *logger.Logger,
) *LookupService {
	return &LookupService{
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,
		priorityRepo: priorityRepo,
		statusRepo:   statusRepo,
		logger:       logger,
	}
}

func (s *LookupService) CreateCategory(ctx context.Context, req ports.CategoryRequest) (*entities.Category, error) {
	category := &entities.Category{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Infow("Category created", "category_id", category.ID, "name", category.Name)
	return category, nil
}

func (s *LookupService) UpdateCategory(ctx context.Context, id int64, req ports.CategoryRequest) (*entities.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	if req.Color != "" {
		category.Color = req.Color
	}
	category.Description = req.Description

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

func (s *LookupService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Category deleted", "category_id", id)
	return nil
}

func (s *LookupService) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *LookupService) CreateMember(ctx context.Context, req ports.MemberRequest) (*entities.Member, error) {
	member := &entities.Member{
		Name:   req.Name,
		Avatar: req.Avatar,
	}
	if member.Avatar == "" {
		member.Avatar = defaultAvatar
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.logger.Infow("Member created", "member_id", member.ID, "name", member.Name)
	return member, nil
}

func (s *LookupService) UpdateMember(ctx context.Context, id int64, req ports.MemberRequest) (*entities.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Name = req.Name
	if req.Avatar != "" {
		member.Avatar = req.Avatar
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

func (s *LookupService) DeleteMember(ctx context.Context, id int64) error {
	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Member deleted", "member_id", id)
	return nil
}

func (s *LookupService) ListMembers(ctx context.Context) ([]*entities.Member, error) {
	return s.memberRepo.List(ctx)
}

func (s *LookupService) CreatePriority(ctx context.Context, req ports.PriorityRequest) (*entities.Priority, error) {
	if err := entities.ValidatePriorityLevel(req.Level); err != nil {
		return nil, err
	}

	priority := &entities.Priority{
		Name:  req.Name,
		Level: req.Level,
		Color: req.Color,
	}
	if priority.Color == "" {
		priority.Color = defaultPriorityColor
	}

	if err := s.priorityRepo.Create(ctx, priority); err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}

	s.logger.Infow("Priority created", "priority_id", priority.ID, "level", priority.Level)
	return priority, nil
}

func (s *LookupService) UpdatePriority(ctx context.Context, id int64, req ports.PriorityRequest) (*entities.Priority, error) {
	if err := entities.ValidatePriorityLevel(req.Level); err != nil {
		return nil, err
	}

	priority, err := s.priorityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	priority.Name = req.Name
	priority.Level = req.Level
	if req.Color != "" {
		priority.Color = req.Color
	}

	if err := s.priorityRepo.Update(ctx, priority); err != nil {
		return nil, fmt.Errorf("failed to update priority: %w", err)
	}

	return priority, nil
}

func (s *LookupService) DeletePriority(ctx context.Context, id int64) error {
	if err := s.priorityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Priority deleted", "priority_id", id)
	return nil
}

func (s *LookupService) ListPriorities(ctx context.Context) ([]*entities.Priority, error) {
	return s.priorityRepo.List(ctx)
}

func (s *LookupService) CreateStatus(ctx context.Context, req ports.StatusRequest) (*entities.Status, error) {
	status := &entities.Status{
		Name:        req.Name,
		Color:       req.Color,
		IsCompleted: req.IsCompleted,
		SortOrder:   req.SortOrder,
	}
	if status.Color == "" {
		status.Color = defaultStatusColor
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	s.logger.Infow("Status created", "status_id", status.ID, "name", status.Name)
	return status, nil
}

func (s *LookupService) UpdateStatus(ctx context.Context, id int64, req ports.StatusRequest) (*entities.Status, error) {
	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status.Name = req.Name
	if req.Color != "" {
		status.Color = req.Color
	}
	status.IsCompleted = req.IsCompleted
	status.SortOrder = req.SortOrder

	if err := s.statusRepo.Update(ctx, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return status, nil
}

func (s *LookupService) DeleteStatus(ctx context.Context, id int64) error {
	if err := s.statusRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Status deleted", "status_id", id)
	return nil
}

func (s *LookupService) ListStatuses(ctx context.Context) ([]*entities.Status, error) {
	return s.statusRepo.List(ctx)
}
