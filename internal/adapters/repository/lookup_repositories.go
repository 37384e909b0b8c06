package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/database"
	"github.com/taskboard/core/internal/ports"
)

// CategoryRepositoryImpl implements the CategoryRepository interface
type CategoryRepositoryImpl struct {
	db *database.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *database.DB) ports.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entities.Category) error {
	query := `
		INSERT INTO categories (name, color, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.DB.QueryRowContext(ctx, query,
		category.Name, category.Color, category.Description,
	).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	query := `SELECT id, name, color, description, created_at FROM categories WHERE id = $1`

	var category entities.Category
	err := r.db.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entities.Category) error {
	query := `UPDATE categories SET name = $2, color = $3, description = $4 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		category.ID, category.Name, category.Color, category.Description)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, id int64) error {
	// Tasks keep their rows; category_id goes NULL via ON DELETE SET NULL.
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*entities.Category, error) {
	query := `SELECT id, name, color, description, created_at FROM categories ORDER BY name`

	var categories []*entities.Category
	if err := r.db.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// MemberRepositoryImpl implements the MemberRepository interface
type MemberRepositoryImpl struct {
	db *database.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB) ports.MemberRepository {
	return &MemberRepositoryImpl{db: db}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *entities.Member) error {
	query := `INSERT INTO members (name, avatar) VALUES ($1, $2) RETURNING id`

	err := r.db.DB.QueryRowContext(ctx, query, member.Name, member.Avatar).Scan(&member.ID)
	if err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	return nil
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	query := `SELECT id, name, avatar FROM members WHERE id = $1`

	var member entities.Member
	err := r.db.DB.GetContext(ctx, &member, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member by id: %w", err)
	}

	return &member, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, member *entities.Member) error {
	query := `UPDATE members SET name = $2, avatar = $3 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, member.ID, member.Name, member.Avatar)
	if err != nil {
		return fmt.Errorf("update member: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrMemberNotFound
	}

	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id int64) error {
	// Assigned tasks survive with assigned_to set NULL; the member's own
	// comments cascade away with the member.
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrMemberNotFound
	}

	return nil
}

func (r *MemberRepositoryImpl) List(ctx context.Context) ([]*entities.Member, error) {
	query := `SELECT id, name, avatar FROM members ORDER BY name`

	var members []*entities.Member
	if err := r.db.DB.SelectContext(ctx, &members, query); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

// PriorityRepositoryImpl implements the PriorityRepository interface
type PriorityRepositoryImpl struct {
	db *database.DB
}

// NewPriorityRepository creates a new priority repository
func NewPriorityRepository(db *database.DB) ports.PriorityRepository {
	return &PriorityRepositoryImpl{db: db}
}

func (r *PriorityRepositoryImpl) Create(ctx context.Context, priority *entities.Priority) error {
	query := `INSERT INTO priorities (name, level, color) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.DB.QueryRowContext(ctx, query,
		priority.Name, priority.Level, priority.Color).Scan(&priority.ID)
	if err != nil {
		return fmt.Errorf("create priority: %w", err)
	}

	return nil
}

func (r *PriorityRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Priority, error) {
	query := `SELECT id, name, level, color FROM priorities WHERE id = $1`

	var priority entities.Priority
	err := r.db.DB.GetContext(ctx, &priority, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrPriorityNotFound
		}
		return nil, fmt.Errorf("get priority by id: %w", err)
	}

	return &priority, nil
}

func (r *PriorityRepositoryImpl) Update(ctx context.Context, priority *entities.Priority) error {
	query := `UPDATE priorities SET name = $2, level = $3, color = $4 WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		priority.ID, priority.Name, priority.Level, priority.Color)
	if err != nil {
		return fmt.Errorf("update priority: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrPriorityNotFound
	}

	return nil
}

func (r *PriorityRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM priorities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete priority: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrPriorityNotFound
	}

	return nil
}

func (r *PriorityRepositoryImpl) List(ctx context.Context) ([]*entities.Priority, error) {
	query := `SELECT id, name, level, color FROM priorities ORDER BY level`

	var priorities []*entities.Priority
	if err := r.db.DB.SelectContext(ctx, &priorities, query); err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}

	return priorities, nil
}

// StatusRepositoryImpl implements the StatusRepository interface
type StatusRepositoryImpl struct {
	db *database.DB
}

// NewStatusRepository creates a new status repository
func NewStatusRepository(db *database.DB) ports.StatusRepository {
	return &StatusRepositoryImpl{db: db}
}

func (r *StatusRepositoryImpl) Create(ctx context.Context, status *entities.Status) error {
	query := `
		INSERT INTO statuses (name, color, is_completed, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.DB.QueryRowContext(ctx, query,
		status.Name, status.Color, status.IsCompleted, status.SortOrder).Scan(&status.ID)
	if err != nil {
		return fmt.Errorf("create status: %w", err)
	}

	return nil
}

func (r *StatusRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Status, error) {
	query := `SELECT id, name, color, is_completed, sort_order FROM statuses WHERE id = $1`

	var status entities.Status
	err := r.db.DB.GetContext(ctx, &status, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrStatusNotFound
		}
		return nil, fmt.Errorf("get status by id: %w", err)
	}

	return &status, nil
}

func (r *StatusRepositoryImpl) Update(ctx context.Context, status *entities.Status) error {
	query := `
		UPDATE statuses
		SET name = $2, color = $3, is_completed = $4, sort_order = $5
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		status.ID, status.Name, status.Color, status.IsCompleted, status.SortOrder)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrStatusNotFound
	}

	return nil
}

func (r *StatusRepositoryImpl) Delete(ctx context.Context, id int64) error {
	// Tasks in this column fall back to "no status" via ON DELETE SET NULL.
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete status: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrStatusNotFound
	}

	return nil
}

func (r *StatusRepositoryImpl) List(ctx context.Context) ([]*entities.Status, error) {
	query := `SELECT id, name, color, is_completed, sort_order FROM statuses ORDER BY sort_order, name`

	var statuses []*entities.Status
	if err := r.db.DB.SelectContext(ctx, &statuses, query); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}

	return statuses, nil
}
