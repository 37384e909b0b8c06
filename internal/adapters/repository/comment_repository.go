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

// CommentRepositoryImpl implements the CommentRepository interface
type CommentRepositoryImpl struct {
	db *database.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *database.DB) ports.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *entities.TaskComment) error {
	query := `
		INSERT INTO task_comments (task_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowContext(ctx, query,
		comment.TaskID, comment.AuthorID, comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.TaskComment, error) {
	query := `
		SELECT tc.id, tc.task_id, tc.author_id, tc.content, tc.created_at, tc.updated_at,
			m.name AS author_name, m.avatar AS author_avatar
		FROM task_comments tc
		JOIN members m ON m.id = tc.author_id
		WHERE tc.id = $1`

	var comment entities.TaskComment
	err := r.db.DB.GetContext(ctx, &comment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrCommentNotFound
		}
		return nil, fmt.Errorf("get comment by id: %w", err)
	}

	return &comment, nil
}

func (r *CommentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM task_comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrCommentNotFound
	}

	return nil
}

func (r *CommentRepositoryImpl) ListByTask(ctx context.Context, taskID int64) ([]*entities.TaskComment, error) {
	query := `
		SELECT tc.id, tc.task_id, tc.author_id, tc.content, tc.created_at, tc.updated_at,
			m.name AS author_name, m.avatar AS author_avatar
		FROM task_comments tc
		JOIN members m ON m.id = tc.author_id
		WHERE tc.task_id = $1
		ORDER BY tc.created_at DESC`

	var comments []*entities.TaskComment
	if err := r.db.DB.SelectContext(ctx, &comments, query, taskID); err != nil {
		return nil, fmt.Errorf("list task comments: %w", err)
	}

	return comments, nil
}

// AttachmentRepositoryImpl implements the AttachmentRepository interface
type AttachmentRepositoryImpl struct {
	db *database.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *database.DB) ports.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *entities.TaskAttachment) error {
	query := `
		INSERT INTO task_attachments (task_id, file_name, file_path, file_size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, uploaded_at`

	err := r.db.DB.QueryRowContext(ctx, query,
		attachment.TaskID, attachment.FileName, attachment.FilePath,
		attachment.FileSize, attachment.UploadedBy,
	).Scan(&attachment.ID, &attachment.UploadedAt)

	if err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}

	return nil
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.TaskAttachment, error) {
	query := `
		SELECT id, task_id, file_name, file_path, file_size, uploaded_by, uploaded_at
		FROM task_attachments
		WHERE id = $1`

	var attachment entities.TaskAttachment
	err := r.db.DB.GetContext(ctx, &attachment, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("get attachment by id: %w", err)
	}

	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM task_attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return entities.ErrAttachmentNotFound
	}

	return nil
}

func (r *AttachmentRepositoryImpl) ListByTask(ctx context.Context, taskID int64) ([]*entities.TaskAttachment, error) {
	query := `
		SELECT id, task_id, file_name, file_path, file_size, uploaded_by, uploaded_at
		FROM task_attachments
		WHERE task_id = $1
		ORDER BY uploaded_at DESC`

	var attachments []*entities.TaskAttachment
	if err := r.db.DB.SelectContext(ctx, &attachments, query, taskID); err != nil {
		return nil, fmt.Errorf("list task attachments: %w", err)
	}

	return attachments, nil
}
