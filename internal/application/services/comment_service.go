package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/config"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// CommentService handles task comments and file attachments
type CommentService struct {
	taskRepo       ports.TaskRepository
	memberRepo     ports.MemberRepository
	commentRepo    ports.CommentRepository
	attachmentRepo ports.AttachmentRepository
	uploads        config.UploadsConfig
	logger         *logger.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	taskRepo ports.TaskRepository,
	memberRepo ports.MemberRepository,
	commentRepo ports.CommentRepository,
	attachmentRepo ports.AttachmentRepository,
	uploads config.UploadsConfig,
	logger *logger.Logger,
) *CommentService {
	return &CommentService{
		taskRepo:       taskRepo,
		memberRepo:     memberRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		uploads:        uploads,
		logger:         logger,
	}
}

// AddComment attaches a comment to a task. The task itself is not mutated.
func (s *CommentService) AddComment(ctx context.Context, taskID, authorID int64, content string) (*entities.TaskComment, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetByID(ctx, authorID); err != nil {
		return nil, err
	}

	comment := &entities.TaskComment{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.LogTaskAction(taskID, "comment_added", map[string]interface{}{
		"comment_id": comment.ID,
		"author_id":  authorID,
	})

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a single comment
func (s *CommentService) DeleteComment(ctx context.Context, id int64) error {
	return s.commentRepo.Delete(ctx, id)
}

// AddAttachment stores the uploaded file under the uploads directory with a
// generated name and records its metadata.
func (s *CommentService) AddAttachment(ctx context.Context, req ports.AddAttachmentRequest) (*entities.TaskAttachment, error) {
	if _, err := s.taskRepo.GetByID(ctx, req.TaskID); err != nil {
		return nil, err
	}

	if req.UploadedBy != nil {
		if _, err := s.memberRepo.GetByID(ctx, *req.UploadedBy); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(s.uploads.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	storedName := uuid.New().String() + filepath.Ext(req.FileName)
	storedPath := filepath.Join(s.uploads.Dir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(req.Content, s.uploads.MaxFileSize))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write attachment file: %w", err)
	}

	attachment := &entities.TaskAttachment{
		TaskID:     req.TaskID,
		FileName:   req.FileName,
		FilePath:   storedPath,
		FileSize:   written,
		UploadedBy: req.UploadedBy,
	}

	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.logger.LogTaskAction(req.TaskID, "attachment_added", map[string]interface{}{
		"attachment_id": attachment.ID,
		"file_name":     attachment.FileName,
		"file_size":     attachment.FileSize,
	})

	return attachment, nil
}

// DeleteAttachment removes the metadata row and best-effort deletes the file.
func (s *CommentService) DeleteAttachment(ctx context.Context, id int64) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(attachment.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warnw("Failed to remove attachment file",
			"path", attachment.FilePath, "error", err)
	}

	return nil
}
