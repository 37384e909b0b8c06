package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskHandler handles task CRUD, the drag transition and bulk actions
type TaskHandler struct {
	taskService    ports.TaskService
	commentService ports.CommentService
	logger         *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService ports.TaskService, commentService ports.CommentService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		commentService: commentService,
		logger:         logger,
	}
}

// StatusUpdateResponse is the structured payload for the drag endpoint.
type StatusUpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkActionResponse reports how many tasks a bulk call touched.
type BulkActionResponse struct {
	Action   entities.BulkAction `json:"action"`
	Affected int64               `json:"affected"`
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		if isValidationError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("Create task failed", "error", err)
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles the task detail view: task plus comments and attachments
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	detail, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Get task failed", "error", err, "task_id", id)
		return err
	}

	return c.JSON(http.StatusOK, detail)
}

// UpdateTask handles task edits
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		if isValidationError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("Update task failed", "error", err, "task_id", id)
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles permanent deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		h.logger.Errorw("Delete task failed", "error", err, "task_id", id)
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted"})
}

// UpdateTaskStatus handles the board drag payload. Failures it can name
// (bad payload, unknown task or status) come back as structured payloads;
// anything else propagates as a server error.
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	var req ports.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StatusUpdateResponse{
			Success: false,
			Error:   "malformed status update payload",
		})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StatusUpdateResponse{
			Success: false,
			Error:   "task_id and status_id are required",
		})
	}

	result, err := h.taskService.Transition(c.Request().Context(), req.TaskID, req.StatusID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) || errors.Is(err, entities.ErrStatusNotFound) {
			return c.JSON(http.StatusNotFound, StatusUpdateResponse{
				Success: false,
				Error:   err.Error(),
			})
		}
		h.logger.Errorw("Status transition failed", "error", err,
			"task_id", req.TaskID, "status_id", req.StatusID)
		return err
	}

	return c.JSON(http.StatusOK, StatusUpdateResponse{
		Success: true,
		Message: result.Message,
	})
}

// BulkAction applies one action to a set of task ids
func (h *TaskHandler) BulkAction(c echo.Context) error {
	var req ports.BulkActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	affected, err := h.taskService.ApplyBulk(c.Request().Context(), req)
	if err != nil {
		// Missing or unresolvable status/priority targets are caller
		// mistakes, not lookup misses on the operation's subject.
		if isValidationError(err) ||
			errors.Is(err, entities.ErrMissingStatusID) ||
			errors.Is(err, entities.ErrMissingPriorityID) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("Bulk action failed", "error", err, "action", req.Action)
		return err
	}

	return c.JSON(http.StatusOK, BulkActionResponse{
		Action:   req.Action,
		Affected: affected,
	})
}

// AddComment attaches a comment authored by the current member
func (h *TaskHandler) AddComment(c echo.Context) error {
	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	memberID, ok := memberIDFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing member identity")
	}

	var req struct {
		Content string `json:"content" validate:"required,max=2000"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentService.AddComment(c.Request().Context(), taskID, memberID, req.Content)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		if errors.Is(err, entities.ErrMemberNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown member")
		}
		h.logger.Errorw("Add comment failed", "error", err, "task_id", taskID)
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a single comment
func (h *TaskHandler) DeleteComment(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrCommentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		h.logger.Errorw("Delete comment failed", "error", err, "comment_id", id)
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Comment deleted"})
}

// AddAttachment stores an uploaded file against a task
func (h *TaskHandler) AddAttachment(c echo.Context) error {
	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable file")
	}
	defer src.Close()

	req := ports.AddAttachmentRequest{
		TaskID:   taskID,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		Content:  src,
	}
	if memberID, ok := memberIDFromContext(c); ok {
		req.UploadedBy = &memberID
	}

	attachment, err := h.commentService.AddAttachment(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		if errors.Is(err, entities.ErrMemberNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown member")
		}
		h.logger.Errorw("Add attachment failed", "error", err, "task_id", taskID)
		return err
	}

	return c.JSON(http.StatusCreated, attachment)
}

// DeleteAttachment removes an attachment and its stored file
func (h *TaskHandler) DeleteAttachment(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteAttachment(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrAttachmentNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Attachment not found")
		}
		h.logger.Errorw("Delete attachment failed", "error", err, "attachment_id", id)
		return err
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Attachment deleted"})
}

// parseIDParam reads the :id route parameter.
func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// memberIDFromContext reads the identity the member middleware resolved.
func memberIDFromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get("member_id").(int64)
	return id, ok
}

// isValidationError reports whether err names a bad reference or value in
// the request body, as opposed to a missing operation subject.
func isValidationError(err error) bool {
	return errors.Is(err, entities.ErrDueDateInPast) ||
		errors.Is(err, entities.ErrPriorityLevelRange) ||
		errors.Is(err, entities.ErrCategoryNotFound) ||
		errors.Is(err, entities.ErrMemberNotFound) ||
		errors.Is(err, entities.ErrStatusNotFound) ||
		errors.Is(err, entities.ErrPriorityNotFound)
}
