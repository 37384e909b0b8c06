package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// LookupHandler handles CRUD for categories, members, priorities and statuses
type LookupHandler struct {
	lookupService ports.LookupService
	logger        *logger.Logger
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookupService ports.LookupService, logger *logger.Logger) *LookupHandler {
	return &LookupHandler{
		lookupService: lookupService,
		logger:        logger,
	}
}

// Categories

func (h *LookupHandler) ListCategories(c echo.Context) error {
	categories, err := h.lookupService.ListCategories(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List categories failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *LookupHandler) CreateCategory(c echo.Context) error {
	var req ports.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.lookupService.CreateCategory(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create category failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *LookupHandler) UpdateCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.lookupService.UpdateCategory(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		h.logger.Errorw("Update category failed", "error", err, "category_id", id)
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *LookupHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.lookupService.DeleteCategory(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrCategoryNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Category not found")
		}
		h.logger.Errorw("Delete category failed", "error", err, "category_id", id)
		return err
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Category deleted"})
}

// Members

func (h *LookupHandler) ListMembers(c echo.Context) error {
	members, err := h.lookupService.ListMembers(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List members failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, members)
}

func (h *LookupHandler) CreateMember(c echo.Context) error {
	var req ports.MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.lookupService.CreateMember(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create member failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

func (h *LookupHandler) UpdateMember(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.MemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := h.lookupService.UpdateMember(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrMemberNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Member not found")
		}
		h.logger.Errorw("Update member failed", "error", err, "member_id", id)
		return err
	}
	return c.JSON(http.StatusOK, member)
}

func (h *LookupHandler) DeleteMember(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.lookupService.DeleteMember(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrMemberNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Member not found")
		}
		h.logger.Errorw("Delete member failed", "error", err, "member_id", id)
		return err
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Member deleted"})
}

// Priorities

func (h *LookupHandler) ListPriorities(c echo.Context) error {
	priorities, err := h.lookupService.ListPriorities(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List priorities failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, priorities)
}

func (h *LookupHandler) CreatePriority(c echo.Context) error {
	var req ports.PriorityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	priority, err := h.lookupService.CreatePriority(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrPriorityLevelRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("Create priority failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, priority)
}

func (h *LookupHandler) UpdatePriority(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.PriorityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	priority, err := h.lookupService.UpdatePriority(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrPriorityNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Priority not found")
		}
		if errors.Is(err, entities.ErrPriorityLevelRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Errorw("Update priority failed", "error", err, "priority_id", id)
		return err
	}
	return c.JSON(http.StatusOK, priority)
}

func (h *LookupHandler) DeletePriority(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.lookupService.DeletePriority(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrPriorityNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Priority not found")
		}
		h.logger.Errorw("Delete priority failed", "error", err, "priority_id", id)
		return err
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Priority deleted"})
}

// Statuses

func (h *LookupHandler) ListStatuses(c echo.Context) error {
	statuses, err := h.lookupService.ListStatuses(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List statuses failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

func (h *LookupHandler) CreateStatus(c echo.Context) error {
	var req ports.StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.lookupService.CreateStatus(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create status failed", "error", err)
		return err
	}
	return c.JSON(http.StatusCreated, status)
}

func (h *LookupHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status, err := h.lookupService.UpdateStatus(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrStatusNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Status not found")
		}
		h.logger.Errorw("Update status failed", "error", err, "status_id", id)
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *LookupHandler) DeleteStatus(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.lookupService.DeleteStatus(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrStatusNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Status not found")
		}
		h.logger.Errorw("Delete status failed", "error", err, "status_id", id)
		return err
	}
	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Status deleted"})
}
