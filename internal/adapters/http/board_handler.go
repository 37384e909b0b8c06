package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// BoardHandler serves the filtered task list, the kanban grouping and the
// dashboard
type BoardHandler struct {
	boardService     ports.BoardService
	dashboardService ports.DashboardService
	logger           *logger.Logger
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService ports.BoardService, dashboardService ports.DashboardService, logger *logger.Logger) *BoardHandler {
	return &BoardHandler{
		boardService:     boardService,
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// BoardResponse is the grouped task list for kanban display.
type BoardResponse struct {
	Columns []ports.StatusColumn `json:"columns"`
}

// ListTasks serves the flat filtered list; group_by=status switches to the
// kanban column layout over the same filter.
func (h *BoardHandler) ListTasks(c echo.Context) error {
	values := c.QueryParams()
	filter := ParseTaskFilter(values, time.Now())

	if values.Get("group_by") == "status" {
		columns, err := h.boardService.Board(c.Request().Context(), filter)
		if err != nil {
			h.logger.Errorw("Board grouping failed", "error", err)
			return err
		}
		return c.JSON(http.StatusOK, BoardResponse{Columns: columns})
	}

	filter.Page = parsePage(values)

	page, err := h.boardService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List tasks failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// Dashboard serves the aggregate payload
func (h *BoardHandler) Dashboard(c echo.Context) error {
	summary, err := h.dashboardService.Summary(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Dashboard summary failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
