package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// BoardHandler handles board endpoints.
type BoardHandler struct {
	svc service.BoardService
}

// NewBoardHandler creates a handler layer.
func NewBoardHandler(svc service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// CreateBoardRequest represents a board creation request.
type CreateBoardRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateBoardRequest represents a partial board update.
type UpdateBoardRequest struct {
	Name *string `json:"name,omitempty"`
}

// BoardWithTasksResponse is a board together with all of its tasks.
type BoardWithTasksResponse struct {
	model.Board
	Tasks []model.Task `json:"tasks"`
}

// ListBoards godoc
// @Summary List the user's boards with task counts
// @Tags boards
// @Produce json
// @Success 200 {array} model.BoardWithCount
// @Failure 401 {object} errors.ErrorResponse
// @Router /boards [get]
func (h *BoardHandler) ListBoards(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	boards, err := h.svc.ListBoards(c.Request().Context(), user.ID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, boards)
}

// GetBoard godoc
// @Summary Get a board and its tasks
// @Tags boards
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} BoardWithTasksResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [get]
func (h *BoardHandler) GetBoard(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	board, tasks, err := h.svc.GetBoard(c.Request().Context(), uint(id), user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, BoardWithTasksResponse{
		Board: *board,
		Tasks: tasks,
	})
}

// CreateBoard godoc
// @Summary Create a board
// @Tags boards
// @Accept json
// @Produce json
// @Param request body CreateBoardRequest true "Board data"
// @Success 201 {object} model.Board
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /boards [post]
func (h *BoardHandler) CreateBoard(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	board, err := h.svc.CreateBoard(c.Request().Context(), user.ID, req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, board)
}

// UpdateBoard godoc
// @Summary Update a board
// @Tags boards
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body UpdateBoardRequest true "Fields to update"
// @Success 200 {object} model.Board
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [put]
func (h *BoardHandler) UpdateBoard(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req UpdateBoardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	board, err := h.svc.UpdateBoard(c.Request().Context(), uint(id), user.ID, req.Name)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, board)
}

// DeleteBoard godoc
// @Summary Delete a board and, via cascade, its tasks
// @Tags boards
// @Param id path int true "Board ID"
// @Success 204 "no content"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /boards/{id} [delete]
func (h *BoardHandler) DeleteBoard(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.svc.DeleteBoard(c.Request().Context(), uint(id), user.ID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
