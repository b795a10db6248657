package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"taskdeck/config"
	"taskdeck/internal/delivery/http/response"
	"taskdeck/internal/usecase"
)

const defaultListTake = 20

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc        usecase.TaskUsecase
	takeLimit int
	logger    *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, cfg *config.Config, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:        uc,
		takeLimit: cfg.Tasks.ListTakeLimit,
		logger:    logger,
	}
}

// Create handles the task creation request.
func (h *TaskHandler) Create(c echo.Context) error {
	var input *usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	// The binder leaves input nil for an empty or null body.
	if input == nil {
		return response.BadRequest(c, "INVALID_INPUT", "Request body is required")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	task, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, task, "Task created")
}

// GetByID handles the single task lookup request.
func (h *TaskHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Id must be an integer")
	}

	task, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, task, "")
}

// List handles the windowed task listing request. The userId query parameter
// is required; skip and take fall back to sane defaults when absent.
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return response.BadRequest(c, "INVALID_INPUT", "UserId must be a positive integer")
	}

	skip := 0
	if raw := c.QueryParam("skip"); raw != "" {
		skip, err = strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return response.BadRequest(c, "INVALID_INPUT", "Skip must be a non-negative integer")
		}
	}

	take := defaultListTake
	if raw := c.QueryParam("take"); raw != "" {
		take, err = strconv.Atoi(raw)
		if err != nil || take < 1 || take > h.takeLimit {
			return response.BadRequest(c, "INVALID_INPUT",
				"Take must be between 1 and "+strconv.Itoa(h.takeLimit))
		}
	}

	tasks, err := h.uc.List(c.Request().Context(), userID, skip, take)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tasks, "")
}

// Update handles the task update request. The route id must match the body id
// when the body carries one.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Id must be an integer")
	}

	var input *usecase.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if input == nil {
		return response.BadRequest(c, "INVALID_INPUT", "Request body is required")
	}
	if input.ID != 0 && input.ID != id {
		return response.BadRequest(c, "INVALID_INPUT", "Route id and body id do not match")
	}
	input.ID = id
	if err := c.Validate(input); err != nil {
		return err
	}

	if err := h.uc.Update(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Task updated")
}

// Delete handles the task deletion request.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Id must be an integer")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Task deleted")
}
