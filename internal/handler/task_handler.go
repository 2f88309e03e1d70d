package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskapi/internal/auth"
	"taskapi/internal/errors"
	"taskapi/internal/model"
	"taskapi/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status"`
}

// UpdateTaskRequest represents a task update. Absent fields keep their
// stored values; present fields replace them.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status"`
}

// CreateTask godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/ [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), user, req.Title, req.Description, model.TaskStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, task)
}

// ListTasks godoc
// @Summary List all tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Records to skip"
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/ [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	skip, limit := pageParams(c)

	tasks, err := h.taskService.ListTasks(c.Request().Context(), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListUserTasks godoc
// @Summary List tasks owned by a user
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/user/{user_id}/ [get]
func (h *TaskHandler) ListUserTasks(c echo.Context) error {
	userID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	skip, limit := pageParams(c)

	tasks, err := h.taskService.ListUserTasks(c.Request().Context(), uint(userID), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task (owner only)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to update"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), user, uint(id), update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task (owner only)
// @Tags tasks
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), user, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// CompleteTask godoc
// @Summary Mark a task as completed (owner only)
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/complete/ [patch]
func (h *TaskHandler) CompleteTask(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return unauthenticated(c)
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	task, err := h.taskService.CompleteTask(c.Request().Context(), user, uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, task)
}

// FilterTasksByStatus godoc
// @Summary Filter tasks by status
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status path string true "Task status" Enums(New, In Progress, Completed)
// @Param user_id query int false "Restrict to one owner"
// @Param skip query int false "Records to skip"
// @Param limit query int false "Maximum records to return"
// @Success 200 {array} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/status/{status}/ [get]
func (h *TaskHandler) FilterTasksByStatus(c echo.Context) error {
	raw := c.Param("status")
	// "In Progress" arrives percent-encoded in the path
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	status := model.TaskStatus(raw)
	skip, limit := pageParams(c)

	var ownerID uint
	if v := c.QueryParam("user_id"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
		}
		ownerID = uint(parsed)
	}

	tasks, err := h.taskService.FilterTasksByStatus(c.Request().Context(), status, ownerID, skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tasks)
}

// unauthenticated rejects a request whose context carries no resolved user.
func unauthenticated(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: errors.ErrUnauthenticated.Error(),
		Code:  "UNAUTHENTICATED",
	})
}
