package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-store/internal/models"
	"github.com/adanyl0v/go-task-store/internal/services"
)

const (
	msgTaskCreated  = "task created successfully"
	msgTaskUpdated  = "task updated successfully"
	msgTaskDeleted  = "task deleted successfully"
	msgTaskNotFound = "task not found"
)

type getTaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// listTaskResponse is the element shape of the list endpoints,
// which do not expose updated_at.
type listTaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

func newListTaskResponse(tasks []*models.Task) []listTaskResponse {
	response := make([]listTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = listTaskResponse{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			CreatedAt:   task.CreatedAt,
		}
	}
	return response
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Debug().
		Int("count", len(tasks)).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, newListTaskResponse(tasks))
}

func (h *handlerImpl) HandleGetTasksByStatus(c *gin.Context) {
	status := c.Param("status")

	tasks, err := h.tasks.ListTasksByStatus(c.Request.Context(), status)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("status", status).
			Msg("failed to list tasks by status")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Debug().
		Int("count", len(tasks)).
		Str("status", status).
		Msg("fetched tasks by status")
	c.JSON(http.StatusOK, newListTaskResponse(tasks))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.abortTaskError(c, err, taskID, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

type createTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

type createTaskResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, services.ErrTaskTitleRequired) {
			abort(c, newBadRequestError(services.ErrTaskTitleRequired.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, createTaskResponse{
		Message: msgTaskCreated,
		ID:      task.ID,
	})
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	// An explicit empty title is stored as is; only creation enforces it.
	_, err = h.tasks.UpdateTask(c.Request.Context(), services.UpdateTaskParams{
		ID:          taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		h.abortTaskError(c, err, taskID, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskUpdated})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c.Request.Context(), taskID)
	if err != nil {
		h.abortTaskError(c, err, taskID, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

// taskIDParam parses the :id path parameter. Anything that is not a
// positive integer cannot name a task, so it is answered like an absent id.
func (h *handlerImpl) taskIDParam(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	taskID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || taskID < 1 {
		h.logger.Debug().
			Str("id", raw).
			Msg("invalid task id")
		abort(c, newNotFoundError(msgTaskNotFound))
		return 0, false
	}
	return taskID, true
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error, taskID int64, msg string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		abort(c, newNotFoundError(msgTaskNotFound))
		return
	}

	h.logger.Error().
		Err(err).
		Int64("task_id", taskID).
		Msg(msg)
	abort(c, newStatusTextError(http.StatusInternalServerError))
}
