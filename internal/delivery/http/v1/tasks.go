package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/api/internal/models"
	"github.com/taskboard/api/internal/stores"
)

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AssignedTo  string    `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		AssignedTo:  task.AssignedTo,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind create task request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	// The assignee is taken as given; whether it names an existing
	// user is not checked here or in the store.
	task, err := h.tasks.CreateTask(c, stores.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		h.abortInternal(c, err)
		return
	}

	if claims, ok := claimsFromContext(c); ok {
		h.logger.Info().
			Str("task_id", task.ID).
			Str("actor", claims.UserID).
			Str("assigned_to", task.AssignedTo).
			Msg("task created")
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.tasks.FindTaskByID(c, id)
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrTaskNotFound):
			abort(c, newNotFoundError(stores.ErrTaskNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", id).
				Msg("failed to get task")
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	assignedTo := c.Query("assignedTo")
	if assignedTo == "" {
		h.logger.Warn().Msg("assignedTo query parameter missing")
		abort(c, newBadRequestError("assignedTo parameter required"))
		return
	}

	tasks, err := h.tasks.FindTasksByAssignee(c, assignedTo)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("assigned_to", assignedTo).
			Msg("failed to list tasks")
		h.abortInternal(c, err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, newTaskResponse(task))
	}
	c.JSON(http.StatusOK, resp)
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id := c.Param("id")

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind update task request")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, stores.UpdateTaskParams{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, stores.ErrTaskNotFound):
			abort(c, newNotFoundError(stores.ErrTaskNotFound.Error()))
		default:
			h.logger.Error().
				Err(err).
				Str("task_id", id).
				Msg("failed to update task")
			h.abortInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id := c.Param("id")

	err := h.tasks.DeleteTask(c, id)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		h.abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "task deleted"})
}
