package handler

import (
	"fmt"
	"net/http"

	"taskboard/internal/domain/task"
	"taskboard/internal/services"
	"taskboard/internal/transport/httpdto"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks with optional status and assignee filters.
func (h *TaskHandler) List(c *gin.Context) {
	var filter services.TaskFilter
	if raw := c.Query("status"); raw != "" {
		status, err := task.ParseStatus(raw)
		if err != nil {
			_ = c.Error(malformed(err))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("assignee"); raw != "" {
		assignee, err := uuid.Parse(raw)
		if err != nil {
			_ = c.Error(fmt.Errorf("%w: invalid assignee %q", taskboard_errors.ErrMalformedRequest, raw))
			return
		}
		filter.Assignee = &assignee
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromTaskSlice(items)))
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	t, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !found {
		_ = c.Error(fmt.Errorf("%w: %s", taskboard_errors.ErrTaskNotFound, id))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromTask(t)))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req httpdto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformed(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToTask())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromTask(created)))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req httpdto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformed(err))
		return
	}
	if req.ID != nil && *req.ID != id {
		_ = c.Error(fmt.Errorf("%w: body id does not match path id", taskboard_errors.ErrMalformedRequest))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.ToTask())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromTask(updated)))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Clear handles DELETE /api/tasks.
func (h *TaskHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
