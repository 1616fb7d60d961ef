package handler

import (
	"fmt"
	"net/http"

	"taskboard/internal/services"
	"taskboard/internal/transport/httpdto"
	taskboard_errors "taskboard/pkg/errors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(c *gin.Context) {
	items, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUserSlice(items)))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	u, found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if !found {
		_ = c.Error(fmt.Errorf("%w: %s", taskboard_errors.ErrUserNotFound, id))
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUser(u)))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req httpdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformed(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToUser())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.FromUser(created)))
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req httpdto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(malformed(err))
		return
	}
	if req.ID != nil && *req.ID != id {
		_ = c.Error(fmt.Errorf("%w: body id does not match path id", taskboard_errors.ErrMalformedRequest))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.ToUser())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.FromUser(updated)))
}

func (h *UserHandler) Delete(c *gin.Context) {
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

func (h *UserHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}
