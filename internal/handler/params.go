package handler

import (
	"fmt"

	taskboard_errors "taskboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pathID(c *gin.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", taskboard_errors.ErrMalformedRequest, raw)
	}
	return id, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", taskboard_errors.ErrMalformedRequest, err)
}
