package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"bloghub/internal/apperror"
)

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidation("invalid request", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}
