package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseUUIDParam parses a named uuid path parameter
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// equalFold is a case-insensitive string compare for email matching
func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
