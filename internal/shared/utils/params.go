package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/corporatewarfare/cwbot/internal/shared/errors"
)

// ParseSnowflakeParam reads a Discord id from a URL path parameter.
// entityName is used in error messages (e.g., "guild").
func ParseSnowflakeParam(c *gin.Context, paramName, entityName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}
	if !IsSnowflake(value) {
		return "", errors.NewValidationError("invalid " + entityName + " ID format")
	}
	return value, nil
}

// IsSnowflake reports whether s looks like a Discord snowflake: 17 to 20
// decimal digits.
func IsSnowflake(s string) bool {
	if len(s) < 17 || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
