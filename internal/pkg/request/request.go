// Package request binds and validates incoming request data.
package request

import (
	"strconv"
	"strings"

	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

var ErrInvalidBody = apperror.Validation("VALIDATION_ERROR", "Invalid request body")

// BindJSON decodes the body into dst and runs struct validation on it.
// Both failures are reported as 422 with per-field details when known.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return ErrInvalidBody.WithDetails(map[string]string{"body": err.Error()})
	}
	if errs := validator.Validate(dst); errs != nil {
		return ErrInvalidBody.WithDetails(errs)
	}
	return nil
}

// Strings collects a query parameter given either repeated (?tags=a&tags=b)
// or comma-separated (?tags=a,b). Empty items are dropped.
func Strings(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// Bool parses an optional boolean query parameter.
func Bool(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.Validation("VALIDATION_ERROR", "Invalid query parameter").
			WithDetails(map[string]string{key: "bool"})
	}
	return v, nil
}

// Int64Param parses a positive integer path parameter.
func Int64Param(c *gin.Context, key string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil || v <= 0 {
		return 0, apperror.Validation("VALIDATION_ERROR", "Invalid path parameter").
			WithDetails(map[string]string{key: "int"})
	}
	return v, nil
}
