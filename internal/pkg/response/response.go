package response

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"

	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func SuccessWithMessage(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Message is used by endpoints that acknowledge an action without a payload.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
	})
}

func Paginated(c *gin.Context, data interface{}, meta pagination.Meta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"message":    message,
		"error_code": code,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"message":    message,
		"error_code": code,
		"details":    details,
	})
}

var errUnavailable = apperror.Unavailable("SERVICE_UNAVAILABLE", "Service temporarily unavailable")

// Fail renders err. Module errors carry their own status; store connection
// failures become 503; everything else is hidden behind a 500. Unexpected
// errors are attached to the gin context for middleware.ErrorLogger.
func Fail(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		if appErr.Details != nil {
			ErrorWithDetails(c, appErr.Status(), appErr.Code, appErr.Message, appErr.Details)
			return
		}
		Error(c, appErr.Status(), appErr.Code, appErr.Message)
		return
	}

	_ = c.Error(err)

	if isUnavailable(err) {
		Error(c, errUnavailable.Status(), errUnavailable.Code, errUnavailable.Message)
		return
	}

	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connErr):
		return true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}
