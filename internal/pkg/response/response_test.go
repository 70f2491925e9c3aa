package response

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/x", nil)
	h(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestPaginated(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 1, PageSize: 2}, 3)
	w, body := run(t, func(c *gin.Context) { Paginated(c, []string{"a", "b"}, meta) })

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	m := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), m["total_pages"])
	assert.Equal(t, true, m["has_next"])
	assert.Equal(t, false, m["has_prev"])
}

func TestFail_AppError(t *testing.T) {
	err := fmt.Errorf("get: %w", apperror.NotFound("HADITH_NOT_FOUND", "Hadith not found"))
	w, body := run(t, func(c *gin.Context) { Fail(c, err) })

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Hadith not found", body["message"])
	assert.Equal(t, "HADITH_NOT_FOUND", body["error_code"])
	assert.NotContains(t, body, "details")
}

func TestFail_Details(t *testing.T) {
	err := pagination.ErrInvalidParams.WithDetails(map[string]string{"page_size": "max"})
	w, body := run(t, func(c *gin.Context) { Fail(c, err) })

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, map[string]any{"page_size": "max"}, body["details"])
}

func TestFail_Internal(t *testing.T) {
	w, body := run(t, func(c *gin.Context) { Fail(c, errors.New("boom: secret dsn")) })

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestFail_StoreUnavailable(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("list hadiths: %w", driver.ErrBadConn),
		fmt.Errorf("count: %w", sql.ErrConnDone),
	} {
		w, body := run(t, func(c *gin.Context) { Fail(c, err) })

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, err.Error())
		assert.Equal(t, "SERVICE_UNAVAILABLE", body["error_code"])
		assert.Equal(t, "Service temporarily unavailable", body["message"])
	}
}
