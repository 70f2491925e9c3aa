package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:   http.StatusBadRequest,
		KindValidation:   http.StatusUnprocessableEntity,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindUnavailable:  http.StatusServiceUnavailable,
		KindInternal:     http.StatusInternalServerError,
	}

	for kind, want := range cases {
		assert.Equal(t, want, New(kind, "X", "x").Status())
	}
}

func TestWithDetailsKeepsIdentity(t *testing.T) {
	sentinel := Validation("VALIDATION_ERROR", "Invalid query parameters")
	withDetails := sentinel.WithDetails(map[string]string{"page_size": "max"})

	assert.Nil(t, sentinel.Details)
	assert.True(t, errors.Is(withDetails, sentinel))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", withDetails), sentinel))
	assert.False(t, errors.Is(withDetails, NotFound("NOT_FOUND", "nope")))
}

func TestAsAndIsKind(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("HADITH_NOT_FOUND", "Hadith not found"))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "HADITH_NOT_FOUND", appErr.Code)
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
