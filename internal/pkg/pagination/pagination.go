// Package pagination holds the page/page_size contract shared by every list
// endpoint: bounds checking, offset arithmetic and the meta block.
package pagination

import (
	"math"

	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var ErrInvalidParams = apperror.Validation("VALIDATION_ERROR", "Invalid pagination parameters")

type Params struct {
	Page     int `form:"page,default=1" json:"page" validate:"min=1"`
	PageSize int `form:"page_size,default=20" json:"page_size" validate:"min=1,max=100"`
}

type Meta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// New returns validated params or ErrInvalidParams with per-field details.
func New(page, pageSize int) (Params, error) {
	p := Params{Page: page, PageSize: pageSize}
	if errs := validator.Validate(p); errs != nil {
		return Params{}, ErrInvalidParams.WithDetails(errs)
	}
	// offset must fit in int
	if page-1 > math.MaxInt/pageSize {
		return Params{}, ErrInvalidParams.WithDetails(map[string]string{"page": "too large"})
	}
	return p, nil
}

// FromQuery binds page and page_size from the query string. Missing values
// fall back to the defaults; anything out of range is rejected before the
// caller touches the store.
func FromQuery(c *gin.Context) (Params, error) {
	var p Params
	if err := c.ShouldBindQuery(&p); err != nil {
		return Params{}, ErrInvalidParams.WithDetails(map[string]string{"query": err.Error()})
	}
	return New(p.Page, p.PageSize)
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Params) Limit() int {
	return p.PageSize
}

func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
}
