package collection

import (
	"net/http"

	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	collections := v1.Group("/collections")
	{
		collections.GET("", h.List)
		collections.GET("/:id", h.Get)
		collections.GET("/:id/chapters", h.ListChapters)
		collections.GET("/:id/chapters/:chapter_id", h.GetChapter)
	}
}

// List godoc
// @Summary		Список коллекций
// @Tags		Коллекции
// @Param		page		query	int	false	"Страница (>=1)"
// @Param		page_size	query	int	false	"Размер страницы (1..100)"
// @Success		200	{object}	map[string]interface{}
// @Failure		422	{object}	map[string]interface{}
// @Router		/collections [GET]
func (h *Handler) List(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items, meta, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// Get godoc
// @Summary		Коллекция по ID
// @Tags		Коллекции
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/collections/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	col, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, col)
}

// ListChapters godoc
// @Summary		Главы коллекции
// @Tags		Коллекции
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/collections/{id}/chapters [GET]
func (h *Handler) ListChapters(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items, meta, err := h.service.ListChapters(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// GetChapter godoc
// @Summary		Глава коллекции
// @Tags		Коллекции
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/collections/{id}/chapters/{chapter_id} [GET]
func (h *Handler) GetChapter(c *gin.Context) {
	ch, err := h.service.GetChapter(c.Request.Context(), c.Param("id"), c.Param("chapter_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, ch)
}
