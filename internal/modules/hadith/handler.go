package hadith

import (
	"net/http"

	"hadithapi/internal/middleware"
	"hadithapi/internal/pkg/apperror"
	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/pkg/request"
	"hadithapi/internal/pkg/response"
	"hadithapi/internal/selection"

	"github.com/gin-gonic/gin"
)

var errInvalidQuery = apperror.Validation("VALIDATION_ERROR", "Invalid query parameters")

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects OptionalAuth on the group so that is_favorite and
// exclude_favorites can see the caller.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	hadiths := v1.Group("/hadiths")
	{
		hadiths.GET("", h.List)
		hadiths.GET("/daily", h.Daily)
		hadiths.GET("/random", h.Random)
		hadiths.GET("/collection/:collection_id", h.ByCollection)
		hadiths.GET("/chapter/:chapter_id", h.ByChapter)
		hadiths.GET("/:id", h.Get)
	}
}

// List godoc
// @Summary		Поиск и фильтрация хадисов
// @Tags		Хадисы
// @Param		q				query	string	false	"Подстрока в тексте, рассказчике, коллекции или главе"
// @Param		collection_id	query	string	false	"ID коллекции"
// @Param		chapter_id		query	string	false	"ID главы"
// @Param		grade			query	string	false	"Sahih, Hasan, Da'if, Mawdu', Unknown"
// @Param		narrator		query	string	false	"Подстрока имени рассказчика"
// @Param		tags			query	[]string	false	"Все теги должны присутствовать"
// @Param		page			query	int		false	"Страница"
// @Param		page_size		query	int		false	"Размер страницы (1..100)"
// @Success		200	{object}	map[string]interface{}
// @Failure		422	{object}	map[string]interface{}
// @Router		/hadiths [GET]
func (h *Handler) List(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, errInvalidQuery.WithDetails(map[string]string{"query": err.Error()}))
		return
	}
	q.Tags = request.Strings(c, "tags")

	items, meta, err := h.service.List(c.Request.Context(), q, p, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// Daily godoc
// @Summary		Хадис дня
// @Description	Один и тот же хадис для одной и той же даты. Без даты берётся сегодняшняя.
// @Tags		Хадисы
// @Param		date_param	query	string	false	"YYYY-MM-DD"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"Неверный формат даты"
// @Failure		404	{object}	map[string]interface{}	"Нет подходящих хадисов"
// @Router		/hadiths/daily [GET]
func (h *Handler) Daily(c *gin.Context) {
	item, day, err := h.service.Daily(c.Request.Context(), c.Query("date_param"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Daily hadith retrieved successfully",
		"data":    item,
		"date":    day.Format(selection.DateLayout),
	})
}

// Random godoc
// @Summary		Случайный хадис
// @Tags		Хадисы
// @Param		collection_id		query	string	false	"ID коллекции"
// @Param		grade				query	string	false	"Степень достоверности"
// @Param		exclude_favorites	query	bool	false	"Исключить избранное (нужна авторизация)"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/hadiths/random [GET]
func (h *Handler) Random(c *gin.Context) {
	var q RandomQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, errInvalidQuery.WithDetails(map[string]string{"query": err.Error()}))
		return
	}
	exclude, err := request.Bool(c, "exclude_favorites")
	if err != nil {
		response.Fail(c, err)
		return
	}
	q.ExcludeFavorites = exclude

	item, err := h.service.Random(c.Request.Context(), q, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Random hadith retrieved successfully", item)
}

// Get godoc
// @Summary		Хадис по ID
// @Tags		Хадисы
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/hadiths/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// ByCollection godoc
// @Summary		Хадисы коллекции
// @Tags		Хадисы
// @Param		grade	query	string	false	"Степень достоверности"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/hadiths/collection/{collection_id} [GET]
func (h *Handler) ByCollection(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items, meta, err := h.service.ByCollection(c.Request.Context(), c.Param("collection_id"), c.Query("grade"), p, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// ByChapter godoc
// @Summary		Хадисы главы
// @Tags		Хадисы
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/hadiths/chapter/{chapter_id} [GET]
func (h *Handler) ByChapter(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items, meta, err := h.service.ByChapter(c.Request.Context(), c.Param("chapter_id"), p, middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}
