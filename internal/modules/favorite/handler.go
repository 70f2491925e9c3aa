package favorite

import (
	"net/http"

	"hadithapi/internal/middleware"
	"hadithapi/internal/pkg/pagination"
	"hadithapi/internal/pkg/request"
	"hadithapi/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler обрабатывает HTTP запросы для избранного
type Handler struct {
	service *Service
}

// NewHandler создаёт новый handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes регистрирует routes для избранного.
// Группа должна быть защищена JWTAuth и ActiveUser.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", h.Add)
		favorites.GET("/:id", h.Get)
		favorites.PUT("/:id", h.UpdateNotes)
		favorites.DELETE("/:id", h.Remove)
		favorites.POST("/hadith/:hadith_id", h.Toggle)
		favorites.DELETE("/hadith/:hadith_id", h.RemoveByHadith)
	}
}

// List возвращает избранные хадисы текущего пользователя
//
// @Summary Список избранного
// @Tags Favorite
// @Security BearerAuth
// @Param collection_id query string false "Фильтр по коллекции"
// @Param page query int false "Номер страницы" default(1)
// @Param page_size query int false "Элементов на страницу" default(20)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Пользователь не авторизован"
// @Router /favorites [get]
func (h *Handler) List(c *gin.Context) {
	p, err := pagination.FromQuery(c)
	if err != nil {
		response.Fail(c, err)
		return
	}

	items, meta, err := h.service.List(c.Request.Context(), middleware.UserID(c), c.Query("collection_id"), p)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Paginated(c, items, meta)
}

// Add добавляет хадис в избранное
//
// @Summary Добавить в избранное
// @Tags Favorite
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "hadith_id и заметка"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Хадис не найден"
// @Failure 409 {object} map[string]interface{} "Уже в избранном"
// @Router /favorites [post]
func (h *Handler) Add(c *gin.Context) {
	var req AddFavoriteRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	fav, err := h.service.Add(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Hadith added to favorites", fav)
}

// Get возвращает одну запись избранного
//
// @Summary Запись избранного
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /favorites/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	fav, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, fav)
}

// UpdateNotes обновляет заметку
//
// @Summary Обновить заметку
// @Tags Favorite
// @Security BearerAuth
// @Param request body UpdateNotesRequest true "notes"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /favorites/{id} [put]
func (h *Handler) UpdateNotes(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}
	var req UpdateNotesRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	fav, err := h.service.UpdateNotes(c.Request.Context(), middleware.UserID(c), id, req.Notes)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Favorite updated successfully", fav)
}

// Remove удаляет запись избранного по её ID
//
// @Summary Удалить из избранного
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /favorites/{id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	id, err := request.Int64Param(c, "id")
	if err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Favorite removed successfully")
}

// Toggle добавляет хадис, если его нет в избранном, иначе удаляет
//
// @Summary Переключить избранное
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {object} ToggleResponse
// @Failure 404 {object} map[string]interface{} "Хадис не найден"
// @Router /favorites/hadith/{hadith_id} [post]
func (h *Handler) Toggle(c *gin.Context) {
	res, err := h.service.Toggle(c.Request.Context(), middleware.UserID(c), c.Param("hadith_id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	msg := "Hadith removed from favorites"
	if res.IsFavorite {
		msg = "Hadith added to favorites"
	}
	response.SuccessWithMessage(c, http.StatusOK, msg, res)
}

// RemoveByHadith удаляет хадис из избранного
//
// @Summary Удалить хадис из избранного
// @Tags Favorite
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Хадиса нет в избранном"
// @Router /favorites/hadith/{hadith_id} [delete]
func (h *Handler) RemoveByHadith(c *gin.Context) {
	if err := h.service.RemoveByHadith(c.Request.Context(), middleware.UserID(c), c.Param("hadith_id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Hadith removed from favorites")
}
