package auth

import (
	"net/http"

	"hadithapi/internal/middleware"
	"hadithapi/internal/pkg/request"
	"hadithapi/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	ttl     int64
}

// NewHandler creates a new auth handler with injected service
func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		ttl:     int64(service.jwt.TTL().Seconds()),
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes expects JWTAuth and ActiveUser on the group.
func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.GetMe)
		authGroup.PUT("/me", h.UpdateMe)
		authGroup.POST("/refresh", h.Refresh)
	}
}

// Signup регистрирует нового пользователя и сразу выдаёт токен.
// @Summary		Регистрация
// @Tags		Аутентификация
// @Param		request	body	SignupRequest	true	"email, password (min 8), full_name"
// @Success		201	{object}	map[string]interface{}	"Токен и профиль"
// @Failure		400	{object}	map[string]interface{}	"Email уже зарегистрирован"
// @Failure		422	{object}	map[string]interface{}	"Ошибка валидации"
// @Router		/auth/signup [POST]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusCreated, "User registered successfully", h.tokenResponse(res))
}

// Login авторизует пользователя по email и паролю.
// @Summary		Вход
// @Tags		Аутентификация
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}	"Токен и профиль"
// @Failure		401	{object}	map[string]interface{}	"Неверный email или пароль"
// @Failure		403	{object}	map[string]interface{}	"Аккаунт деактивирован"
// @Failure		422	{object}	map[string]interface{}	"Ошибка валидации"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, http.StatusOK, "Login successful", h.tokenResponse(res))
}

// GetMe возвращает профиль текущего пользователя.
// @Summary		Текущий пользователь
// @Tags		Аутентификация
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/me [GET]
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserPublic(user))
}

// UpdateMe меняет имя и/или пароль.
// @Summary		Обновить профиль
// @Tags		Аутентификация
// @Security	BearerAuth
// @Param		request	body	UpdateProfileRequest	true	"full_name, password"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"Нечего обновлять"
// @Router		/auth/me [PUT]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Profile updated successfully", toUserPublic(user))
}

// Refresh выдаёт новый access token.
// @Summary		Обновить токен
// @Tags		Аутентификация
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/refresh [POST]
func (h *Handler) Refresh(c *gin.Context) {
	res, err := h.service.Refresh(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Token refreshed", h.tokenResponse(res))
}

func (h *Handler) tokenResponse(res *AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		ExpiresIn:   h.ttl,
		User:        toUserPublic(res.User),
	}
}
