// Package server assembles repositories, services and handlers into the
// gin engine served by cmd/api.
package server

import (
	"log/slog"
	"net/http"

	"hadithapi/internal/config"
	"hadithapi/internal/database"
	"hadithapi/internal/middleware"
	"hadithapi/internal/modules/auth"
	"hadithapi/internal/modules/collection"
	"hadithapi/internal/modules/favorite"
	"hadithapi/internal/modules/hadith"
	"hadithapi/internal/pkg/jwt"
	"hadithapi/internal/pkg/response"
	"hadithapi/internal/repository"
	"hadithapi/internal/selection"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

func NewRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	hadithRepo := repository.NewHadithRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	tokens := jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	engine := selection.NewEngine(hadithRepo, selection.WithDailyHasan(cfg.Daily.IncludeHasan))

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens, cfg.Auth.BcryptCost))
	collectionHandler := collection.NewHandler(collection.NewService(collectionRepo, chapterRepo))
	hadithHandler := hadith.NewHandler(hadith.NewService(engine, hadithRepo, collectionRepo, chapterRepo, cfg.Daily.Location))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, hadithRepo))

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("", info)
		v1.GET("/", info)
		v1.GET("/health", health(db))

		collectionHandler.RegisterRoutes(v1)
		authHandler.RegisterPublicRoutes(v1)

		public := v1.Group("")
		public.Use(middleware.OptionalAuth(tokens))
		hadithHandler.RegisterRoutes(public)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens), middleware.ActiveUser(userRepo))
		authHandler.RegisterProtectedRoutes(protected)
		favoriteHandler.RegisterRoutes(protected)
	}

	return r
}

func info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Hadith API",
		"data": gin.H{
			"name":    "Hadith API",
			"version": apiVersion,
			"endpoints": gin.H{
				"collections": "/api/v1/collections",
				"hadiths":     "/api/v1/hadiths",
				"daily":       "/api/v1/hadiths/daily",
				"random":      "/api/v1/hadiths/random",
				"auth":        "/api/v1/auth",
				"favorites":   "/api/v1/favorites",
			},
		},
	})
}

// health reports 503 when the database does not answer.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(db); err != nil {
			c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
