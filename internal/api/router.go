package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/handler"
	"github.com/famscout/activities-backend-go/internal/middleware"
	"github.com/famscout/activities-backend-go/internal/repository"
	"github.com/famscout/activities-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto the HTTP
// routes. Everything is constructed here and injected; no package-level
// service state.
func SetupRouter(cfg *config.Config, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(300, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Repositories
	activityRepo := repository.NewActivityRepository(db)
	childRepo := repository.NewChildRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	childService := service.NewChildService(childRepo)
	prefService := service.NewPreferenceService(prefRepo, childRepo, cfg)
	searchService := service.NewSearchService(activityRepo, favoriteRepo, prefService, cfg)
	favoriteService := service.NewFavoriteService(favoriteRepo, activityRepo)
	mapService := service.NewMapService(activityRepo, cfg)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(searchService)
	childHandler := handler.NewChildHandler(childService, prefService)
	prefHandler := handler.NewPreferenceHandler(prefService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	mapHandler := handler.NewMapHandler(mapService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Activities Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.Auth(cfg.JWTSecret))
		{
			activities := authed.Group("/activities")
			{
				activities.GET("", activityHandler.List)
				activities.GET("/search", activityHandler.ComposedSearch)
				activities.GET("/:id", activityHandler.GetByID)
			}

			authed.GET("/map/clusters", mapHandler.Clusters)

			children := authed.Group("/children")
			{
				children.GET("", childHandler.List)
				children.POST("", childHandler.Create)
				children.GET("/merged-filter", childHandler.MergedFilter)
				children.GET("/:id", childHandler.Get)
				children.PUT("/:id", childHandler.Update)
				children.DELETE("/:id", childHandler.Delete)
				children.GET("/:id/preferences", childHandler.GetPreferences)
				children.PUT("/:id/preferences", childHandler.SavePreferences)
			}

			authed.GET("/preferences", prefHandler.Get)
			authed.PUT("/preferences", prefHandler.Save)

			favorites := authed.Group("/favorites")
			{
				favorites.GET("", favoriteHandler.List)
				favorites.POST("", favoriteHandler.Add)
				favorites.GET("/details", favoriteHandler.Details)
				favorites.GET("/capacity-alerts", favoriteHandler.CapacityAlerts)
				favorites.DELETE("/:activityId", favoriteHandler.Remove)
			}
		}
	}

	return r
}
