package server

import (
	"net/http"

	_ "github.com/RehanShaikh007/TextileERP-sub000/api/swagger" // swagger docs
	"github.com/RehanShaikh007/TextileERP-sub000/internal/config"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/middleware"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteRegistrar is implemented by every resource handler
type RouteRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// NewRouter builds the engine: infrastructure routes at the root and the
// authenticated API under /api/v1.
func NewRouter(cfg *config.Config, hub *websocket.Hub, handlers ...RouteRegistrar) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger.App()), middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	origins := cfg.CORSOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(hub, c, cfg.Auth.JWTSecret)
		})
	}

	api := router.Group("/api/v1")
	api.Use(middleware.Authenticate(cfg.Auth.JWTSecret))
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}
	return router, nil
}
