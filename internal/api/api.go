// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/koncoweb/petnexus-sub000/internal/api/handlers"
	"github.com/koncoweb/petnexus-sub000/internal/api/middleware"
	"github.com/koncoweb/petnexus-sub000/internal/service"
)

func NewRouter(restockService *service.RestockService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if restockService != nil {
		restockHandler := handlers.NewRestockHandler(restockService)
		orderHandler := handlers.NewOrderHandler(restockService)

		restockGroup := apiGroup.Group("/restock")
		{
			restockGroup.GET("/analysis", restockHandler.GetAnalysis)
			restockGroup.POST("/orders", orderHandler.CreateOrder)
			restockGroup.GET("/orders", orderHandler.ListOrders)
			restockGroup.GET("/orders/:id", orderHandler.GetOrder)
			restockGroup.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		}

		apiGroup.GET("/suppliers", restockHandler.GetSuppliers)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
