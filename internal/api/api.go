// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alimenta-labs/prodplan/backend-go/internal/api/handlers"
	"github.com/alimenta-labs/prodplan/backend-go/internal/api/middleware"
	"github.com/alimenta-labs/prodplan/backend-go/internal/service"
)

type Services struct {
	ProductionService *service.ProductionService
	ReorderService    *service.ReorderService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

	apiGroup := router.Group("/api/v1")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if services != nil {
		if services.ProductionService != nil {
			productionHandler := handlers.NewProductionHandler(services.ProductionService)
			productionGroup := apiGroup.Group("/production")
			{
				productionGroup.POST("/compute", productionHandler.ComputePlan)
				productionGroup.GET("/runs", productionHandler.ListRuns)
				productionGroup.GET("/runs/:id", productionHandler.GetRun)
			}
		}

		if services.ReorderService != nil {
			reorderHandler := handlers.NewReorderHandler(services.ReorderService)
			materialsGroup := apiGroup.Group("/materials")
			{
				materialsGroup.POST("/analyze", reorderHandler.Analyze)
				materialsGroup.GET("/analysis/latest", reorderHandler.GetLatest)
			}
		}
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
