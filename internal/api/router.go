package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/api/handlers"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/api/middleware"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
)

// Services groups the service dependencies the routes need.
type Services struct {
	Collections *service.CollectionService
	Related     *service.RelatedService
	Queue       *service.SyncQueue
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svcs Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Shop-by-Specs Collection Sync",
			"endpoints": []string{
				"GET /health",
				"GET /v1/collections/:handle/related",
				"POST /webhooks/shopify/products/create",
				"POST /v1/admin/sync-products",
				"POST /v1/admin/sync-products/:id",
				"POST /v1/admin/dedupe-collections",
				"POST /v1/admin/register-webhook",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Shopify webhook: product creation events enqueue a sync job
	router.POST("/webhooks/shopify/products/create", handlers.HandleProductCreateWebhook(cfg, svcs.Queue, logger))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Storefront routes: the related-collections widget calls these from
		// the shop's domain, so CORS is open for GET.
		storefront := v1.Group("")
		storefront.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
		{
			storefront.GET("/collections/:handle/related", handlers.HandleRelatedCollections(svcs.Related, logger))
		}

		// Admin routes (require service key)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.AdminServiceKey, logger))
		{
			adminRoutes.POST("/sync-products", handlers.HandleSyncAllProducts(svcs.Collections, logger))
			adminRoutes.POST("/sync-products/:id", handlers.HandleSyncProduct(svcs.Collections, logger))
			adminRoutes.POST("/dedupe-collections", handlers.HandleDedupeCollections(svcs.Collections, logger))
			adminRoutes.POST("/register-webhook", handlers.HandleRegisterWebhook(cfg, svcs.Collections, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
