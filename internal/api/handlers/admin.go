package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
)

// HandleSyncAllProducts handles POST /v1/admin/sync-products. The full
// catalog walk runs in the background; the request returns immediately.
func HandleSyncAllProducts(svc *service.CollectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		go func() {
			// Detached from the request context: the walk outlives the request.
			if err := svc.SyncAllProducts(context.Background()); err != nil {
				logger.Error("Bulk product sync failed", zap.Error(err))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"ok": true, "status": "sync started"})
	}
}

// HandleSyncProduct handles POST /v1/admin/sync-products/:id for a single
// product, synchronously.
func HandleSyncProduct(svc *service.CollectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || productID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "numeric product id required"})
			return
		}
		if err := svc.SyncProduct(c.Request.Context(), productID); err != nil {
			logger.Error("Product sync failed", zap.Int64("product_id", productID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "sync failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "product_id": productID})
	}
}

// HandleDedupeCollections handles POST /v1/admin/dedupe-collections.
// With ?dry_run=true only the plan is returned and nothing is deleted.
func HandleDedupeCollections(svc *service.CollectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("dry_run") == "true" {
			plan, err := svc.PlanDedupe(c.Request.Context())
			if err != nil {
				logger.Error("Dedupe planning failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "dedupe planning failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"ok": true, "dry_run": true, "plan": plan})
			return
		}
		deleted, err := svc.DedupeCollections(c.Request.Context())
		if err != nil {
			logger.Error("Dedupe failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "dedupe failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": deleted})
	}
}

// HandleRegisterWebhook handles POST /v1/admin/register-webhook. The
// callback defaults to APP_BASE_URL + the products/create webhook route.
func HandleRegisterWebhook(cfg *config.Config, svc *service.CollectionService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			CallbackURL string `json:"callback_url"`
		}
		_ = c.ShouldBindJSON(&body)
		callback := body.CallbackURL
		if callback == "" {
			if cfg.AppBaseURL == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "callback_url or APP_BASE_URL required"})
				return
			}
			callback = cfg.AppBaseURL + "/webhooks/shopify/products/create"
		}
		id, err := svc.RegisterProductWebhook(c.Request.Context(), callback)
		if err != nil {
			logger.Error("Webhook registration failed", zap.String("callback", callback), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "webhook registration failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "subscription_id": id, "callback_url": callback})
	}
}
