package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

type productCreateWebhookBody struct {
	ID int64 `json:"id"`
}

func verifyShopifyHMAC(secret string, body []byte, header string) error {
	if secret == "" || header == "" {
		return &apperrors.ErrSignatureMismatch{}
	}
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	// constant-time compare
	if !hmac.Equal([]byte(expected), []byte(strings.TrimSpace(header))) {
		return &apperrors.ErrSignatureMismatch{}
	}
	return nil
}

// HandleProductCreateWebhook handles POST /webhooks/shopify/products/create.
// Configure the Shopify webhook topic products/create against this route.
// The signature is verified over the raw body before anything is parsed;
// verified events are queued for the sync worker and the request returns
// immediately.
func HandleProductCreateWebhook(cfg *config.Config, queue *service.SyncQueue, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := strings.TrimSpace(cfg.ShopifyWebhookSecret)
		if secret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shopify webhook not configured"})
			return
		}

		// Read raw body (Shopify HMAC is computed over raw bytes)
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		hmacHeader := c.GetHeader("X-Shopify-Hmac-Sha256")
		if err := verifyShopifyHMAC(secret, bodyBytes, hmacHeader); err != nil {
			logger.Warn("Rejecting webhook",
				zap.String("topic", c.GetHeader("X-Shopify-Topic")),
				zap.Error(err),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		var body productCreateWebhookBody
		if err := json.Unmarshal(bodyBytes, &body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON", "details": err.Error()})
			return
		}
		if body.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id required"})
			return
		}

		jobID, ok := queue.Enqueue(body.ID)
		if !ok {
			// Non-2xx so Shopify redelivers once the queue drains.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sync queue full"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"job_id":     jobID.String(),
			"product_id": body.ID,
			"topic":      c.GetHeader("X-Shopify-Topic"),
		})
	}
}
