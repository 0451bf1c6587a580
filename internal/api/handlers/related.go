package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

// HandleRelatedCollections handles GET /v1/collections/:handle/related.
// The storefront widget calls this to populate sibling/parent collection
// navigation on a collection page.
func HandleRelatedCollections(related *service.RelatedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := c.Param("handle")
		if handle == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "collection handle required"})
			return
		}

		result, err := related.RelatedCollections(c.Request.Context(), handle)
		if err != nil {
			var nf *apperrors.ErrNotFound
			if errors.As(err, &nf) {
				c.JSON(http.StatusNotFound, gin.H{"error": "collection not found", "handle": handle})
				return
			}
			var rl *apperrors.ErrRateLimited
			if errors.As(err, &rl) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store is rate limiting, try again later"})
				return
			}
			logger.Error("Related collections lookup failed", zap.String("handle", handle), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve related collections"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
