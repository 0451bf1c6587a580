package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func webhookRouter(secret string, queue *service.SyncQueue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{ShopifyWebhookSecret: secret}
	router := gin.New()
	router.POST("/webhooks/shopify/products/create", HandleProductCreateWebhook(cfg, queue, zap.NewNop()))
	return router
}

func TestProductWebhookSignatureMismatch(t *testing.T) {
	queue := service.NewSyncQueue(nil, 4, zap.NewNop())
	router := webhookRouter("secret", queue)

	body := []byte(`{"id": 42}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/products/create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signBody("wrong-secret", body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// fail-closed: rejected before any processing is queued
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, queue.Pending())
}

func TestProductWebhookMissingSignature(t *testing.T) {
	queue := service.NewSyncQueue(nil, 4, zap.NewNop())
	router := webhookRouter("secret", queue)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/products/create", bytes.NewReader([]byte(`{"id": 42}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, queue.Pending())
}

func TestProductWebhookValidSignatureEnqueues(t *testing.T) {
	queue := service.NewSyncQueue(nil, 4, zap.NewNop())
	router := webhookRouter("secret", queue)

	body := []byte(`{"id": 42}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/products/create", bytes.NewReader(body))
	req.Header.Set("X-Shopify-Hmac-Sha256", signBody("secret", body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, queue.Pending())
}

func TestProductWebhookNotConfigured(t *testing.T) {
	queue := service.NewSyncQueue(nil, 4, zap.NewNop())
	router := webhookRouter("", queue)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/shopify/products/create", bytes.NewReader([]byte(`{"id": 42}`)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVerifyShopifyHMAC(t *testing.T) {
	body := []byte(`{"id": 1}`)
	assert.NoError(t, verifyShopifyHMAC("s", body, signBody("s", body)))

	var sig *apperrors.ErrSignatureMismatch
	require.ErrorAs(t, verifyShopifyHMAC("s", body, signBody("other", body)), &sig)
	require.ErrorAs(t, verifyShopifyHMAC("", body, signBody("s", body)), &sig)
	require.ErrorAs(t, verifyShopifyHMAC("s", body, ""), &sig)
}
