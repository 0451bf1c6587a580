package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
)

// Registers the products/create webhook subscription pointing at this
// deployment's webhook route.
func main() {
	callback := flag.String("callback", "", "callback URL (defaults to APP_BASE_URL + webhook route)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	url := *callback
	if url == "" {
		if cfg.AppBaseURL == "" {
			log.Fatal("Provide -callback or set APP_BASE_URL")
		}
		url = cfg.AppBaseURL + "/webhooks/shopify/products/create"
	}

	svc := service.NewCollectionService(cfg.Shopify, logger)
	id, err := svc.RegisterProductWebhook(context.Background(), url)
	if err != nil {
		logger.Fatal("Webhook registration failed", zap.String("callback", url), zap.Error(err))
	}
	fmt.Printf("Registered products/create webhook %s -> %s\n", id, url)
}
