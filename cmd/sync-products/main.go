package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
)

// Walks the whole product catalog and creates any missing attribute
// combination collections. Safe to re-run: existing rule sets are skipped.
func main() {
	productID := flag.Int64("product", 0, "sync a single product by numeric ID instead of the full catalog")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	svc := service.NewCollectionService(cfg.Shopify, logger)
	ctx := context.Background()

	if *productID != 0 {
		if err := svc.SyncProduct(ctx, *productID); err != nil {
			logger.Fatal("Product sync failed", zap.Int64("product_id", *productID), zap.Error(err))
		}
		return
	}
	if err := svc.SyncAllProducts(ctx); err != nil {
		logger.Fatal("Catalog sync failed", zap.Error(err))
	}
}
