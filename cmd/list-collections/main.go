package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/catalog"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/service"
)

// Dumps all smart collections with their parsed attributes. Debugging aid
// for checking how existing rule sets resolve against the definition map
// and the heuristic fallback.
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	store := service.NewShopifyService(cfg.Shopify, logger)
	ctx := context.Background()

	rawDefs, err := store.GetMetafieldDefinitions(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch metafield definitions", zap.Error(err))
	}
	records := make([]catalog.DefinitionRecord, 0, len(rawDefs))
	for _, d := range rawDefs {
		records = append(records, catalog.DefinitionRecord{ID: d.ID, Name: d.Name, Key: d.Key})
	}
	defs := catalog.BuildDefinitionMap(records)

	cols, err := store.ListAllSmartCollections(ctx)
	if err != nil {
		logger.Fatal("Failed to list collections", zap.Error(err))
	}

	fmt.Printf("%d smart collections:\n", len(cols))
	for _, col := range cols {
		attrs := catalog.ExtractCollectionAttributes(col.Rules, defs, catalog.PatternInferrer{})
		fmt.Printf("- %s (%s)\n", col.Title, col.Handle)
		fmt.Printf("    rules=%d type=%q vendor=%q condition=%q size=%q fuel=%q\n",
			len(col.Rules), attrs.ProductType, attrs.Vendor, attrs.Condition, attrs.Size, attrs.FuelType)
	}
}
