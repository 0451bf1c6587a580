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

// Prints the duplicate-collection deletion plan; with -apply it deletes the
// non-survivors (deletion against the live store is irreversible, so the
// default is a dry run).
func main() {
	apply := flag.Bool("apply", false, "delete the planned duplicates instead of just printing them")
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

	if !*apply {
		plan, err := svc.PlanDedupe(ctx)
		if err != nil {
			logger.Fatal("Dedupe planning failed", zap.Error(err))
		}
		if len(plan) == 0 {
			fmt.Println("No duplicate collections found.")
			return
		}
		fmt.Printf("Would delete %d duplicate collections (run with -apply to delete):\n", len(plan))
		for _, id := range plan {
			fmt.Println("  " + id)
		}
		return
	}

	deleted, err := svc.DedupeCollections(ctx)
	if err != nil {
		logger.Fatal("Dedupe failed", zap.Error(err))
	}
	fmt.Printf("Deleted %d duplicate collections.\n", len(deleted))
}
