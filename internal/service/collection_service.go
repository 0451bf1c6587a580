package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/catalog"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/shopify"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

// CollectionService derives and creates smart collections from product
// attribute combinations.
type CollectionService struct {
	store  *ShopifyService
	logger *zap.Logger
}

// NewCollectionService creates a new collection sync service
func NewCollectionService(cfg config.ShopifyConfig, logger *zap.Logger) *CollectionService {
	return &CollectionService{
		store:  NewShopifyService(cfg, logger),
		logger: logger,
	}
}

// syncState is the per-operation snapshot the derivation works against: the
// definition map is built once, and the collection list is extended in
// memory as collections are created so duplicate checks within one run see
// them.
type syncState struct {
	defs     domain.MetafieldDefinitionMap
	existing []domain.Collection
}

func (s *CollectionService) loadSyncState(ctx context.Context) (*syncState, error) {
	rawDefs, err := s.store.GetMetafieldDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load metafield definitions: %w", err)
	}
	existing, err := s.store.ListAllSmartCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	return &syncState{
		defs:     catalog.BuildDefinitionMap(definitionRecords(rawDefs)),
		existing: existing,
	}, nil
}

func definitionRecords(defs []shopify.MetafieldDefinition) []catalog.DefinitionRecord {
	out := make([]catalog.DefinitionRecord, 0, len(defs))
	for _, d := range defs {
		out = append(out, catalog.DefinitionRecord{ID: d.ID, Name: d.Name, Key: d.Key})
	}
	return out
}

func productRecord(p *shopify.Product) catalog.ProductRecord {
	rec := catalog.ProductRecord{
		Vendor:      p.Vendor,
		ProductType: p.ProductType,
	}
	for _, m := range p.Metafields {
		rec.Annotations = append(rec.Annotations, catalog.Annotation{Key: m.Key, Value: m.Value})
	}
	return rec
}

// SyncProduct derives and creates the collections for one product.
func (s *CollectionService) SyncProduct(ctx context.Context, productID int64) error {
	state, err := s.loadSyncState(ctx)
	if err != nil {
		return err
	}
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		var nf *apperrors.ErrNotFound
		if errors.As(err, &nf) {
			s.logger.Warn("Product not found, nothing to sync", zap.Int64("product_id", productID))
			return nil
		}
		return err
	}
	s.syncOne(ctx, product, state)
	return nil
}

// SyncAllProducts walks the whole catalog in pagination order, strictly one
// product at a time. Per-product failures are logged and skipped; a failure
// to page the product list aborts the run.
func (s *CollectionService) SyncAllProducts(ctx context.Context) error {
	state, err := s.loadSyncState(ctx)
	if err != nil {
		return err
	}
	cursor := ""
	processed := 0
	for {
		products, pageInfo, err := s.store.ListProductsPage(ctx, cursor)
		if err != nil {
			return fmt.Errorf("product pagination failed after %d products: %w", processed, err)
		}
		for i := range products {
			s.syncOne(ctx, &products[i], state)
			processed++
		}
		if !pageInfo.HasNextPage || pageInfo.EndCursor == "" {
			break
		}
		cursor = pageInfo.EndCursor
	}
	s.logger.Info("Product sync complete", zap.Int("products", processed))
	return nil
}

// syncOne derives all combinations for one product and creates the missing
// collections. Failures on a single candidate do not stop the rest; there
// is no rollback of collections already created for this product.
func (s *CollectionService) syncOne(ctx context.Context, product *shopify.Product, state *syncState) {
	attrs := catalog.ExtractProductAttributes(productRecord(product))
	combos := catalog.Combinations(attrs)
	if len(combos) == 0 {
		s.logger.Warn("Product has no product type, skipping",
			zap.String("product_id", product.ID),
			zap.String("title", product.Title),
		)
		return
	}
	created := 0
	for _, combo := range combos {
		def := catalog.BuildDefinition(combo, state.defs, s.logger)
		if def == nil {
			continue
		}
		if catalog.RuleSetExists(def.Rules, state.existing) {
			continue
		}
		if err := s.store.CreateCollection(ctx, *def); err != nil {
			var ve *apperrors.ErrValidation
			if errors.As(err, &ve) {
				s.logger.Warn("Collection rejected by store",
					zap.String("title", def.Title),
					zap.String("handle", def.Handle),
					zap.Any("rules", def.Rules),
					zap.Error(err),
				)
				continue
			}
			s.logger.Warn("Collection create failed",
				zap.String("title", def.Title),
				zap.Error(err),
			)
			continue
		}
		// Remember the new rule set so later combinations and products in
		// this run do not recreate it.
		state.existing = append(state.existing, domain.Collection{
			Title:  def.Title,
			Handle: def.Handle,
			Rules:  def.Rules,
		})
		created++
	}
	if created > 0 {
		s.logger.Info("Created collections for product",
			zap.String("product_id", product.ID),
			zap.String("title", product.Title),
			zap.Int("created", created),
		)
	}
}

// PlanDedupe lists all smart collections and returns the IDs the reconciler
// would delete, without deleting anything.
func (s *CollectionService) PlanDedupe(ctx context.Context) ([]string, error) {
	all, err := s.store.ListAllSmartCollections(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.PlanDuplicateDeletions(all), nil
}

// DedupeCollections deletes duplicate collections per the reconciler's plan.
// Each deletion is independently fault tolerant; the client's pacing keeps
// the deletes spaced out. Returns the IDs actually deleted.
func (s *CollectionService) DedupeCollections(ctx context.Context) ([]string, error) {
	plan, err := s.PlanDedupe(ctx)
	if err != nil {
		return nil, err
	}
	deleted := make([]string, 0, len(plan))
	for _, id := range plan {
		if err := s.store.DeleteCollection(ctx, id); err != nil {
			s.logger.Warn("Failed to delete duplicate collection", zap.String("collection_id", id), zap.Error(err))
			continue
		}
		deleted = append(deleted, id)
	}
	s.logger.Info("Dedupe complete", zap.Int("planned", len(plan)), zap.Int("deleted", len(deleted)))
	return deleted, nil
}

// RegisterProductWebhook subscribes the given callback URL to product
// creation events.
func (s *CollectionService) RegisterProductWebhook(ctx context.Context, callbackURL string) (string, error) {
	return s.store.RegisterProductCreateWebhook(ctx, callbackURL)
}
