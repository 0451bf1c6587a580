package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/catalog"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

// RelatedService serves the storefront's related-collections lookup.
type RelatedService struct {
	store    *ShopifyService
	inferrer catalog.AttributeInferrer
	logger   *zap.Logger
}

// NewRelatedService creates a new related-collections service
func NewRelatedService(cfg config.ShopifyConfig, logger *zap.Logger) *RelatedService {
	return &RelatedService{
		store:    NewShopifyService(cfg, logger),
		inferrer: catalog.PatternInferrer{},
		logger:   logger,
	}
}

// RelatedCollections computes the relationship buckets for one collection.
// State is re-derived from the store on every call; nothing is cached
// across requests because rule definitions can change between them.
// Entries without a resolvable image are filtered out.
func (s *RelatedService) RelatedCollections(ctx context.Context, handle string) (*domain.RelatedCollections, error) {
	// Cheap existence check so an unknown handle is a NotFound before the
	// full catalog walk.
	if _, err := s.store.GetCollectionByHandle(ctx, handle); err != nil {
		return nil, err
	}

	rawDefs, err := s.store.GetMetafieldDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load metafield definitions: %w", err)
	}
	defs := catalog.BuildDefinitionMap(definitionRecords(rawDefs))

	all, err := s.store.ListAllSmartCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}

	result, err := catalog.ResolveRelated(handle, all, defs, s.inferrer)
	if err != nil {
		return nil, err
	}
	catalog.FilterWithImages(result)
	return result, nil
}
