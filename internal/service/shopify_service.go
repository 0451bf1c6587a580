package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/config"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
	"github.com/genthegreat/Shopify-shop-by-specs/internal/shopify"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

const pageSize = 50

// ShopifyService wraps the GraphQL client with typed catalog operations.
type ShopifyService struct {
	client *shopify.Client
	logger *zap.Logger
}

// NewShopifyService creates a new Shopify service
func NewShopifyService(cfg config.ShopifyConfig, logger *zap.Logger) *ShopifyService {
	return &ShopifyService{
		client: shopify.NewClient(cfg, logger),
		logger: logger,
	}
}

// GetProduct fetches one product by numeric ID.
func (s *ShopifyService) GetProduct(ctx context.Context, productID int64) (*shopify.Product, error) {
	gid := fmt.Sprintf("gid://shopify/Product/%d", productID)
	resp, err := s.client.Execute(ctx, shopify.ProductByIDQuery, map[string]interface{}{"id": gid})
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	var result struct {
		Product *shopify.Product `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse product response: %w", err)
	}
	if result.Product == nil {
		return nil, &apperrors.ErrNotFound{Resource: "product", ID: gid}
	}
	return result.Product, nil
}

// ListProductsPage fetches one page of products.
func (s *ShopifyService) ListProductsPage(ctx context.Context, cursor string) ([]shopify.Product, shopify.PageInfo, error) {
	variables := map[string]interface{}{"first": pageSize}
	if cursor != "" {
		variables["after"] = cursor
	}
	resp, err := s.client.Execute(ctx, shopify.ProductsQuery, variables)
	if err != nil {
		return nil, shopify.PageInfo{}, fmt.Errorf("list products: %w", err)
	}
	var result struct {
		Products struct {
			PageInfo shopify.PageInfo `json:"pageInfo"`
			Edges    []struct {
				Node shopify.Product `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, shopify.PageInfo{}, fmt.Errorf("parse products response: %w", err)
	}
	products := make([]shopify.Product, 0, len(result.Products.Edges))
	for _, e := range result.Products.Edges {
		products = append(products, e.Node)
	}
	return products, result.Products.PageInfo, nil
}

// ListAllSmartCollections pages through every smart collection, normalizing
// rules into the internal shape. A request failure anywhere in the loop is a
// hard error: a partial list would make duplicate checks recreate existing
// collections. Only a malformed page stops pagination and returns what was
// collected so far.
func (s *ShopifyService) ListAllSmartCollections(ctx context.Context) ([]domain.Collection, error) {
	var all []domain.Collection
	cursor := ""
	for {
		variables := map[string]interface{}{"first": pageSize}
		if cursor != "" {
			variables["after"] = cursor
		}
		resp, err := s.client.Execute(ctx, shopify.SmartCollectionsQuery, variables)
		if err != nil {
			return nil, fmt.Errorf("list collections after %d collected: %w", len(all), err)
		}
		var result struct {
			Collections struct {
				PageInfo shopify.PageInfo `json:"pageInfo"`
				Edges    []struct {
					Node shopify.CollectionNode `json:"node"`
				} `json:"edges"`
			} `json:"collections"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			s.logger.Error("Malformed collections page, stopping pagination", zap.Error(err))
			return all, nil
		}
		for _, e := range result.Collections.Edges {
			node := e.Node
			all = append(all, node.Normalize())
		}
		if !result.Collections.PageInfo.HasNextPage || result.Collections.PageInfo.EndCursor == "" {
			return all, nil
		}
		cursor = result.Collections.PageInfo.EndCursor
	}
}

// GetCollectionByHandle fetches a single collection by handle.
func (s *ShopifyService) GetCollectionByHandle(ctx context.Context, handle string) (*domain.Collection, error) {
	resp, err := s.client.Execute(ctx, shopify.CollectionByHandleQuery, map[string]interface{}{"handle": handle})
	if err != nil {
		return nil, fmt.Errorf("get collection by handle: %w", err)
	}
	var result struct {
		CollectionByHandle *shopify.CollectionNode `json:"collectionByHandle"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse collection response: %w", err)
	}
	if result.CollectionByHandle == nil {
		return nil, &apperrors.ErrNotFound{Resource: "collection", ID: handle}
	}
	col := result.CollectionByHandle.Normalize()
	return &col, nil
}

// GetMetafieldDefinitions fetches all product metafield definitions.
func (s *ShopifyService) GetMetafieldDefinitions(ctx context.Context) ([]shopify.MetafieldDefinition, error) {
	resp, err := s.client.Execute(ctx, shopify.MetafieldDefinitionsQuery, map[string]interface{}{"first": 50})
	if err != nil {
		return nil, fmt.Errorf("get metafield definitions: %w", err)
	}
	var result struct {
		MetafieldDefinitions struct {
			Edges []struct {
				Node shopify.MetafieldDefinition `json:"node"`
			} `json:"edges"`
		} `json:"metafieldDefinitions"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("parse metafield definitions response: %w", err)
	}
	defs := make([]shopify.MetafieldDefinition, 0, len(result.MetafieldDefinitions.Edges))
	for _, e := range result.MetafieldDefinitions.Edges {
		defs = append(defs, e.Node)
	}
	return defs, nil
}

// CreateCollection creates a smart collection with conjunctive rule matching
// (all rules must match). Store rejections surface as ErrValidation and are
// never retried.
func (s *ShopifyService) CreateCollection(ctx context.Context, def domain.CollectionDefinition) error {
	rules := make([]shopify.RuleInput, 0, len(def.Rules))
	for _, r := range def.Rules {
		rules = append(rules, shopify.RuleInput{
			Column:            shopify.APIColumnToken(r.Column),
			Relation:          shopify.APIRelationToken(r.Relation),
			Condition:         r.Condition,
			ConditionObjectID: r.DefinitionID,
		})
	}
	handle := def.Handle
	input := shopify.CollectionInput{
		Title:  def.Title,
		Handle: &handle,
		RuleSet: &shopify.RuleSetInput{
			AppliedDisjunctively: false,
			Rules:                rules,
		},
	}
	resp, err := s.client.Execute(ctx, shopify.CollectionCreateMutation, map[string]interface{}{"input": input})
	if err != nil {
		return fmt.Errorf("collectionCreate: %w", err)
	}
	var result struct {
		CollectionCreate struct {
			Collection *struct {
				ID string `json:"id"`
			} `json:"collection"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"collectionCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse collectionCreate response: %w", err)
	}
	if len(result.CollectionCreate.UserErrors) > 0 {
		fields := map[string]string{}
		for _, ue := range result.CollectionCreate.UserErrors {
			if len(ue.Field) > 0 {
				fields[ue.Field[len(ue.Field)-1]] = ue.Message
			}
		}
		return &apperrors.ErrValidation{
			Message: fmt.Sprintf("collectionCreate rejected: %v", result.CollectionCreate.UserErrors),
			Fields:  fields,
		}
	}
	return nil
}

// DeleteCollection deletes a collection by GID.
func (s *ShopifyService) DeleteCollection(ctx context.Context, collectionID string) error {
	input := shopify.CollectionDeleteInput{ID: collectionID}
	resp, err := s.client.Execute(ctx, shopify.CollectionDeleteMutation, map[string]interface{}{"input": input})
	if err != nil {
		return fmt.Errorf("collectionDelete: %w", err)
	}
	var result struct {
		CollectionDelete struct {
			DeletedCollectionID *string `json:"deletedCollectionId"`
			UserErrors          []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"collectionDelete"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse collectionDelete response: %w", err)
	}
	if len(result.CollectionDelete.UserErrors) > 0 {
		return &apperrors.ErrValidation{
			Message: fmt.Sprintf("collectionDelete rejected: %v", result.CollectionDelete.UserErrors),
		}
	}
	return nil
}

// RegisterProductCreateWebhook subscribes to products/create events.
func (s *ShopifyService) RegisterProductCreateWebhook(ctx context.Context, callbackURL string) (string, error) {
	variables := map[string]interface{}{
		"topic": "PRODUCTS_CREATE",
		"webhookSubscription": shopify.WebhookSubscriptionInput{
			CallbackURL: callbackURL,
			Format:      "JSON",
		},
	}
	resp, err := s.client.Execute(ctx, shopify.WebhookSubscriptionCreateMutation, variables)
	if err != nil {
		return "", fmt.Errorf("webhookSubscriptionCreate: %w", err)
	}
	var result struct {
		WebhookSubscriptionCreate struct {
			WebhookSubscription *struct {
				ID string `json:"id"`
			} `json:"webhookSubscription"`
			UserErrors []struct {
				Field   []string `json:"field"`
				Message string   `json:"message"`
			} `json:"userErrors"`
		} `json:"webhookSubscriptionCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("parse webhookSubscriptionCreate response: %w", err)
	}
	if len(result.WebhookSubscriptionCreate.UserErrors) > 0 {
		return "", &apperrors.ErrValidation{
			Message: fmt.Sprintf("webhookSubscriptionCreate rejected: %v", result.WebhookSubscriptionCreate.UserErrors),
		}
	}
	if result.WebhookSubscriptionCreate.WebhookSubscription == nil {
		return "", &apperrors.ErrUpstream{Op: "webhookSubscriptionCreate", Message: "no subscription in response"}
	}
	return result.WebhookSubscriptionCreate.WebhookSubscription.ID, nil
}
