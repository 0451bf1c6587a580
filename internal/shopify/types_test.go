package shopify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

func TestCollectionNodeNormalizeRuleSetShape(t *testing.T) {
	raw := `{
		"id": "gid://shopify/Collection/1",
		"title": "Used Boom Lift",
		"handle": "used-boom-lift",
		"ruleSet": {
			"appliedDisjunctively": false,
			"rules": [
				{"column": "TYPE", "relation": "EQUALS", "condition": "Boom Lift"},
				{
					"column": "PRODUCT_METAFIELD_DEFINITION",
					"relation": "EQUALS",
					"condition": "Used",
					"conditionObject": {"metafieldDefinition": {"id": "gid://shopify/MetafieldDefinition/1"}}
				}
			]
		},
		"image": {"url": "https://cdn.example/direct.png"}
	}`
	var node CollectionNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	col := node.Normalize()
	assert.Equal(t, "used-boom-lift", col.Handle)
	assert.Equal(t, "https://cdn.example/direct.png", col.ImageURL)
	require.Len(t, col.Rules, 2)
	assert.Equal(t, domain.MatchRule{
		Column:    domain.RuleColumnType,
		Relation:  domain.RuleRelationEquals,
		Condition: "Boom Lift",
	}, col.Rules[0])
	assert.Equal(t, domain.MatchRule{
		Column:       domain.RuleColumnMetafieldDefinition,
		Relation:     domain.RuleRelationEquals,
		Condition:    "Used",
		DefinitionID: "gid://shopify/MetafieldDefinition/1",
	}, col.Rules[1])
}

func TestCollectionNodeNormalizeFlatShape(t *testing.T) {
	raw := `{
		"id": "gid://shopify/Collection/2",
		"title": "Genie Boom Lift",
		"handle": "genie-boom-lift",
		"rules": [
			{"column": "vendor", "relation": "equals", "condition": "Genie"},
			{"column": "type", "relation": "equals", "condition": "Boom Lift"},
			{"column": "metafieldDefinition", "relation": "equals", "condition": "Used", "condition_object_id": "gid://shopify/MetafieldDefinition/1"}
		]
	}`
	var node CollectionNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	col := node.Normalize()
	require.Len(t, col.Rules, 3)
	assert.Equal(t, domain.RuleColumnVendor, col.Rules[0].Column)
	assert.Equal(t, domain.RuleColumnType, col.Rules[1].Column)
	assert.Equal(t, domain.RuleColumnMetafieldDefinition, col.Rules[2].Column)
	assert.Equal(t, "gid://shopify/MetafieldDefinition/1", col.Rules[2].DefinitionID)
	assert.Empty(t, col.ImageURL)
}

func TestCollectionNodeNormalizeDropsUnknownTokens(t *testing.T) {
	raw := `{
		"id": "gid://shopify/Collection/3",
		"handle": "tagged",
		"rules": [
			{"column": "tag", "relation": "equals", "condition": "clearance"},
			{"column": "vendor", "relation": "greater_than", "condition": "Genie"},
			{"column": "vendor", "relation": "equals", "condition": "Genie"}
		]
	}`
	var node CollectionNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	col := node.Normalize()
	require.Len(t, col.Rules, 1)
	assert.Equal(t, "Genie", col.Rules[0].Condition)
}

func TestCollectionNodeImageFallback(t *testing.T) {
	raw := `{
		"id": "gid://shopify/Collection/4",
		"handle": "no-direct-image",
		"ruleSet": {"appliedDisjunctively": false, "rules": []},
		"products": {
			"edges": [
				{"node": {"featuredMedia": {"preview": {"image": {"url": "https://cdn.example/product.png"}}}}}
			]
		}
	}`
	var node CollectionNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))
	assert.Equal(t, "https://cdn.example/product.png", node.Normalize().ImageURL)
}

func TestProductUnmarshalGraphQLShape(t *testing.T) {
	raw := `{
		"id": "gid://shopify/Product/42",
		"title": "Genie Z-45",
		"vendor": "Genie",
		"productType": "Boom Lift",
		"metafields": {"edges": [{"node": {"namespace": "custom", "key": "condition", "value": "Used"}}]}
	}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "gid://shopify/Product/42", p.ID)
	assert.Equal(t, "Boom Lift", p.ProductType)
	require.Len(t, p.Metafields, 1)
	assert.Equal(t, "condition", p.Metafields[0].Key)
}

func TestProductUnmarshalWebhookShape(t *testing.T) {
	raw := `{
		"id": 42,
		"title": "Genie Z-45",
		"vendor": "Genie",
		"product_type": "Boom Lift"
	}`
	var p Product
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "gid://shopify/Product/42", p.ID)
	assert.Equal(t, "Boom Lift", p.ProductType)
}

func TestGIDToInt64(t *testing.T) {
	assert.Equal(t, int64(123), GIDToInt64("gid://shopify/Collection/123"))
	assert.Equal(t, int64(0), GIDToInt64("not-a-gid"))
}

func TestAPITokens(t *testing.T) {
	assert.Equal(t, "VENDOR", APIColumnToken(domain.RuleColumnVendor))
	assert.Equal(t, "TYPE", APIColumnToken(domain.RuleColumnType))
	assert.Equal(t, "PRODUCT_METAFIELD_DEFINITION", APIColumnToken(domain.RuleColumnMetafieldDefinition))
	assert.Equal(t, "EQUALS", APIRelationToken(domain.RuleRelationEquals))
}
