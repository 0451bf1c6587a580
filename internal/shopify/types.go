package shopify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

// PageInfo is the cursor pagination block on connection queries.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Metafield is one key/value annotation on a product.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// Product is a product as returned by the admin API. Unmarshalling accepts
// both productType (GraphQL) and product_type (legacy webhook payloads), and
// metafields either as a flat list or a GraphQL connection.
type Product struct {
	ID          string
	Title       string
	Vendor      string
	ProductType string
	Metafields  []Metafield
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                json.RawMessage `json:"id"`
		Title             string          `json:"title"`
		Vendor            string          `json:"vendor"`
		ProductType       string          `json:"productType"`
		ProductTypeLegacy string          `json:"product_type"`
		Metafields        json.RawMessage `json:"metafields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Title = raw.Title
	p.Vendor = raw.Vendor
	p.ProductType = raw.ProductType
	if p.ProductType == "" {
		p.ProductType = raw.ProductTypeLegacy
	}
	// id is a GID string in GraphQL, a number in webhook payloads
	if len(raw.ID) > 0 {
		var s string
		if err := json.Unmarshal(raw.ID, &s); err == nil {
			p.ID = s
		} else {
			var n int64
			if err := json.Unmarshal(raw.ID, &n); err == nil {
				p.ID = fmt.Sprintf("gid://shopify/Product/%d", n)
			}
		}
	}
	p.Metafields = nil
	if len(raw.Metafields) > 0 {
		var conn struct {
			Edges []struct {
				Node Metafield `json:"node"`
			} `json:"edges"`
		}
		if err := json.Unmarshal(raw.Metafields, &conn); err == nil && len(conn.Edges) > 0 {
			for _, e := range conn.Edges {
				p.Metafields = append(p.Metafields, e.Node)
			}
		} else {
			var list []Metafield
			if err := json.Unmarshal(raw.Metafields, &list); err == nil {
				p.Metafields = list
			}
		}
	}
	return nil
}

// MetafieldDefinition is one product metafield definition.
type MetafieldDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// FlatRule is the legacy flat rule shape (lowercase tokens, optional
// condition object id under either spelling).
type FlatRule struct {
	Column            string `json:"column"`
	Relation          string `json:"relation"`
	Condition         string `json:"condition"`
	ConditionObjectID string `json:"conditionObjectId"`
	DefinitionID      string `json:"condition_object_id"`
}

// RuleSetRule is the nested rule-set shape (uppercase tokens, condition
// object carrying the metafield definition for metafield rules).
type RuleSetRule struct {
	Column          string `json:"column"`
	Relation        string `json:"relation"`
	Condition       string `json:"condition"`
	ConditionObject *struct {
		MetafieldDefinition *struct {
			ID string `json:"id"`
		} `json:"metafieldDefinition"`
	} `json:"conditionObject"`
}

// RuleSet is the nested rule-set wrapper.
type RuleSet struct {
	AppliedDisjunctively bool          `json:"appliedDisjunctively"`
	Rules                []RuleSetRule `json:"rules"`
}

// CollectionNode is a collection as returned by the admin API, in either
// rule shape. Normalize converts it to the internal representation; nothing
// downstream branches on source shape again.
type CollectionNode struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Handle    string     `json:"handle"`
	Rules     []FlatRule `json:"rules"`
	RuleSet   *RuleSet   `json:"ruleSet"`
	CreatedAt *time.Time `json:"createdAt"`
	Image     *struct {
		URL string `json:"url"`
	} `json:"image"`
	Products struct {
		Edges []struct {
			Node struct {
				FeaturedMedia *struct {
					Preview *struct {
						Image *struct {
							URL string `json:"url"`
						} `json:"image"`
					} `json:"preview"`
				} `json:"featuredMedia"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

// Normalize converts the node into a domain collection. Rules with unknown
// column or relation tokens are dropped (malformed shapes tolerated).
func (n *CollectionNode) Normalize() domain.Collection {
	col := domain.Collection{
		ID:        n.ID,
		Title:     n.Title,
		Handle:    n.Handle,
		CreatedAt: n.CreatedAt,
		ImageURL:  n.imageURL(),
	}
	if n.RuleSet != nil {
		for _, r := range n.RuleSet.Rules {
			defID := ""
			if r.ConditionObject != nil && r.ConditionObject.MetafieldDefinition != nil {
				defID = r.ConditionObject.MetafieldDefinition.ID
			}
			if rule, ok := normalizeRule(r.Column, r.Relation, r.Condition, defID); ok {
				col.Rules = append(col.Rules, rule)
			}
		}
		return col
	}
	for _, r := range n.Rules {
		defID := r.ConditionObjectID
		if defID == "" {
			defID = r.DefinitionID
		}
		if rule, ok := normalizeRule(r.Column, r.Relation, r.Condition, defID); ok {
			col.Rules = append(col.Rules, rule)
		}
	}
	return col
}

// imageURL resolves the best-effort image: direct collection image first,
// else the first product's preview media image, else "".
func (n *CollectionNode) imageURL() string {
	if n.Image != nil && n.Image.URL != "" {
		return n.Image.URL
	}
	for _, e := range n.Products.Edges {
		fm := e.Node.FeaturedMedia
		if fm != nil && fm.Preview != nil && fm.Preview.Image != nil && fm.Preview.Image.URL != "" {
			return fm.Preview.Image.URL
		}
	}
	return ""
}

func normalizeRule(column, relation, condition, definitionID string) (domain.MatchRule, bool) {
	col, ok := normalizeColumn(column)
	if !ok {
		return domain.MatchRule{}, false
	}
	rel, ok := normalizeRelation(relation)
	if !ok {
		return domain.MatchRule{}, false
	}
	rule := domain.MatchRule{Column: col, Relation: rel, Condition: condition}
	if col == domain.RuleColumnMetafieldDefinition {
		rule.DefinitionID = definitionID
	}
	return rule, true
}

func normalizeColumn(token string) (domain.RuleColumn, bool) {
	switch token {
	case "VENDOR", "vendor":
		return domain.RuleColumnVendor, true
	case "TYPE", "type", "PRODUCT_TYPE":
		return domain.RuleColumnType, true
	case "PRODUCT_METAFIELD_DEFINITION", "metafieldDefinition":
		return domain.RuleColumnMetafieldDefinition, true
	default:
		return "", false
	}
}

func normalizeRelation(token string) (domain.RuleRelation, bool) {
	switch token {
	case "EQUALS", "equals":
		return domain.RuleRelationEquals, true
	default:
		return "", false
	}
}

// APIColumnToken maps an internal rule column to its API token.
func APIColumnToken(col domain.RuleColumn) string {
	switch col {
	case domain.RuleColumnVendor:
		return "VENDOR"
	case domain.RuleColumnType:
		return "TYPE"
	case domain.RuleColumnMetafieldDefinition:
		return "PRODUCT_METAFIELD_DEFINITION"
	default:
		return strings.ToUpper(string(col))
	}
}

// APIRelationToken maps an internal rule relation to its API token.
func APIRelationToken(rel domain.RuleRelation) string {
	return strings.ToUpper(string(rel))
}

// GIDToInt64 extracts the numeric ID from a Shopify GID
// (e.g. gid://shopify/Collection/123 -> 123)
func GIDToInt64(gid string) int64 {
	parts := strings.Split(gid, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" {
			continue
		}
		var n int64
		if _, err := fmt.Sscanf(parts[i], "%d", &n); err == nil {
			return n
		}
	}
	return 0
}
