package domain

import "time"

// ProductAttributes holds the five tracked attribute slots for one product
// or collection. ProductType is required; the rest may be empty.
type ProductAttributes struct {
	Condition   string
	Vendor      string
	ProductType string
	Size        string
	FuelType    string
}

// Get returns the value of the named attribute slot ("" for unknown names).
func (a ProductAttributes) Get(name string) string {
	switch name {
	case AttrCondition:
		return a.Condition
	case AttrVendor:
		return a.Vendor
	case AttrProductType:
		return a.ProductType
	case AttrSize:
		return a.Size
	case AttrFuelType:
		return a.FuelType
	default:
		return ""
	}
}

// Combination is one subset of tracked attributes, always including
// productType. Keys are the Attr* constants; values are non-empty.
type Combination map[string]string

// MatchRule is one smart-collection membership rule, normalized from
// whichever shape the store returned it in.
type MatchRule struct {
	Column    RuleColumn
	Relation  RuleRelation
	Condition string
	// DefinitionID is the metafield definition GID. Set only when
	// Column == RuleColumnMetafieldDefinition.
	DefinitionID string
}

// CollectionDefinition is a derived (never persisted) candidate collection.
type CollectionDefinition struct {
	Title  string
	Handle string
	Rules  []MatchRule
}

// Collection is an existing smart collection as read from the store, with
// its rules already normalized.
type Collection struct {
	ID        string // GID, e.g. gid://shopify/Collection/123
	Title     string
	Handle    string
	Rules     []MatchRule
	ImageURL  string     // "" when the collection has no resolvable image
	CreatedAt *time.Time // nil when the store did not return it
}

// MetafieldDefinitionMap maps internal attribute names (condition, size,
// fuelType) to metafield definition GIDs.
type MetafieldDefinitionMap map[string]string

// Reverse builds the GID -> attribute-name index used when parsing
// collection rules back into attributes.
func (m MetafieldDefinitionMap) Reverse() map[string]string {
	out := make(map[string]string, len(m))
	for attr, id := range m {
		out[id] = attr
	}
	return out
}

// CollectionRef is one entry in a related-collections response.
type CollectionRef struct {
	Title  string `json:"title"`
	Handle string `json:"handle"`
	Image  string `json:"image,omitempty"`
}

// RelatedSpecs groups the spec-dimension buckets of a related lookup.
type RelatedSpecs struct {
	Condition []CollectionRef `json:"condition"`
	FuelType  []CollectionRef `json:"fuelType"`
}

// RelatedCollections is the full related-collections lookup result for one
// target collection. Computed fresh per request, never cached.
type RelatedCollections struct {
	ByCategory     []CollectionRef `json:"byCategory"`
	ByManufacturer []CollectionRef `json:"byManufacturer"`
	BySizeItem     []CollectionRef `json:"bySizeItem"`
	BySpecs        RelatedSpecs    `json:"bySpecs"`
	Parts          []CollectionRef `json:"parts"`
}
