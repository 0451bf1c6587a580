// Package catalog holds the attribute-combination and collection-rule
// derivation logic: extracting tracked attributes from products and
// collections, enumerating attribute combinations, building collection
// definitions, and comparing rule sets.
package catalog

import (
	"regexp"
	"strings"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

// metafieldAliases maps external metafield key spellings to internal
// attribute names, matched case-insensitively.
var metafieldAliases = map[string]string{
	"condition": domain.AttrCondition,
	"size_item": domain.AttrSize,
	"size":      domain.AttrSize,
	"fuel_type": domain.AttrFuelType,
}

// Annotation is one key/value metafield on a product.
type Annotation struct {
	Key   string
	Value string
}

// ProductRecord is the slice of a product the extractor reads.
type ProductRecord struct {
	Vendor      string
	ProductType string
	Annotations []Annotation
}

// DefinitionRecord is one metafield definition from the store.
type DefinitionRecord struct {
	ID   string
	Name string
	Key  string
}

// BuildDefinitionMap maps metafield definitions to internal attribute names
// by normalizing their keys against the alias table. Definitions whose key
// matches no alias are ignored.
func BuildDefinitionMap(defs []DefinitionRecord) domain.MetafieldDefinitionMap {
	out := domain.MetafieldDefinitionMap{}
	for _, d := range defs {
		key := strings.ToLower(strings.TrimSpace(d.Key))
		if attr, ok := metafieldAliases[key]; ok {
			out[attr] = d.ID
			continue
		}
		// Some stores name the definition rather than the key consistently
		if attr, ok := metafieldAliases[strings.ToLower(strings.TrimSpace(d.Name))]; ok {
			if _, taken := out[attr]; !taken {
				out[attr] = d.ID
			}
		}
	}
	return out
}

// ExtractProductAttributes pulls the five tracked attributes from a product.
// Vendor and product type come from top-level fields; condition, size and
// fuel type from metafield annotations matched case-insensitively against
// the alias table.
func ExtractProductAttributes(p ProductRecord) domain.ProductAttributes {
	attrs := domain.ProductAttributes{
		Vendor:      strings.TrimSpace(p.Vendor),
		ProductType: strings.TrimSpace(p.ProductType),
	}
	for _, a := range p.Annotations {
		attr, ok := metafieldAliases[strings.ToLower(strings.TrimSpace(a.Key))]
		if !ok {
			continue
		}
		value := strings.TrimSpace(a.Value)
		if value == "" {
			continue
		}
		switch attr {
		case domain.AttrCondition:
			attrs.Condition = value
		case domain.AttrSize:
			attrs.Size = value
		case domain.AttrFuelType:
			attrs.FuelType = value
		}
	}
	return attrs
}

// AttributeInferrer guesses which attribute a rule condition value belongs
// to when the rule carries no resolvable definition ID. Implementations are
// heuristic, not authoritative.
type AttributeInferrer interface {
	Infer(value string) (attr string, ok bool)
}

var (
	conditionPattern = regexp.MustCompile(`(?i)\b(used|new|refurbished)\b`)
	sizePattern      = regexp.MustCompile(`(?i)(\d+\s*(ft|feet|')|\d+\s*-\s*\d+)`)
	fuelPattern      = regexp.MustCompile(`(?i)\b(electric|diesel|gas|hybrid|propane)\b`)
)

// PatternInferrer classifies condition values by vocabulary and shape.
// Exists because collections authored before consistent definition-ID
// tagging carry metafield rules with no condition object. Patterns are
// checked in a fixed order (condition, size, fuel type) so ambiguous values
// resolve deterministically.
type PatternInferrer struct{}

func (PatternInferrer) Infer(value string) (string, bool) {
	switch {
	case conditionPattern.MatchString(value):
		return domain.AttrCondition, true
	case sizePattern.MatchString(value):
		return domain.AttrSize, true
	case fuelPattern.MatchString(value):
		return domain.AttrFuelType, true
	default:
		return "", false
	}
}

// NopInferrer disables heuristic inference.
type NopInferrer struct{}

func (NopInferrer) Infer(string) (string, bool) { return "", false }

// ExtractCollectionAttributes pulls the five tracked attributes from a
// collection's normalized rules. Metafield rules resolve through the
// definition map's reverse index; rules without a resolvable definition ID
// fall back to the inferrer.
func ExtractCollectionAttributes(rules []domain.MatchRule, defs domain.MetafieldDefinitionMap, inferrer AttributeInferrer) domain.ProductAttributes {
	if inferrer == nil {
		inferrer = PatternInferrer{}
	}
	reverse := defs.Reverse()
	var attrs domain.ProductAttributes
	for _, r := range rules {
		switch r.Column {
		case domain.RuleColumnVendor:
			attrs.Vendor = r.Condition
		case domain.RuleColumnType:
			attrs.ProductType = r.Condition
		case domain.RuleColumnMetafieldDefinition:
			attr, ok := reverse[r.DefinitionID]
			if !ok {
				attr, ok = inferrer.Infer(r.Condition)
			}
			if !ok {
				continue
			}
			switch attr {
			case domain.AttrCondition:
				attrs.Condition = r.Condition
			case domain.AttrSize:
				attrs.Size = r.Condition
			case domain.AttrFuelType:
				attrs.FuelType = r.Condition
			}
		}
	}
	return attrs
}
