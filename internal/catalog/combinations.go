package catalog

import (
	"strings"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

// optionalAttrs is the fixed-order bit vector of the four optional
// attributes; bit k of a mask toggles optionalAttrs[k].
var optionalAttrs = []string{domain.AttrCondition, domain.AttrSize, domain.AttrVendor, domain.AttrFuelType}

// Combinations enumerates every attribute subset containing productType.
// An empty productType yields nil: such a product produces no collections
// (the caller logs a warning, it is not an error).
//
// All 16 masks over the optional attributes are attempted; masks selecting
// an empty attribute collapse to the same content tuple and are emitted
// once, so the result holds exactly 2^k combinations for k non-empty
// optional attributes.
func Combinations(attrs domain.ProductAttributes) []domain.Combination {
	if attrs.ProductType == "" {
		return nil
	}
	seen := make(map[string]bool, 16)
	var out []domain.Combination
	for mask := 0; mask < 1<<len(optionalAttrs); mask++ {
		combo := domain.Combination{domain.AttrProductType: attrs.ProductType}
		for k, name := range optionalAttrs {
			if mask&(1<<k) == 0 {
				continue
			}
			if value := attrs.Get(name); value != "" {
				combo[name] = value
			}
		}
		sig := comboSignature(combo)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, combo)
	}
	return out
}

// comboSignature is a canonical-order content key for a combination.
func comboSignature(combo domain.Combination) string {
	var b strings.Builder
	for _, name := range domain.CanonicalAttributeOrder {
		if value, ok := combo[name]; ok {
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(value)
			b.WriteByte(';')
		}
	}
	return b.String()
}
