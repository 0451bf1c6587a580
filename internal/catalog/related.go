package catalog

import (
	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

// PartsCollections is the fixed set of manufacturer-parts collections shown
// on every related lookup. Configuration, not derived from the catalog.
var PartsCollections = []domain.CollectionRef{
	{Title: "Genie Parts", Handle: "genie-parts"},
	{Title: "JLG Parts", Handle: "jlg-parts"},
	{Title: "Skyjack Parts", Handle: "skyjack-parts"},
	{Title: "Haulotte Parts", Handle: "haulotte-parts"},
}

// ResolveRelated buckets every collection other than the target into
// relationship categories. The gating is asymmetric on purpose: a bucket
// gated on an attribute only fills when the target lacks that filter and
// the other collection has it, which makes each bucket a drill-down into a
// dimension the visitor has not filtered on yet.
//
// Image URLs on the returned refs are best-effort; entries without one are
// NOT filtered here - that is the consumer's contract.
func ResolveRelated(targetHandle string, all []domain.Collection, defs domain.MetafieldDefinitionMap, inferrer AttributeInferrer) (*domain.RelatedCollections, error) {
	var target *domain.Collection
	for i := range all {
		if all[i].Handle == targetHandle {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return nil, &apperrors.ErrNotFound{Resource: "collection", ID: targetHandle}
	}

	// Attributes are parsed once per handle within this resolution; rule
	// definitions can change between requests so nothing is kept across
	// calls.
	parsed := make(map[string]domain.ProductAttributes, len(all))
	attrsFor := func(col *domain.Collection) domain.ProductAttributes {
		if a, ok := parsed[col.Handle]; ok {
			return a
		}
		a := ExtractCollectionAttributes(col.Rules, defs, inferrer)
		parsed[col.Handle] = a
		return a
	}

	targetAttrs := attrsFor(target)
	result := &domain.RelatedCollections{
		Parts: PartsCollections,
	}

	for i := range all {
		other := &all[i]
		if other.Handle == targetHandle {
			continue
		}
		otherAttrs := attrsFor(other)
		if targetAttrs.ProductType == "" || otherAttrs.ProductType != targetAttrs.ProductType {
			continue
		}
		ref := domain.CollectionRef{Title: other.Title, Handle: other.Handle, Image: other.ImageURL}

		result.ByCategory = append(result.ByCategory, ref)
		if targetAttrs.Vendor == "" && otherAttrs.Vendor != "" {
			result.ByManufacturer = append(result.ByManufacturer, ref)
		}
		if targetAttrs.Size == "" && otherAttrs.Size != "" {
			result.BySizeItem = append(result.BySizeItem, ref)
		}
		if targetAttrs.Condition == "" && otherAttrs.Condition != "" {
			result.BySpecs.Condition = append(result.BySpecs.Condition, ref)
		}
		if targetAttrs.FuelType == "" && otherAttrs.FuelType != "" {
			result.BySpecs.FuelType = append(result.BySpecs.FuelType, ref)
		}
	}

	return result, nil
}

// FilterWithImages drops refs without a resolvable image from every computed
// bucket. The static parts list is configuration and passes through as-is.
func FilterWithImages(r *domain.RelatedCollections) {
	r.ByCategory = withImages(r.ByCategory)
	r.ByManufacturer = withImages(r.ByManufacturer)
	r.BySizeItem = withImages(r.BySizeItem)
	r.BySpecs.Condition = withImages(r.BySpecs.Condition)
	r.BySpecs.FuelType = withImages(r.BySpecs.FuelType)
}

func withImages(refs []domain.CollectionRef) []domain.CollectionRef {
	out := refs[:0]
	for _, ref := range refs {
		if ref.Image != "" {
			out = append(out, ref)
		}
	}
	return out
}
