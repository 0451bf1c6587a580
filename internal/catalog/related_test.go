package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
	apperrors "github.com/genthegreat/Shopify-shop-by-specs/pkg/errors"
)

func smartCollection(id, title, handle, image string, rules ...domain.MatchRule) domain.Collection {
	return domain.Collection{ID: id, Title: title, Handle: handle, ImageURL: image, Rules: rules}
}

func TestResolveRelatedTargetNotFound(t *testing.T) {
	_, err := ResolveRelated("missing", nil, testDefs, NopInferrer{})
	var nf *apperrors.ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)
}

func TestResolveRelatedByManufacturerGating(t *testing.T) {
	genieBoomLift := smartCollection("gid://shopify/Collection/2", "Genie Boom Lift", "genie-boom-lift", "img2",
		vendorRule("Genie"), typeRule("Boom Lift"))

	t.Run("target without vendor filter", func(t *testing.T) {
		target := smartCollection("gid://shopify/Collection/1", "Boom Lift", "boom-lift", "img1",
			typeRule("Boom Lift"))
		result, err := ResolveRelated("boom-lift", []domain.Collection{target, genieBoomLift}, testDefs, NopInferrer{})
		require.NoError(t, err)
		require.Len(t, result.ByManufacturer, 1)
		assert.Equal(t, "genie-boom-lift", result.ByManufacturer[0].Handle)
	})

	t.Run("target already has a vendor filter", func(t *testing.T) {
		target := smartCollection("gid://shopify/Collection/3", "JLG Boom Lift", "jlg-boom-lift", "img3",
			vendorRule("JLG"), typeRule("Boom Lift"))
		result, err := ResolveRelated("jlg-boom-lift", []domain.Collection{target, genieBoomLift}, testDefs, NopInferrer{})
		require.NoError(t, err)
		assert.Empty(t, result.ByManufacturer)
		// still related by category
		require.Len(t, result.ByCategory, 1)
		assert.Equal(t, "genie-boom-lift", result.ByCategory[0].Handle)
	})
}

func TestResolveRelatedBuckets(t *testing.T) {
	target := smartCollection("gid://shopify/Collection/1", "Boom Lift", "boom-lift", "img1",
		typeRule("Boom Lift"))
	sized := smartCollection("gid://shopify/Collection/2", "30-46 ft Boom Lift", "30-46-ft-boom-lift", "img2",
		typeRule("Boom Lift"),
		metafieldRule("30-46 ft", testDefs[domain.AttrSize]))
	used := smartCollection("gid://shopify/Collection/3", "Used Boom Lift", "used-boom-lift", "img3",
		typeRule("Boom Lift"),
		metafieldRule("Used", testDefs[domain.AttrCondition]))
	electric := smartCollection("gid://shopify/Collection/4", "Electric Boom Lift", "electric-boom-lift", "img4",
		typeRule("Boom Lift"),
		metafieldRule("Electric", testDefs[domain.AttrFuelType]))
	scissor := smartCollection("gid://shopify/Collection/5", "Scissor Lift", "scissor-lift", "img5",
		typeRule("Scissor Lift"))

	all := []domain.Collection{target, sized, used, electric, scissor}
	result, err := ResolveRelated("boom-lift", all, testDefs, NopInferrer{})
	require.NoError(t, err)

	// a collection can land in several buckets; different product types in none
	assert.Len(t, result.ByCategory, 3)
	require.Len(t, result.BySizeItem, 1)
	assert.Equal(t, "30-46-ft-boom-lift", result.BySizeItem[0].Handle)
	require.Len(t, result.BySpecs.Condition, 1)
	assert.Equal(t, "used-boom-lift", result.BySpecs.Condition[0].Handle)
	require.Len(t, result.BySpecs.FuelType, 1)
	assert.Equal(t, "electric-boom-lift", result.BySpecs.FuelType[0].Handle)

	// the static parts list always rides along
	assert.Equal(t, PartsCollections, result.Parts)
}

func TestResolveRelatedSkipsSelf(t *testing.T) {
	target := smartCollection("gid://shopify/Collection/1", "Boom Lift", "boom-lift", "img1",
		typeRule("Boom Lift"))
	result, err := ResolveRelated("boom-lift", []domain.Collection{target}, testDefs, NopInferrer{})
	require.NoError(t, err)
	assert.Empty(t, result.ByCategory)
}

func TestFilterWithImages(t *testing.T) {
	result := &domain.RelatedCollections{
		ByCategory: []domain.CollectionRef{
			{Title: "With image", Handle: "a", Image: "img"},
			{Title: "No image", Handle: "b"},
		},
		Parts: PartsCollections,
	}
	FilterWithImages(result)
	require.Len(t, result.ByCategory, 1)
	assert.Equal(t, "a", result.ByCategory[0].Handle)
	// parts are configuration and never filtered
	assert.Equal(t, PartsCollections, result.Parts)
}
