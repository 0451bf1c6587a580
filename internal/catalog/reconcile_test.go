package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

func TestRuleSignatureOrderIndependent(t *testing.T) {
	a := []domain.MatchRule{vendorRule("Genie"), typeRule("Boom Lift")}
	b := []domain.MatchRule{typeRule("Boom Lift"), vendorRule("Genie")}
	assert.Equal(t, RuleSignature(a), RuleSignature(b))
	assert.NotEqual(t, RuleSignature(a), RuleSignature([]domain.MatchRule{vendorRule("Genie")}))
}

func TestRuleSignatureIncludesDefinitionID(t *testing.T) {
	a := []domain.MatchRule{metafieldRule("Used", "d1")}
	b := []domain.MatchRule{metafieldRule("Used", "d2")}
	assert.NotEqual(t, RuleSignature(a), RuleSignature(b))
}

func TestPlanDuplicateDeletionsKeepsLowestID(t *testing.T) {
	// Same rules, different order: one signature bucket, one deletion.
	all := []domain.Collection{
		{
			ID:    "gid://shopify/Collection/20",
			Rules: []domain.MatchRule{vendorRule("Genie"), typeRule("Boom Lift")},
		},
		{
			ID:    "gid://shopify/Collection/10",
			Rules: []domain.MatchRule{typeRule("Boom Lift"), vendorRule("Genie")},
		},
	}
	plan := PlanDuplicateDeletions(all)
	require.Len(t, plan, 1)
	assert.Equal(t, "gid://shopify/Collection/20", plan[0])
}

func TestPlanDuplicateDeletionsPrefersCreationTime(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	// The higher-ID collection is older, so it survives.
	all := []domain.Collection{
		{
			ID:        "gid://shopify/Collection/10",
			CreatedAt: &newer,
			Rules:     []domain.MatchRule{typeRule("Boom Lift")},
		},
		{
			ID:        "gid://shopify/Collection/20",
			CreatedAt: &older,
			Rules:     []domain.MatchRule{typeRule("Boom Lift")},
		},
	}
	plan := PlanDuplicateDeletions(all)
	require.Len(t, plan, 1)
	assert.Equal(t, "gid://shopify/Collection/10", plan[0])
}

func TestPlanDuplicateDeletionsNoDuplicates(t *testing.T) {
	all := []domain.Collection{
		{ID: "gid://shopify/Collection/1", Rules: []domain.MatchRule{typeRule("Boom Lift")}},
		{ID: "gid://shopify/Collection/2", Rules: []domain.MatchRule{typeRule("Scissor Lift")}},
	}
	assert.Empty(t, PlanDuplicateDeletions(all))
}

func TestPlanDuplicateDeletionsMultipleGroups(t *testing.T) {
	all := []domain.Collection{
		{ID: "gid://shopify/Collection/1", Rules: []domain.MatchRule{typeRule("Boom Lift")}},
		{ID: "gid://shopify/Collection/2", Rules: []domain.MatchRule{typeRule("Boom Lift")}},
		{ID: "gid://shopify/Collection/3", Rules: []domain.MatchRule{typeRule("Boom Lift")}},
		{ID: "gid://shopify/Collection/4", Rules: []domain.MatchRule{typeRule("Scissor Lift")}},
		{ID: "gid://shopify/Collection/5", Rules: []domain.MatchRule{typeRule("Scissor Lift")}},
	}
	plan := PlanDuplicateDeletions(all)
	assert.ElementsMatch(t, []string{
		"gid://shopify/Collection/2",
		"gid://shopify/Collection/3",
		"gid://shopify/Collection/5",
	}, plan)
}
