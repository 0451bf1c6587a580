package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

func vendorRule(v string) domain.MatchRule {
	return domain.MatchRule{Column: domain.RuleColumnVendor, Relation: domain.RuleRelationEquals, Condition: v}
}

func typeRule(v string) domain.MatchRule {
	return domain.MatchRule{Column: domain.RuleColumnType, Relation: domain.RuleRelationEquals, Condition: v}
}

func metafieldRule(v, defID string) domain.MatchRule {
	return domain.MatchRule{
		Column:       domain.RuleColumnMetafieldDefinition,
		Relation:     domain.RuleRelationEquals,
		Condition:    v,
		DefinitionID: defID,
	}
}

func TestRuleSetExistsIgnoresOrder(t *testing.T) {
	candidate := []domain.MatchRule{vendorRule("Genie"), typeRule("Boom Lift")}
	existing := []domain.Collection{
		{ID: "gid://shopify/Collection/1", Rules: []domain.MatchRule{typeRule("Boom Lift"), vendorRule("Genie")}},
	}
	assert.True(t, RuleSetExists(candidate, existing))
}

func TestRuleSetExistsLengthMismatch(t *testing.T) {
	candidate := []domain.MatchRule{vendorRule("Genie"), typeRule("Boom Lift")}
	// subset is not a duplicate
	existing := []domain.Collection{
		{Rules: []domain.MatchRule{vendorRule("Genie")}},
		{Rules: []domain.MatchRule{vendorRule("Genie"), typeRule("Boom Lift"), metafieldRule("Used", "d1")}},
	}
	assert.False(t, RuleSetExists(candidate, existing))
}

func TestRuleSetExistsDefinitionIDMatters(t *testing.T) {
	candidate := []domain.MatchRule{metafieldRule("Used", "gid://shopify/MetafieldDefinition/1")}
	existing := []domain.Collection{
		{Rules: []domain.MatchRule{metafieldRule("Used", "gid://shopify/MetafieldDefinition/9")}},
	}
	assert.False(t, RuleSetExists(candidate, existing))

	existing[0].Rules[0].DefinitionID = "gid://shopify/MetafieldDefinition/1"
	assert.True(t, RuleSetExists(candidate, existing))
}

func TestRuleSetExistsCaseSensitive(t *testing.T) {
	// No normalization: a differently-cased value is a different rule set.
	candidate := []domain.MatchRule{vendorRule("Genie")}
	existing := []domain.Collection{
		{Rules: []domain.MatchRule{vendorRule("genie")}},
	}
	assert.False(t, RuleSetExists(candidate, existing))
}

func TestRuleSetExistsEmptyCatalog(t *testing.T) {
	assert.False(t, RuleSetExists([]domain.MatchRule{vendorRule("Genie")}, nil))
}
