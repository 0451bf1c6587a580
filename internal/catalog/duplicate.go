package catalog

import "github.com/genthegreat/Shopify-shop-by-specs/internal/domain"

// RuleSetExists reports whether the candidate rule set is semantically
// identical to any existing collection's rule set, irrespective of rule
// ordering.
func RuleSetExists(candidate []domain.MatchRule, existing []domain.Collection) bool {
	for _, col := range existing {
		if SameRuleSet(candidate, col.Rules) {
			return true
		}
	}
	return false
}

// SameRuleSet reports whether two rule lists contain the same rules,
// ignoring order. Lists of different length never match, even when one is a
// subset of the other. Comparison is exact: no case or whitespace
// normalization (a differently-cased copy is treated as distinct).
func SameRuleSet(a, b []domain.MatchRule) bool {
	if len(a) != len(b) {
		return false
	}
	for _, ra := range a {
		if !containsRule(b, ra) {
			return false
		}
	}
	return true
}

// containsRule is set-based: rules within one collection are expected to be
// unique by column, so matched rules are not consumed.
func containsRule(rules []domain.MatchRule, want domain.MatchRule) bool {
	for _, r := range rules {
		if r.Column != want.Column || r.Relation != want.Relation || r.Condition != want.Condition {
			continue
		}
		if want.Column == domain.RuleColumnMetafieldDefinition && r.DefinitionID != want.DefinitionID {
			continue
		}
		return true
	}
	return false
}
