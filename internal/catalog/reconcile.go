package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

// RuleSignature canonicalizes a rule list into a comparable key: rules
// sorted by (column, condition), each joined as
// column:relation:condition[:definitionID].
func RuleSignature(rules []domain.MatchRule) string {
	sorted := make([]domain.MatchRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Column != sorted[j].Column {
			return sorted[i].Column < sorted[j].Column
		}
		return sorted[i].Condition < sorted[j].Condition
	})
	parts := make([]string, 0, len(sorted))
	for _, r := range sorted {
		p := string(r.Column) + ":" + string(r.Relation) + ":" + r.Condition
		if r.Column == domain.RuleColumnMetafieldDefinition {
			p += ":" + r.DefinitionID
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "|")
}

// PlanDuplicateDeletions groups collections by canonical rule signature and,
// for every group with more than one member, keeps the oldest (by creation
// time when available, else by numeric ID) and marks the rest for deletion.
// Pure planning: the returned IDs are deleted by the caller.
func PlanDuplicateDeletions(all []domain.Collection) []string {
	groups := make(map[string][]domain.Collection)
	order := make([]string, 0, len(all))
	for _, col := range all {
		sig := RuleSignature(col.Rules)
		if _, ok := groups[sig]; !ok {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], col)
	}

	var deletions []string
	for _, sig := range order {
		group := groups[sig]
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.CreatedAt != nil && b.CreatedAt != nil && !a.CreatedAt.Equal(*b.CreatedAt) {
				return a.CreatedAt.Before(*b.CreatedAt)
			}
			return gidToInt64(a.ID) < gidToInt64(b.ID)
		})
		for _, col := range group[1:] {
			deletions = append(deletions, col.ID)
		}
	}
	return deletions
}

// gidToInt64 extracts the numeric ID from a GID (gid://shopify/Collection/123 -> 123)
func gidToInt64(gid string) int64 {
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
