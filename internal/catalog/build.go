package catalog

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/genthegreat/Shopify-shop-by-specs/internal/domain"
)

var (
	handleStripPattern    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRunPattern  = regexp.MustCompile(`\s+`)
	hyphenRunPattern      = regexp.MustCompile(`-+`)
)

type attributeEntry struct {
	Name  string
	Value string
}

// sortedEntries orders a combination's entries by the canonical attribute
// order; unknown attribute names sort after all canonical ones, stable by
// name among themselves.
func sortedEntries(combo domain.Combination) []attributeEntry {
	rank := make(map[string]int, len(domain.CanonicalAttributeOrder))
	for i, name := range domain.CanonicalAttributeOrder {
		rank[name] = i
	}
	entries := make([]attributeEntry, 0, len(combo))
	for name, value := range combo {
		entries = append(entries, attributeEntry{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		ri, iKnown := rank[entries[i].Name]
		rj, jKnown := rank[entries[j].Name]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return entries[i].Name < entries[j].Name
		}
	})
	return entries
}

// HandleFragment slugs one attribute value: lowercase, strip everything but
// word characters, spaces and hyphens, collapse whitespace runs to single
// hyphens, collapse repeated hyphens, trim.
func HandleFragment(value string) string {
	s := strings.ToLower(value)
	s = handleStripPattern.ReplaceAllString(s, "")
	s = whitespaceRunPattern.ReplaceAllString(s, "-")
	s = hyphenRunPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// BuildDefinition turns one combination into a candidate collection: title
// and handle from the values in canonical order, plus one equality rule per
// attribute. Metafield-backed attributes with no entry in the definition map
// produce no rule (the collection is still created with fewer filters; this
// is logged at warn level). Returns nil for a combination with no entries.
func BuildDefinition(combo domain.Combination, defs domain.MetafieldDefinitionMap, logger *zap.Logger) *domain.CollectionDefinition {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries := sortedEntries(combo)
	if len(entries) == 0 {
		return nil
	}

	titleParts := make([]string, 0, len(entries))
	handleParts := make([]string, 0, len(entries))
	rules := make([]domain.MatchRule, 0, len(entries))

	for _, e := range entries {
		titleParts = append(titleParts, e.Value)
		if frag := HandleFragment(e.Value); frag != "" {
			handleParts = append(handleParts, frag)
		}

		switch e.Name {
		case domain.AttrVendor:
			rules = append(rules, domain.MatchRule{
				Column:    domain.RuleColumnVendor,
				Relation:  domain.RuleRelationEquals,
				Condition: e.Value,
			})
		case domain.AttrProductType:
			rules = append(rules, domain.MatchRule{
				Column:    domain.RuleColumnType,
				Relation:  domain.RuleRelationEquals,
				Condition: e.Value,
			})
		case domain.AttrCondition, domain.AttrSize, domain.AttrFuelType:
			defID, ok := defs[e.Name]
			if !ok || defID == "" {
				logger.Warn("No metafield definition for attribute, rule dropped",
					zap.String("attribute", e.Name),
					zap.String("value", e.Value),
				)
				continue
			}
			rules = append(rules, domain.MatchRule{
				Column:       domain.RuleColumnMetafieldDefinition,
				Relation:     domain.RuleRelationEquals,
				Condition:    e.Value,
				DefinitionID: defID,
			})
		}
	}

	return &domain.CollectionDefinition{
		Title:  strings.Join(titleParts, " "),
		Handle: strings.Join(handleParts, "-"),
		Rules:  rules,
	}
}
